package ledmatrix

import (
	"errors"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpiotest"
)

type regWrite struct {
	Addr Register
	Data byte
}

// recorder is a Transmitter keeping every write in order.
type recorder struct {
	writes  []regWrite
	err     error
	pending error
	halted  bool
}

func (r *recorder) Transmit(addr Register, data byte) {
	r.writes = append(r.writes, regWrite{addr, data})
}

func (r *recorder) Err() error { return r.err }

func (r *recorder) TakeErr() error {
	err := r.pending
	r.pending = nil
	return err
}

func (r *recorder) Halt() error {
	r.halted = true
	return nil
}

func (r *recorder) String() string { return "recorder" }

func (r *recorder) reset() {
	r.writes = nil
}

var initWrites = []regWrite{
	{DecodeMode, 0},
	{DisplayTest, 0},
	{Shutdown, 1},
	{Intensity, 15},
	{ScanLimit, 0b111},
}

// edge is one level change seen on a tapped pin.
type edge struct {
	pin   string
	level gpio.Level
}

// wire collects the level changes of the DIN, CLK and CS taps in the
// order they happened.
type wire struct {
	edges []edge
}

// tap is a test pin reporting every Out call to a wire.
type tap struct {
	*gpiotest.Pin
	w    *wire
	fail error
}

func newTap(w *wire, name string, num int) *tap {
	return &tap{Pin: &gpiotest.Pin{N: name, Num: num}, w: w}
}

func (p *tap) Out(l gpio.Level) error {
	p.w.edges = append(p.w.edges, edge{p.N, l})
	return p.fail
}

// decoded is the result of sampling a wire like the chip does.
type decoded struct {
	words []uint16
	// clocks counts rising CLK edges per word
	clocks []int
	// stray counts rising CLK edges seen while CS was deselected
	stray int
}

// decode samples DIN on every rising CLK edge and latches a word on every
// CS release. selected is the CS level that selects the chip.
func (w *wire) decode(selected gpio.Level) decoded {
	var (
		out              decoded
		din, clk, active bool
		word             uint16
		n                int
	)
	for _, e := range w.edges {
		switch e.pin {
		case "DIN":
			din = bool(e.level)
		case "CLK":
			rising := !clk && bool(e.level)
			clk = bool(e.level)
			if !rising {
				continue
			}
			if !active {
				out.stray++
				continue
			}
			word <<= 1
			if din {
				word |= 1
			}
			n++
		case "CS":
			sel := e.level == selected
			if sel && !active {
				word, n = 0, 0
			}
			if !sel && active {
				out.words = append(out.words, word)
				out.clocks = append(out.clocks, n)
			}
			active = sel
		}
	}
	return out
}

func (w *wire) reset() {
	w.edges = nil
}

// newTestBitBang returns a bit-bang transmitter on taps that does not
// spin, and the spins it would have done.
func newTestBitBang(opts *Opts) (*BitBang, *wire, *[]time.Duration, error) {
	w := &wire{}
	var spins []time.Duration
	b, err := NewBitBangTransmitter(newTap(w, "DIN", 10), newTap(w, "CLK", 11), newTap(w, "CS", 8), opts)
	if err != nil {
		return nil, nil, nil, err
	}
	b.spin = func(d time.Duration) { spins = append(spins, d) }
	return b, w, &spins, nil
}

var errPin = errors.New("pin is read-only")
