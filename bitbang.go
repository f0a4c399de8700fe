package ledmatrix

import (
	"errors"
	"fmt"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/host/v3/cpu"
)

// BitBang emulates the serial bus by toggling plain GPIO outputs.
//
// Any pin able to drive an output level can be used. Timing is kept by
// busy-waiting half a clock period after each edge, so the effective rate
// is at most the configured frequency.
type BitBang struct {
	busErr
	din  gpio.PinOut
	clk  gpio.PinOut
	cs   chipSelect
	half time.Duration
	spin func(time.Duration)
}

// NewBitBangTransmitter drives din (data), clk (clock) and cs (chip-select).
//
// Clock idles low and the chip samples data on the rising edge, matching
// SPI Mode0.
func NewBitBangTransmitter(din, clk, cs gpio.PinOut, opts *Opts) (*BitBang, error) {
	if din == nil || clk == nil || cs == nil {
		return nil, errors.New("ledmatrix: bit-bang needs DIN, CLK and CS pins")
	}
	f, err := opts.frequency()
	if err != nil {
		return nil, err
	}
	b := &BitBang{
		din:  din,
		clk:  clk,
		cs:   newChipSelect(cs, opts),
		half: halfPeriod(f),
		spin: cpu.Nanospin,
	}
	if err := b.idle(); err != nil {
		return nil, fmt.Errorf("ledmatrix: failed to idle bus lines: %w", err)
	}
	return b, nil
}

// halfPeriod returns 1e9/f/2 nanoseconds using integer division.
func halfPeriod(f physic.Frequency) time.Duration {
	hz := int64(f / physic.Hertz)
	return time.Duration(int64(time.Second) / hz / 2)
}

// Transmit implements Transmitter.
func (b *BitBang) Transmit(addr Register, data byte) {
	w := Word(addr, data)
	b.keep(b.cs.assert())
	for i := 15; i >= 0; i-- {
		b.keep(b.din.Out(gpio.Level(w>>uint(i)&1 == 1)))
		b.keep(b.clk.Out(gpio.High))
		b.spin(b.half)
		b.keep(b.clk.Out(gpio.Low))
		b.spin(b.half)
	}
	b.keep(b.cs.release())
}

// Halt implements Transmitter.
func (b *BitBang) Halt() error {
	return b.idle()
}

func (b *BitBang) idle() error {
	if err := b.cs.release(); err != nil {
		return err
	}
	return b.clk.Out(gpio.Low)
}

func (b *BitBang) String() string {
	return fmt.Sprintf("BitBang{din=%s, clk=%s, cs=%s}", b.din, b.clk, b.cs.pin)
}
