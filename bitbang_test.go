package ledmatrix

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
)

func TestBitBangWordEncoding(t *testing.T) {
	b, w, _, err := newTestBitBang(nil)
	require.NoError(t, err)
	w.reset()

	var want []uint16
	for addr := 0; addr < 16; addr++ {
		for data := 0; data < 256; data++ {
			b.Transmit(Register(addr), byte(data))
			want = append(want, uint16(addr)<<8|uint16(data))
		}
	}

	got := w.decode(gpio.Low)
	assert.Equal(t, want, got.words)
	assert.Zero(t, got.stray)
	for i, n := range got.clocks {
		require.Equal(t, 16, n, "clocks of word %d", i)
	}
	assert.NoError(t, b.Err())
}

func TestBitBangMasksAddress(t *testing.T) {
	b, w, _, err := newTestBitBang(nil)
	require.NoError(t, err)
	w.reset()

	b.Transmit(Register(0x1A), 0x07)
	b.Transmit(Register(0xF0), 0x55)

	assert.Equal(t, []uint16{0x0A07, 0x0055}, w.decode(gpio.Low).words)
}

func TestBitBangFraming(t *testing.T) {
	b, w, _, err := newTestBitBang(nil)
	require.NoError(t, err)

	// Construction parks CS deselected and CLK low.
	assert.Equal(t, []edge{{"CS", gpio.High}, {"CLK", gpio.Low}}, w.edges)
	w.reset()

	b.Transmit(Intensity, 0x0F)

	require.Len(t, w.edges, 2+16*3)
	assert.Equal(t, edge{"CS", gpio.Low}, w.edges[0], "CS must be asserted first")
	assert.Equal(t, edge{"CS", gpio.High}, w.edges[len(w.edges)-1], "CS must be released last")
	for i := 0; i < 16; i++ {
		bit := w.edges[1+i*3 : 1+i*3+3]
		assert.Equal(t, "DIN", bit[0].pin, "bit %d: data before clock", i)
		assert.Equal(t, edge{"CLK", gpio.High}, bit[1], "bit %d", i)
		assert.Equal(t, edge{"CLK", gpio.Low}, bit[2], "bit %d", i)
	}

	// MSB first: 0x0A0F = 0000 1010 0000 1111
	var levels []gpio.Level
	for i := 0; i < 16; i++ {
		levels = append(levels, w.edges[1+i*3].level)
	}
	L, H := gpio.Low, gpio.High
	assert.Equal(t, []gpio.Level{L, L, L, L, H, L, H, L, L, L, L, L, H, H, H, H}, levels)
}

func TestBitBangTiming(t *testing.T) {
	tests := []struct {
		name string
		f    physic.Frequency
		half time.Duration
	}{
		{"default 1MHz", 0, 500 * time.Nanosecond},
		{"400kHz", 400 * physic.KiloHertz, 1250 * time.Nanosecond},
		{"3MHz", 3 * physic.MegaHertz, 166 * time.Nanosecond},
		{"10MHz", 10 * physic.MegaHertz, 50 * time.Nanosecond},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, _, spins, err := newTestBitBang(&Opts{Frequency: tt.f})
			require.NoError(t, err)

			b.Transmit(NoOp, 0)

			require.Len(t, *spins, 32)
			for _, d := range *spins {
				assert.Equal(t, tt.half, d)
			}
		})
	}
}

func TestBitBangActiveHighCS(t *testing.T) {
	b, w, _, err := newTestBitBang(&Opts{CSActiveHigh: true})
	require.NoError(t, err)
	assert.Equal(t, edge{"CS", gpio.Low}, w.edges[0])
	w.reset()

	b.Transmit(Digit3, 0xA5)

	got := w.decode(gpio.High)
	assert.Equal(t, []uint16{0x04A5}, got.words)
	assert.Zero(t, got.stray)
}

func TestBitBangOptsValidation(t *testing.T) {
	w := &wire{}
	din, clk, cs := newTap(w, "DIN", 10), newTap(w, "CLK", 11), newTap(w, "CS", 8)

	tests := []struct {
		name         string
		din, clk, cs gpio.PinOut
		opts         *Opts
		wantErr      bool
	}{
		{"nil options (uses defaults)", din, clk, cs, nil, false},
		{"explicit frequency", din, clk, cs, &Opts{Frequency: 2 * physic.MegaHertz}, false},
		{"missing DIN", nil, clk, cs, nil, true},
		{"missing CLK", din, nil, cs, nil, true},
		{"missing CS", din, clk, nil, nil, true},
		{"sub-hertz frequency", din, clk, cs, &Opts{Frequency: physic.MilliHertz}, true},
		{"negative frequency", din, clk, cs, &Opts{Frequency: -physic.Hertz}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewBitBangTransmitter(tt.din, tt.clk, tt.cs, tt.opts)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestBitBangPinFailure(t *testing.T) {
	w := &wire{}
	din := newTap(w, "DIN", 10)
	b, err := NewBitBangTransmitter(din, newTap(w, "CLK", 11), newTap(w, "CS", 8), nil)
	require.NoError(t, err)
	b.spin = func(time.Duration) {}

	din.fail = errPin
	b.Transmit(Digit0, 1)
	b.Transmit(Digit1, 2)

	assert.ErrorIs(t, b.Err(), errPin)
	// The rest of the word, and the next one, still go out.
	assert.Len(t, w.decode(gpio.Low).words, 2)
}

func TestBitBangIdleFailure(t *testing.T) {
	w := &wire{}
	cs := newTap(w, "CS", 8)
	cs.fail = errPin

	_, err := NewBitBangTransmitter(newTap(w, "DIN", 10), newTap(w, "CLK", 11), cs, nil)
	assert.ErrorIs(t, err, errPin)
}

func TestBitBangHalt(t *testing.T) {
	b, w, _, err := newTestBitBang(nil)
	require.NoError(t, err)
	w.reset()

	require.NoError(t, b.Halt())
	assert.Equal(t, []edge{{"CS", gpio.High}, {"CLK", gpio.Low}}, w.edges)
}

func TestHalfPeriod(t *testing.T) {
	assert.Equal(t, 500*time.Nanosecond, halfPeriod(physic.MegaHertz))
	assert.Equal(t, 250*time.Millisecond, halfPeriod(2*physic.Hertz))
}
