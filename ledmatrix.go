// Package ledmatrix controls an 8x8 LED dot matrix driven by a MAX7219.
//
// The MAX7219 receives 16-bit words over a write-only serial bus. The
// driver can shift them out with a hardware SPI port or by toggling three
// GPIO pins.
//
// See the examples for how to use this package.
package ledmatrix

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/dt5edu/ledmatrix/image1bit"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/spi"
)

// Dev is the device handle for the LED matrix.
//
// Dev is not safe for concurrent use. It owns its bus lines: two Dev
// values must not share a chip-select.
type Dev struct {
	t Transmitter

	// Current frame, kept across SendBuffer calls
	buffer Frame

	// Last values written to the mode registers
	testMode bool
	shutdown bool
}

// New returns a Dev writing through t and runs Init on it.
//
// An error is returned if t is nil or if t failed while sending the power-on
// sequence, which means its pins or port are not usable.
func New(t Transmitter) (*Dev, error) {
	if t == nil {
		return nil, errors.New("ledmatrix: nil transmitter")
	}
	d := &Dev{t: t}
	if err := d.Init().Err(); err != nil {
		return nil, fmt.Errorf("ledmatrix: init: %w", err)
	}
	return d, nil
}

// NewSPI creates a Dev connected through a hardware SPI port.
//
// The port is configured for Mode0 at opts.Frequency (1MHz by default).
// cs can be nil to let the port drive its own chip-enable line.
func NewSPI(p spi.Port, cs gpio.PinOut, opts *Opts) (*Dev, error) {
	t, err := NewSPITransmitter(p, cs, opts)
	if err != nil {
		return nil, err
	}
	return New(t)
}

// NewBitBang creates a Dev driving the bus in software on three GPIO
// outputs.
func NewBitBang(din, clk, cs gpio.PinOut, opts *Opts) (*Dev, error) {
	t, err := NewBitBangTransmitter(din, clk, cs, opts)
	if err != nil {
		return nil, err
	}
	return New(t)
}

// Init sends the power-on sequence: raw decode, test mode off, normal
// operation, maximum intensity and all eight digits scanned.
//
// It can be called again at any time to bring the chip back to this state.
func (d *Dev) Init() *Dev {
	d.t.Transmit(DecodeMode, DecodeRaw)
	d.SetTestMode(false)
	d.SetShutdown(false)
	d.SetIntensity(1)
	d.t.Transmit(ScanLimit, ScanAllDigits)
	return d
}

// SetIntensity sets the LED brightness. level is clamped to [0, 1] and
// quantized to floor(15*level), so 0.5 gives duty code 7.
func (d *Dev) SetIntensity(level float32) *Dev {
	d.t.Transmit(Intensity, intensityCode(level))
	return d
}

func intensityCode(level float32) byte {
	switch {
	case math.IsNaN(float64(level)) || level <= 0:
		return 0
	case level >= 1:
		return MaxIntensity
	}
	return byte(float32(MaxIntensity) * level)
}

// SetTestMode turns the display test on or off. In test mode every LED is
// lit at full brightness regardless of the digit registers.
func (d *Dev) SetTestMode(enable bool) *Dev {
	d.t.Transmit(DisplayTest, boolByte(enable))
	d.testMode = enable
	return d
}

// InTestMode reports the last value passed to SetTestMode.
func (d *Dev) InTestMode() bool {
	return d.testMode
}

// SetShutdown puts the chip in shutdown (true) or normal operation (false).
//
// The Shutdown register is active low: 0 shuts the chip down and 1 resumes
// normal operation.
func (d *Dev) SetShutdown(enable bool) *Dev {
	d.t.Transmit(Shutdown, boolByte(!enable))
	d.shutdown = enable
	return d
}

// InShutdown reports the last value passed to SetShutdown.
func (d *Dev) InShutdown() bool {
	return d.shutdown
}

// Buffer returns a copy of the frame buffer.
func (d *Dev) Buffer() Frame {
	return d.buffer
}

// SetBuffer replaces the frame buffer without sending it.
func (d *Dev) SetBuffer(f Frame) *Dev {
	d.buffer = f
	return d
}

// ClearBuffer zeroes the frame buffer. Nothing is sent until SendBuffer.
func (d *Dev) ClearBuffer() *Dev {
	d.buffer = Frame{}
	return d
}

// SendBuffer writes row 0 to row 7 into Digit0 to Digit7, in that order.
func (d *Dev) SendBuffer() *Dev {
	for row, b := range d.buffer {
		d.t.Transmit(DigitRegister(row), b)
	}
	return d
}

// Display replaces the frame buffer with f and sends it.
func (d *Dev) Display(f Frame) *Dev {
	d.buffer = f
	return d.SendBuffer()
}

// HelloWorld displays Smile. Use it to check the wiring.
func (d *Dev) HelloWorld() *Dev {
	return d.Display(Smile)
}

// Err returns the first error reported by the bus since construction.
// It stays set after the bus recovers.
func (d *Dev) Err() error {
	return d.t.Err()
}

// ColorModel returns the color model of the display.
func (d *Dev) ColorModel() color.Model {
	return image1bit.BitModel
}

// Bounds returns the image bounds of the display.
func (d *Dev) Bounds() image.Rectangle {
	return image.Rect(0, 0, Rows, Rows)
}

// Draw draws src over the current frame and sends the result.
// The returned error is the first bus error raised while sending it.
func (d *Dev) Draw(dst image.Rectangle, src image.Image, sp image.Point) error {
	next := d.buffer.Image()
	draw.Draw(next, dst, src, sp, draw.Src)
	d.t.TakeErr()
	d.Display(Frame(next.Rows))
	return d.t.TakeErr()
}

// Write displays pixels, which must hold exactly one Frame of 8 row bytes.
// Like Draw, it only reports bus errors raised during this call.
func (d *Dev) Write(pixels []byte) (int, error) {
	if len(pixels) != Rows {
		return 0, errors.New("ledmatrix: invalid buffer size")
	}
	var f Frame
	copy(f[:], pixels)
	d.t.TakeErr()
	d.Display(f)
	return len(pixels), d.t.TakeErr()
}

// Halt leaves the bus lines at their idle levels. The chip keeps showing
// the last frame.
func (d *Dev) Halt() error {
	return d.t.Halt()
}

// String returns a string representation of the device.
func (d *Dev) String() string {
	return fmt.Sprintf("ledmatrix.Dev{%s}", d.t)
}

func boolByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}
