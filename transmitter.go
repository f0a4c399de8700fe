package ledmatrix

import (
	"errors"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
)

// DefaultFrequency is the bus clock used when Opts.Frequency is zero.
const DefaultFrequency = physic.MegaHertz

// Transmitter delivers one register write to the chip, framed by a
// chip-select window.
//
// The MAX7219 never acknowledges a write, so Transmit has nothing to
// report back. Failures raised by the underlying pins or port are kept and
// returned by Err and TakeErr.
type Transmitter interface {
	// Transmit sends Word(addr, data) MSB first. Only the low 4 bits of addr
	// reach the wire.
	Transmit(addr Register, data byte)
	// Err returns the first bus error seen since construction, if any.
	Err() error
	// TakeErr returns the first bus error seen since the previous TakeErr
	// and forgets it. Err is not affected.
	TakeErr() error
	// Halt parks the bus lines at their idle levels.
	Halt() error
	String() string
}

// Opts is the bus configuration shared by both transmitters.
type Opts struct {
	// Frequency of the serial clock. Defaults to DefaultFrequency.
	Frequency physic.Frequency
	// CSActiveHigh selects the chip with a high level on the chip-select
	// line. The MAX7219 LOAD/CS input is active low, which is the default.
	CSActiveHigh bool
}

func (o *Opts) frequency() (physic.Frequency, error) {
	if o == nil || o.Frequency == 0 {
		return DefaultFrequency, nil
	}
	if o.Frequency < physic.Hertz {
		return 0, errors.New("ledmatrix: bus frequency must be at least 1Hz")
	}
	return o.Frequency, nil
}

// chipSelect drives an optional chip-select pin.
type chipSelect struct {
	pin      gpio.PinOut
	selected gpio.Level
}

func newChipSelect(pin gpio.PinOut, opts *Opts) chipSelect {
	cs := chipSelect{pin: pin, selected: gpio.Low}
	if opts != nil && opts.CSActiveHigh {
		cs.selected = gpio.High
	}
	return cs
}

func (c chipSelect) assert() error {
	if c.pin == nil {
		return nil
	}
	return c.pin.Out(c.selected)
}

func (c chipSelect) release() error {
	if c.pin == nil {
		return nil
	}
	return c.pin.Out(!c.selected)
}

// busErr keeps the first error reported by a bus operation, both since
// construction and since the last TakeErr.
type busErr struct {
	err     error
	pending error
}

func (b *busErr) keep(err error) {
	if err == nil {
		return
	}
	if b.err == nil {
		b.err = err
	}
	if b.pending == nil {
		b.pending = err
	}
}

func (b *busErr) Err() error {
	return b.err
}

func (b *busErr) TakeErr() error {
	err := b.pending
	b.pending = nil
	return err
}
