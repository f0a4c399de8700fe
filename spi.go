package ledmatrix

import (
	"errors"
	"fmt"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/spi"
)

// SPI sends register writes through a hardware SPI port.
type SPI struct {
	busErr
	c  spi.Conn
	cs chipSelect
	w  [2]byte
}

// NewSPITransmitter connects to p in Mode0 (CPOL=0, CPHA=0).
//
// cs is optional. When nil, the port's own chip-enable line frames each
// word, which is what spidev does for every Tx.
//
// The word is shifted out as two 8-bit transfers inside a single Tx, so
// chip-select stays asserted for all 16 clocks and the bit order on the wire
// does not depend on the host's endianness.
func NewSPITransmitter(p spi.Port, cs gpio.PinOut, opts *Opts) (*SPI, error) {
	if p == nil {
		return nil, errors.New("ledmatrix: nil SPI port")
	}
	f, err := opts.frequency()
	if err != nil {
		return nil, err
	}
	c, err := p.Connect(f, spi.Mode0, 8)
	if err != nil {
		return nil, fmt.Errorf("ledmatrix: %w", err)
	}
	s := &SPI{c: c, cs: newChipSelect(cs, opts)}
	if err := s.cs.release(); err != nil {
		return nil, fmt.Errorf("ledmatrix: failed to release CS: %w", err)
	}
	return s, nil
}

// Transmit implements Transmitter.
func (s *SPI) Transmit(addr Register, data byte) {
	s.keep(s.cs.assert())
	w := Word(addr, data)
	s.w[0], s.w[1] = byte(w>>8), byte(w)
	s.keep(s.c.Tx(s.w[:], nil))
	s.keep(s.cs.release())
}

// Halt implements Transmitter.
func (s *SPI) Halt() error {
	return s.cs.release()
}

func (s *SPI) String() string {
	return fmt.Sprintf("SPI{%s}", s.c)
}
