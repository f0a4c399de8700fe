// Package config loads the wiring of an LED matrix from YAML and opens the
// device it describes.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi/spireg"

	"github.com/dt5edu/ledmatrix"
)

// Transmission modes.
const (
	BitBang = "bitbang"
	SPI     = "spi"
)

// Pins names the GPIOs as known to gpioreg, e.g. "GPIO10".
type Pins struct {
	DIN string `yaml:"din,omitempty"`
	CLK string `yaml:"clk,omitempty"`
	CS  string `yaml:"cs,omitempty"`
}

// SPIPort selects the hardware port used in spi mode.
type SPIPort struct {
	Port string `yaml:"port"` // spireg name, "" for the first port
}

// Config describes how the matrix is wired and how it is driven. The zero
// value is not usable; start from Default or Parse.
type Config struct {
	Mode         string  `yaml:"transmission_mode"` // "bitbang" | "spi"
	FrequencyHz  int64   `yaml:"frequency_hz"`
	CSActiveHigh bool    `yaml:"cs_active_high"`
	Intensity    float32 `yaml:"intensity"`

	Pins Pins    `yaml:"pins"`
	SPI  SPIPort `yaml:"spi,omitempty"`
}

// Default returns the configuration of the reference board: bit-banged on
// the SPI0 pins of a Raspberry Pi at 1MHz.
func Default() *Config {
	return &Config{
		Mode:        BitBang,
		FrequencyHz: 1000000,
		Intensity:   1,
		Pins:        Pins{DIN: "GPIO10", CLK: "GPIO11", CS: "GPIO8"},
	}
}

// Parse decodes b over Default.
func Parse(b []byte) (*Config, error) {
	c := Default()
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Load reads the YAML file at path and parses it over Default.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(b)
}

// Save writes c to path as YAML, replacing any existing file.
func Save(path string, c *Config) error {
	b, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0644)
}

// Validate reports the first setting that cannot describe a working bus.
func (c *Config) Validate() error {
	switch c.Mode {
	case BitBang:
		if c.Pins.DIN == "" || c.Pins.CLK == "" || c.Pins.CS == "" {
			return errors.New("config: bitbang mode needs pins.din, pins.clk and pins.cs")
		}
	case SPI:
	default:
		return fmt.Errorf("config: unknown transmission_mode %q", c.Mode)
	}
	if c.FrequencyHz <= 0 {
		return fmt.Errorf("config: frequency_hz must be positive, got %d", c.FrequencyHz)
	}
	if c.Intensity < 0 || c.Intensity > 1 {
		return fmt.Errorf("config: intensity must be within [0, 1], got %g", c.Intensity)
	}
	return nil
}

// Opts converts the bus settings for ledmatrix.
func (c *Config) Opts() *ledmatrix.Opts {
	return &ledmatrix.Opts{
		Frequency:    physic.Frequency(c.FrequencyHz) * physic.Hertz,
		CSActiveHigh: c.CSActiveHigh,
	}
}

// Open binds the configured pins or port and initializes the device at the
// configured intensity. host.Init must have been called.
//
// The returned closer releases the SPI port; it is a no-op in bitbang mode.
func (c *Config) Open() (*ledmatrix.Dev, io.Closer, error) {
	if err := c.Validate(); err != nil {
		return nil, nil, err
	}
	var (
		dev    *ledmatrix.Dev
		closer io.Closer = nopCloser{}
		err    error
	)
	switch c.Mode {
	case BitBang:
		var din, clk, cs gpio.PinOut
		if din, err = pin(c.Pins.DIN); err != nil {
			return nil, nil, err
		}
		if clk, err = pin(c.Pins.CLK); err != nil {
			return nil, nil, err
		}
		if cs, err = pin(c.Pins.CS); err != nil {
			return nil, nil, err
		}
		dev, err = ledmatrix.NewBitBang(din, clk, cs, c.Opts())
	case SPI:
		var cs gpio.PinOut
		if c.Pins.CS != "" {
			if cs, err = pin(c.Pins.CS); err != nil {
				return nil, nil, err
			}
		}
		p, perr := spireg.Open(c.SPI.Port)
		if perr != nil {
			return nil, nil, fmt.Errorf("config: spi port %q: %w", c.SPI.Port, perr)
		}
		closer = p
		dev, err = ledmatrix.NewSPI(p, cs, c.Opts())
	}
	if err != nil {
		_ = closer.Close()
		return nil, nil, err
	}
	if err = dev.SetIntensity(c.Intensity).Err(); err != nil {
		_ = closer.Close()
		return nil, nil, fmt.Errorf("config: intensity: %w", err)
	}
	return dev, closer, nil
}

func pin(name string) (gpio.PinOut, error) {
	p := gpioreg.ByName(name)
	if p == nil {
		return nil, fmt.Errorf("config: GPIO pin %s not found", name)
	}
	return p, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
