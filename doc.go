// Package ledmatrix controls an 8x8 LED dot matrix driven by a MAX7219.
//
// The MAX7219 multiplexes up to 64 LEDs from eight digit registers, one per
// row. It listens on a write-only serial bus: every write is a 16-bit word,
// MSB first, with the register address in bits 15-8 and the data in bits
// 7-0. The chip latches the word on the rising edge of LOAD/CS.
//
// This driver implements the display.Drawer interface from periph.io.
//
// # Hardware Connection
//
// Connect the module to your system via SPI or any three GPIO outputs:
//
//	Module Pin → System Pin
//	GND        → GND
//	VCC        → 5V
//	DIN        → SPI MOSI, or any GPIO for bit-banging
//	CLK        → SPI Clock (SCLK), or any GPIO for bit-banging
//	CS/LOAD    → SPI Chip Select, or any GPIO
//
// # Transmission
//
// Two transmitters are provided. Both send the same bits on the wire:
//
//	// Hardware SPI, port chip-enable frames each word
//	dev, err := ledmatrix.NewSPI(port, nil, nil)
//
//	// Software bit-banging on arbitrary pins
//	dev, err := ledmatrix.NewBitBang(din, clk, cs, nil)
//
// The hardware port gives exact timing and costs no CPU. Bit-banging works on
// boards without a free SPI port and busy-waits half a clock period after
// each edge, 500ns at the default 1MHz.
//
// Neither can detect a missed write, since the chip never answers. Methods
// that talk to the chip do not return errors; Dev.Err reports the first
// failure raised by the host's pins or port.
//
// # Basic Usage
//
//	package main
//
//	import (
//		"periph.io/x/conn/v3/spi/spireg"
//		"periph.io/x/host/v3"
//
//		"github.com/dt5edu/ledmatrix"
//	)
//
//	func main() {
//		host.Init()
//
//		p, _ := spireg.Open("")
//		defer p.Close()
//
//		dev, _ := ledmatrix.NewSPI(p, nil, nil)
//		defer dev.Halt()
//
//		dev.SetIntensity(0.5).Display(ledmatrix.Frame{
//			0x00, 0x04, 0x62, 0x02, 0x02, 0x62, 0x04, 0x00,
//		})
//	}
//
// # Frames
//
// A Frame is 8 bytes, one per row. Bit 0 of a row is column 0. Display
// stores the frame and writes Digit0 to Digit7 in ascending order.
// The frame is kept, so SendBuffer can resend it after a re-Init.
//
// # Intensity
//
// The chip has 16 brightness steps. SetIntensity takes a level in [0, 1] and
// sends floor(15*level), so SetIntensity(0.5) sends 7.
//
// # Shutdown
//
// The Shutdown register is active low. SetShutdown(true) writes 0, and
// InShutdown reports true afterwards.
//
// # Datasheet
//
// https://www.analog.com/media/en/technical-documentation/data-sheets/MAX7219-MAX7221.pdf
package ledmatrix
