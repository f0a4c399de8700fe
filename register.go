package ledmatrix

import "fmt"

// Register is the 4-bit address field of a transaction word.
type Register byte

// Register map of the MAX7219. Digit0 to Digit7 hold the eight rows of the
// matrix.
const (
	NoOp        Register = 0x0
	Digit0      Register = 0x1
	Digit1      Register = 0x2
	Digit2      Register = 0x3
	Digit3      Register = 0x4
	Digit4      Register = 0x5
	Digit5      Register = 0x6
	Digit6      Register = 0x7
	Digit7      Register = 0x8
	DecodeMode  Register = 0x9
	Intensity   Register = 0xA
	ScanLimit   Register = 0xB
	Shutdown    Register = 0xC
	DisplayTest Register = 0xF
)

const (
	// DecodeRaw disables Code B decoding on every digit so each data bit
	// drives one LED.
	DecodeRaw byte = 0x00
	// ScanAllDigits enables digits 0 through 7.
	ScanAllDigits byte = 0x07
	// MaxIntensity is the highest duty cycle code of the Intensity register.
	MaxIntensity byte = 0x0F
)

var registerNames = map[Register]string{
	NoOp:        "NoOp",
	DecodeMode:  "DecodeMode",
	Intensity:   "Intensity",
	ScanLimit:   "ScanLimit",
	Shutdown:    "Shutdown",
	DisplayTest: "DisplayTest",
}

// DigitRegister returns the register holding row (0-7) of the matrix.
func DigitRegister(row int) Register {
	return Digit0 + Register(row)
}

// Word packs a register write into the 16-bit word sent on the wire.
// Bits 15-8 carry the address and bits 7-0 the data. The chip decodes only
// the low nibble of the address byte, so addr is masked to 4 bits.
func Word(addr Register, data byte) uint16 {
	return uint16(addr&0x0F)<<8 | uint16(data)
}

func (r Register) String() string {
	if r >= Digit0 && r <= Digit7 {
		return fmt.Sprintf("Digit%d", r-Digit0)
	}
	if s, ok := registerNames[r]; ok {
		return s
	}
	return fmt.Sprintf("Register(0x%X)", byte(r))
}
