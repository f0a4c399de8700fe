package image1bit

import (
	"image"
	"image/color"
)

// Size is the width and height of a Matrix in pixels.
const Size = 8

// Bit is a monochrome color: a lit or a dark LED.
type Bit bool

const (
	On  Bit = true
	Off Bit = false
)

// RGBA implements color.Color. On is white and Off is black.
func (b Bit) RGBA() (r, g, bl, a uint32) {
	if b {
		return 0xFFFF, 0xFFFF, 0xFFFF, 0xFFFF
	}
	return 0, 0, 0, 0xFFFF
}

func (b Bit) String() string {
	if b {
		return "On"
	}
	return "Off"
}

// toBit converts any color.Color to Bit. Colors at or above half luma
// are On.
func toBit(c color.Color) color.Color {
	if b, ok := c.(Bit); ok {
		return b
	}
	r, g, b, _ := c.RGBA()
	y := (299*r + 587*g + 114*b + 500) / 1000
	return Bit(y >= 0x8000)
}

// BitModel converts colors to Bit.
var BitModel = color.ModelFunc(toBit)

// Matrix is an 8x8 monochrome image stored one byte per row.
type Matrix struct {
	Rows [Size]byte
}

// NewMatrix returns a dark Matrix.
func NewMatrix() *Matrix {
	return &Matrix{}
}

// ColorModel returns BitModel.
func (m *Matrix) ColorModel() color.Model {
	return BitModel
}

// Bounds always returns (0,0)-(8,8).
func (m *Matrix) Bounds() image.Rectangle {
	return image.Rect(0, 0, Size, Size)
}

// At implements image.Image.
func (m *Matrix) At(x, y int) color.Color {
	return m.BitAt(x, y)
}

// BitAt returns the pixel at (x, y). Pixels outside the matrix are Off.
func (m *Matrix) BitAt(x, y int) Bit {
	if !(image.Point{X: x, Y: y}.In(m.Bounds())) {
		return Off
	}
	return Bit(m.Rows[y]&(1<<uint(x)) != 0)
}

// Set implements draw.Image.
func (m *Matrix) Set(x, y int, c color.Color) {
	m.SetBit(x, y, BitModel.Convert(c).(Bit))
}

// SetBit sets the pixel at (x, y). Writes outside the matrix are ignored.
func (m *Matrix) SetBit(x, y int, b Bit) {
	if !(image.Point{X: x, Y: y}.In(m.Bounds())) {
		return
	}
	if b {
		m.Rows[y] |= 1 << uint(x)
	} else {
		m.Rows[y] &^= 1 << uint(x)
	}
}
