package ledmatrix

import "github.com/dt5edu/ledmatrix/image1bit"

// Rows is the number of digit registers, one per matrix row.
const Rows = image1bit.Size

// Frame is one 8x8 bitmap. Frame[i] is row i, and bit j of a row is column
// j with bit 0 the least significant.
type Frame [Rows]byte

// Smile is the bitmap shown by HelloWorld.
var Smile = Frame{0, 0b100, 0b1100010, 0b10, 0b10, 0b1100010, 0b100, 0}

// Image returns the frame as an image1bit.Matrix.
func (f Frame) Image() *image1bit.Matrix {
	return &image1bit.Matrix{Rows: f}
}
