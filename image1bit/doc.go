// Package image1bit provides a monochrome 8x8 image format for LED dot
// matrices driven one byte per row.
//
// Each row of the matrix is one byte. Bit j of row i is the pixel at x=j,
// y=i, so the least significant bit is the leftmost column:
//
//	Row byte: 0b01100010
//	Pixels:   x=0 off, x=1 on, x=5 on, x=6 on
//
// This package provides:
//
// - Bit: a color type that is either lit or dark
// - BitModel: a color model thresholding standard Go colors at half luma
// - Matrix: a draw.Image backed by eight row bytes
//
// Example usage:
//
//	img := image1bit.NewMatrix()
//	img.SetBit(1, 2, image1bit.On)
//	draw.Draw(img, img.Bounds(), src, image.Point{}, draw.Src)
//	rows := img.Rows
package image1bit
