// Package texture synthesizes procedural RGBA textures on the CPU.
package texture

import (
	"errors"

	"github.com/Carmen-Shannon/oxy-garden/common"
)

// DefaultCheckerSize is the side length, in cells, of the floor checkerboard.
const DefaultCheckerSize = 8

// ErrInvalidSize is returned when a texture is requested with a non-positive side length.
var ErrInvalidSize = errors.New("texture: size must be positive")

var (
	black = [4]uint8{0, 0, 0, 255}
	white = [4]uint8{255, 255, 255, 255}
)

// Image is a square RGBA8 pixel buffer, row-major, 4 bytes per cell.
// It is never mutated after synthesis.
type Image struct {
	size int
	pix  []uint8
}

// Checkerboard builds a size x size checkerboard. Cell (row, col) is opaque black when
// row+col is even and opaque white otherwise.
//
// Parameters:
//   - size: side length in cells
//
// Returns:
//   - *Image: the synthesized buffer
//   - error: ErrInvalidSize if size <= 0
func Checkerboard(size int) (*Image, error) {
	if size <= 0 {
		return nil, ErrInvalidSize
	}
	pix := make([]uint8, size*size*4)
	for row := range size {
		for col := range size {
			c := white
			if (row+col)%2 == 0 {
				c = black
			}
			copy(pix[(row*size+col)*4:], c[:])
		}
	}
	return &Image{size: size, pix: pix}, nil
}

// Size returns the side length of the image in cells.
func (img *Image) Size() int {
	return img.size
}

// At returns the RGBA value of the cell at (row, col).
func (img *Image) At(row, col int) [4]uint8 {
	off := (row*img.size + col) * 4
	return [4]uint8{img.pix[off], img.pix[off+1], img.pix[off+2], img.pix[off+3]}
}

// Pixels returns a copy of the raw RGBA bytes.
func (img *Image) Pixels() []uint8 {
	out := make([]uint8, len(img.pix))
	copy(out, img.pix)
	return out
}

// StagingData converts the image into texture staging data for GPU upload.
//
// Returns:
//   - common.TextureStagingData: pixels plus dimensions
func (img *Image) StagingData() common.TextureStagingData {
	return common.TextureStagingData{
		Pixels: img.Pixels(),
		Width:  uint32(img.size),
		Height: uint32(img.size),
	}
}
