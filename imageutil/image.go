// Package imageutil provides the pixel buffer, kernel and convolution
// engine behind ppmfilter, along with readers and writers for the
// plain-text PPM and kernel formats.
package imageutil

import "fmt"

// MaxPixels bounds width*height for any buffer. It keeps a hostile
// header from forcing a huge allocation.
const MaxPixels = 1 << 28

// RGB represents a color in the RGB color space with 8-bit channels.
type RGB struct {
	R, G, B uint8
}

// PixelBuffer is a row-major grid of RGB pixels backed by one contiguous
// slice. Dimensions and the channel maximum are fixed at construction.
type PixelBuffer struct {
	width      int
	height     int
	maxChannel uint8
	pix        []RGB
}

// NewPixelBuffer creates an all-black buffer with the given dimensions.
// maxChannel must lie in [1, 255].
func NewPixelBuffer(width, height, maxChannel int) (*PixelBuffer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	if width > MaxPixels/height {
		return nil, fmt.Errorf("%w: %dx%d exceeds %d pixels",
			ErrInvalidDimensions, width, height, MaxPixels)
	}
	if maxChannel < 1 || maxChannel > 255 {
		return nil, fmt.Errorf("%w: max channel value %d not in [1, 255]",
			ErrInvalidDimensions, maxChannel)
	}
	return &PixelBuffer{
		width:      width,
		height:     height,
		maxChannel: uint8(maxChannel),
		pix:        make([]RGB, width*height),
	}, nil
}

// NewPixelBufferFromRows builds a buffer from a fully populated grid.
// Every row must have the same, non-zero length.
func NewPixelBufferFromRows(maxChannel int, rows [][]RGB) (*PixelBuffer, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no rows", ErrInvalidDimensions)
	}
	buf, err := NewPixelBuffer(len(rows[0]), len(rows), maxChannel)
	if err != nil {
		return nil, err
	}
	for y, row := range rows {
		if len(row) != buf.width {
			return nil, fmt.Errorf("%w: row %d has %d pixels, want %d",
				ErrInvalidDimensions, y, len(row), buf.width)
		}
		for x, c := range row {
			if err := buf.Set(y, x, c); err != nil {
				return nil, err
			}
		}
	}
	return buf, nil
}

// Width returns the image width.
func (b *PixelBuffer) Width() int {
	return b.width
}

// Height returns the image height.
func (b *PixelBuffer) Height() int {
	return b.height
}

// MaxChannel returns the largest value any channel may hold.
func (b *PixelBuffer) MaxChannel() int {
	return int(b.maxChannel)
}

// At returns the pixel at (row, col).
func (b *PixelBuffer) At(row, col int) (RGB, error) {
	if !b.inBounds(row, col) {
		return RGB{}, fmt.Errorf("%w: (%d,%d) outside %dx%d",
			ErrOutOfBounds, row, col, b.width, b.height)
	}
	return b.pix[row*b.width+col], nil
}

// Set stores c at (row, col). Channels above MaxChannel are rejected.
func (b *PixelBuffer) Set(row, col int, c RGB) error {
	if !b.inBounds(row, col) {
		return fmt.Errorf("%w: (%d,%d) outside %dx%d",
			ErrOutOfBounds, row, col, b.width, b.height)
	}
	if c.R > b.maxChannel || c.G > b.maxChannel || c.B > b.maxChannel {
		return fmt.Errorf("%w: %v at (%d,%d) exceeds %d",
			ErrChannelRange, c, row, col, b.maxChannel)
	}
	b.pix[row*b.width+col] = c
	return nil
}

// Clone creates a deep copy of the buffer.
func (b *PixelBuffer) Clone() *PixelBuffer {
	clone := *b
	clone.pix = make([]RGB, len(b.pix))
	copy(clone.pix, b.pix)
	return &clone
}

// Equal reports whether both buffers have the same dimensions, channel
// maximum and pixels.
func (b *PixelBuffer) Equal(other *PixelBuffer) bool {
	if b == nil || other == nil {
		return b == other
	}
	if b.width != other.width || b.height != other.height ||
		b.maxChannel != other.maxChannel {
		return false
	}
	for i := range b.pix {
		if b.pix[i] != other.pix[i] {
			return false
		}
	}
	return true
}

func (b *PixelBuffer) inBounds(row, col int) bool {
	return row >= 0 && col >= 0 && row < b.height && col < b.width
}

// empty reports whether b cannot be convolved: nil, or a zero value that
// never went through NewPixelBuffer.
func (b *PixelBuffer) empty() bool {
	return b == nil || b.width <= 0 || b.height <= 0 ||
		len(b.pix) != b.width*b.height
}

// rgbAt is the unchecked accessor used by the engine once indices have
// been validated arithmetically.
func (b *PixelBuffer) rgbAt(row, col int) RGB {
	return b.pix[row*b.width+col]
}
