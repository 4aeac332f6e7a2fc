package imageutil

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedKernel is returned for kernel text that is not a
	// complete, well-formed kernel.
	ErrMalformedKernel = errors.New("malformed kernel")

	// ErrInvalidKernelSize is returned for even or non-positive kernel
	// sizes. The center of an even kernel is undefined.
	ErrInvalidKernelSize = fmt.Errorf("%w: size must be odd and positive", ErrMalformedKernel)

	// ErrInvalidScale is returned for a zero kernel divisor.
	ErrInvalidScale = fmt.Errorf("%w: scale must be nonzero", ErrMalformedKernel)

	// ErrMalformedImage is returned for PPM text that cannot be decoded.
	ErrMalformedImage = errors.New("malformed image")

	// ErrFileNotFound is returned by the loaders when a source file cannot
	// be opened.
	ErrFileNotFound = errors.New("file not found")

	ErrInvalidDimensions = errors.New("invalid dimensions")
	ErrOutOfBounds       = errors.New("pixel index out of bounds")
	ErrChannelRange      = errors.New("channel value exceeds maximum")
	ErrDimensionMismatch = errors.New("dimension mismatch")
)
