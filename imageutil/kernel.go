package imageutil

import (
	"fmt"
	"slices"

	"github.com/samber/lo"
)

// MaxKernelSize is the largest kernel edge the decoder accepts.
const MaxKernelSize = 255

// Kernel represents an odd-sized square convolution kernel with integer
// weights. Every weighted sample is divided by Scale before summation.
// A Kernel is immutable once constructed.
type Kernel struct {
	size    int
	scale   int
	weights []int // row-major, size*size
}

// NewKernel creates a kernel from row-major weights.
func NewKernel(size, scale int, weights []int) (*Kernel, error) {
	if size <= 0 || size%2 == 0 {
		return nil, fmt.Errorf("%w (got %d)", ErrInvalidKernelSize, size)
	}
	if scale == 0 {
		return nil, ErrInvalidScale
	}
	if len(weights) != size*size {
		return nil, fmt.Errorf("%w: %d weights for a %dx%d kernel",
			ErrMalformedKernel, len(weights), size, size)
	}
	return &Kernel{
		size:    size,
		scale:   scale,
		weights: slices.Clone(weights),
	}, nil
}

// NewKernelFromRows creates a kernel from a square 2D slice.
func NewKernelFromRows(scale int, rows [][]int) (*Kernel, error) {
	weights := make([]int, 0, len(rows)*len(rows))
	for i, row := range rows {
		if len(row) != len(rows) {
			return nil, fmt.Errorf("%w: row %d has %d weights, want %d",
				ErrMalformedKernel, i, len(row), len(rows))
		}
		weights = append(weights, row...)
	}
	return NewKernel(len(rows), scale, weights)
}

// Size returns the kernel edge length.
func (k *Kernel) Size() int { return k.size }

// Scale returns the divisor applied to every weighted sample.
func (k *Kernel) Scale() int { return k.scale }

// Half returns the offset from the kernel's top-left cell to its center.
func (k *Kernel) Half() int { return k.size / 2 }

// At returns the weight at (row, col). It panics if the cell lies outside
// the kernel.
func (k *Kernel) At(row, col int) int {
	if row < 0 || col < 0 || row >= k.size || col >= k.size {
		panic(fmt.Sprintf("imageutil: kernel cell (%d,%d) outside %dx%d",
			row, col, k.size, k.size))
	}
	return k.weights[row*k.size+col]
}

// Weights returns a copy of the row-major weights.
func (k *Kernel) Weights() []int {
	return slices.Clone(k.weights)
}

// Sum returns the sum of all weights. A kernel whose Sum equals its Scale
// preserves the brightness of flat regions.
func (k *Kernel) Sum() int {
	return lo.Sum(k.weights)
}

func mustKernel(scale int, rows [][]int) *Kernel {
	k, err := NewKernelFromRows(scale, rows)
	if err != nil {
		panic(err)
	}
	return k
}

// IdentityKernel returns the 1x1 kernel that leaves an image unchanged.
func IdentityKernel() *Kernel {
	return mustKernel(1, [][]int{{1}})
}

// BoxBlurKernel returns the 3x3 mean filter.
func BoxBlurKernel() *Kernel {
	return mustKernel(9, [][]int{
		{1, 1, 1},
		{1, 1, 1},
		{1, 1, 1},
	})
}

// GaussianKernel3x3 returns a 3x3 Gaussian blur kernel.
func GaussianKernel3x3() *Kernel {
	return mustKernel(16, [][]int{
		{1, 2, 1},
		{2, 4, 2},
		{1, 2, 1},
	})
}

// GaussianKernel5x5 returns a 5x5 Gaussian blur kernel with sigma ~1.4.
func GaussianKernel5x5() *Kernel {
	return mustKernel(159, [][]int{
		{2, 4, 5, 4, 2},
		{4, 9, 12, 9, 4},
		{5, 12, 15, 12, 5},
		{4, 9, 12, 9, 4},
		{2, 4, 5, 4, 2},
	})
}

// SharpeningKernel returns a 3x3 sharpening kernel.
func SharpeningKernel() *Kernel {
	return mustKernel(1, [][]int{
		{0, -1, 0},
		{-1, 5, -1},
		{0, -1, 0},
	})
}

// EdgeDetectKernel returns the 3x3 Laplacian.
func EdgeDetectKernel() *Kernel {
	return mustKernel(1, [][]int{
		{0, -1, 0},
		{-1, 4, -1},
		{0, -1, 0},
	})
}

// EmbossKernel returns a 3x3 emboss kernel.
func EmbossKernel() *Kernel {
	return mustKernel(1, [][]int{
		{-2, -1, 0},
		{-1, 1, 1},
		{0, 1, 2},
	})
}

// Presets maps preset names to their kernel constructors.
var Presets = map[string]func() *Kernel{
	"identity":  IdentityKernel,
	"box":       BoxBlurKernel,
	"gaussian3": GaussianKernel3x3,
	"gaussian5": GaussianKernel5x5,
	"sharpen":   SharpeningKernel,
	"edge":      EdgeDetectKernel,
	"emboss":    EmbossKernel,
}

// PresetNames returns the preset names in sorted order.
func PresetNames() []string {
	names := lo.Keys(Presets)
	slices.Sort(names)
	return names
}

// Preset returns the named preset kernel.
func Preset(name string) (*Kernel, error) {
	fn, ok := Presets[name]
	if !ok {
		return nil, fmt.Errorf("unknown kernel preset %q (available: %v)",
			name, PresetNames())
	}
	return fn(), nil
}
