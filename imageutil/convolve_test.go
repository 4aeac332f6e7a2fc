package imageutil

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustRows(t *testing.T, scale int, rows [][]int) *Kernel {
	t.Helper()
	k, err := NewKernelFromRows(scale, rows)
	require.NoError(t, err)
	return k
}

func pixelAt(t *testing.T, img *PixelBuffer, row, col int) RGB {
	t.Helper()
	c, err := img.At(row, col)
	require.NoError(t, err)
	return c
}

// fixtureWithMax fills a buffer whose channel maximum is below 255.
func fixtureWithMax(t *testing.T, width, height, maxChannel int) *PixelBuffer {
	t.Helper()
	img, err := NewPixelBuffer(width, height, maxChannel)
	require.NoError(t, err)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			v := uint8((x*7 + y*3) % (maxChannel + 1))
			require.NoError(t, img.Set(y, x, RGB{R: v, G: uint8(maxChannel) - v, B: v / 2}))
		}
	}
	return img
}

func TestConvolveIdentity(t *testing.T) {
	img := CreateColorBarsImage(17, 9)

	for _, k := range []*Kernel{
		IdentityKernel(),
		mustRows(t, 1, [][]int{
			{0, 0, 0},
			{0, 1, 0},
			{0, 0, 0},
		}),
	} {
		out, err := Convolve(img, k)
		require.NoError(t, err)
		assert.Empty(t, cmp.Diff(img, out, cmp.AllowUnexported(PixelBuffer{})),
			"identity kernel of size %d changed the image", k.Size())
	}
}

func TestConvolveBorderZeroPadding(t *testing.T) {
	img, err := NewPixelBufferFromRows(255, [][]RGB{{{90, 90, 90}}})
	require.NoError(t, err)

	out, err := Convolve(img, BoxBlurKernel())
	require.NoError(t, err)
	assert.Equal(t, RGB{10, 10, 10}, pixelAt(t, out, 0, 0))

	// On a 3x3 flat image, corners see 4 taps, edges 6, the center 9.
	out, err = Convolve(CreateSolidImage(3, 3, RGB{90, 90, 90}), BoxBlurKernel())
	require.NoError(t, err)
	assert.Equal(t, RGB{40, 40, 40}, pixelAt(t, out, 0, 0))
	assert.Equal(t, RGB{60, 60, 60}, pixelAt(t, out, 0, 1))
	assert.Equal(t, RGB{60, 60, 60}, pixelAt(t, out, 1, 2))
	assert.Equal(t, RGB{90, 90, 90}, pixelAt(t, out, 1, 1))
	assert.Equal(t, RGB{40, 40, 40}, pixelAt(t, out, 2, 2))
}

func TestConvolveClampsToMax(t *testing.T) {
	double := mustRows(t, 1, [][]int{{2}})

	out, err := Convolve(CreateSolidImage(2, 2, RGB{255, 200, 100}), double)
	require.NoError(t, err)
	assert.Equal(t, RGB{255, 255, 200}, pixelAt(t, out, 1, 1))

	img, err := NewPixelBufferFromRows(100, [][]RGB{{{100, 60, 10}}})
	require.NoError(t, err)
	out, err = Convolve(img, double)
	require.NoError(t, err)
	assert.Equal(t, 100, out.MaxChannel())
	assert.Equal(t, RGB{100, 100, 20}, pixelAt(t, out, 0, 0))
}

func TestConvolveClampsNegativeToZero(t *testing.T) {
	out, err := Convolve(CreateSolidImage(3, 3, RGB{50, 0, 255}), mustRows(t, 1, [][]int{{-1}}))
	require.NoError(t, err)
	assert.Equal(t, RGB{}, pixelAt(t, out, 1, 1))

	// A flat region under the Laplacian sums to zero, never wraps.
	out, err = Convolve(CreateSolidImage(5, 5, RGB{200, 200, 200}), EdgeDetectKernel())
	require.NoError(t, err)
	assert.Equal(t, RGB{}, pixelAt(t, out, 2, 2))
}

func TestConvolvePerTermTruncation(t *testing.T) {
	// Nine taps of 1*1/2 each truncate to zero; dividing the sum once
	// would give 4.
	halves := mustRows(t, 2, [][]int{
		{1, 1, 1},
		{1, 1, 1},
		{1, 1, 1},
	})
	out, err := Convolve(CreateSolidImage(3, 3, RGB{1, 1, 1}), halves)
	require.NoError(t, err)
	assert.Equal(t, RGB{}, pixelAt(t, out, 1, 1))

	// Negative terms truncate toward zero: 10*4/2 + 3*-1/2 = 20 - 1.
	img, err := NewPixelBufferFromRows(255, [][]RGB{{{3, 3, 3}, {10, 10, 10}, {0, 0, 0}}})
	require.NoError(t, err)
	out, err = Convolve(img, mustRows(t, 2, [][]int{
		{0, 0, 0},
		{-1, 4, 0},
		{0, 0, 0},
	}))
	require.NoError(t, err)
	assert.Equal(t, RGB{19, 19, 19}, pixelAt(t, out, 0, 1))

	// Gaussian 3x3 on white: 4*(255/16) + 4*(510/16) + 1020/16 = 247.
	out, err = Convolve(CreateSolidImage(3, 3, RGB{255, 255, 255}), GaussianKernel3x3())
	require.NoError(t, err)
	assert.Equal(t, RGB{247, 247, 247}, pixelAt(t, out, 1, 1))
}

func TestConvolvePreservesDimensionsAndRange(t *testing.T) {
	images := map[string]*PixelBuffer{
		"gradient":     CreateGradientImage(23, 17),
		"checkerboard": CreateCheckerboardImage(16, 9, 3),
		"colorbars":    CreateColorBarsImage(40, 2),
		"max100":       fixtureWithMax(t, 13, 11, 100),
		"single":       CreateSolidImage(1, 1, RGB{1, 2, 3}),
	}
	for imgName, img := range images {
		for _, name := range PresetNames() {
			t.Run(fmt.Sprintf("%s/%s", imgName, name), func(t *testing.T) {
				k, err := Preset(name)
				require.NoError(t, err)

				out, err := Convolve(img, k)
				require.NoError(t, err)
				require.Equal(t, img.Width(), out.Width())
				require.Equal(t, img.Height(), out.Height())
				require.Equal(t, img.MaxChannel(), out.MaxChannel())

				maxVal := uint8(out.MaxChannel())
				for i, c := range out.pix {
					if c.R > maxVal || c.G > maxVal || c.B > maxVal {
						t.Fatalf("pixel %d = %v exceeds max %d", i, c, maxVal)
					}
				}
			})
		}
	}
}

func TestConvolveDoesNotAliasInput(t *testing.T) {
	img := CreateGradientImage(8, 8)
	orig := img.Clone()

	out, err := Convolve(img, SharpeningKernel())
	require.NoError(t, err)
	require.NotSame(t, img, out)
	require.NotSame(t, &img.pix[0], &out.pix[0])

	require.NoError(t, out.Set(0, 0, RGB{1, 2, 3}))
	assert.True(t, img.Equal(orig), "input modified through output")
}

func TestConvolveParallelMatchesSequential(t *testing.T) {
	img := CreateColorBarsImage(31, 19)
	for _, k := range []*Kernel{GaussianKernel5x5(), EmbossKernel(), BoxBlurKernel()} {
		want, err := Convolve(img, k)
		require.NoError(t, err)

		for _, workers := range []int{0, 1, 2, 3, 7, 19, 64} {
			got, err := ConvolveParallel(context.Background(), img, k, workers)
			require.NoError(t, err)
			if diff := cmp.Diff(want, got, cmp.AllowUnexported(PixelBuffer{})); diff != "" {
				t.Errorf("kernel %dx%d, %d workers: mismatch (-want +got):\n%s",
					k.Size(), k.Size(), workers, diff)
			}
		}
	}
}

func TestConvolveParallelCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ConvolveParallel(ctx, CreateGradientImage(16, 16), BoxBlurKernel(), 4)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestConvolveRejectsEmptyInputs(t *testing.T) {
	_, err := Convolve(&PixelBuffer{}, BoxBlurKernel())
	assert.ErrorIs(t, err, ErrDimensionMismatch)

	_, err = Convolve(nil, BoxBlurKernel())
	assert.ErrorIs(t, err, ErrDimensionMismatch)

	_, err = ConvolveParallel(context.Background(), &PixelBuffer{}, BoxBlurKernel(), 2)
	assert.ErrorIs(t, err, ErrDimensionMismatch)

	_, err = Convolve(CreateGradientImage(2, 2), nil)
	assert.ErrorIs(t, err, ErrMalformedKernel)
}

func BenchmarkConvolve(b *testing.B) {
	img := CreateColorBarsImage(640, 480)
	k := GaussianKernel5x5()
	b.Run("sequential", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			Convolve(img, k)
		}
	})
	b.Run("parallel", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			ConvolveParallel(context.Background(), img, k, 0)
		}
	})
}
