package imageutil

import (
	"context"
	"runtime"

	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
)

// Convolve applies kernel to img and returns a new buffer with the same
// dimensions and channel maximum.
//
// Samples that fall outside the image contribute zero. Each weighted
// sample is divided by the kernel scale before it is added, truncating
// toward zero, and the per-channel sum is clamped to [0, MaxChannel].
func Convolve(img *PixelBuffer, kernel *Kernel) (*PixelBuffer, error) {
	dst, err := newConvolveOutput(img, kernel)
	if err != nil {
		return nil, err
	}
	convolveRows(dst, img, kernel, 0, img.height)
	return dst, nil
}

// ConvolveParallel produces the same output as Convolve, splitting the
// output rows into contiguous bands evaluated by up to workers
// goroutines. workers <= 0 uses GOMAXPROCS.
//
// Bands never overlap, so workers write the output without locking. img
// and kernel must not be modified until ConvolveParallel returns.
func ConvolveParallel(ctx context.Context, img *PixelBuffer, kernel *Kernel, workers int) (*PixelBuffer, error) {
	dst, err := newConvolveOutput(img, kernel)
	if err != nil {
		return nil, err
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	workers = lo.Clamp(workers, 1, img.height)
	bandHeight := (img.height + workers - 1) / workers

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for y0 := 0; y0 < img.height; y0 += bandHeight {
		y1 := min(y0+bandHeight, img.height)
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			convolveRows(dst, img, kernel, y0, y1)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return dst, nil
}

func newConvolveOutput(img *PixelBuffer, kernel *Kernel) (*PixelBuffer, error) {
	if img.empty() {
		return nil, ErrDimensionMismatch
	}
	if kernel == nil {
		return nil, ErrMalformedKernel
	}
	return NewPixelBuffer(img.width, img.height, int(img.maxChannel))
}

// convolveRows fills output rows [y0, y1) of dst.
func convolveRows(dst, src *PixelBuffer, kernel *Kernel, y0, y1 int) {
	half := kernel.Half()
	size, scale := kernel.size, kernel.scale
	maxVal := int(src.maxChannel)

	for y := y0; y < y1; y++ {
		for x := 0; x < src.width; x++ {
			var sumR, sumG, sumB int

			for ky := 0; ky < size; ky++ {
				sy := y - half + ky
				if sy < 0 || sy >= src.height {
					continue
				}
				for kx := 0; kx < size; kx++ {
					sx := x - half + kx
					if sx < 0 || sx >= src.width {
						continue
					}

					c := src.rgbAt(sy, sx)
					k := kernel.weights[ky*size+kx]

					sumR += int(c.R) * k / scale
					sumG += int(c.G) * k / scale
					sumB += int(c.B) * k / scale
				}
			}

			dst.pix[y*dst.width+x] = RGB{
				R: clampChannel(sumR, maxVal),
				G: clampChannel(sumG, maxVal),
				B: clampChannel(sumB, maxVal),
			}
		}
	}
}

// clampChannel clamps v to [0, max] and converts to uint8.
func clampChannel(v, max int) uint8 {
	if v < 0 {
		return 0
	}
	if v > max {
		return uint8(max)
	}
	return uint8(v)
}
