// Package ppmfilter applies a convolution kernel to a plain-text PPM
// image: decode the kernel, decode the image, convolve, encode.
package ppmfilter

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"time"

	"github.com/golang/glog"
	"github.com/wbrown/ppmfilter/imageutil"
)

// ErrFileNotFound is returned when a source file cannot be opened.
var ErrFileNotFound = imageutil.ErrFileNotFound

// Config describes one filter run.
type Config struct {
	InputPath  string // plain-text PPM image
	KernelPath string // kernel text file
	OutputPath string // destination PPM, created or truncated

	// Workers bounds the goroutines used for the convolution pass.
	// 1 runs on the calling goroutine; <= 0 uses GOMAXPROCS.
	Workers int
}

// Result reports what a run produced.
type Result struct {
	Width      int
	Height     int
	MaxChannel int
	KernelSize int
	Elapsed    time.Duration // convolution pass only
}

// Run executes the pipeline described by cfg. Any decode failure aborts
// the run before the output file is touched.
func Run(ctx context.Context, cfg Config) (*Result, error) {
	kernel, err := imageutil.LoadKernel(cfg.KernelPath)
	if err != nil {
		return nil, err
	}
	glog.V(1).Infof("kernel %s: %dx%d, scale %d, weight sum %d",
		cfg.KernelPath, kernel.Size(), kernel.Size(), kernel.Scale(), kernel.Sum())

	img, err := imageutil.LoadPPM(cfg.InputPath)
	if err != nil {
		return nil, err
	}
	glog.V(1).Infof("image %s: %dx%d, max %d",
		cfg.InputPath, img.Width(), img.Height(), img.MaxChannel())

	start := time.Now()
	var out *imageutil.PixelBuffer
	if cfg.Workers == 1 {
		out, err = imageutil.Convolve(img, kernel)
	} else {
		out, err = imageutil.ConvolveParallel(ctx, img, kernel, cfg.Workers)
	}
	if err != nil {
		return nil, fmt.Errorf("convolve: %w", err)
	}
	elapsed := time.Since(start)
	glog.V(2).Infof("convolution pass took %v (workers=%d)", elapsed, cfg.Workers)

	var buf bytes.Buffer
	if err := imageutil.WritePPM(&buf, out); err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	if err := os.WriteFile(cfg.OutputPath, buf.Bytes(), 0644); err != nil {
		return nil, fmt.Errorf("writing output %q: %w", cfg.OutputPath, err)
	}
	glog.V(1).Infof("wrote %s (%d bytes)", cfg.OutputPath, buf.Len())

	return &Result{
		Width:      out.Width(),
		Height:     out.Height(),
		MaxChannel: out.MaxChannel(),
		KernelSize: kernel.Size(),
		Elapsed:    elapsed,
	}, nil
}
