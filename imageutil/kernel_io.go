package imageutil

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
)

// ReadKernel decodes the kernel text format: the odd size n, the scale,
// then n*n weights in row-major order, all separated by whitespace.
func ReadKernel(r io.Reader) (*Kernel, error) {
	t := newTokenizer(r, ErrMalformedKernel)

	size, err := t.nextInt("kernel size")
	if err != nil {
		return nil, err
	}
	if size <= 0 || size%2 == 0 {
		return nil, fmt.Errorf("%w (got %d)", ErrInvalidKernelSize, size)
	}
	if size > MaxKernelSize {
		return nil, fmt.Errorf("%w: size %d exceeds %d",
			ErrMalformedKernel, size, MaxKernelSize)
	}

	scale, err := t.nextInt("kernel scale")
	if err != nil {
		return nil, err
	}

	weights := make([]int, size*size)
	for i := range weights {
		if weights[i], err = t.nextInt("kernel weight"); err != nil {
			return nil, err
		}
	}

	if err := t.expectEOF(); err != nil {
		return nil, err
	}
	return NewKernel(size, scale, weights)
}

// WriteKernel encodes k in the format read by ReadKernel.
func WriteKernel(w io.Writer, k *Kernel) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "%d\n%d\n", k.size, k.scale); err != nil {
		return err
	}

	var line []byte
	for row := 0; row < k.size; row++ {
		line = line[:0]
		for col := 0; col < k.size; col++ {
			if col > 0 {
				line = append(line, ' ')
			}
			line = strconv.AppendInt(line, int64(k.weights[row*k.size+col]), 10)
		}
		line = append(line, '\n')
		if _, err := bw.Write(line); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// LoadKernel loads a kernel file from the specified path.
func LoadKernel(path string) (*Kernel, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: unable to open kernel %q: %w", ErrFileNotFound, path, err)
	}
	defer f.Close()

	k, err := ReadKernel(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode kernel %q: %w", path, err)
	}
	return k, nil
}

// SaveKernel writes k to the specified path.
func SaveKernel(k *Kernel, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	if err := WriteKernel(f, k); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode kernel %s: %w", path, err)
	}
	return f.Close()
}
