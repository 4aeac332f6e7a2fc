package imageutil

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
)

// PPMMagic identifies the plain-text PPM format.
const PPMMagic = "P3"

// ReadPPM decodes a plain-text (P3) PPM image.
func ReadPPM(r io.Reader) (*PixelBuffer, error) {
	t := newTokenizer(r, ErrMalformedImage)

	magic, err := t.next("magic number")
	if err != nil {
		return nil, err
	}
	if magic != PPMMagic {
		return nil, fmt.Errorf("%w: magic number %q, want %q",
			ErrMalformedImage, magic, PPMMagic)
	}

	width, err := t.nextInt("width")
	if err != nil {
		return nil, err
	}
	height, err := t.nextInt("height")
	if err != nil {
		return nil, err
	}
	maxVal, err := t.nextInt("max channel value")
	if err != nil {
		return nil, err
	}

	img, err := NewPixelBuffer(width, height, maxVal)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedImage, err)
	}

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var c RGB
			if c.R, err = t.nextUint8("red channel"); err != nil {
				return nil, err
			}
			if c.G, err = t.nextUint8("green channel"); err != nil {
				return nil, err
			}
			if c.B, err = t.nextUint8("blue channel"); err != nil {
				return nil, err
			}
			if err := img.Set(y, x, c); err != nil {
				return nil, fmt.Errorf("%w: %w", ErrMalformedImage, err)
			}
		}
	}

	if err := t.expectEOF(); err != nil {
		return nil, err
	}
	return img, nil
}

// WritePPM encodes img as a plain-text (P3) PPM, one line per image row.
func WritePPM(w io.Writer, img *PixelBuffer) error {
	if img.empty() {
		return ErrDimensionMismatch
	}
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "%s\n%d %d\n%d\n",
		PPMMagic, img.width, img.height, img.maxChannel); err != nil {
		return err
	}

	line := make([]byte, 0, img.width*12+1)
	for y := 0; y < img.height; y++ {
		line = line[:0]
		for x := 0; x < img.width; x++ {
			c := img.rgbAt(y, x)
			line = strconv.AppendUint(line, uint64(c.R), 10)
			line = append(line, ' ')
			line = strconv.AppendUint(line, uint64(c.G), 10)
			line = append(line, ' ')
			line = strconv.AppendUint(line, uint64(c.B), 10)
			line = append(line, ' ')
		}
		line = append(line, '\n')
		if _, err := bw.Write(line); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// LoadPPM loads a plain-text PPM image from the specified path.
func LoadPPM(path string) (*PixelBuffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: unable to open image %q: %w", ErrFileNotFound, path, err)
	}
	defer f.Close()

	img, err := ReadPPM(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %q: %w", path, err)
	}
	return img, nil
}

// SavePPM saves img as a plain-text PPM to the specified path.
func SavePPM(img *PixelBuffer, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	if err := WritePPM(f, img); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode image %s: %w", path, err)
	}
	return f.Close()
}
