package imageutil

// newFixture allocates a 255-max buffer, panicking on invalid dimensions.
// Fixture sizes are chosen by tests, so a failure here is a test bug.
func newFixture(width, height int) *PixelBuffer {
	img, err := NewPixelBuffer(width, height, 255)
	if err != nil {
		panic(err)
	}
	return img
}

// CreateGradientImage creates a horizontal gradient test image.
func CreateGradientImage(width, height int) *PixelBuffer {
	img := newFixture(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			v := uint8(0)
			if width > 1 {
				v = uint8(255 * x / (width - 1))
			}
			img.pix[y*width+x] = RGB{R: v, G: v, B: v}
		}
	}
	return img
}

// CreateCheckerboardImage creates a checkerboard pattern for edge testing.
func CreateCheckerboardImage(width, height, squareSize int) *PixelBuffer {
	img := newFixture(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if ((x/squareSize)+(y/squareSize))%2 == 0 {
				img.pix[y*width+x] = RGB{R: 255, G: 255, B: 255}
			}
		}
	}
	return img
}

// CreateSolidImage creates a solid color image.
func CreateSolidImage(width, height int, c RGB) *PixelBuffer {
	img := newFixture(width, height)
	for i := range img.pix {
		img.pix[i] = c
	}
	return img
}

// CreateColorBarsImage creates a color bars test pattern.
func CreateColorBarsImage(width, height int) *PixelBuffer {
	img := newFixture(width, height)
	colors := []RGB{
		{255, 255, 255}, // White
		{255, 255, 0},   // Yellow
		{0, 255, 255},   // Cyan
		{0, 255, 0},     // Green
		{255, 0, 255},   // Magenta
		{255, 0, 0},     // Red
		{0, 0, 255},     // Blue
		{0, 0, 0},       // Black
	}

	barWidth := max(width/len(colors), 1)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			colorIdx := min(x/barWidth, len(colors)-1)
			img.pix[y*width+x] = colors[colorIdx]
		}
	}
	return img
}

// CalculateMaxDiff calculates the maximum channel difference between two
// images. Images of different sizes report 256.
func CalculateMaxDiff(img1, img2 *PixelBuffer) int {
	if img1.Width() != img2.Width() || img1.Height() != img2.Height() {
		return 256
	}

	maxDiff := 0
	for i := range img1.pix {
		c1, c2 := img1.pix[i], img2.pix[i]
		maxDiff = max(maxDiff,
			abs(int(c1.R)-int(c2.R)),
			abs(int(c1.G)-int(c2.G)),
			abs(int(c1.B)-int(c2.B)))
	}
	return maxDiff
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
