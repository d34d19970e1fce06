package output

import (
	"fmt"
	"image"
	"image/color"

	"github.com/df07/go-pathtracer/pkg/core"
)

// Frame is a finished image: tone mapped colors in row-major order with the
// top row first
type Frame struct {
	Width  int
	Height int
	Pixels []core.Color
}

// NewFrame creates a black frame of the given size
func NewFrame(width, height int) *Frame {
	return &Frame{
		Width:  width,
		Height: height,
		Pixels: make([]core.Color, width*height),
	}
}

// FrameFromPixels wraps existing pixels, checking they cover the frame exactly
func FrameFromPixels(width, height int, pixels []core.Color) (*Frame, error) {
	if width <= 0 || height <= 0 || len(pixels) != width*height {
		return nil, fmt.Errorf("%w: %dx%d frame with %d pixels", ErrSizeMismatch, width, height, len(pixels))
	}
	return &Frame{Width: width, Height: height, Pixels: pixels}, nil
}

// Set stores the color of pixel (x, y), where y = 0 is the top row
func (f *Frame) Set(x, y int, c core.Color) {
	f.Pixels[y*f.Width+x] = c
}

// At returns the color of pixel (x, y)
func (f *Frame) At(x, y int) core.Color {
	return f.Pixels[y*f.Width+x]
}

// validate checks the pixel slice matches the frame dimensions
func (f *Frame) validate() error {
	if f.Width <= 0 || f.Height <= 0 || len(f.Pixels) != f.Width*f.Height {
		return fmt.Errorf("%w: %dx%d frame with %d pixels", ErrSizeMismatch, f.Width, f.Height, len(f.Pixels))
	}
	return nil
}

// RGBA converts the frame into an 8-bit image
func (f *Frame) RGBA() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, f.Width, f.Height))
	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			r, g, b := QuantizeColor(f.At(x, y))
			img.SetRGBA(x, y, color.RGBA{R: r, G: g, B: b, A: 255})
		}
	}
	return img
}
