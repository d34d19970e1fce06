package output

import (
	"bufio"
	"fmt"
	"io"
)

// PPMSink writes frames as plain text (P3) portable pixmaps
type PPMSink struct {
	w io.Writer
}

// NewPPMSink creates a PPM sink writing to w
func NewPPMSink(w io.Writer) *PPMSink {
	return &PPMSink{w: w}
}

// Write emits the header followed by one "r g b" line per pixel, top row first
func (s *PPMSink) Write(frame *Frame) error {
	if err := frame.validate(); err != nil {
		return err
	}

	bw := bufio.NewWriter(s.w)
	if _, err := fmt.Fprintf(bw, "P3\n%d %d\n255\n", frame.Width, frame.Height); err != nil {
		return fmt.Errorf("output: writing ppm header: %w", err)
	}

	for _, c := range frame.Pixels {
		r, g, b := QuantizeColor(c)
		if _, err := fmt.Fprintf(bw, "%d %d %d\n", r, g, b); err != nil {
			return fmt.Errorf("output: writing ppm pixels: %w", err)
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("output: writing ppm: %w", err)
	}
	return nil
}
