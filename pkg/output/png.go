package output

import (
	"fmt"
	"image/png"
	"io"
)

// PNGSink writes frames as 8-bit RGBA PNG images
type PNGSink struct {
	w io.Writer
}

// NewPNGSink creates a PNG sink writing to w
func NewPNGSink(w io.Writer) *PNGSink {
	return &PNGSink{w: w}
}

func (s *PNGSink) Write(frame *Frame) error {
	if err := frame.validate(); err != nil {
		return err
	}
	if err := png.Encode(s.w, frame.RGBA()); err != nil {
		return fmt.Errorf("output: encoding png: %w", err)
	}
	return nil
}
