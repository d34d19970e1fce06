package output

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

var (
	ErrUnknownFormat = errors.New("output: unknown image format")
	ErrSizeMismatch  = errors.New("output: pixel count does not match frame size")
)

// Sink receives finished frames
type Sink interface {
	Write(frame *Frame) error
}

// Format names accepted by NewSink
const (
	FormatPNG = "png"
	FormatPPM = "ppm"
)

// Formats lists every supported format name
func Formats() []string {
	return []string{FormatPNG, FormatPPM}
}

// NewSink creates the sink for a format name, writing to w
func NewSink(format string, w io.Writer) (Sink, error) {
	switch strings.ToLower(format) {
	case FormatPNG:
		return NewPNGSink(w), nil
	case FormatPPM:
		return NewPPMSink(w), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}
