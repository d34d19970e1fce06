package renderer

import "errors"

var (
	ErrInvalidDimensions = errors.New("renderer: image width and height must be positive")
	ErrInvalidSampling   = errors.New("renderer: samples per pixel must be positive and max depth non-negative")
	ErrNoScene           = errors.New("renderer: no scene to render")
	ErrWorkerPoolClosed  = errors.New("renderer: worker pool closed unexpectedly")
)
