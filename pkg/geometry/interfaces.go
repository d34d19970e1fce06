package geometry

import (
	"errors"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

var (
	ErrZeroRadius = errors.New("geometry: sphere radius must be non-zero")
)

// Hittable is implemented by every primitive and by the scene container.
// Hit returns the nearest intersection with tMin < t < tMax.
type Hittable interface {
	Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool)
}
