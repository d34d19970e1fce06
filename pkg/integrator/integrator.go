package integrator

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
)

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// RayColor computes the linear color carried back along ray
	RayColor(ray core.Ray, world geometry.Hittable, sampler core.Sampler) core.Color
}

// Background is the vertical sky gradient seen by rays that escape the scene
type Background struct {
	Top    core.Color // Color straight up
	Bottom core.Color // Color straight down
}

// DefaultBackground returns a white to sky blue gradient
func DefaultBackground() Background {
	return Background{
		Top:    core.NewVec3(0.5, 0.7, 1.0),
		Bottom: core.NewVec3(1.0, 1.0, 1.0),
	}
}

// Color returns a gradient color based on ray direction
func (b Background) Color(r core.Ray) core.Color {
	// Normalize the ray direction to get consistent results
	unitDirection := r.Direction.Normalize()

	// Use the y-component to create a gradient (map from -1,1 to 0,1)
	t := 0.5 * (unitDirection.Y + 1.0)

	// Linear interpolation: (1-t)*bottom + t*top
	return b.Bottom.Lerp(b.Top, t)
}
