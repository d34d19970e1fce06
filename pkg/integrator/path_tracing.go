package integrator

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
)

// ShadowAcneBias is the minimum hit distance accepted along every ray. It
// keeps rays spawned on a surface from re-hitting that surface.
const ShadowAcneBias = 0.001

// PathTracingIntegrator implements unidirectional path tracing with a
// background gradient as the only light source
type PathTracingIntegrator struct {
	maxDepth   int
	background Background
}

// NewPathTracingIntegrator creates a new path tracing integrator
func NewPathTracingIntegrator(maxDepth int, background Background) *PathTracingIntegrator {
	return &PathTracingIntegrator{
		maxDepth:   maxDepth,
		background: background,
	}
}

// RayColor computes the color for a single ray, bounded by the configured depth
func (pt *PathTracingIntegrator) RayColor(ray core.Ray, world geometry.Hittable, sampler core.Sampler) core.Color {
	return pt.RayColorIterative(ray, world, pt.maxDepth, sampler)
}

// RayColorRecursive returns the color for a given ray with material support
func (pt *PathTracingIntegrator) RayColorRecursive(ray core.Ray, world geometry.Hittable, depth int, sampler core.Sampler) core.Color {
	// If we've exceeded the ray bounce limit, no more light is gathered
	if depth <= 0 {
		return core.Vec3{X: 0, Y: 0, Z: 0}
	}

	hit, isHit := world.Hit(ray, ShadowAcneBias, math.Inf(1))
	if !isHit {
		return pt.background.Color(ray)
	}

	scatter, didScatter := hit.Material.Scatter(ray, *hit, sampler)
	if !didScatter {
		return core.Vec3{X: 0, Y: 0, Z: 0} // Material absorbed the ray
	}

	return scatter.Attenuation.MultiplyVec(
		pt.RayColorRecursive(scatter.Scattered, world, depth-1, sampler))
}

// RayColorIterative computes the same result as RayColorRecursive with a loop
// carrying the product of attenuations, so deep paths do not grow the stack
func (pt *PathTracingIntegrator) RayColorIterative(ray core.Ray, world geometry.Hittable, depth int, sampler core.Sampler) core.Color {
	throughput := core.NewVec3(1, 1, 1)

	for ; depth > 0; depth-- {
		hit, isHit := world.Hit(ray, ShadowAcneBias, math.Inf(1))
		if !isHit {
			return throughput.MultiplyVec(pt.background.Color(ray))
		}

		scatter, didScatter := hit.Material.Scatter(ray, *hit, sampler)
		if !didScatter {
			return core.Vec3{X: 0, Y: 0, Z: 0}
		}

		throughput = throughput.MultiplyVec(scatter.Attenuation)
		ray = scatter.Scattered
	}

	return core.Vec3{X: 0, Y: 0, Z: 0}
}
