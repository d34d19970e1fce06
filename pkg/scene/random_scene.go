package scene

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

// Grid extent of the small random spheres along x and z
const randomGridHalfSize = 11

// NewRandomScene creates the classic cover scene: a grey ground sphere, a
// grid of small spheres with random materials and three large spheres. The
// layout is fully determined by options.Seed.
func NewRandomScene(options Options) (*Scene, error) {
	cameraConfig := renderer.CameraConfig{
		Center:        core.NewVec3(13, 2, 3),
		LookAt:        core.NewVec3(0, 0, -1),
		Up:            core.NewVec3(0, 1, 0),
		AspectRatio:   3.0 / 2.0,
		VFov:          20.0,
		Aperture:      0.1,
		FocusDistance: 10.0,
	}

	samplingConfig := renderer.SamplingConfig{
		Width:           600,
		Height:          400,
		SamplesPerPixel: 100,
		MaxDepth:        50,
	}

	s := newScene(cameraConfig, samplingConfig, options)
	sampler := core.NewSeededSampler(options.Seed)

	ground := material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))
	if err := s.AddSphere(core.NewVec3(0, -1000, 0), 1000, ground); err != nil {
		return nil, err
	}

	// Small spheres keep clear of the large metal sphere
	clearing := core.NewVec3(4, 0.2, 0)

	for a := -randomGridHalfSize; a < randomGridHalfSize; a++ {
		for b := -randomGridHalfSize; b < randomGridHalfSize; b++ {
			chooseMat := sampler.Get1D()
			center := core.NewVec3(float64(a)+0.9*sampler.Get1D(), 0.2, float64(b)+0.9*sampler.Get1D())

			if center.Subtract(clearing).Length() <= 0.9 {
				continue
			}

			var mat material.Material
			switch {
			case chooseMat < 0.8:
				albedo := core.RandomVec3(sampler).MultiplyVec(core.RandomVec3(sampler))
				mat = material.NewLambertian(albedo)
			case chooseMat < 0.95:
				albedo := core.RandomVec3Range(sampler, 0.5, 1.0)
				fuzz := core.RandomRange(sampler, 0, 0.5)
				mat = material.NewMetal(albedo, fuzz)
			default:
				mat = material.NewDielectric(1.5)
			}

			if err := s.AddSphere(center, 0.2, mat); err != nil {
				return nil, err
			}
		}
	}

	large := []struct {
		center core.Point
		mat    material.Material
	}{
		{core.NewVec3(0, 1, 0), material.NewDielectric(1.5)},
		{core.NewVec3(-4, 1, 1), material.NewLambertian(core.NewVec3(0.4, 0.2, 0.1))},
		{core.NewVec3(4, 1, 0), material.NewMetal(core.NewVec3(0.7, 0.6, 0.5), 0.0)},
	}

	for _, sphere := range large {
		if err := s.AddSphere(sphere.center, 1.0, sphere.mat); err != nil {
			return nil, err
		}
	}

	return s, nil
}
