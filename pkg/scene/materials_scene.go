package scene

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

// NewMaterialsScene creates three spheres side by side, one per material,
// on a large diffuse ground sphere. The glass sphere is a thin hollow shell.
func NewMaterialsScene(options Options) (*Scene, error) {
	cameraConfig := renderer.CameraConfig{
		Center:        core.NewVec3(3, 3, 2),
		LookAt:        core.NewVec3(0, 0, -1),
		Up:            core.NewVec3(0, 1, 0),
		AspectRatio:   16.0 / 9.0,
		VFov:          20.0,
		Aperture:      0.5,
		FocusDistance: 0.0, // Focus on the center sphere
	}

	samplingConfig := renderer.SamplingConfig{
		Width:           400,
		Height:          225,
		SamplesPerPixel: 100,
		MaxDepth:        50,
	}

	s := newScene(cameraConfig, samplingConfig, options)

	ground := material.NewLambertian(core.NewVec3(0.8, 0.8, 0.0))
	center := material.NewLambertian(core.NewVec3(0.1, 0.2, 0.5))
	left := material.NewDielectric(1.5)
	right := material.NewMetal(core.NewVec3(0.8, 0.6, 0.2), 0.0)

	spheres := []struct {
		center core.Point
		radius float64
		mat    material.Material
	}{
		{core.NewVec3(0, -100.5, -1), 100, ground},
		{core.NewVec3(0, 0, -1), 0.5, center},
		{core.NewVec3(-1, 0, -1), 0.5, left},
		{core.NewVec3(-1, 0, -1), -0.45, left},
		{core.NewVec3(1, 0, -1), 0.5, right},
	}

	for _, sphere := range spheres {
		if err := s.AddSphere(sphere.center, sphere.radius, sphere.mat); err != nil {
			return nil, err
		}
	}

	return s, nil
}
