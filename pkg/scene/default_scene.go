package scene

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

// NewDefaultScene creates a default scene with spheres, ground, and camera
func NewDefaultScene(options Options) (*Scene, error) {
	cameraConfig := renderer.CameraConfig{
		Center:        core.NewVec3(0, 0.75, 2), // Position camera higher and farther back
		LookAt:        core.NewVec3(0, 0.5, -1), // Look at the sphere center
		Up:            core.NewVec3(0, 1, 0),
		AspectRatio:   16.0 / 9.0,
		VFov:          40.0,
		Aperture:      0.05,
		FocusDistance: 0.0, // Auto-calculate focus distance
	}

	samplingConfig := renderer.SamplingConfig{
		Width:           400,
		Height:          225,
		SamplesPerPixel: 100,
		MaxDepth:        50,
	}

	s := newScene(cameraConfig, samplingConfig, options)

	lambertianGreen := material.NewLambertian(core.NewVec3(0.8, 0.8, 0.0).Multiply(0.6))
	lambertianBlue := material.NewLambertian(core.NewVec3(0.1, 0.2, 0.5))
	lambertianRed := material.NewLambertian(core.NewVec3(0.65, 0.25, 0.2))
	metalSilver := material.NewMetal(core.NewVec3(0.8, 0.8, 0.8), 0.0)
	metalGold := material.NewMetal(core.NewVec3(0.8, 0.6, 0.2), 0.3)
	glass := material.NewDielectric(1.5)

	spheres := []struct {
		center core.Point
		radius float64
		mat    material.Material
	}{
		{core.NewVec3(0, -1000, -1), 1000, lambertianGreen}, // Ground
		{core.NewVec3(0, 0.5, -1), 0.5, lambertianRed},
		{core.NewVec3(-1, 0.5, -1), 0.5, metalSilver},
		{core.NewVec3(1, 0.5, -1), 0.5, metalGold},
		{core.NewVec3(0.5, 0.25, -0.5), 0.25, glass},

		// Hollow glass sphere with a blue sphere inside
		{core.NewVec3(-0.5, 0.25, -0.5), 0.25, glass},
		{core.NewVec3(-0.5, 0.25, -0.5), -0.24, glass},
		{core.NewVec3(-0.5, 0.25, -0.5), 0.20, lambertianBlue},
	}

	for _, sphere := range spheres {
		if err := s.AddSphere(sphere.center, sphere.radius, sphere.mat); err != nil {
			return nil, err
		}
	}

	return s, nil
}
