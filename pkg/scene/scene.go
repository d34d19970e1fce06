package scene

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/integrator"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

// Scene contains all the elements needed for rendering
type Scene struct {
	Camera         *renderer.Camera
	World          *geometry.HittableList // Objects in the scene
	Background     integrator.Background
	SamplingConfig renderer.SamplingConfig
	CameraConfig   renderer.CameraConfig
}

var _ renderer.Scene = (*Scene)(nil)

// Options adjusts a scene as it is built
type Options struct {
	Camera   renderer.CameraConfig   // Non-zero fields override the scene camera
	Sampling renderer.SamplingConfig // Positive fields override the scene sampling
	Seed     int64                   // Seed for procedurally placed objects
}

// newScene creates an empty scene from defaults and applies the overrides in
// options. The camera aspect ratio always follows the image size.
func newScene(cameraConfig renderer.CameraConfig, samplingConfig renderer.SamplingConfig, options Options) *Scene {
	samplingConfig = renderer.MergeSamplingConfig(samplingConfig, options.Sampling)
	cameraConfig = renderer.MergeCameraConfig(cameraConfig, options.Camera)
	if samplingConfig.Width > 0 && samplingConfig.Height > 0 {
		cameraConfig.AspectRatio = samplingConfig.AspectRatio()
	}

	return &Scene{
		Camera:         renderer.NewCamera(cameraConfig),
		World:          geometry.NewHittableList(),
		Background:     integrator.DefaultBackground(),
		SamplingConfig: samplingConfig,
		CameraConfig:   cameraConfig,
	}
}

// AddSphere adds a sphere to the scene
func (s *Scene) AddSphere(center core.Point, radius float64, mat material.Material) error {
	sphere, err := geometry.NewSphere(center, radius, mat)
	if err != nil {
		return err
	}
	s.World.Add(sphere)
	return nil
}

// GetPrimitiveCount returns the total number of primitive objects in the scene
func (s *Scene) GetPrimitiveCount() int {
	return s.World.Len()
}

func (s *Scene) GetCamera() *renderer.Camera {
	return s.Camera
}

func (s *Scene) GetWorld() geometry.Hittable {
	return s.World
}

func (s *Scene) GetBackground() integrator.Background {
	return s.Background
}

func (s *Scene) GetSamplingConfig() renderer.SamplingConfig {
	return s.SamplingConfig
}
