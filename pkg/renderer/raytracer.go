package renderer

import (
	"fmt"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/integrator"
	"github.com/df07/go-pathtracer/pkg/output"
)

// SamplingConfig contains rendering configuration
type SamplingConfig struct {
	Width           int // Image width in pixels
	Height          int // Image height in pixels
	SamplesPerPixel int // Number of rays per pixel
	MaxDepth        int // Maximum ray bounce depth
}

// DefaultSamplingConfig returns sensible default values
func DefaultSamplingConfig() SamplingConfig {
	return SamplingConfig{
		Width:           400,
		Height:          225,
		SamplesPerPixel: 100,
		MaxDepth:        50,
	}
}

// Validate reports whether the configuration can be rendered
func (c SamplingConfig) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: got %dx%d", ErrInvalidDimensions, c.Width, c.Height)
	}
	if c.SamplesPerPixel <= 0 || c.MaxDepth < 0 {
		return fmt.Errorf("%w: got %d samples, depth %d", ErrInvalidSampling, c.SamplesPerPixel, c.MaxDepth)
	}
	return nil
}

// AspectRatio returns width / height
func (c SamplingConfig) AspectRatio() float64 {
	return float64(c.Width) / float64(c.Height)
}

// MergeSamplingConfig applies the positive fields of override on top of base
func MergeSamplingConfig(base, override SamplingConfig) SamplingConfig {
	result := base
	if override.Width > 0 {
		result.Width = override.Width
	}
	if override.Height > 0 {
		result.Height = override.Height
	}
	if override.SamplesPerPixel > 0 {
		result.SamplesPerPixel = override.SamplesPerPixel
	}
	if override.MaxDepth > 0 {
		result.MaxDepth = override.MaxDepth
	}
	return result
}

// Scene interface to avoid circular imports
type Scene interface {
	GetCamera() *Camera
	GetWorld() geometry.Hittable
	GetBackground() integrator.Background
	GetSamplingConfig() SamplingConfig
}

// Raytracer renders a whole image in a single pass on the calling goroutine
type Raytracer struct {
	scene      Scene
	config     SamplingConfig
	integrator integrator.Integrator
}

// NewRaytracer creates a new raytracer using the scene's sampling configuration
func NewRaytracer(scene Scene) (*Raytracer, error) {
	if scene == nil {
		return nil, ErrNoScene
	}

	config := scene.GetSamplingConfig()
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &Raytracer{
		scene:      scene,
		config:     config,
		integrator: integrator.NewPathTracingIntegrator(config.MaxDepth, scene.GetBackground()),
	}, nil
}

// Config returns the sampling configuration in use
func (rt *Raytracer) Config() SamplingConfig {
	return rt.config
}

// RenderPass renders every pixel with the configured number of samples and
// returns the tone mapped frame
func (rt *Raytracer) RenderPass(sampler core.Sampler) *output.Frame {
	width, height := rt.config.Width, rt.config.Height
	camera := rt.scene.GetCamera()
	world := rt.scene.GetWorld()
	frame := output.NewFrame(width, height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var sum core.Color
			for sample := 0; sample < rt.config.SamplesPerPixel; sample++ {
				ray := pixelRay(camera, x, y, width, height, sampler)
				sum = sum.Add(rt.integrator.RayColor(ray, world, sampler))
			}
			frame.Set(x, y, output.Tonemap(sum, rt.config.SamplesPerPixel))
		}
	}

	return frame
}

// pixelRay jitters a camera ray within pixel (x, y). Row 0 is the top of the
// image while the camera's t coordinate grows upwards.
func pixelRay(camera *Camera, x, y, width, height int, sampler core.Sampler) core.Ray {
	jitter := sampler.Get2D()
	s := (float64(x) + jitter.X) / float64(width)
	t := (float64(height-1-y) + jitter.Y) / float64(height)
	return camera.GetRay(s, t, sampler)
}
