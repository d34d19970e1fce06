package renderer

import (
	"errors"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/integrator"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/output"
)

// testScene implements Scene for renderer tests
type testScene struct {
	camera     *Camera
	world      *geometry.HittableList
	background integrator.Background
	config     SamplingConfig
}

func (s *testScene) GetCamera() *Camera { return s.camera }
func (s *testScene) GetWorld() geometry.Hittable { return s.world }
func (s *testScene) GetBackground() integrator.Background { return s.background }
func (s *testScene) GetSamplingConfig() SamplingConfig { return s.config }

// newTestScene creates a scene looking down -z with the given objects
func newTestScene(t *testing.T, width, height, samples int, objects ...geometry.Hittable) *testScene {
	t.Helper()

	config := SamplingConfig{Width: width, Height: height, SamplesPerPixel: samples, MaxDepth: 10}
	camera := NewCamera(CameraConfig{
		Center:        core.NewVec3(0, 0, 0),
		LookAt:        core.NewVec3(0, 0, -1),
		Up:            core.NewVec3(0, 1, 0),
		VFov:          90,
		AspectRatio:   config.AspectRatio(),
		FocusDistance: 1,
	})

	return &testScene{
		camera:     camera,
		world:      geometry.NewHittableList(objects...),
		background: integrator.DefaultBackground(),
		config:     config,
	}
}

// newSphereScene creates a small scene with a diffuse sphere in front of the camera
func newSphereScene(t *testing.T, width, height, samples int) *testScene {
	t.Helper()

	ground, err := geometry.NewSphere(core.NewVec3(0, -100.5, -1), 100, material.NewLambertian(core.NewVec3(0.8, 0.8, 0)))
	if err != nil {
		t.Fatalf("NewSphere failed: %v", err)
	}
	ball, err := geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5, material.NewDielectric(1.5))
	if err != nil {
		t.Fatalf("NewSphere failed: %v", err)
	}
	return newTestScene(t, width, height, samples, ground, ball)
}

func TestSamplingConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  SamplingConfig
		wantErr error
	}{
		{"Default", DefaultSamplingConfig(), nil},
		{"Zero depth is allowed", SamplingConfig{Width: 1, Height: 1, SamplesPerPixel: 1, MaxDepth: 0}, nil},
		{"Zero width", SamplingConfig{Width: 0, Height: 10, SamplesPerPixel: 1, MaxDepth: 5}, ErrInvalidDimensions},
		{"Negative height", SamplingConfig{Width: 10, Height: -1, SamplesPerPixel: 1, MaxDepth: 5}, ErrInvalidDimensions},
		{"Zero samples", SamplingConfig{Width: 10, Height: 10, SamplesPerPixel: 0, MaxDepth: 5}, ErrInvalidSampling},
		{"Negative depth", SamplingConfig{Width: 10, Height: 10, SamplesPerPixel: 1, MaxDepth: -1}, ErrInvalidSampling},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr == nil && err != nil {
				t.Errorf("Unexpected error: %v", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("Expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestMergeSamplingConfig(t *testing.T) {
	base := DefaultSamplingConfig()
	merged := MergeSamplingConfig(base, SamplingConfig{SamplesPerPixel: 7, Width: 32})

	expected := SamplingConfig{Width: 32, Height: base.Height, SamplesPerPixel: 7, MaxDepth: base.MaxDepth}
	if merged != expected {
		t.Errorf("Expected %+v, got %+v", expected, merged)
	}
}

func TestNewRaytracerErrors(t *testing.T) {
	if _, err := NewRaytracer(nil); !errors.Is(err, ErrNoScene) {
		t.Errorf("Expected ErrNoScene, got %v", err)
	}

	scene := newTestScene(t, 4, 4, 1)
	scene.config.Width = 0
	if _, err := NewRaytracer(scene); !errors.Is(err, ErrInvalidDimensions) {
		t.Errorf("Expected ErrInvalidDimensions, got %v", err)
	}
}

func TestRaytracerEmptySceneGradient(t *testing.T) {
	scene := newTestScene(t, 4, 6, 4)
	rt, err := NewRaytracer(scene)
	if err != nil {
		t.Fatalf("NewRaytracer failed: %v", err)
	}

	frame := rt.RenderPass(core.NewSeededSampler(42))
	if frame.Width != 4 || frame.Height != 6 || len(frame.Pixels) != 24 {
		t.Fatalf("Unexpected frame size %dx%d (%d pixels)", frame.Width, frame.Height, len(frame.Pixels))
	}

	for y := 0; y < frame.Height; y++ {
		for x := 0; x < frame.Width; x++ {
			c := frame.At(x, y)
			// Blue is 1.0 everywhere in the default sky
			if c.Z != output.MaxComponent {
				t.Errorf("Pixel (%d,%d): expected saturated blue, got %v", x, y, c)
			}
		}
	}

	// The top row looks further up into the sky, so it is less red
	top := frame.At(1, 0)
	bottom := frame.At(1, frame.Height-1)
	if top.X >= bottom.X {
		t.Errorf("Expected top row %v to be bluer than bottom row %v", top, bottom)
	}
}

func TestRaytracerDeterministic(t *testing.T) {
	scene := newSphereScene(t, 8, 6, 3)
	rt, err := NewRaytracer(scene)
	if err != nil {
		t.Fatalf("NewRaytracer failed: %v", err)
	}

	a := rt.RenderPass(core.NewSeededSampler(9))
	b := rt.RenderPass(core.NewSeededSampler(9))

	for i := range a.Pixels {
		if !a.Pixels[i].Equals(b.Pixels[i]) {
			t.Fatalf("Pixel %d differs between identical renders: %v vs %v", i, a.Pixels[i], b.Pixels[i])
		}
	}
}

func TestPixelRayOrientation(t *testing.T) {
	scene := newTestScene(t, 10, 10, 1)
	sampler := core.NewSeededSampler(1)

	for i := 0; i < 20; i++ {
		topLeft := pixelRay(scene.camera, 0, 0, 10, 10, sampler)
		if topLeft.Direction.X >= 0 || topLeft.Direction.Y <= 0 {
			t.Fatalf("Top left pixel should look up and left, got %v", topLeft.Direction)
		}

		bottomRight := pixelRay(scene.camera, 9, 9, 10, 10, sampler)
		if bottomRight.Direction.X <= 0 || bottomRight.Direction.Y >= 0 {
			t.Fatalf("Bottom right pixel should look down and right, got %v", bottomRight.Direction)
		}
	}
}
