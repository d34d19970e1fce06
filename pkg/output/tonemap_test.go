package output

import (
	"math"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
)

func TestTonemap(t *testing.T) {
	tests := []struct {
		name     string
		sum      core.Color
		samples  int
		expected core.Color
	}{
		{"Black", core.NewVec3(0, 0, 0), 4, core.NewVec3(0, 0, 0)},
		{"Averages then gamma corrects", core.NewVec3(1, 0.64, 0.36), 4, core.NewVec3(0.5, 0.4, 0.3)},
		{"White clamps below one", core.NewVec3(10, 10, 10), 10, core.NewVec3(0.999, 0.999, 0.999)},
		{"Overexposed clamps", core.NewVec3(50, 0, 2), 1, core.NewVec3(0.999, 0, 0.999)},
		{"Negative clamps to black", core.NewVec3(-1, 0.25, -0.5), 1, core.NewVec3(0, 0.5, 0)},
		{"No samples", core.NewVec3(1, 1, 1), 0, core.NewVec3(0, 0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tonemap(tt.sum, tt.samples)
			if !got.ApproxEquals(tt.expected, 1e-12) {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestTonemapNaN(t *testing.T) {
	got := Tonemap(core.NewVec3(math.NaN(), 1, 1), 1)
	if got.X != 0 {
		t.Errorf("Expected NaN channel to map to black, got %v", got)
	}
}

func TestQuantize(t *testing.T) {
	tests := []struct {
		in       float64
		expected uint8
	}{
		{0, 0},
		{0.5, 128},
		{0.999, 255},
		{1.0, 255},
		{2.0, 255},
		{-0.5, 0},
		{1.0 / 256, 1},
	}

	for _, tt := range tests {
		if got := Quantize(tt.in); got != tt.expected {
			t.Errorf("Quantize(%f): expected %d, got %d", tt.in, tt.expected, got)
		}
	}
}

func TestTonemapMonotonic(t *testing.T) {
	// Brighter linear input never quantizes to a darker channel
	prev := uint8(0)
	for i := 0; i <= 2000; i++ {
		linear := float64(i) / 1000
		c := Tonemap(core.NewVec3(linear, linear, linear), 1)
		r, g, b := QuantizeColor(c)
		if r != g || g != b {
			t.Fatalf("Gray input produced colored output (%d, %d, %d)", r, g, b)
		}
		if r < prev {
			t.Fatalf("Quantized value decreased at %f: %d < %d", linear, r, prev)
		}
		prev = r
	}
	if prev != 255 {
		t.Errorf("Expected saturation at 255, got %d", prev)
	}
}
