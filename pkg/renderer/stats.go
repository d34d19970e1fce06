package renderer

import "github.com/df07/go-pathtracer/pkg/core"

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels    int     // Total number of pixels rendered
	TotalSamples   int     // Total number of samples taken
	AverageSamples float64 // Average samples per pixel
	MaxSamples     int     // Target samples per pixel
	MinSamples     int     // Minimum samples taken per pixel
	MaxSamplesUsed int     // Maximum samples actually used by any pixel
}

// PixelStats accumulates samples for a single pixel
type PixelStats struct {
	ColorAccum  core.Color // Sum of linear sample colors
	SampleCount int        // Number of samples taken
}

// AddSample adds a new color sample to the pixel statistics
func (ps *PixelStats) AddSample(color core.Color) {
	ps.ColorAccum = ps.ColorAccum.Add(color)
	ps.SampleCount++
}

// GetColor returns the current average linear color for this pixel
func (ps *PixelStats) GetColor() core.Color {
	if ps.SampleCount == 0 {
		return core.Color{}
	}
	return ps.ColorAccum.Multiply(1.0 / float64(ps.SampleCount))
}

// newRenderStats starts statistics for pixelCount pixels targeting maxSamples each
func newRenderStats(pixelCount, maxSamples int) RenderStats {
	return RenderStats{
		TotalPixels: pixelCount,
		MaxSamples:  maxSamples,
		MinSamples:  maxSamples, // Start with max, will be reduced
	}
}

// update records the samples held by a single pixel
func (s *RenderStats) update(samples int) {
	s.TotalSamples += samples
	s.MinSamples = min(s.MinSamples, samples)
	s.MaxSamplesUsed = max(s.MaxSamplesUsed, samples)
}

// finalize calculates the average once every pixel has been recorded
func (s *RenderStats) finalize() {
	if s.TotalPixels > 0 {
		s.AverageSamples = float64(s.TotalSamples) / float64(s.TotalPixels)
	}
}
