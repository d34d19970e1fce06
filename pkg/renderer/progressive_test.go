package renderer

import (
	"context"
	"errors"
	"testing"
)

func TestProgressiveSampleCalculation(t *testing.T) {
	tests := []struct {
		name       string
		maxSamples int
		initial    int
		passes     int
		expected   []int
	}{
		{"Even steps", 50, 1, 7, []int{1, 9, 17, 25, 33, 41, 50}},
		{"Single pass", 20, 1, 1, []int{20}},
		{"Two passes", 10, 1, 2, []int{1, 10}},
		{"More passes than samples", 3, 1, 5, []int{1, 1, 1, 1, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pr := &ProgressiveRaytracer{
				maxSamples: tt.maxSamples,
				config:     ProgressiveConfig{InitialSamples: tt.initial, MaxPasses: tt.passes},
			}

			for pass := 1; pass <= tt.passes; pass++ {
				if got := pr.getSamplesForPass(pass); got != tt.expected[pass-1] {
					t.Errorf("Pass %d: expected %d total samples, got %d", pass, tt.expected[pass-1], got)
				}
			}
		})
	}
}

func TestProgressiveConfig(t *testing.T) {
	config := DefaultProgressiveConfig()

	if config.TileSize != 64 {
		t.Errorf("Expected default tile size 64, got %d", config.TileSize)
	}
	if config.InitialSamples != 1 {
		t.Errorf("Expected default initial samples 1, got %d", config.InitialSamples)
	}
	if config.MaxPasses != 7 {
		t.Errorf("Expected default max passes 7, got %d", config.MaxPasses)
	}
	if config.Seed != 42 {
		t.Errorf("Expected default seed 42, got %d", config.Seed)
	}
}

func TestNewTileGrid(t *testing.T) {
	tiles := NewTileGrid(10, 7, 4, 42)

	if len(tiles) != 6 {
		t.Fatalf("Expected 3x2 tiles, got %d", len(tiles))
	}

	covered := make(map[[2]int]int)
	for i, tile := range tiles {
		if tile.ID != i {
			t.Errorf("Expected tile ID %d, got %d", i, tile.ID)
		}
		for y := tile.Bounds.Min.Y; y < tile.Bounds.Max.Y; y++ {
			for x := tile.Bounds.Min.X; x < tile.Bounds.Max.X; x++ {
				covered[[2]int{x, y}]++
			}
		}
	}

	if len(covered) != 70 {
		t.Errorf("Expected all 70 pixels covered, got %d", len(covered))
	}
	for pixel, count := range covered {
		if count != 1 {
			t.Errorf("Pixel %v covered by %d tiles", pixel, count)
		}
	}

	last := tiles[len(tiles)-1].Bounds
	if last.Max.X != 10 || last.Max.Y != 7 || last.Dx() != 2 || last.Dy() != 3 {
		t.Errorf("Edge tile should be clipped to the image, got %v", last)
	}
}

func TestNewProgressiveRaytracerErrors(t *testing.T) {
	if _, err := NewProgressiveRaytracer(nil, DefaultProgressiveConfig(), nil); !errors.Is(err, ErrNoScene) {
		t.Errorf("Expected ErrNoScene, got %v", err)
	}

	scene := newTestScene(t, 4, 4, 0)
	if _, err := NewProgressiveRaytracer(scene, DefaultProgressiveConfig(), nil); !errors.Is(err, ErrInvalidSampling) {
		t.Errorf("Expected ErrInvalidSampling, got %v", err)
	}
}

// renderAll runs a progressive render to completion and returns every pass
func renderAll(t *testing.T, pr *ProgressiveRaytracer, options RenderOptions) ([]PassResult, []TileCompletionResult) {
	t.Helper()

	passChan, tileChan, errChan := pr.RenderProgressive(context.Background(), options)

	tilesDone := make(chan []TileCompletionResult)
	go func() {
		var tiles []TileCompletionResult
		for tile := range tileChan {
			tiles = append(tiles, tile)
		}
		tilesDone <- tiles
	}()

	var passes []PassResult
	for pass := range passChan {
		passes = append(passes, pass)
	}
	if err := <-errChan; err != nil {
		t.Fatalf("Rendering failed: %v", err)
	}

	return passes, <-tilesDone
}

func TestRenderProgressive(t *testing.T) {
	scene := newSphereScene(t, 12, 8, 6)
	config := ProgressiveConfig{TileSize: 4, InitialSamples: 1, MaxPasses: 3, NumWorkers: 2, Seed: 42}

	pr, err := NewProgressiveRaytracer(scene, config, nil)
	if err != nil {
		t.Fatalf("NewProgressiveRaytracer failed: %v", err)
	}

	passes, tiles := renderAll(t, pr, RenderOptions{TileUpdates: true})

	if len(passes) != 3 {
		t.Fatalf("Expected 3 passes, got %d", len(passes))
	}

	expectedSamples := []int{1, 3, 6}
	for i, pass := range passes {
		if pass.PassNumber != i+1 {
			t.Errorf("Expected pass number %d, got %d", i+1, pass.PassNumber)
		}
		if pass.Stats.MinSamples != expectedSamples[i] || pass.Stats.MaxSamplesUsed != expectedSamples[i] {
			t.Errorf("Pass %d: expected %d samples everywhere, got min %d max %d",
				pass.PassNumber, expectedSamples[i], pass.Stats.MinSamples, pass.Stats.MaxSamplesUsed)
		}
		if pass.Frame.Width != 12 || pass.Frame.Height != 8 {
			t.Errorf("Pass %d: unexpected frame size %dx%d", pass.PassNumber, pass.Frame.Width, pass.Frame.Height)
		}
		if pass.IsLast != (i == len(passes)-1) {
			t.Errorf("Pass %d: unexpected IsLast %v", pass.PassNumber, pass.IsLast)
		}
	}

	// 3x2 tiles per pass
	if len(tiles) != 18 {
		t.Errorf("Expected 18 tile updates, got %d", len(tiles))
	}
	for _, tile := range tiles {
		if tile.TotalTiles != 6 || tile.TotalPasses != 3 {
			t.Errorf("Unexpected tile progress %+v", tile)
		}
		if tile.TileFrame.Width != 4 || tile.TileFrame.Height != 4 {
			t.Errorf("Unexpected tile frame size %dx%d", tile.TileFrame.Width, tile.TileFrame.Height)
		}
	}
}

func TestRenderProgressiveIndependentOfWorkerCount(t *testing.T) {
	render := func(workers int) []PassResult {
		scene := newSphereScene(t, 10, 6, 4)
		config := ProgressiveConfig{TileSize: 3, InitialSamples: 1, MaxPasses: 2, NumWorkers: workers, Seed: 7}
		pr, err := NewProgressiveRaytracer(scene, config, nil)
		if err != nil {
			t.Fatalf("NewProgressiveRaytracer failed: %v", err)
		}
		passes, _ := renderAll(t, pr, RenderOptions{})
		return passes
	}

	single := render(1)
	parallel := render(4)

	if len(single) != len(parallel) {
		t.Fatalf("Pass counts differ: %d vs %d", len(single), len(parallel))
	}
	for i := range single {
		for p := range single[i].Frame.Pixels {
			if !single[i].Frame.Pixels[p].Equals(parallel[i].Frame.Pixels[p]) {
				t.Fatalf("Pass %d pixel %d differs between worker counts", i+1, p)
			}
		}
	}
}

func TestRenderProgressiveCancelled(t *testing.T) {
	scene := newSphereScene(t, 4, 4, 4)
	pr, err := NewProgressiveRaytracer(scene, ProgressiveConfig{TileSize: 2, MaxPasses: 3, NumWorkers: 1}, nil)
	if err != nil {
		t.Fatalf("NewProgressiveRaytracer failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	passChan, _, errChan := pr.RenderProgressive(ctx, RenderOptions{})

	count := 0
	for range passChan {
		count++
	}
	if count != 0 {
		t.Errorf("Expected no passes after cancellation, got %d", count)
	}
	if err := <-errChan; !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}
