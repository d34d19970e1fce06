package renderer

import (
	"image"
	"testing"

	"github.com/df07/go-pathtracer/pkg/integrator"
)

func TestWorkerPoolRendersSubmittedTiles(t *testing.T) {
	scene := newSphereScene(t, 8, 4, 2)
	tr := NewTileRenderer(scene, integrator.NewPathTracingIntegrator(10, scene.background))
	tiles := []*Tile{
		NewTile(0, image.Rect(0, 0, 4, 4), 42),
		NewTile(1, image.Rect(4, 0, 8, 4), 42),
	}
	pixelStats := newPixelStats(8, 4)

	wp := NewWorkerPool(tr, len(tiles), 2)
	if wp.GetNumWorkers() != 2 {
		t.Errorf("Expected 2 workers, got %d", wp.GetNumWorkers())
	}

	wp.Start()
	wp.Start() // Second start is a no-op

	for i, tile := range tiles {
		wp.SubmitTask(TileTask{Tile: tile, PassNumber: 1, TargetSamples: 2, TaskID: i, PixelStats: pixelStats})
	}

	seen := make(map[int]bool)
	for range tiles {
		result, ok := wp.GetResult()
		if !ok {
			t.Fatal("Result queue closed early")
		}
		if result.Stats.TotalSamples != 32 {
			t.Errorf("Tile %d: expected 32 samples, got %d", result.TaskID, result.Stats.TotalSamples)
		}
		seen[result.TaskID] = true
	}

	if !seen[0] || !seen[1] {
		t.Errorf("Expected results for both tiles, got %v", seen)
	}

	wp.Stop()
	wp.Stop() // Second stop is a no-op

	if _, ok := wp.GetResult(); ok {
		t.Error("Expected result queue to be closed after Stop")
	}
}

func TestWorkerPoolDefaultsToCPUCount(t *testing.T) {
	scene := newSphereScene(t, 2, 2, 1)
	tr := NewTileRenderer(scene, integrator.NewPathTracingIntegrator(10, scene.background))

	wp := NewWorkerPool(tr, 1, 0)
	defer wp.Stop()

	if wp.GetNumWorkers() < 1 {
		t.Errorf("Expected at least one worker, got %d", wp.GetNumWorkers())
	}
}
