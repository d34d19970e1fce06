package renderer

import (
	"context"
	"image"
	"time"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/integrator"
	"github.com/df07/go-pathtracer/pkg/log"
	"github.com/df07/go-pathtracer/pkg/output"
)

// ProgressiveConfig contains configuration for progressive rendering
type ProgressiveConfig struct {
	TileSize       int   // Size of each tile (64x64 recommended)
	InitialSamples int   // Samples for first pass (1 recommended)
	MaxPasses      int   // Maximum number of passes
	NumWorkers     int   // Number of parallel workers (0 = use CPU count)
	Seed           int64 // Base seed; tile n draws from Seed+n
}

// DefaultProgressiveConfig returns sensible default values
func DefaultProgressiveConfig() ProgressiveConfig {
	return ProgressiveConfig{
		TileSize:       64,
		InitialSamples: 1,
		MaxPasses:      7, // 1 sample preview, then even steps up to the target
		NumWorkers:     0, // Auto-detect CPU count
		Seed:           42,
	}
}

// ProgressiveRaytracer manages progressive rendering with multiple passes.
// The total sample target per pixel is the scene's SamplesPerPixel.
type ProgressiveRaytracer struct {
	scene         Scene
	width, height int
	maxSamples    int
	config        ProgressiveConfig
	tiles         []*Tile        // Tile management
	pixelStats    [][]PixelStats // Shared pixel statistics array (global image coordinates)
	workerPool    *WorkerPool    // Worker pool for parallel processing
	logger        log.Logger
}

// NewProgressiveRaytracer creates a new progressive raytracer. A nil logger
// logs under the "renderer" module.
func NewProgressiveRaytracer(scene Scene, config ProgressiveConfig, logger log.Logger) (*ProgressiveRaytracer, error) {
	if scene == nil {
		return nil, ErrNoScene
	}

	sampling := scene.GetSamplingConfig()
	if err := sampling.Validate(); err != nil {
		return nil, err
	}

	if config.TileSize <= 0 {
		config.TileSize = DefaultProgressiveConfig().TileSize
	}
	if config.MaxPasses <= 0 {
		config.MaxPasses = 1
	}
	config.InitialSamples = max(1, min(config.InitialSamples, sampling.SamplesPerPixel))

	if logger == nil {
		logger = log.New("renderer")
	}

	tiles := NewTileGrid(sampling.Width, sampling.Height, config.TileSize, config.Seed)

	pixelStats := make([][]PixelStats, sampling.Height)
	for y := range pixelStats {
		pixelStats[y] = make([]PixelStats, sampling.Width)
	}

	pathTracer := integrator.NewPathTracingIntegrator(sampling.MaxDepth, scene.GetBackground())
	tileRenderer := NewTileRenderer(scene, pathTracer)

	return &ProgressiveRaytracer{
		scene:      scene,
		width:      sampling.Width,
		height:     sampling.Height,
		maxSamples: sampling.SamplesPerPixel,
		config:     config,
		tiles:      tiles,
		pixelStats: pixelStats,
		workerPool: NewWorkerPool(tileRenderer, len(tiles), config.NumWorkers),
		logger:     logger,
	}, nil
}

// getSamplesForPass calculates the target total samples for a given pass
func (pr *ProgressiveRaytracer) getSamplesForPass(passNumber int) int {
	// Special case: if only 1 pass, use all samples
	if pr.config.MaxPasses == 1 {
		return pr.maxSamples
	}

	// For multiple passes: first pass is quick preview
	if passNumber == 1 {
		return pr.config.InitialSamples
	}

	// For the final pass, use all remaining samples
	if passNumber >= pr.config.MaxPasses {
		return pr.maxSamples
	}

	// Divide remaining samples evenly across remaining passes
	remainingSamples := pr.maxSamples - pr.config.InitialSamples
	remainingPasses := pr.config.MaxPasses - 1
	samplesPerPass := remainingSamples / remainingPasses

	return pr.config.InitialSamples + (passNumber-1)*samplesPerPass
}

// RenderPass renders a single progressive pass using parallel processing.
// The worker pool is started on first use; call Close when done.
func (pr *ProgressiveRaytracer) RenderPass(passNumber int, tileCallback func(TileCompletionResult)) (*output.Frame, RenderStats, error) {
	targetSamples := pr.getSamplesForPass(passNumber)

	pr.logger.Infof("Pass %d: target %d samples per pixel (using %d workers)",
		passNumber, targetSamples, pr.workerPool.GetNumWorkers())

	pr.workerPool.Start()

	for taskID, tile := range pr.tiles {
		pr.workerPool.SubmitTask(TileTask{
			Tile:          tile,
			PassNumber:    passNumber,
			TargetSamples: targetSamples,
			TaskID:        taskID,
			PixelStats:    pr.pixelStats,
		})
	}

	// Wait for all tiles to complete and dispatch tile callbacks from this goroutine
	for i := 0; i < len(pr.tiles); i++ {
		result, ok := pr.workerPool.GetResult()
		if !ok {
			return nil, RenderStats{}, ErrWorkerPoolClosed
		}

		tile := pr.tiles[result.TaskID]
		if tileCallback != nil {
			tileCallback(TileCompletionResult{
				TileX:       tile.Bounds.Min.X / pr.config.TileSize,
				TileY:       tile.Bounds.Min.Y / pr.config.TileSize,
				TileFrame:   pr.extractTileFrame(tile),
				PassNumber:  passNumber,
				TileNumber:  i + 1,
				TotalTiles:  len(pr.tiles),
				TotalPasses: pr.config.MaxPasses,
			})
		}
	}

	frame, stats := pr.assembleCurrentFrame(targetSamples)
	return frame, stats, nil
}

// Close stops the worker pool. The raytracer cannot render afterwards.
func (pr *ProgressiveRaytracer) Close() {
	pr.workerPool.Stop()
}

// extractTileFrame tone maps the pixels of one tile into their own frame
func (pr *ProgressiveRaytracer) extractTileFrame(tile *Tile) *output.Frame {
	bounds := tile.Bounds
	frame := output.NewFrame(bounds.Dx(), bounds.Dy())

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			ps := &pr.pixelStats[y][x]
			frame.Set(x-bounds.Min.X, y-bounds.Min.Y, output.Tonemap(ps.ColorAccum, ps.SampleCount))
		}
	}

	return frame
}

// PassResult contains the result of a single pass
type PassResult struct {
	PassNumber int
	Frame      *output.Frame
	Stats      RenderStats
	Duration   time.Duration
	IsLast     bool
}

// TileCompletionResult contains information about a completed tile for callbacks
type TileCompletionResult struct {
	TileX      int           // Tile coordinates (not pixel coordinates)
	TileY      int
	TileFrame  *output.Frame // Image data for just this tile
	PassNumber int           // Which pass this tile was rendered in

	// Progress information
	TileNumber  int // Current tile number in this pass (1-based)
	TotalTiles  int // Total number of tiles in the image
	TotalPasses int // Total number of passes planned
}

// RenderOptions configures progressive rendering behavior
type RenderOptions struct {
	TileUpdates bool // Whether to generate tile completion events
}

// RenderProgressive renders every pass on a background goroutine and reports
// through channels. The caller should read from these channels in separate
// goroutines. Cancellation is observed between passes. If
// options.TileUpdates is false, the tile channel is closed immediately. The
// worker pool is stopped when rendering ends.
func (pr *ProgressiveRaytracer) RenderProgressive(ctx context.Context, options RenderOptions) (<-chan PassResult, <-chan TileCompletionResult, <-chan error) {
	passChan := make(chan PassResult, 1)
	tileChan := make(chan TileCompletionResult, 100)
	errChan := make(chan error, 1)

	if !options.TileUpdates {
		close(tileChan)
	}

	go func() {
		defer close(passChan)
		if options.TileUpdates {
			defer close(tileChan)
		}
		defer close(errChan)
		defer pr.Close()

		pr.logger.Infof("Starting progressive rendering with %d passes", pr.config.MaxPasses)

		for pass := 1; pass <= pr.config.MaxPasses; pass++ {
			select {
			case <-ctx.Done():
				pr.logger.Warningf("Rendering cancelled before pass %d", pass)
				errChan <- ctx.Err()
				return
			default:
			}

			startTime := time.Now()

			var tileCallback func(TileCompletionResult)
			if options.TileUpdates {
				tileCallback = func(result TileCompletionResult) {
					select {
					case tileChan <- result:
					case <-ctx.Done():
					default:
						pr.logger.Debugf("Tile channel full, dropping update for tile (%d,%d)", result.TileX, result.TileY)
					}
				}
			}

			frame, stats, err := pr.RenderPass(pass, tileCallback)
			if err != nil {
				errChan <- err
				return
			}

			passTime := time.Since(startTime)
			actualSamples := int(stats.AverageSamples)

			pr.logger.Infof("Pass %d completed in %v (actual: %d samples/pixel)", pass, passTime, actualSamples)

			isLast := pass == pr.config.MaxPasses || actualSamples >= pr.maxSamples
			select {
			case passChan <- PassResult{PassNumber: pass, Frame: frame, Stats: stats, Duration: passTime, IsLast: isLast}:
			case <-ctx.Done():
				errChan <- ctx.Err()
				return
			}

			if actualSamples >= pr.maxSamples {
				pr.logger.Infof("Reached maximum samples per pixel (%d), stopping", pr.maxSamples)
				break
			}
		}
	}()

	return passChan, tileChan, errChan
}

// assembleCurrentFrame creates a frame from the current state of the shared
// pixel stats and calculates render statistics in a single pass
func (pr *ProgressiveRaytracer) assembleCurrentFrame(targetSamples int) (*output.Frame, RenderStats) {
	frame := output.NewFrame(pr.width, pr.height)
	stats := newRenderStats(pr.width*pr.height, targetSamples)
	stats.MinSamples = pr.maxSamples

	for y := 0; y < pr.height; y++ {
		for x := 0; x < pr.width; x++ {
			pixel := &pr.pixelStats[y][x]
			frame.Set(x, y, output.Tonemap(pixel.ColorAccum, pixel.SampleCount))
			stats.update(pixel.SampleCount)
		}
	}

	stats.finalize()
	return frame, stats
}

// Tile represents a rectangular region of the image to be rendered
type Tile struct {
	ID      int             // Unique tile identifier
	Bounds  image.Rectangle // Pixel bounds (x0,y0,x1,y1)
	Sampler core.Sampler    // Tile-specific sampler for deterministic results
}

// NewTile creates a new tile with the specified bounds, seeded from seed+id
func NewTile(id int, bounds image.Rectangle, seed int64) *Tile {
	return &Tile{
		ID:      id,
		Bounds:  bounds,
		Sampler: core.NewSeededSampler(seed + int64(id)),
	}
}

// NewTileGrid creates a grid of tiles covering the entire image
func NewTileGrid(width, height, tileSize int, seed int64) []*Tile {
	var tiles []*Tile
	tileID := 0

	tilesX := (width + tileSize - 1) / tileSize // Ceiling division
	tilesY := (height + tileSize - 1) / tileSize

	for tileY := 0; tileY < tilesY; tileY++ {
		for tileX := 0; tileX < tilesX; tileX++ {
			x0 := tileX * tileSize
			y0 := tileY * tileSize
			x1 := min(x0+tileSize, width) // Don't exceed image bounds
			y1 := min(y0+tileSize, height)

			tiles = append(tiles, NewTile(tileID, image.Rect(x0, y0, x1, y1), seed))
			tileID++
		}
	}

	return tiles
}
