package renderer

import (
	"image"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/integrator"
)

// TileRenderer renders rectangular regions of the image using an integrator.
// It holds no mutable state, so workers may share one.
type TileRenderer struct {
	scene      Scene
	integrator integrator.Integrator
	width      int
	height     int
}

// NewTileRenderer creates a new tile renderer with the given scene and integrator
func NewTileRenderer(scene Scene, integratorInst integrator.Integrator) *TileRenderer {
	config := scene.GetSamplingConfig()
	return &TileRenderer{
		scene:      scene,
		integrator: integratorInst,
		width:      config.Width,
		height:     config.Height,
	}
}

// RenderTileBounds tops up every pixel inside bounds to targetSamples samples.
// Pixels outside bounds are not touched.
func (tr *TileRenderer) RenderTileBounds(bounds image.Rectangle, pixelStats [][]PixelStats, sampler core.Sampler, targetSamples int) RenderStats {
	camera := tr.scene.GetCamera()
	world := tr.scene.GetWorld()

	stats := newRenderStats(bounds.Dx()*bounds.Dy(), targetSamples)

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			ps := &pixelStats[y][x]
			initial := ps.SampleCount

			for ps.SampleCount < targetSamples {
				ray := pixelRay(camera, x, y, tr.width, tr.height, sampler)
				ps.AddSample(tr.integrator.RayColor(ray, world, sampler))
			}

			stats.update(ps.SampleCount - initial)
		}
	}

	stats.finalize()
	return stats
}
