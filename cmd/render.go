package cmd

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/df07/go-pathtracer/pkg/output"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/scene"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

// Render a built-in scene and write the final pass to disk.
func RenderScene(ctx *cli.Context) error {
	setupLogging(ctx)

	sceneID := ctx.String("scene")
	sc, err := scene.Build(sceneID, scene.Options{
		Sampling: renderer.SamplingConfig{
			Width:           ctx.Int("width"),
			Height:          ctx.Int("height"),
			SamplesPerPixel: ctx.Int("spp"),
			MaxDepth:        ctx.Int("depth"),
		},
		Seed: ctx.Int64("seed"),
	})
	if err != nil {
		return err
	}

	outFile := ctx.String("out")
	format := ctx.String("format")
	if format == "" {
		format = formatFromFilename(outFile)
	}

	// Fail on a bad format before spending time rendering
	if _, err := output.NewSink(format, io.Discard); err != nil {
		return err
	}

	config := renderer.DefaultProgressiveConfig()
	config.MaxPasses = ctx.Int("passes")
	config.TileSize = ctx.Int("tile-size")
	config.NumWorkers = ctx.Int("workers")
	config.Seed = ctx.Int64("seed")

	sampling := sc.GetSamplingConfig()
	logger.Noticef("rendering scene %q at %dx%d, %d spp, max depth %d (%d objects)",
		sceneID, sampling.Width, sampling.Height, sampling.SamplesPerPixel, sampling.MaxDepth, sc.GetPrimitiveCount())

	pr, err := renderer.NewProgressiveRaytracer(sc, config, logger)
	if err != nil {
		return err
	}

	renderCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	start := time.Now()
	passes, err := collectPasses(renderCtx, pr)
	if err != nil {
		return fmt.Errorf("rendering %q: %w", sceneID, err)
	}
	if len(passes) == 0 {
		return fmt.Errorf("rendering %q: no passes completed", sceneID)
	}

	final := passes[len(passes)-1]
	if err := writeFrame(outFile, format, final.Frame); err != nil {
		return err
	}

	displayRenderStats(passes, time.Since(start))
	logger.Noticef("wrote %s", outFile)

	return nil
}

// collectPasses runs the progressive render to completion, logging tile
// progress at debug level.
func collectPasses(ctx context.Context, pr *renderer.ProgressiveRaytracer) ([]renderer.PassResult, error) {
	passChan, tileChan, errChan := pr.RenderProgressive(ctx, renderer.RenderOptions{TileUpdates: true})

	tilesDone := make(chan struct{})
	go func() {
		defer close(tilesDone)
		for tile := range tileChan {
			logger.Debugf("pass %d/%d: tile %d/%d done", tile.PassNumber, tile.TotalPasses, tile.TileNumber, tile.TotalTiles)
		}
	}()

	var passes []renderer.PassResult
	for pass := range passChan {
		logger.Infof("pass %d done in %s", pass.PassNumber, pass.Duration)
		passes = append(passes, pass)
	}
	<-tilesDone

	if err := <-errChan; err != nil {
		return passes, err
	}
	return passes, nil
}

// formatFromFilename picks an image format from the file extension. Standard
// output defaults to PPM.
func formatFromFilename(filename string) string {
	if filename == "-" {
		return output.FormatPPM
	}
	ext := strings.TrimPrefix(filepath.Ext(filename), ".")
	if ext == "" {
		return output.FormatPNG
	}
	return strings.ToLower(ext)
}

// writeFrame encodes frame into filename ("-" for standard output).
func writeFrame(filename, format string, frame *output.Frame) error {
	if filename == "-" {
		sink, err := output.NewSink(format, os.Stdout)
		if err != nil {
			return err
		}
		return sink.Write(frame)
	}

	if dir := filepath.Dir(filename); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}

	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}

	sink, err := output.NewSink(format, f)
	if err != nil {
		f.Close()
		return err
	}
	if err := sink.Write(frame); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func displayRenderStats(passes []renderer.PassResult, total time.Duration) {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Pass", "Target spp", "Min spp", "Max spp", "Avg spp", "Samples", "Render time"})
	for _, pass := range passes {
		table.Append([]string{
			fmt.Sprintf("%d", pass.PassNumber),
			fmt.Sprintf("%d", pass.Stats.MaxSamples),
			fmt.Sprintf("%d", pass.Stats.MinSamples),
			fmt.Sprintf("%d", pass.Stats.MaxSamplesUsed),
			fmt.Sprintf("%.1f", pass.Stats.AverageSamples),
			fmt.Sprintf("%d", pass.Stats.TotalSamples),
			pass.Duration.String(),
		})
	}
	table.SetFooter([]string{"", "", "", "", "", "TOTAL", total.String()})

	table.Render()
	logger.Noticef("render statistics\n%s", buf.String())
}
