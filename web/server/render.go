package server

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/df07/go-pathtracer/pkg/log"
	"github.com/df07/go-pathtracer/pkg/output"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene      string `json:"scene"`      // Scene id (e.g., "random")
	Width      int    `json:"width"`      // Image width (0 = scene default)
	Height     int    `json:"height"`     // Image height (0 = scene default)
	MaxSamples int    `json:"maxSamples"` // Samples per pixel (0 = scene default)
	MaxPasses  int    `json:"maxPasses"`  // Maximum number of passes
	MaxDepth   int    `json:"maxDepth"`   // Maximum ray bounces (0 = scene default)
	Seed       int64  `json:"seed"`       // Seed for scene generation and sampling
}

// TileUpdate represents a single tile update sent via SSE
type TileUpdate struct {
	TileX       int    `json:"tileX"`
	TileY       int    `json:"tileY"`
	ImageData   string `json:"imageData"` // Base64 encoded PNG of just this tile
	PassNumber  int    `json:"passNumber"`
	TileNumber  int    `json:"tileNumber"`  // Current tile number in this pass (1-based)
	TotalTiles  int    `json:"totalTiles"`  // Total number of tiles in the image
	TotalPasses int    `json:"totalPasses"` // Total number of passes planned
}

// PassUpdate summarizes a finished pass
type PassUpdate struct {
	PassNumber     int     `json:"passNumber"`
	TotalPasses    int     `json:"totalPasses"`
	ElapsedMs      int64   `json:"elapsedMs"`
	ImageData      string  `json:"imageData"` // Base64 encoded PNG of the whole frame
	TotalPixels    int     `json:"totalPixels"`
	TotalSamples   int     `json:"totalSamples"`
	AverageSamples float64 `json:"averageSamples"`
	MaxSamples     int     `json:"maxSamples"`
	MinSamples     int     `json:"minSamples"`
	MaxSamplesUsed int     `json:"maxSamplesUsed"`
	PrimitiveCount int     `json:"primitiveCount"`
	IsLast         bool    `json:"isLast"`
}

// SSEEvent represents a single server-sent event
type SSEEvent struct {
	Type string `json:"type"` // "console", "tile", "passComplete", "error", "complete"
	Data string `json:"data"` // JSON-encoded data
}

// RenderingPipeline contains the configured scene and raytracer
type RenderingPipeline struct {
	Scene     *scene.Scene
	Raytracer *renderer.ProgressiveRaytracer
	Passes    int
}

// handleRender handles progressive rendering with real-time tile streaming via SSE.
// Events are produced on a separate goroutine and written from this one.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	s.setSSEHeaders(w)
	ctx := r.Context()

	events := make(chan SSEEvent, 100)

	req, err := s.parseRenderRequest(r)
	if err != nil {
		go func() {
			defer close(events)
			s.sendEvent(ctx, events, "error", fmt.Sprintf("Invalid request: %v", err))
		}()
	} else {
		go func() {
			defer close(events)
			s.runRender(ctx, req, events)
		}()
	}

	s.writeSSEEvents(ctx, w, events)
}

// setSSEHeaders sets the required headers for Server-Sent Events
func (s *Server) setSSEHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")
}

// writeSSEEvents writes events until the channel closes or the client leaves
func (s *Server) writeSSEEvents(ctx context.Context, w http.ResponseWriter, events <-chan SSEEvent) {
	flusher, _ := w.(http.Flusher)

	for {
		select {
		case event, ok := <-events:
			if !ok {
				return
			}
			if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Type, event.Data); err != nil {
				// Client disconnected during write
				return
			}
			if flusher != nil {
				flusher.Flush()
			}

		case <-ctx.Done():
			return
		}
	}
}

// sendEvent queues an event unless the client has gone away
func (s *Server) sendEvent(ctx context.Context, events chan<- SSEEvent, eventType, data string) {
	select {
	case events <- SSEEvent{Type: eventType, Data: data}:
	case <-ctx.Done():
	}
}

// sendJSONEvent queues an event with a JSON payload
func (s *Server) sendJSONEvent(ctx context.Context, events chan<- SSEEvent, eventType string, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		s.logger.Errorf("error marshaling %s event: %v", eventType, err)
		return
	}
	s.sendEvent(ctx, events, eventType, string(data))
}

// runRender renders the requested scene and turns rendering output into events
func (s *Server) runRender(ctx context.Context, req *RenderRequest, events chan<- SSEEvent) {
	consoleChan := make(chan ConsoleMessage, 50)
	renderID := fmt.Sprintf("render-%d", time.Now().UnixNano())
	webLogger := NewWebLogger(renderID, s.logger, consoleChan)

	pipeline, err := s.setupRenderingPipeline(req, webLogger)
	if err != nil {
		s.sendEvent(ctx, events, "error", err.Error())
		return
	}

	startTime := time.Now()
	passChan, tileChan, errChan := pipeline.Raytracer.RenderProgressive(ctx, renderer.RenderOptions{TileUpdates: true})

	for passChan != nil || tileChan != nil || errChan != nil {
		select {
		case passResult, ok := <-passChan:
			if !ok {
				passChan = nil
				continue
			}
			s.handlePassComplete(ctx, events, passResult, pipeline, startTime)

		case tileResult, ok := <-tileChan:
			if !ok {
				tileChan = nil
				continue
			}
			s.handleTileUpdate(ctx, events, tileResult)

		case msg := <-consoleChan:
			s.sendJSONEvent(ctx, events, "console", msg)

		case err, ok := <-errChan:
			if !ok {
				errChan = nil
				continue
			}
			if err != nil {
				s.sendEvent(ctx, events, "error", fmt.Sprintf("Rendering failed: %v", err))
				return
			}

		case <-ctx.Done():
			return
		}
	}

	// Flush console messages logged at the very end of the render
	for len(consoleChan) > 0 {
		s.sendJSONEvent(ctx, events, "console", <-consoleChan)
	}

	s.sendEvent(ctx, events, "complete", "Rendering completed")
}

// setupRenderingPipeline creates and configures the scene and raytracer
func (s *Server) setupRenderingPipeline(req *RenderRequest, logger log.Logger) (*RenderingPipeline, error) {
	sceneObj, err := scene.Build(req.Scene, scene.Options{
		Sampling: renderer.SamplingConfig{
			Width:           req.Width,
			Height:          req.Height,
			SamplesPerPixel: req.MaxSamples,
			MaxDepth:        req.MaxDepth,
		},
		Seed: req.Seed,
	})
	if err != nil {
		return nil, err
	}

	config := renderer.DefaultProgressiveConfig()
	config.TileSize = DefaultTileSize
	config.MaxPasses = req.MaxPasses
	config.Seed = req.Seed

	raytracer, err := renderer.NewProgressiveRaytracer(sceneObj, config, logger)
	if err != nil {
		return nil, err
	}

	return &RenderingPipeline{
		Scene:     sceneObj,
		Raytracer: raytracer,
		Passes:    req.MaxPasses,
	}, nil
}

// handlePassComplete processes and sends pass completion events
func (s *Server) handlePassComplete(ctx context.Context, events chan<- SSEEvent, passResult renderer.PassResult, pipeline *RenderingPipeline, startTime time.Time) {
	imageData, err := frameToBase64PNG(passResult.Frame)
	if err != nil {
		s.logger.Errorf("error encoding pass %d: %v", passResult.PassNumber, err)
		return
	}

	s.sendJSONEvent(ctx, events, "passComplete", PassUpdate{
		PassNumber:     passResult.PassNumber,
		TotalPasses:    pipeline.Passes,
		ElapsedMs:      time.Since(startTime).Milliseconds(),
		ImageData:      imageData,
		TotalPixels:    passResult.Stats.TotalPixels,
		TotalSamples:   passResult.Stats.TotalSamples,
		AverageSamples: passResult.Stats.AverageSamples,
		MaxSamples:     passResult.Stats.MaxSamples,
		MinSamples:     passResult.Stats.MinSamples,
		MaxSamplesUsed: passResult.Stats.MaxSamplesUsed,
		PrimitiveCount: pipeline.Scene.GetPrimitiveCount(),
		IsLast:         passResult.IsLast,
	})
}

// handleTileUpdate processes and sends tile update events
func (s *Server) handleTileUpdate(ctx context.Context, events chan<- SSEEvent, tileResult renderer.TileCompletionResult) {
	tileData, err := frameToBase64PNG(tileResult.TileFrame)
	if err != nil {
		s.logger.Errorf("error encoding tile image (%d, %d): %v", tileResult.TileX, tileResult.TileY, err)
		return
	}

	s.sendJSONEvent(ctx, events, "tile", TileUpdate{
		TileX:       tileResult.TileX,
		TileY:       tileResult.TileY,
		ImageData:   tileData,
		PassNumber:  tileResult.PassNumber,
		TileNumber:  tileResult.TileNumber,
		TotalTiles:  tileResult.TotalTiles,
		TotalPasses: tileResult.TotalPasses,
	})
}

// parseRenderRequest parses request parameters
func (s *Server) parseRenderRequest(r *http.Request) (*RenderRequest, error) {
	query := r.URL.Query()
	req := &RenderRequest{Scene: query.Get("scene"), Seed: 42}
	if req.Scene == "" {
		req.Scene = "default"
	}

	var err error
	if req.Width, err = parseIntParam(query, "width", 0, 1, maxImageSize); err != nil {
		return nil, err
	}
	if req.Height, err = parseIntParam(query, "height", 0, 1, maxImageSize); err != nil {
		return nil, err
	}
	if req.MaxSamples, err = parseIntParam(query, "maxSamples", 0, 1, maxSamples); err != nil {
		return nil, err
	}
	if req.MaxPasses, err = parseIntParam(query, "maxPasses", 5, 1, maxPasses); err != nil {
		return nil, err
	}
	if req.MaxDepth, err = parseIntParam(query, "maxDepth", 0, 1, maxDepth); err != nil {
		return nil, err
	}
	if value := query.Get("seed"); value != "" {
		if req.Seed, err = strconv.ParseInt(value, 10, 64); err != nil {
			return nil, fmt.Errorf("invalid seed: %s", value)
		}
	}

	return req, nil
}

// frameToBase64PNG encodes a frame as a base64 PNG
func frameToBase64PNG(frame *output.Frame) (string, error) {
	var buf bytes.Buffer
	if err := output.NewPNGSink(&buf).Write(frame); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
