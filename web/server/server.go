package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/df07/go-pathtracer/pkg/log"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// Limits applied to render requests
const (
	DefaultTileSize = 32
	maxImageSize    = 2000
	maxSamples      = 10000
	maxPasses       = 100
	maxDepth        = 500
)

// Server streams progressive renders over server-sent events
type Server struct {
	port   int
	mux    *http.ServeMux
	logger log.Logger
}

// NewServer creates a new web server
func NewServer(port int) *Server {
	s := &Server{
		port:   port,
		mux:    http.NewServeMux(),
		logger: log.New("server"),
	}

	s.mux.HandleFunc("/api/render", s.handleRender)
	s.mux.HandleFunc("/api/health", s.handleHealth)
	s.mux.HandleFunc("/api/scenes", s.handleScenes)
	s.mux.HandleFunc("/api/scene-config", s.handleSceneConfig)

	return s
}

// Handler returns the HTTP handler serving every endpoint
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Start serves until the listener fails
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	s.logger.Noticef("starting web server on http://localhost%s", addr)
	return http.ListenAndServe(addr, s.mux)
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// sceneSummary describes a built-in scene to clients
type sceneSummary struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// handleScenes lists the built-in scenes
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	var scenes []sceneSummary
	for _, info := range scene.ListScenes() {
		scenes = append(scenes, sceneSummary{ID: info.ID, Name: info.Name, Description: info.Description})
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"scenes": scenes})
}

// handleSceneConfig returns the default configuration for a scene
func (s *Server) handleSceneConfig(w http.ResponseWriter, r *http.Request) {
	sceneName := r.URL.Query().Get("scene")
	if sceneName == "" {
		sceneName = "default"
	}

	sceneObj, err := scene.Build(sceneName, scene.Options{})
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	config := sceneObj.GetSamplingConfig()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"scene": sceneName,
		"defaults": map[string]int{
			"width":           config.Width,
			"height":          config.Height,
			"samplesPerPixel": config.SamplesPerPixel,
			"maxDepth":        config.MaxDepth,
		},
		"limits": map[string]map[string]int{
			"width":      {"min": 1, "max": maxImageSize},
			"height":     {"min": 1, "max": maxImageSize},
			"maxSamples": {"min": 1, "max": maxSamples},
			"maxPasses":  {"min": 1, "max": maxPasses},
			"maxDepth":   {"min": 1, "max": maxDepth},
		},
	})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}
