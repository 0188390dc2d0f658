package server

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-json-experiment/json"
	"github.com/pkg/errors"

	"github.com/df07/go-pathtracer/pkg/imageio"
	"github.com/df07/go-pathtracer/pkg/integrator"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// Server handles web requests for the path tracer
type Server struct {
	port    int
	workers int
	logger  *renderer.SlogLogger
}

// NewServer creates a new web server. Each render uses at most workers
// concurrent tile tasks, 0 meaning all CPUs.
func NewServer(port, workers int, logger *renderer.SlogLogger) *Server {
	return &Server{port: port, workers: workers, logger: logger}
}

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene    string `json:"scene"`    // Built-in scene name
	Width    int    `json:"width"`    // Image width
	Height   int    `json:"height"`   // Image height
	Samples  int    `json:"samples"`  // Samples per pixel
	MaxDepth int    `json:"maxDepth"` // Maximum bounce depth
	Seed     uint64 `json:"seed"`     // Root random seed
}

// ProgressUpdate is sent via SSE as tiles finish
type ProgressUpdate struct {
	TilesDone  int `json:"tilesDone"`
	TilesTotal int `json:"tilesTotal"`
}

// CompleteUpdate is the final SSE event carrying the encoded image
type CompleteUpdate struct {
	RunID     string `json:"runId"`
	ImageData string `json:"imageData"` // Base64 encoded PNG
	ElapsedMs int64  `json:"elapsedMs"`
}

// Handler returns the API routes
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/render", s.handleRender)
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/scenes", s.handleScenes)
	return mux
}

// Start starts the web server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	s.logger.Info("starting web server", "addr", "http://localhost"+addr)
	return http.ListenAndServe(addr, s.Handler())
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleScenes lists the built-in scenes
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, scene.List())
}

// handleRender renders a scene, streaming tile progress with SSE and
// finishing with the PNG image
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	req, err := parseRenderRequest(r.URL.Query())
	if err != nil {
		http.Error(w, "Invalid request: "+err.Error(), http.StatusBadRequest)
		return
	}

	sceneObj, err := scene.New(req.Scene)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, scene.ErrUnknownScene) {
			status = http.StatusNotFound
		}
		http.Error(w, err.Error(), status)
		return
	}
	if req.MaxDepth == 0 {
		req.MaxDepth = sceneObj.SamplingConfig.MaxDepth
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	cameraConfig := sceneObj.CameraConfig
	cameraConfig.AspectRatio = float64(req.Width) / float64(req.Height)

	log := s.logger.With("scene", req.Scene, "remote", r.RemoteAddr)
	pt := renderer.NewPathTracer(
		integrator.NewPathTracingIntegrator(req.MaxDepth),
		renderer.Config{TileSize: renderer.DefaultTileSize, NumWorkers: s.workers, Seed: req.Seed},
		log,
	)
	pt.Progress = func(done, total int) {
		sendSSEEvent(w, "progress", ProgressUpdate{TilesDone: done, TilesTotal: total})
	}

	start := time.Now()
	img := renderer.NewImage(req.Width, req.Height)
	stats, err := pt.Run(sceneObj, renderer.NewCamera(cameraConfig), img, req.Samples)
	if err != nil {
		sendSSEEvent(w, "error", map[string]string{"error": err.Error()})
		return
	}

	var buf bytes.Buffer
	if err := imageio.Encode(&buf, img, imageio.FormatPNG); err != nil {
		sendSSEEvent(w, "error", map[string]string{"error": err.Error()})
		return
	}
	sendSSEEvent(w, "complete", CompleteUpdate{
		RunID:     stats.RunID.String(),
		ImageData: base64.StdEncoding.EncodeToString(buf.Bytes()),
		ElapsedMs: time.Since(start).Milliseconds(),
	})
}

// parseRenderRequest parses and validates query parameters
func parseRenderRequest(values url.Values) (*RenderRequest, error) {
	req := &RenderRequest{Scene: values.Get("scene")}
	if req.Scene == "" {
		req.Scene = "cornell"
	}

	var err error
	if req.Width, err = parseIntParam(values, "width", 400, 1, 2000); err != nil {
		return nil, err
	}
	if req.Height, err = parseIntParam(values, "height", 400, 1, 2000); err != nil {
		return nil, err
	}
	if req.Samples, err = parseIntParam(values, "samples", 50, 1, 10000); err != nil {
		return nil, err
	}
	if req.MaxDepth, err = parseIntParam(values, "maxDepth", 0, 0, 1000); err != nil {
		return nil, err
	}
	if value := values.Get("seed"); value != "" {
		if req.Seed, err = strconv.ParseUint(value, 10, 64); err != nil {
			return nil, errors.Errorf("invalid seed: %s", value)
		}
	}
	return req, nil
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	value := values.Get(key)
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, errors.Errorf("invalid %s: %s", key, value)
	}
	if parsed < min || parsed > max {
		return 0, errors.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
	}
	return parsed, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.MarshalWrite(w, v)
}

// sendSSEEvent writes one server-sent event and flushes it
func sendSSEEvent(w http.ResponseWriter, event string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, data); err != nil {
		return err
	}
	if flusher, ok := w.(http.Flusher); ok {
		flusher.Flush()
	}
	return nil
}
