package server

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/df07/go-whitted-raytracer/pkg/scene"
	"github.com/df07/go-whitted-raytracer/pkg/storage"
)

// Server handles web requests for the raytracer
type Server struct {
	config    Config
	publisher storage.Publisher // nil when publishing is not configured
	console   *Console
	renders   atomic.Int64
	mux       *http.ServeMux
}

// NewServer creates a new web server. publisher may be nil.
func NewServer(config Config, publisher storage.Publisher) *Server {
	s := &Server{
		config:    config,
		publisher: publisher,
		console:   NewConsole(100),
		mux:       http.NewServeMux(),
	}

	s.mux.HandleFunc("/api/health", s.handleHealth)
	s.mux.HandleFunc("/api/scenes", s.handleScenes)
	s.mux.HandleFunc("/api/scene-config", s.handleSceneConfig)
	s.mux.HandleFunc("/api/render", s.handleRender)
	s.mux.HandleFunc("/api/inspect", s.handleInspect)
	s.mux.HandleFunc("/api/console", s.handleConsole)

	return s
}

// Handler returns the HTTP handler serving all endpoints
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Start starts the web server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.config.Port)
	log.Printf("Starting web server on http://localhost%s", addr)
	return http.ListenAndServe(addr, s.mux)
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleScenes lists built-in scenes and scene files, grouped
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	response, err := scene.ListAllScenes(s.config.ScenesDir)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, response)
}

// handleSceneConfig returns a scene's defaults and the accepted parameter ranges
func (s *Server) handleSceneConfig(w http.ResponseWriter, r *http.Request) {
	sceneName := r.URL.Query().Get("scene")
	if sceneName == "" {
		sceneName = "default"
	}

	desc, err := s.createScene(sceneName)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	limits := scene.DefaultLimits()
	response := map[string]interface{}{
		"scene": sceneName,
		"defaults": map[string]interface{}{
			"width":       defaultWidth,
			"height":      defaultHeight,
			"samples":     defaultSamples,
			"bounceLimit": desc.BounceLimit,
			"gamma":       defaultGamma,
			"spheres":     len(desc.Spheres),
			"lights":      len(desc.Lights),
		},
		"limits": map[string]interface{}{
			"width":   map[string]int{"min": 1, "max": maxImageSize},
			"height":  map[string]int{"min": 1, "max": maxImageSize},
			"samples": map[string]int{"min": 1, "max": maxSamples},
			"bounces": map[string]int{"min": 0, "max": limits.MaxBounces},
			"spheres": map[string]int{"max": limits.MaxSpheres},
			"lights":  map[string]int{"max": limits.MaxLights},
		},
	}

	writeJSON(w, http.StatusOK, response)
}

// handleConsole returns recent render log messages
func (s *Server) handleConsole(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.console.Recent())
}

// createScene resolves a built-in name, or a .json file inside the scenes directory
func (s *Server) createScene(sceneName string) (scene.Description, error) {
	if strings.HasSuffix(sceneName, ".json") {
		// Only bare file names; never walk outside the scenes directory
		if filepath.Base(sceneName) != sceneName {
			return scene.Description{}, fmt.Errorf("invalid scene file name %q", sceneName)
		}
		return scene.LoadSceneFile(filepath.Join(s.config.ScenesDir, sceneName))
	}
	return scene.LookupBuiltin(sceneName)
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

// parseFloatParam parses a float parameter from URL query with validation
func parseFloatParam(values url.Values, key string, defaultValue, min, max float64) (float64, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %g and %g, got: %g", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// parseBoolParam parses a boolean parameter such as publish=1
func parseBoolParam(values url.Values, key string) (bool, error) {
	value := values.Get(key)
	if value == "" {
		return false, nil
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %s", key, value)
	}
	return parsed, nil
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Failed to write response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
