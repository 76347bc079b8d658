package server

import (
	"encoding/json"
	"fmt"
	"image"
	"log"
	"net/http"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
	"github.com/df07/go-whitted-raytracer/pkg/storage"
)

const (
	defaultWidth   = 400
	defaultHeight  = 300
	defaultSamples = 1
	defaultGamma   = 2.2
	maxImageSize   = 2000
	maxSamples     = 8
)

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene   string  `json:"scene"`   // Built-in scene name or scene file name
	Width   int     `json:"width"`   // Image width
	Height  int     `json:"height"`  // Image height
	Bounces int     `json:"bounces"` // Bounce limit override, -1 keeps the scene's
	Samples int     `json:"samples"` // Stratified samples per pixel along each axis
	Gamma   float64 `json:"gamma"`   // Output gamma
	Thumb   int     `json:"thumb"`   // Thumbnail size, 0 for the full image
	Publish bool    `json:"publish"` // Upload the PNG to object storage
}

// Stats represents render statistics sent in the X-Render-Stats header
type Stats struct {
	RenderID          string  `json:"renderId"`
	Scene             string  `json:"scene"`
	Width             int     `json:"width"`
	Height            int     `json:"height"`
	BounceLimit       int     `json:"bounceLimit"`
	TotalPixels       int     `json:"totalPixels"`
	TotalSamples      int     `json:"totalSamples"`
	Coverage          float64 `json:"coverage"`
	IntersectionTests int     `json:"intersectionTests"`
	ShadowRays        int     `json:"shadowRays"`
	Bounces           int     `json:"bounces"`
	AverageLuminance  float64 `json:"averageLuminance"`
	ElapsedMs         int64   `json:"elapsedMs"`
	PublishedURL      string  `json:"publishedUrl,omitempty"`
}

// handleRender renders a scene synchronously and responds with a PNG
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseRenderRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}
	if req.Publish && s.publisher == nil {
		writeError(w, http.StatusServiceUnavailable, "Publishing is not configured")
		return
	}

	desc, err := s.createScene(req.Scene)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Bounces >= 0 {
		desc.BounceLimit = req.Bounces
	}
	sceneObj, err := desc.Build(scene.DefaultLimits())
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid scene %q: %v", req.Scene, err))
		return
	}

	renderID := fmt.Sprintf("render-%d", s.renders.Add(1))
	logger := NewWebLogger(renderID, s.console)

	config := renderer.DefaultRenderConfig()
	config.Width = req.Width
	config.Height = req.Height
	config.SamplesPerAxis = req.Samples
	config.Gamma = req.Gamma

	camera := renderer.NewCamera(renderer.CameraConfigFromViewpoint(desc.Viewpoint, req.Width, req.Height))
	raytracer := renderer.NewRaytracer(sceneObj, camera, config, logger)

	// The request context cancels the render when the client goes away
	startTime := time.Now()
	img, renderStats, err := raytracer.Render(r.Context())
	if err != nil {
		logger.Printf("Render failed: %v\n", err)
		writeError(w, http.StatusInternalServerError, "Render error: "+err.Error())
		return
	}

	var out image.Image = img
	if req.Thumb > 0 {
		out = renderer.Thumbnail(img, uint(req.Thumb))
	}
	data, err := renderer.EncodePNG(out)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	stats := Stats{
		RenderID:          renderID,
		Scene:             desc.Name,
		Width:             req.Width,
		Height:            req.Height,
		BounceLimit:       sceneObj.BounceLimit(),
		TotalPixels:       renderStats.TotalPixels,
		TotalSamples:      renderStats.TotalSamples,
		Coverage:          renderStats.Coverage(),
		IntersectionTests: renderStats.IntersectionTests,
		ShadowRays:        renderStats.ShadowRays,
		Bounces:           renderStats.Bounces,
		AverageLuminance:  renderer.CalculateAverageLuminance(img),
		ElapsedMs:         time.Since(startTime).Milliseconds(),
	}

	if req.Publish {
		key := storage.ObjectKey(desc.Name, req.Width, req.Height, startTime)
		url, err := s.publisher.Publish(r.Context(), key, data)
		if err != nil {
			logger.Printf("Publish failed: %v\n", err)
			writeError(w, http.StatusInternalServerError, "Publish failed")
			return
		}
		logger.Printf("Published %s\n", url)
		stats.PublishedURL = url
	}

	statsJSON, err := json.Marshal(stats)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Expose-Headers", "X-Render-Stats")
	w.Header().Set("X-Render-Stats", string(statsJSON))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		log.Printf("Failed to write image for %s: %v", renderID, err)
	}
}

// parseCommonSceneParams parses the scene, width and height shared by render and inspect
func (s *Server) parseCommonSceneParams(r *http.Request, req *RenderRequest) error {
	query := r.URL.Query()

	req.Scene = query.Get("scene")
	if req.Scene == "" {
		req.Scene = "default"
	}

	var err error
	if req.Width, err = parseIntParam(query, "width", defaultWidth, 1, maxImageSize); err != nil {
		return err
	}
	if req.Height, err = parseIntParam(query, "height", defaultHeight, 1, maxImageSize); err != nil {
		return err
	}
	if req.Bounces, err = parseIntParam(query, "bounces", -1, -1, 100); err != nil {
		return err
	}
	return nil
}

// parseRenderRequest parses request parameters
func (s *Server) parseRenderRequest(r *http.Request) (*RenderRequest, error) {
	req := &RenderRequest{}
	if err := s.parseCommonSceneParams(r, req); err != nil {
		return nil, err
	}

	query := r.URL.Query()
	var err error
	if req.Samples, err = parseIntParam(query, "samples", defaultSamples, 1, maxSamples); err != nil {
		return nil, err
	}
	if req.Gamma, err = parseFloatParam(query, "gamma", defaultGamma, 0, 5); err != nil {
		return nil, err
	}
	if req.Thumb, err = parseIntParam(query, "thumb", 0, 0, maxImageSize); err != nil {
		return nil, err
	}
	if req.Publish, err = parseBoolParam(query, "publish"); err != nil {
		return nil, err
	}

	// Performance warning
	if req.Width*req.Height > 800*600 && req.Samples > 4 {
		log.Printf("Render warning: Large image with high samples may render slowly")
	}

	return req, nil
}
