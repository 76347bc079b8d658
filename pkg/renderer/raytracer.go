package renderer

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/integrator"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// DefaultLogger implements core.Logger by writing to stdout
type DefaultLogger struct{}

func (dl *DefaultLogger) Printf(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

// NewDefaultLogger creates a new default logger
func NewDefaultLogger() core.Logger {
	return &DefaultLogger{}
}

// RenderConfig contains rendering configuration
type RenderConfig struct {
	Width          int     // Image width
	Height         int     // Image height
	TileSize       int     // Size of each square tile
	SamplesPerAxis int     // Stratified samples per pixel along each axis
	NumWorkers     int     // Number of parallel workers (0 = use CPU count)
	Gamma          float64 // Output gamma; 0 or 1 writes linear values
}

// DefaultRenderConfig returns sensible default values
func DefaultRenderConfig() RenderConfig {
	return RenderConfig{
		Width:          400,
		Height:         300,
		TileSize:       32,
		SamplesPerAxis: 1,
		NumWorkers:     0,
		Gamma:          0,
	}
}

// Validate checks the config for values that cannot render
func (c RenderConfig) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("invalid image size %dx%d", c.Width, c.Height)
	}
	if c.TileSize <= 0 {
		return fmt.Errorf("invalid tile size %d", c.TileSize)
	}
	if c.SamplesPerAxis <= 0 {
		return fmt.Errorf("invalid samples per axis %d", c.SamplesPerAxis)
	}
	if c.Gamma < 0 {
		return fmt.Errorf("invalid gamma %g", c.Gamma)
	}
	return nil
}

// Raytracer renders a scene through a camera. It holds no mutable state
// and is shared by all workers.
type Raytracer struct {
	scene      *scene.Scene
	camera     *Camera
	integrator integrator.Integrator
	config     RenderConfig
	logger     core.Logger
}

// NewRaytracer creates a raytracer using the Whitted integrator
func NewRaytracer(s *scene.Scene, camera *Camera, config RenderConfig, logger core.Logger) *Raytracer {
	if logger == nil {
		logger = NewDefaultLogger()
	}
	return &Raytracer{
		scene:      s,
		camera:     camera,
		integrator: integrator.NewWhittedIntegrator(),
		config:     config,
		logger:     logger,
	}
}

// SetIntegrator replaces the light transport algorithm
func (rt *Raytracer) SetIntegrator(i integrator.Integrator) {
	rt.integrator = i
}

// Render traces every pixel in parallel tiles and returns a non-premultiplied
// image whose alpha is the fraction of primary rays that hit geometry
func (rt *Raytracer) Render(ctx context.Context) (*image.NRGBA, RenderStats, error) {
	if err := rt.config.Validate(); err != nil {
		return nil, RenderStats{}, err
	}

	startTime := time.Now()
	img := image.NewNRGBA(image.Rect(0, 0, rt.config.Width, rt.config.Height))
	tiles := NewTileGrid(rt.config.Width, rt.config.Height, rt.config.TileSize)

	pool := NewWorkerPool(rt, rt.config.NumWorkers, len(tiles))
	rt.logger.Printf("Rendering %dx%d (%d tiles, %d workers, %d spp, bounce limit %d)...\n",
		rt.config.Width, rt.config.Height, len(tiles), pool.GetNumWorkers(),
		rt.config.SamplesPerAxis*rt.config.SamplesPerAxis, rt.scene.BounceLimit())

	pool.Start(ctx)
	for _, tile := range tiles {
		pool.SubmitTask(TileTask{Tile: tile, Image: img, TaskID: tile.ID})
	}

	var stats RenderStats
	var firstErr error
	for i := 0; i < len(tiles); i++ {
		result, ok := pool.GetResult()
		if !ok {
			firstErr = fmt.Errorf("worker pool closed unexpectedly")
			break
		}
		if result.Error != nil {
			if firstErr == nil {
				firstErr = result.Error
			}
			continue
		}
		stats.Merge(result.Stats)
	}
	pool.Stop()

	stats.Duration = time.Since(startTime)
	if firstErr != nil {
		return nil, stats, fmt.Errorf("render aborted: %w", firstErr)
	}

	rt.logger.Printf("Render completed in %v (%d rays, %d shadow rays, %d bounces, %.1f%% coverage)\n",
		stats.Duration, stats.IntersectionTests, stats.ShadowRays, stats.Bounces, 100*stats.Coverage())
	return img, stats, nil
}

// RenderBounds renders the pixels inside bounds into img. Tiles must not
// overlap when rendered concurrently.
func (rt *Raytracer) RenderBounds(bounds image.Rectangle, img *image.NRGBA) RenderStats {
	stats := RenderStats{TotalPixels: bounds.Dx() * bounds.Dy()}

	for j := bounds.Min.Y; j < bounds.Max.Y; j++ {
		for i := bounds.Min.X; i < bounds.Max.X; i++ {
			c, alpha := rt.samplePixel(i, j, &stats)
			img.SetNRGBA(i, j, rt.vec3ToColor(c, alpha))
		}
	}

	return stats
}

// samplePixel averages a regular grid of primary rays across the pixel.
// Alpha is the fraction of those rays that hit geometry.
func (rt *Raytracer) samplePixel(i, j int, stats *RenderStats) (core.Vec3, float64) {
	n := rt.config.SamplesPerAxis
	colorAccum := core.Vec3{}
	opaque := 0

	for sy := 0; sy < n; sy++ {
		for sx := 0; sx < n; sx++ {
			ray := rt.camera.GetRay(i, j, (float64(sx)+0.5)/float64(n), (float64(sy)+0.5)/float64(n))
			c, hit := rt.integrator.RayColor(ray, rt.scene, &stats.TraceStats)
			colorAccum = colorAccum.Add(c)
			if hit {
				opaque++
			}
		}
	}

	samples := n * n
	stats.TotalSamples += samples
	stats.OpaqueSamples += opaque
	return colorAccum.Multiply(1.0 / float64(samples)), float64(opaque) / float64(samples)
}

// vec3ToColor converts a linear color to 8-bit with gamma and clamping.
// NaN channels become 0.
func (rt *Raytracer) vec3ToColor(colorVec core.Vec3, alpha float64) color.NRGBA {
	colorVec = colorVec.Clamp(0.0, 1.0)
	if rt.config.Gamma > 0 && rt.config.Gamma != 1 {
		colorVec = colorVec.GammaCorrect(rt.config.Gamma)
	}

	return color.NRGBA{
		R: uint8(255*colorVec.X + 0.5),
		G: uint8(255*colorVec.Y + 0.5),
		B: uint8(255*colorVec.Z + 0.5),
		A: uint8(255*alpha + 0.5),
	}
}
