package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
	"github.com/df07/go-whitted-raytracer/pkg/storage"
)

// Config holds the command line options
type Config struct {
	SceneType string
	Width     int
	Height    int
	Samples   int
	Bounces   int
	Workers   int
	Gamma     float64
	Thumb     uint
	Output    string
	Publish   bool
	EnvFile   string
	Help      bool
}

func main() {
	config := parseFlags()

	if config.Help {
		showHelp()
		return
	}

	if config.EnvFile != "" {
		// A missing .env file is fine; variables may come from the environment
		_ = godotenv.Load(config.EnvFile)
	}

	fmt.Println("Starting Whitted Raytracer...")

	if err := run(context.Background(), config); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

// parseFlags parses command line flags and returns configuration
func parseFlags() Config {
	config := Config{}
	flag.StringVar(&config.SceneType, "scene", "default", "Scene: built-in name or path to a .json scene file")
	flag.IntVar(&config.Width, "width", 400, "Image width in pixels")
	flag.IntVar(&config.Height, "height", 300, "Image height in pixels")
	flag.IntVar(&config.Samples, "samples", 2, "Stratified samples per pixel along each axis")
	flag.IntVar(&config.Bounces, "bounces", -1, "Reflection bounce limit (-1 = scene default)")
	flag.IntVar(&config.Workers, "workers", 0, "Number of parallel workers (0 = auto)")
	flag.Float64Var(&config.Gamma, "gamma", 2.2, "Output gamma (0 or 1 = linear)")
	flag.UintVar(&config.Thumb, "thumb", 0, "Also write a thumbnail fitting within this size (0 = none)")
	flag.StringVar(&config.Output, "out", "", "Output PNG path (default output/<scene>/render_<timestamp>.png)")
	flag.BoolVar(&config.Publish, "publish", false, "Upload the render to S3 (S3_* environment variables)")
	flag.StringVar(&config.EnvFile, "env-file", ".env", "Environment file to load before publishing")
	flag.BoolVar(&config.Help, "help", false, "Show help information")
	flag.Parse()
	return config
}

func showHelp() {
	fmt.Println("Whitted Raytracer")
	fmt.Println("Usage: raytracer [options]")
	fmt.Println()
	fmt.Println("Options:")
	flag.PrintDefaults()
	fmt.Println()
	fmt.Println("Available scenes:")
	for _, info := range scene.ListBuiltinScenes() {
		fmt.Printf("  %-12s - %s\n", info.ID, info.Description)
	}
	fmt.Println("  <file>.json  - Scene file (see scenes/)")
	fmt.Println()
	fmt.Println("Output will be saved to output/<scene>/render_<timestamp>.png")
}

// createScene resolves a built-in scene name or a JSON scene file path
func createScene(sceneType string) (scene.Description, error) {
	if strings.HasSuffix(sceneType, ".json") {
		desc, err := scene.LoadSceneFile(sceneType)
		if err != nil {
			return scene.Description{}, fmt.Errorf("failed to load scene file: %w", err)
		}
		return desc, nil
	}
	return scene.LookupBuiltin(sceneType)
}

func run(ctx context.Context, config Config) error {
	desc, err := createScene(config.SceneType)
	if err != nil {
		return err
	}
	fmt.Printf("Using %s scene...\n", desc.Name)

	if config.Bounces >= 0 {
		desc.BounceLimit = config.Bounces
	}
	s, err := desc.Build(scene.DefaultLimits())
	if err != nil {
		return fmt.Errorf("invalid scene %q: %w", desc.Name, err)
	}

	renderConfig := renderer.DefaultRenderConfig()
	renderConfig.Width = config.Width
	renderConfig.Height = config.Height
	renderConfig.SamplesPerAxis = config.Samples
	renderConfig.NumWorkers = config.Workers
	renderConfig.Gamma = config.Gamma

	camera := renderer.NewCamera(renderer.CameraConfigFromViewpoint(desc.Viewpoint, config.Width, config.Height))
	raytracer := renderer.NewRaytracer(s, camera, renderConfig, renderer.NewDefaultLogger())

	img, stats, err := raytracer.Render(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("Samples: %d (%.1f%% opaque), average luminance %.3f\n",
		stats.TotalSamples, 100*stats.Coverage(), renderer.CalculateAverageLuminance(img))

	data, err := renderer.EncodePNG(img)
	if err != nil {
		return err
	}

	filename := config.Output
	if filename == "" {
		timestamp := time.Now().Format("20060102_150405")
		filename = filepath.Join("output", desc.Name, fmt.Sprintf("render_%s.png", timestamp))
	}
	if err := writeFile(filename, data); err != nil {
		return err
	}
	fmt.Printf("Render saved as %s\n", filename)

	if config.Thumb > 0 {
		thumbData, err := renderer.EncodePNG(renderer.Thumbnail(img, config.Thumb))
		if err != nil {
			return err
		}
		thumbName := strings.TrimSuffix(filename, ".png") + "_thumb.png"
		if err := writeFile(thumbName, thumbData); err != nil {
			return err
		}
		fmt.Printf("Thumbnail saved as %s\n", thumbName)
	}

	if config.Publish {
		publisher, err := storage.NewS3Publisher(storage.S3ConfigFromEnv())
		if err != nil {
			return fmt.Errorf("cannot publish: %w", err)
		}
		key := storage.ObjectKey(desc.Name, config.Width, config.Height, time.Now())
		url, err := publisher.Publish(ctx, key, data)
		if err != nil {
			return err
		}
		fmt.Printf("Published to %s\n", url)
	}

	return nil
}

func writeFile(filename string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(filename), 0755); err != nil {
		return fmt.Errorf("error creating output directory: %w", err)
	}
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("error saving PNG: %w", err)
	}
	return nil
}
