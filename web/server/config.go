package server

import (
	"os"
	"path"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the web service settings
type Config struct {
	Port      int
	RootDir   string // Directory holding the .env file
	ScenesDir string // Directory searched for scene=<name>.json
}

// getEnv returns an environment variable or a fallback
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// LoadEnv reads RAYTRACER_ROOT_DIR/.env into the process environment.
// A missing file is not an error; it returns the root directory used.
func LoadEnv() string {
	rootDir := getEnv("RAYTRACER_ROOT_DIR", ".")
	_ = godotenv.Load(path.Join(rootDir, ".env"))
	return rootDir
}

// ConfigFromEnv builds the config from RAYTRACER_* variables
func ConfigFromEnv(rootDir string) Config {
	port, err := strconv.Atoi(getEnv("RAYTRACER_PORT", "8080"))
	if err != nil {
		port = 8080
	}
	return Config{
		Port:      port,
		RootDir:   rootDir,
		ScenesDir: getEnv("RAYTRACER_SCENES_DIR", path.Join(rootDir, "scenes")),
	}
}
