package main

import (
	"flag"
	"log"
	"os"

	"github.com/df07/go-whitted-raytracer/pkg/storage"
	"github.com/df07/go-whitted-raytracer/web/server"
)

func main() {
	rootDir := server.LoadEnv()
	config := server.ConfigFromEnv(rootDir)

	// Parse command line flags
	flag.IntVar(&config.Port, "port", config.Port, "Port to serve on")
	flag.StringVar(&config.ScenesDir, "scenes", config.ScenesDir, "Directory of .json scene files")
	flag.Parse()

	var publisher storage.Publisher
	if s3Config := storage.S3ConfigFromEnv(); s3Config.Enabled() {
		s3Publisher, err := storage.NewS3Publisher(s3Config)
		if err != nil {
			log.Fatalf("Failed to configure storage: %v", err)
		}
		publisher = s3Publisher
		log.Printf("Publishing renders to bucket %s", s3Config.Bucket)
	}

	// Create and start web server
	webServer := server.NewServer(config, publisher)

	log.Printf("Whitted Raytracer Web Server")
	log.Printf("Try http://localhost:%d/api/render?scene=default", config.Port)

	if err := webServer.Start(); err != nil {
		log.Printf("Error starting server: %v", err)
		os.Exit(1)
	}
}
