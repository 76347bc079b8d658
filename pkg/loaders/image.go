package loaders

import (
	"errors"
	"fmt"
	"image"
	_ "image/jpeg" // JPEG decoder
	_ "image/png"  // PNG decoder
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// ImageExtensions are tried in order when an image is looked up by stem
var ImageExtensions = []string{".png", ".jpg", ".jpeg"}

// ImageData contains loaded image data as a row-major Vec3 color array
type ImageData struct {
	Width  int
	Height int
	Pixels []core.Vec3 // Pixels[y*Width + x], y=0 is the top row
}

// LoadImage loads a PNG or JPEG image and converts it to a Vec3 color array
func LoadImage(filename string) (*ImageData, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open image file: %w", err)
	}
	defer file.Close()

	data, err := DecodeImage(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return data, nil
}

// DecodeImage decodes a PNG or JPEG stream into linear [0,1] colors
func DecodeImage(r io.Reader) (*ImageData, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	pixels := make([]core.Vec3, width*height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, _ := img.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
			// RGBA returns uint32 in [0, 65535]
			pixels[y*width+x] = core.NewVec3(
				float64(r)/65535.0,
				float64(g)/65535.0,
				float64(b)/65535.0,
			)
		}
	}

	return &ImageData{
		Width:  width,
		Height: height,
		Pixels: pixels,
	}, nil
}

// LoadImageStem loads dir/stem with the first extension in ImageExtensions that exists
func LoadImageStem(dir, stem string) (*ImageData, error) {
	for _, ext := range ImageExtensions {
		path := filepath.Join(dir, stem+ext)
		if _, err := os.Stat(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("failed to stat %s: %w", path, err)
		}
		return LoadImage(path)
	}
	return nil, fmt.Errorf("no image named %s%v in %s: %w", stem, ImageExtensions, dir, fs.ErrNotExist)
}
