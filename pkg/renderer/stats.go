package renderer

import (
	"image"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/integrator"
)

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels   int // Total number of pixels rendered
	TotalSamples  int // Total number of primary rays traced
	OpaqueSamples int // Primary rays that hit geometry
	integrator.TraceStats
	Duration time.Duration
}

// Merge adds the counters of other into rs. Durations are not summed.
func (rs *RenderStats) Merge(other RenderStats) {
	rs.TotalPixels += other.TotalPixels
	rs.TotalSamples += other.TotalSamples
	rs.OpaqueSamples += other.OpaqueSamples
	rs.TraceStats.Add(other.TraceStats)
}

// Coverage returns the fraction of primary rays that hit geometry
func (rs RenderStats) Coverage() float64 {
	if rs.TotalSamples == 0 {
		return 0
	}
	return float64(rs.OpaqueSamples) / float64(rs.TotalSamples)
}

// CalculateAverageLuminance returns the mean Rec. 709 luminance of an image in [0,1]
func CalculateAverageLuminance(img image.Image) float64 {
	bounds := img.Bounds()
	pixels := bounds.Dx() * bounds.Dy()
	if pixels == 0 {
		return 0
	}

	total := 0.0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			total += (0.2126*float64(r) + 0.7152*float64(g) + 0.0722*float64(b)) / 65535.0
		}
	}
	return total / float64(pixels)
}
