package renderer

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// CameraConfig describes a pinhole camera and its image size
type CameraConfig struct {
	Center core.Vec3 // Camera position
	LookAt core.Vec3 // Point the camera looks at
	Up     core.Vec3 // Up direction
	VFov   float64   // Vertical field of view in degrees
	Width  int       // Image width in pixels
	Height int       // Image height in pixels
}

// CameraConfigFromViewpoint combines a scene's recommended viewpoint with an image size
func CameraConfigFromViewpoint(vp scene.Viewpoint, width, height int) CameraConfig {
	return CameraConfig{
		Center: vp.Center,
		LookAt: vp.LookAt,
		Up:     vp.Up,
		VFov:   vp.VFov,
		Width:  width,
		Height: height,
	}
}

// Camera generates primary rays for pixels
type Camera struct {
	origin     core.Vec3
	upperLeft  core.Vec3
	horizontal core.Vec3
	vertical   core.Vec3
	width      int
	height     int
}

// NewCamera creates a pinhole camera from the config
func NewCamera(config CameraConfig) *Camera {
	aspectRatio := float64(config.Width) / float64(config.Height)
	theta := config.VFov * math.Pi / 180.0
	viewportHeight := 2.0 * math.Tan(theta/2)
	viewportWidth := aspectRatio * viewportHeight

	// Orthonormal camera basis; w points backwards
	w := config.Center.Subtract(config.LookAt).Normalize()
	u := config.Up.Cross(w).Normalize()
	v := w.Cross(u)

	horizontal := u.Multiply(viewportWidth)
	vertical := v.Multiply(viewportHeight)
	upperLeft := config.Center.
		Subtract(w).
		Subtract(horizontal.Multiply(0.5)).
		Add(vertical.Multiply(0.5))

	return &Camera{
		origin:     config.Center,
		upperLeft:  upperLeft,
		horizontal: horizontal,
		vertical:   vertical,
		width:      config.Width,
		height:     config.Height,
	}
}

// GetRay returns the ray through pixel (i, j), with j counted from the top
// row, offset by (sx, sy) within the pixel. The direction is not normalized.
func (c *Camera) GetRay(i, j int, sx, sy float64) core.Ray {
	s := (float64(i) + sx) / float64(c.width)
	t := (float64(j) + sy) / float64(c.height)

	direction := c.upperLeft.
		Add(c.horizontal.Multiply(s)).
		Subtract(c.vertical.Multiply(t)).
		Subtract(c.origin)

	return core.NewRay(c.origin, direction)
}
