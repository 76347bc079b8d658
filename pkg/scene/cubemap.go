package scene

import (
	"fmt"
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// CubeFaceIndex identifies a cube map face, in +X, -X, +Y, -Y, +Z, -Z order
type CubeFaceIndex int

const (
	FacePositiveX CubeFaceIndex = iota
	FaceNegativeX
	FacePositiveY
	FaceNegativeY
	FacePositiveZ
	FaceNegativeZ
)

// FaceNames are the conventional file stems for the six faces
var FaceNames = [6]string{"posx", "negx", "posy", "negy", "posz", "negz"}

// CubeFace is one square image of a cube map, stored row-major from the top row
type CubeFace struct {
	Width  int
	Height int
	Pixels []core.Vec3
}

// Swizzle remaps a lookup direction before selecting a face
type Swizzle int

const (
	SwizzleNone Swizzle = iota
	// SwizzleXZY looks up (x, z, y), for cube maps authored Y-up but
	// sampled in a Z-up world
	SwizzleXZY
)

// ParseSwizzle converts "", "xyz" or "xzy" to a Swizzle
func ParseSwizzle(s string) (Swizzle, error) {
	switch s {
	case "", "xyz":
		return SwizzleNone, nil
	case "xzy":
		return SwizzleXZY, nil
	}
	return SwizzleNone, fmt.Errorf("unknown swizzle %q", s)
}

// CubeMap is a directional environment backed by six images
type CubeMap struct {
	faces   [6]CubeFace
	swizzle Swizzle
}

// NewCubeMap validates the faces and creates a cube map environment
func NewCubeMap(faces [6]CubeFace, swizzle Swizzle) (*CubeMap, error) {
	for i, f := range faces {
		if f.Width <= 0 || f.Height <= 0 {
			return nil, fmt.Errorf("cube face %s is empty", FaceNames[i])
		}
		if len(f.Pixels) != f.Width*f.Height {
			return nil, fmt.Errorf("cube face %s has %d pixels, expected %d",
				FaceNames[i], len(f.Pixels), f.Width*f.Height)
		}
	}
	return &CubeMap{faces: faces, swizzle: swizzle}, nil
}

// Lookup implements core.Environment using nearest-texel sampling
func (c *CubeMap) Lookup(direction core.Vec3) core.Vec3 {
	d := direction.Normalize()
	if c.swizzle == SwizzleXZY {
		d = d.SwizzleXZY()
	}
	face, s, t := cubeFaceCoords(d)
	return c.faces[face].texel(s, t)
}

// cubeFaceCoords selects the face by major axis and returns face-local
// coordinates in [0,1], following the OpenGL cube map convention
func cubeFaceCoords(d core.Vec3) (CubeFaceIndex, float64, float64) {
	ax, ay, az := math.Abs(d.X), math.Abs(d.Y), math.Abs(d.Z)

	var face CubeFaceIndex
	var sc, tc, ma float64
	switch {
	case ax >= ay && ax >= az:
		ma = ax
		if d.X > 0 {
			face, sc, tc = FacePositiveX, -d.Z, -d.Y
		} else {
			face, sc, tc = FaceNegativeX, d.Z, -d.Y
		}
	case ay >= az:
		ma = ay
		if d.Y > 0 {
			face, sc, tc = FacePositiveY, d.X, d.Z
		} else {
			face, sc, tc = FaceNegativeY, d.X, -d.Z
		}
	default:
		ma = az
		if d.Z > 0 {
			face, sc, tc = FacePositiveZ, d.X, -d.Y
		} else {
			face, sc, tc = FaceNegativeZ, -d.X, -d.Y
		}
	}

	s := 0.5 * (sc/ma + 1)
	t := 0.5 * (tc/ma + 1)
	return face, s, t
}

func (f *CubeFace) texel(s, t float64) core.Vec3 {
	x := clampIndex(s*float64(f.Width), f.Width)
	y := clampIndex(t*float64(f.Height), f.Height)
	return f.Pixels[y*f.Width+x]
}

func clampIndex(v float64, size int) int {
	if !(v > 0) {
		// also catches NaN from a zero direction
		return 0
	}
	if v >= float64(size) {
		return size - 1
	}
	return int(v)
}
