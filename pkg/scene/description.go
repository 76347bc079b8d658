package scene

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Viewpoint is the camera placement a scene recommends
type Viewpoint struct {
	Center core.Vec3
	LookAt core.Vec3
	Up     core.Vec3
	VFov   float64 // vertical field of view in degrees
}

// DefaultViewpoint looks down -Z from z=5
func DefaultViewpoint() Viewpoint {
	return Viewpoint{
		Center: core.NewVec3(0, 0, 5),
		LookAt: core.NewVec3(0, 0, 0),
		Up:     core.NewVec3(0, 1, 0),
		VFov:   45,
	}
}

// Description is the mutable, unvalidated form of a scene as produced by
// built-in constructors and scene files
type Description struct {
	Name        string
	Viewpoint   Viewpoint
	Spheres     []Sphere
	Lights      []Light
	Environment core.Environment
	BounceLimit int
}

// Build validates the description and returns an immutable Scene
func (d Description) Build(limits Limits) (*Scene, error) {
	return NewScene(d.Spheres, d.Lights, d.Environment, d.BounceLimit, limits)
}
