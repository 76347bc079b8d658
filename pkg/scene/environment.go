package scene

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// UniformEnvironment returns the same color in every direction
type UniformEnvironment struct {
	Color core.Vec3
}

// NewUniformEnvironment creates a constant environment
func NewUniformEnvironment(color core.Vec3) *UniformEnvironment {
	return &UniformEnvironment{Color: color}
}

// Lookup implements core.Environment
func (e *UniformEnvironment) Lookup(direction core.Vec3) core.Vec3 {
	return e.Color
}

// GradientEnvironment blends between a bottom and a top color by the
// elevation of the lookup direction
type GradientEnvironment struct {
	Top    core.Vec3
	Bottom core.Vec3
}

// NewGradientEnvironment creates a sky-style gradient environment
func NewGradientEnvironment(top, bottom core.Vec3) *GradientEnvironment {
	return &GradientEnvironment{Top: top, Bottom: bottom}
}

// Lookup implements core.Environment
func (e *GradientEnvironment) Lookup(direction core.Vec3) core.Vec3 {
	unitDirection := direction.Normalize()

	// Map y from [-1,1] to [0,1]
	t := 0.5 * (unitDirection.Y + 1.0)

	return e.Bottom.Multiply(1.0 - t).Add(e.Top.Multiply(t))
}
