package integrator

import (
	"math"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// countingEnvironment records how often it is consulted
type countingEnvironment struct {
	color core.Vec3
	calls int
}

func (e *countingEnvironment) Lookup(direction core.Vec3) core.Vec3 {
	e.calls++
	return e.color
}

func newTestScene(t *testing.T, spheres []scene.Sphere, lights []scene.Light, env core.Environment, bounceLimit int) *scene.Scene {
	t.Helper()
	s, err := scene.NewScene(spheres, lights, env, bounceLimit, scene.DefaultLimits())
	if err != nil {
		t.Fatalf("Failed to build test scene: %v", err)
	}
	return s
}

func assertVecNear(t *testing.T, name string, got, expected core.Vec3) {
	t.Helper()
	const tolerance = 1e-9
	if math.Abs(got.X-expected.X) > tolerance ||
		math.Abs(got.Y-expected.Y) > tolerance ||
		math.Abs(got.Z-expected.Z) > tolerance {
		t.Errorf("%s: expected %v, got %v", name, expected, got)
	}
}

func gray(v float64) core.Vec3 {
	return core.NewVec3(v, v, v)
}
