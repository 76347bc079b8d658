package integrator

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// HitInfo describes the nearest intersection along a ray.
// It is only meaningful when returned together with a true hit flag.
type HitInfo struct {
	T        float64   // ray parameter, in multiples of the ray direction
	Position core.Vec3 // origin + T*direction
	Normal   core.Vec3 // outward unit normal
	Material scene.Material
}

// Intersect returns the nearest sphere hit with t > 0.
//
// Only the near root of each quadratic is considered, so a ray starting
// inside a sphere does not hit that sphere. A zero direction never hits.
func Intersect(ray core.Ray, spheres []scene.Sphere) (HitInfo, bool) {
	hit := HitInfo{T: math.Inf(1)}
	found := false

	a := ray.Direction.Dot(ray.Direction)
	if a == 0 {
		return HitInfo{}, false
	}

	for i := range spheres {
		t, ok := nearRoot(ray, a, &spheres[i])
		if !ok || t >= hit.T {
			continue
		}
		found = true
		hit.T = t
		hit.Position = ray.At(t)
		hit.Normal = hit.Position.Subtract(spheres[i].Center).Normalize()
		hit.Material = spheres[i].Material
	}

	if !found {
		return HitInfo{}, false
	}
	return hit, true
}

// Occluded reports whether the ray hits any sphere at t > 0, wherever it is.
// It answers the same question as Intersect's hit flag without building a HitInfo.
func Occluded(ray core.Ray, spheres []scene.Sphere) bool {
	a := ray.Direction.Dot(ray.Direction)
	if a == 0 {
		return false
	}
	for i := range spheres {
		if _, ok := nearRoot(ray, a, &spheres[i]); ok {
			return true
		}
	}
	return false
}

// nearRoot solves a*t² + b*t + c = 0 for the sphere and returns the smaller
// root when it lies in front of the origin
func nearRoot(ray core.Ray, a float64, s *scene.Sphere) (float64, bool) {
	oc := ray.Origin.Subtract(s.Center)
	b := 2.0 * ray.Direction.Dot(oc)
	c := oc.Dot(oc) - s.Radius*s.Radius

	discriminant := b*b - 4.0*a*c
	if discriminant < 0 {
		return 0, false
	}

	t := (-b - math.Sqrt(discriminant)) / (2.0 * a)
	return t, t > 0
}

func (tr tracer) intersect(ray core.Ray, spheres []scene.Sphere) (HitInfo, bool) {
	if tr.stats != nil {
		tr.stats.IntersectionTests++
	}
	return Intersect(ray, spheres)
}

func (tr tracer) occluded(ray core.Ray, spheres []scene.Sphere) bool {
	if tr.stats != nil {
		tr.stats.ShadowRays++
	}
	return Occluded(ray, spheres)
}
