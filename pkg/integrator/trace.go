package integrator

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// MaxBounces is the fixed ceiling on reflection bounces per trace,
// independent of a scene's configurable bounce limit
const MaxBounces = scene.MaxBounces

// Trace returns the color seen along ray and whether the primary ray hit
// any sphere. Escaping primary rays return the environment color with
// opaque=false and no shading.
func Trace(ray core.Ray, s *scene.Scene) (core.Vec3, bool) {
	return tracer{}.trace(ray, s)
}

// TraceWithStats is Trace with work counters accumulated into stats
func TraceWithStats(ray core.Ray, s *scene.Scene, stats *TraceStats) (core.Vec3, bool) {
	return tracer{stats: stats}.trace(ray, s)
}

func (tr tracer) trace(ray core.Ray, s *scene.Scene) (core.Vec3, bool) {
	spheres := s.Spheres()

	hit, isHit := tr.intersect(ray, spheres)
	if !isHit {
		return s.Environment().Lookup(ray.Direction), false
	}

	view := ray.Direction.Negate().Normalize()
	color := tr.shade(hit.Material, hit.Position, hit.Normal, view, s)
	atten := hit.Material.Specular

	limit := min(s.BounceLimit(), MaxBounces)
	for bounce := 0; bounce < limit; bounce++ {
		if atten.Sum() <= 0 {
			break
		}

		// Secondary rays start exactly at the hit point, without an offset
		reflected := core.NewRay(hit.Position, core.Reflect(view.Negate(), hit.Normal))
		if tr.stats != nil {
			tr.stats.Bounces++
		}

		next, ok := tr.intersect(reflected, spheres)
		if !ok {
			color = color.Add(atten.MultiplyVec(s.Environment().Lookup(reflected.Direction)))
			break
		}

		view = reflected.Direction.Negate().Normalize()
		color = color.Add(atten.MultiplyVec(tr.shade(next.Material, next.Position, next.Normal, view, s)))
		atten = atten.MultiplyVec(next.Material.Specular)
		hit = next
	}

	return color, true
}
