package integrator

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// RayColor returns the color seen along ray and whether the ray hit
	// geometry (opaque) or escaped to the environment. stats may be nil.
	RayColor(ray core.Ray, s *scene.Scene, stats *TraceStats) (core.Vec3, bool)
}

// TraceStats counts the work done by one or more traces
type TraceStats struct {
	IntersectionTests int // nearest-hit queries (primary and reflection rays)
	ShadowRays        int // visibility queries toward lights
	Bounces           int // reflection rays that were cast
}

// Add accumulates other into ts
func (ts *TraceStats) Add(other TraceStats) {
	ts.IntersectionTests += other.IntersectionTests
	ts.ShadowRays += other.ShadowRays
	ts.Bounces += other.Bounces
}

// WhittedIntegrator shades with direct Blinn-Phong lighting and follows a
// bounded chain of mirror reflections
type WhittedIntegrator struct{}

// NewWhittedIntegrator creates a new Whitted-style integrator
func NewWhittedIntegrator() *WhittedIntegrator {
	return &WhittedIntegrator{}
}

// RayColor implements Integrator
func (wi *WhittedIntegrator) RayColor(ray core.Ray, s *scene.Scene, stats *TraceStats) (core.Vec3, bool) {
	return tracer{stats: stats}.trace(ray, s)
}

// tracer carries optional statistics through the kernel.
// A nil stats pointer disables counting.
type tracer struct {
	stats *TraceStats
}
