package scene

import (
	"errors"
	"fmt"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// MaxBounces is the hard ceiling on reflection bounces for any scene.
// A scene's bounce limit is always clamped at or below this value.
const MaxBounces = 5

var (
	ErrTooManySpheres     = errors.New("too many spheres")
	ErrTooManyLights      = errors.New("too many lights")
	ErrInvalidSphere      = errors.New("invalid sphere")
	ErrInvalidMaterial    = errors.New("invalid material")
	ErrNoEnvironment      = errors.New("environment is required")
	ErrInvalidBounceLimit = errors.New("invalid bounce limit")
	ErrInvalidLimits      = errors.New("invalid scene limits")
)

// Material describes the local reflectance of a surface.
// Coefficients are not required to sum to one.
type Material struct {
	Diffuse   core.Vec3 // k_d
	Specular  core.Vec3 // k_s, also the mirror reflectance for bounces
	Shininess float64   // Blinn exponent n
}

// NewMaterial creates a new material
func NewMaterial(diffuse, specular core.Vec3, shininess float64) Material {
	return Material{Diffuse: diffuse, Specular: specular, Shininess: shininess}
}

func (m Material) validate() error {
	if m.Shininess < 0 {
		return fmt.Errorf("%w: shininess %g is negative", ErrInvalidMaterial, m.Shininess)
	}
	if m.Diffuse.X < 0 || m.Diffuse.Y < 0 || m.Diffuse.Z < 0 {
		return fmt.Errorf("%w: negative diffuse coefficient %v", ErrInvalidMaterial, m.Diffuse)
	}
	if m.Specular.X < 0 || m.Specular.Y < 0 || m.Specular.Z < 0 {
		return fmt.Errorf("%w: negative specular coefficient %v", ErrInvalidMaterial, m.Specular)
	}
	return nil
}

// Sphere is the only primitive the tracer understands
type Sphere struct {
	Center   core.Vec3
	Radius   float64
	Material Material
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float64, material Material) Sphere {
	return Sphere{Center: center, Radius: radius, Material: material}
}

// Light is a point light. Intensity does not fall off with distance.
type Light struct {
	Position  core.Vec3
	Intensity core.Vec3
}

// NewLight creates a new point light
func NewLight(position, intensity core.Vec3) Light {
	return Light{Position: position, Intensity: intensity}
}

// Limits bounds the size of a scene
type Limits struct {
	MaxSpheres int
	MaxLights  int
	MaxBounces int // must not exceed the package MaxBounces
}

// DefaultLimits returns the limits used by built-in and file scenes
func DefaultLimits() Limits {
	return Limits{
		MaxSpheres: 32,
		MaxLights:  16,
		MaxBounces: MaxBounces,
	}
}

func (l Limits) validate() error {
	if l.MaxSpheres < 0 || l.MaxLights < 0 {
		return fmt.Errorf("%w: negative primitive limit", ErrInvalidLimits)
	}
	if l.MaxBounces < 0 || l.MaxBounces > MaxBounces {
		return fmt.Errorf("%w: max bounces %d outside [0, %d]", ErrInvalidLimits, l.MaxBounces, MaxBounces)
	}
	return nil
}

// Scene is an immutable snapshot of everything a trace reads.
// It is safe for concurrent use by any number of traces.
type Scene struct {
	spheres     []Sphere
	lights      []Light
	environment core.Environment
	bounceLimit int
	limits      Limits
}

// NewScene validates the inputs and builds a snapshot. The sphere and light
// slices are copied, so later changes by the caller do not affect the scene.
// A bounce limit above limits.MaxBounces is clamped.
func NewScene(spheres []Sphere, lights []Light, env core.Environment, bounceLimit int, limits Limits) (*Scene, error) {
	if err := limits.validate(); err != nil {
		return nil, err
	}
	if env == nil {
		return nil, ErrNoEnvironment
	}
	if len(spheres) > limits.MaxSpheres {
		return nil, fmt.Errorf("%w: %d exceeds limit %d", ErrTooManySpheres, len(spheres), limits.MaxSpheres)
	}
	if len(lights) > limits.MaxLights {
		return nil, fmt.Errorf("%w: %d exceeds limit %d", ErrTooManyLights, len(lights), limits.MaxLights)
	}
	for i, s := range spheres {
		if !(s.Radius > 0) {
			return nil, fmt.Errorf("%w: sphere %d has radius %g", ErrInvalidSphere, i, s.Radius)
		}
		if err := s.Material.validate(); err != nil {
			return nil, fmt.Errorf("sphere %d: %w", i, err)
		}
	}

	s := &Scene{
		spheres:     append([]Sphere(nil), spheres...),
		lights:      append([]Light(nil), lights...),
		environment: env,
		limits:      limits,
	}
	if err := s.setBounceLimit(bounceLimit); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Scene) setBounceLimit(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d is negative", ErrInvalidBounceLimit, n)
	}
	s.bounceLimit = min(n, s.limits.MaxBounces)
	return nil
}

// WithBounceLimit returns a copy of the scene with a different bounce limit.
// The receiver is left untouched so in-flight traces are unaffected.
func (s *Scene) WithBounceLimit(n int) (*Scene, error) {
	clone := *s
	if err := clone.setBounceLimit(n); err != nil {
		return nil, err
	}
	return &clone, nil
}

// Spheres returns the scene primitives in order. The slice must not be modified.
func (s *Scene) Spheres() []Sphere { return s.spheres }

// Lights returns the scene lights in order. The slice must not be modified.
func (s *Scene) Lights() []Light { return s.lights }

// Environment returns the lookup used for escaping rays
func (s *Scene) Environment() core.Environment { return s.environment }

// BounceLimit returns the configured number of reflection bounces
func (s *Scene) BounceLimit() int { return s.bounceLimit }

// Limits returns the limits the scene was validated against
func (s *Scene) Limits() Limits { return s.limits }
