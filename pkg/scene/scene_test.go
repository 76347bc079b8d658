package scene

import (
	"errors"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

func testMaterial() Material {
	return NewMaterial(core.NewVec3(0.5, 0.5, 0.5), core.NewVec3(0.5, 0.5, 0.5), 10)
}

func TestNewScene_Validation(t *testing.T) {
	env := NewUniformEnvironment(core.NewVec3(0, 0, 0))
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1, testMaterial())
	light := NewLight(core.NewVec3(0, 5, 0), core.NewVec3(1, 1, 1))
	small := Limits{MaxSpheres: 1, MaxLights: 1, MaxBounces: 3}

	tests := []struct {
		name        string
		spheres     []Sphere
		lights      []Light
		env         core.Environment
		bounceLimit int
		limits      Limits
		expectErr   error
	}{
		{"valid", []Sphere{sphere}, []Light{light}, env, 2, small, nil},
		{"empty scene", nil, nil, env, 0, small, nil},
		{"too many spheres", []Sphere{sphere, sphere}, nil, env, 0, small, ErrTooManySpheres},
		{"too many lights", nil, []Light{light, light}, env, 0, small, ErrTooManyLights},
		{"nil environment", nil, nil, nil, 0, small, ErrNoEnvironment},
		{"negative bounce limit", nil, nil, env, -1, small, ErrInvalidBounceLimit},
		{"zero radius", []Sphere{NewSphere(core.Vec3{}, 0, testMaterial())}, nil, env, 0, small, ErrInvalidSphere},
		{"negative radius", []Sphere{NewSphere(core.Vec3{}, -1, testMaterial())}, nil, env, 0, small, ErrInvalidSphere},
		{"negative shininess", []Sphere{NewSphere(core.Vec3{}, 1, NewMaterial(core.Vec3{}, core.Vec3{}, -1))}, nil, env, 0, small, ErrInvalidMaterial},
		{"negative diffuse", []Sphere{NewSphere(core.Vec3{}, 1, NewMaterial(core.NewVec3(-0.1, 0, 0), core.Vec3{}, 1))}, nil, env, 0, small, ErrInvalidMaterial},
		{"negative specular", []Sphere{NewSphere(core.Vec3{}, 1, NewMaterial(core.Vec3{}, core.NewVec3(0, 0, -0.1), 1))}, nil, env, 0, small, ErrInvalidMaterial},
		{"limits above ceiling", nil, nil, env, 0, Limits{MaxBounces: MaxBounces + 1}, ErrInvalidLimits},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewScene(tt.spheres, tt.lights, tt.env, tt.bounceLimit, tt.limits)
			if tt.expectErr == nil {
				if err != nil {
					t.Fatalf("Unexpected error: %v", err)
				}
				if s == nil {
					t.Fatal("Expected scene, got nil")
				}
				return
			}
			if !errors.Is(err, tt.expectErr) {
				t.Errorf("Expected %v, got %v", tt.expectErr, err)
			}
			if s != nil {
				t.Errorf("Expected nil scene on error, got %+v", s)
			}
		})
	}
}

func TestNewScene_ClampsBounceLimit(t *testing.T) {
	env := NewUniformEnvironment(core.Vec3{})

	s, err := NewScene(nil, nil, env, 100, DefaultLimits())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if s.BounceLimit() != MaxBounces {
		t.Errorf("Expected bounce limit clamped to %d, got %d", MaxBounces, s.BounceLimit())
	}

	lowered := Limits{MaxSpheres: 4, MaxLights: 4, MaxBounces: 2}
	s, err = NewScene(nil, nil, env, 4, lowered)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if s.BounceLimit() != 2 {
		t.Errorf("Expected bounce limit clamped to 2, got %d", s.BounceLimit())
	}
}

func TestNewScene_CopiesInputs(t *testing.T) {
	spheres := []Sphere{NewSphere(core.NewVec3(0, 0, 0), 1, testMaterial())}
	lights := []Light{NewLight(core.NewVec3(0, 5, 0), core.NewVec3(1, 1, 1))}

	s, err := NewScene(spheres, lights, NewUniformEnvironment(core.Vec3{}), 1, DefaultLimits())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	spheres[0].Radius = 42
	lights[0].Intensity = core.Vec3{}

	if s.Spheres()[0].Radius != 1 {
		t.Errorf("Scene sphere changed after caller mutation: radius %f", s.Spheres()[0].Radius)
	}
	if s.Lights()[0].Intensity != core.NewVec3(1, 1, 1) {
		t.Errorf("Scene light changed after caller mutation: %v", s.Lights()[0].Intensity)
	}
}

func TestScene_WithBounceLimit(t *testing.T) {
	s, err := NewScene(nil, nil, NewUniformEnvironment(core.Vec3{}), 3, DefaultLimits())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	lower, err := s.WithBounceLimit(0)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if lower.BounceLimit() != 0 {
		t.Errorf("Expected new bounce limit 0, got %d", lower.BounceLimit())
	}
	if s.BounceLimit() != 3 {
		t.Errorf("Original scene changed: bounce limit %d", s.BounceLimit())
	}

	higher, err := s.WithBounceLimit(50)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if higher.BounceLimit() != MaxBounces {
		t.Errorf("Expected clamp to %d, got %d", MaxBounces, higher.BounceLimit())
	}

	if _, err := s.WithBounceLimit(-2); !errors.Is(err, ErrInvalidBounceLimit) {
		t.Errorf("Expected ErrInvalidBounceLimit, got %v", err)
	}
}
