package scene

import (
	"math"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

func TestGradientEnvironment_Lookup(t *testing.T) {
	top := core.NewVec3(0, 0, 1)
	bottom := core.NewVec3(1, 1, 1)
	env := NewGradientEnvironment(top, bottom)

	tests := []struct {
		name      string
		direction core.Vec3
		expected  core.Vec3
	}{
		{"straight up", core.NewVec3(0, 1, 0), top},
		{"straight down", core.NewVec3(0, -1, 0), bottom},
		{"horizon", core.NewVec3(1, 0, 0), core.NewVec3(0.5, 0.5, 1)},
		{"non-unit direction", core.NewVec3(0, 10, 0), top},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := env.Lookup(tt.direction)
			if got.Subtract(tt.expected).Length() > 1e-12 {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestUniformEnvironment_Lookup(t *testing.T) {
	color := core.NewVec3(0.2, 0.3, 0.4)
	env := NewUniformEnvironment(color)
	for _, d := range []core.Vec3{{X: 1}, {Y: -1}, {X: 1, Y: 2, Z: 3}} {
		if got := env.Lookup(d); got != color {
			t.Errorf("Lookup(%v): expected %v, got %v", d, color, got)
		}
	}
}

// solidFaces returns six 1x1 faces whose color encodes the face index
func solidFaces() [6]CubeFace {
	var faces [6]CubeFace
	for i := range faces {
		faces[i] = CubeFace{Width: 1, Height: 1, Pixels: []core.Vec3{core.NewVec3(float64(i), 0, 0)}}
	}
	return faces
}

func TestCubeMap_FaceSelection(t *testing.T) {
	cube, err := NewCubeMap(solidFaces(), SwizzleNone)
	if err != nil {
		t.Fatalf("NewCubeMap failed: %v", err)
	}

	tests := []struct {
		direction core.Vec3
		face      CubeFaceIndex
	}{
		{core.NewVec3(1, 0, 0), FacePositiveX},
		{core.NewVec3(-1, 0, 0), FaceNegativeX},
		{core.NewVec3(0, 1, 0), FacePositiveY},
		{core.NewVec3(0, -1, 0), FaceNegativeY},
		{core.NewVec3(0, 0, 1), FacePositiveZ},
		{core.NewVec3(0, 0, -1), FaceNegativeZ},
		{core.NewVec3(0.2, -0.1, 3), FacePositiveZ},
		{core.NewVec3(-5, 1, 2), FaceNegativeX},
	}

	for _, tt := range tests {
		got := cube.Lookup(tt.direction)
		if int(got.X) != int(tt.face) {
			t.Errorf("Lookup(%v): expected face %s, got %s", tt.direction, FaceNames[tt.face], FaceNames[int(got.X)])
		}
	}
}

func TestCubeMap_SwizzleXZY(t *testing.T) {
	cube, err := NewCubeMap(solidFaces(), SwizzleXZY)
	if err != nil {
		t.Fatalf("NewCubeMap failed: %v", err)
	}

	// Up in a Z-up world samples the +Y face, and +Y samples +Z
	if got := cube.Lookup(core.NewVec3(0, 0, 1)); int(got.X) != int(FacePositiveY) {
		t.Errorf("Expected posy for +Z, got %s", FaceNames[int(got.X)])
	}
	if got := cube.Lookup(core.NewVec3(0, 1, 0)); int(got.X) != int(FacePositiveZ) {
		t.Errorf("Expected posz for +Y, got %s", FaceNames[int(got.X)])
	}
}

func TestCubeMap_TexelOrientation(t *testing.T) {
	faces := solidFaces()
	// 2x2 +Z face: top-left, top-right, bottom-left, bottom-right
	faces[FacePositiveZ] = CubeFace{Width: 2, Height: 2, Pixels: []core.Vec3{
		core.NewVec3(10, 0, 0), core.NewVec3(11, 0, 0),
		core.NewVec3(12, 0, 0), core.NewVec3(13, 0, 0),
	}}
	cube, err := NewCubeMap(faces, SwizzleNone)
	if err != nil {
		t.Fatalf("NewCubeMap failed: %v", err)
	}

	tests := []struct {
		name      string
		direction core.Vec3
		expected  float64
	}{
		{"up-left", core.NewVec3(-0.5, 0.5, 1), 10},
		{"up-right", core.NewVec3(0.5, 0.5, 1), 11},
		{"down-left", core.NewVec3(-0.5, -0.5, 1), 12},
		{"down-right", core.NewVec3(0.5, -0.5, 1), 13},
		{"edge clamps", core.NewVec3(0.99, -0.99, 1), 13},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cube.Lookup(tt.direction); got.X != tt.expected {
				t.Errorf("Expected texel %v, got %v", tt.expected, got.X)
			}
		})
	}
}

func TestCubeMap_ZeroDirectionDoesNotPanic(t *testing.T) {
	cube, err := NewCubeMap(solidFaces(), SwizzleNone)
	if err != nil {
		t.Fatalf("NewCubeMap failed: %v", err)
	}
	got := cube.Lookup(core.Vec3{})
	if math.IsInf(got.X, 0) {
		t.Errorf("Unexpected infinite texel %v", got)
	}
}

func TestNewCubeMap_Invalid(t *testing.T) {
	faces := solidFaces()
	faces[FaceNegativeY] = CubeFace{Width: 2, Height: 2, Pixels: []core.Vec3{{}}}
	if _, err := NewCubeMap(faces, SwizzleNone); err == nil {
		t.Error("Expected error for mismatched pixel count")
	}

	faces = solidFaces()
	faces[FacePositiveX] = CubeFace{}
	if _, err := NewCubeMap(faces, SwizzleNone); err == nil {
		t.Error("Expected error for empty face")
	}
}

func TestParseSwizzle(t *testing.T) {
	for in, expected := range map[string]Swizzle{"": SwizzleNone, "xyz": SwizzleNone, "xzy": SwizzleXZY} {
		got, err := ParseSwizzle(in)
		if err != nil || got != expected {
			t.Errorf("ParseSwizzle(%q) = %v, %v; expected %v", in, got, err, expected)
		}
	}
	if _, err := ParseSwizzle("zyx"); err == nil {
		t.Error("Expected error for unknown swizzle")
	}
}
