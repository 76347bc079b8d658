package scene

import (
	"fmt"
	"sort"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

type builtin struct {
	info  SceneInfo
	build func() Description
}

var builtins = map[string]builtin{
	"default": {
		info:  SceneInfo{ID: "default", DisplayName: "Default", Description: "Three spheres on a large ground sphere under two lights"},
		build: NewDefaultScene,
	},
	"mirrors": {
		info:  SceneInfo{ID: "mirrors", DisplayName: "Mirrors", Description: "Facing mirror spheres that exhaust the bounce limit"},
		build: NewMirrorScene,
	},
	"spheregrid": {
		info:  SceneInfo{ID: "spheregrid", DisplayName: "Sphere Grid", Description: "A grid of spheres with varying shininess and reflectance"},
		build: NewSphereGridScene,
	},
	"empty": {
		info:  SceneInfo{ID: "empty", DisplayName: "Empty", Description: "Environment only"},
		build: NewEmptyScene,
	},
}

// ListBuiltinScenes returns the built-in scenes sorted by ID
func ListBuiltinScenes() []SceneInfo {
	infos := make([]SceneInfo, 0, len(builtins))
	for _, b := range builtins {
		info := b.info
		info.Group = builtinGroup
		info.Type = "builtin"
		infos = append(infos, info)
	}
	sort.Slice(infos, func(i, j int) bool {
		return infos[i].ID < infos[j].ID
	})
	return infos
}

// LookupBuiltin returns a fresh description of the named built-in scene
func LookupBuiltin(name string) (Description, error) {
	b, ok := builtins[name]
	if !ok {
		return Description{}, fmt.Errorf("unknown scene %q", name)
	}
	return b.build(), nil
}

func skyGradient() core.Environment {
	return NewGradientEnvironment(
		core.NewVec3(0.5, 0.7, 1.0), // blue sky
		core.NewVec3(1.0, 1.0, 1.0), // white horizon
	)
}

// NewDefaultScene creates three spheres resting on a large ground sphere
func NewDefaultScene() Description {
	ground := NewMaterial(core.NewVec3(0.5, 0.5, 0.5), core.NewVec3(0.2, 0.2, 0.2), 20)
	red := NewMaterial(core.NewVec3(0.7, 0.1, 0.1), core.NewVec3(0.3, 0.3, 0.3), 50)
	mirror := NewMaterial(core.NewVec3(0.05, 0.05, 0.05), core.NewVec3(0.9, 0.9, 0.9), 200)
	blue := NewMaterial(core.NewVec3(0.1, 0.2, 0.6), core.NewVec3(0.1, 0.1, 0.1), 10)

	return Description{
		Name: "default",
		Viewpoint: Viewpoint{
			Center: core.NewVec3(0, 1.5, 6),
			LookAt: core.NewVec3(0, 0.5, 0),
			Up:     core.NewVec3(0, 1, 0),
			VFov:   40,
		},
		Spheres: []Sphere{
			NewSphere(core.NewVec3(0, -1000, 0), 1000, ground),
			NewSphere(core.NewVec3(-2.2, 1, 0), 1, red),
			NewSphere(core.NewVec3(0, 1, -0.5), 1, mirror),
			NewSphere(core.NewVec3(2.2, 1, 0), 1, blue),
		},
		Lights: []Light{
			NewLight(core.NewVec3(-5, 10, 5), core.NewVec3(0.8, 0.8, 0.8)),
			NewLight(core.NewVec3(6, 6, 8), core.NewVec3(0.4, 0.4, 0.4)),
		},
		Environment: skyGradient(),
		BounceLimit: MaxBounces,
	}
}

// NewMirrorScene places two fully reflective spheres facing each other so
// every reflection chain runs until the bounce limit stops it
func NewMirrorScene() Description {
	mirror := NewMaterial(core.NewVec3(0.05, 0.05, 0.05), core.NewVec3(0.85, 0.85, 0.9), 500)
	gold := NewMaterial(core.NewVec3(0.6, 0.45, 0.1), core.NewVec3(0.4, 0.35, 0.1), 60)

	return Description{
		Name: "mirrors",
		Viewpoint: Viewpoint{
			Center: core.NewVec3(0, 4, 0.5),
			LookAt: core.NewVec3(0, 0, 0),
			Up:     core.NewVec3(0, 0, -1),
			VFov:   60,
		},
		Spheres: []Sphere{
			NewSphere(core.NewVec3(0, 0, -2), 1.5, mirror),
			NewSphere(core.NewVec3(0, 0, 2), 1.5, mirror),
			NewSphere(core.NewVec3(0, -0.5, 0), 0.4, gold),
		},
		Lights: []Light{
			NewLight(core.NewVec3(3, 5, 0), core.NewVec3(1, 1, 1)),
		},
		Environment: skyGradient(),
		BounceLimit: MaxBounces,
	}
}

// NewSphereGridScene lays out a 4x4 grid of spheres, shininess increasing
// along X and reflectance along Z
func NewSphereGridScene() Description {
	const gridSize = 4
	const spacing = 1.2

	spheres := []Sphere{
		NewSphere(core.NewVec3(0, -500.5, 0), 500, NewMaterial(
			core.NewVec3(0.4, 0.4, 0.4), core.NewVec3(0.05, 0.05, 0.05), 5)),
	}
	offset := spacing * float64(gridSize-1) / 2
	for row := 0; row < gridSize; row++ {
		for col := 0; col < gridSize; col++ {
			shininess := 5 * float64(int(1)<<(2*col)) // 5, 20, 80, 320
			reflectance := 0.15 + 0.25*float64(row)
			hue := float64(col) / float64(gridSize-1)
			diffuse := core.NewVec3(0.8*(1-hue)+0.1, 0.3, 0.8*hue+0.1).Multiply(1 - reflectance)
			material := NewMaterial(diffuse, core.NewVec3(reflectance, reflectance, reflectance), shininess)
			center := core.NewVec3(float64(col)*spacing-offset, 0, float64(row)*spacing-offset)
			spheres = append(spheres, NewSphere(center, 0.45, material))
		}
	}

	return Description{
		Name: "spheregrid",
		Viewpoint: Viewpoint{
			Center: core.NewVec3(0, 4, 6),
			LookAt: core.NewVec3(0, 0, 0),
			Up:     core.NewVec3(0, 1, 0),
			VFov:   45,
		},
		Spheres: spheres,
		Lights: []Light{
			NewLight(core.NewVec3(-4, 8, 4), core.NewVec3(0.7, 0.7, 0.7)),
			NewLight(core.NewVec3(4, 6, -2), core.NewVec3(0.3, 0.3, 0.35)),
		},
		Environment: skyGradient(),
		BounceLimit: 3,
	}
}

// NewEmptyScene has no geometry; every ray escapes to the environment
func NewEmptyScene() Description {
	return Description{
		Name:        "empty",
		Viewpoint:   DefaultViewpoint(),
		Environment: skyGradient(),
		BounceLimit: 0,
	}
}
