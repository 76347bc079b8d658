package scene

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/loaders"
)

// Vec3Cfg is a JSON triple
type Vec3Cfg [3]float64

func (v Vec3Cfg) vec() core.Vec3 { return core.NewVec3(v[0], v[1], v[2]) }

type CameraCfg struct {
	Center Vec3Cfg `json:"center"`
	LookAt Vec3Cfg `json:"lookAt"`
	Up     Vec3Cfg `json:"up"`
	VFov   float64 `json:"vfov"`
}

type MaterialCfg struct {
	Diffuse   Vec3Cfg `json:"diffuse"`
	Specular  Vec3Cfg `json:"specular"`
	Shininess float64 `json:"shininess"`
}

type SphereCfg struct {
	Center   Vec3Cfg     `json:"center"`
	Radius   float64     `json:"radius"`
	Material MaterialCfg `json:"material"`
}

type LightCfg struct {
	Position  Vec3Cfg `json:"position"`
	Intensity Vec3Cfg `json:"intensity"`
}

// EnvironmentCfg selects one of "uniform", "gradient" or "cubemap".
// Dir is resolved relative to the scene file.
type EnvironmentCfg struct {
	Type    string  `json:"type"`
	Color   Vec3Cfg `json:"color"`
	Top     Vec3Cfg `json:"top"`
	Bottom  Vec3Cfg `json:"bottom"`
	Dir     string  `json:"dir,omitempty"`
	Swizzle string  `json:"swizzle,omitempty"`
}

// FileCfg is the on-disk scene format
type FileCfg struct {
	Name        string          `json:"name"`
	Summary     string          `json:"description,omitempty"`
	Group       string          `json:"group,omitempty"`
	Camera      *CameraCfg      `json:"camera,omitempty"`
	Spheres     []SphereCfg     `json:"spheres"`
	Lights      []LightCfg      `json:"lights"`
	Environment *EnvironmentCfg `json:"environment,omitempty"`
	BounceLimit *int            `json:"bounceLimit,omitempty"` // defaults to MaxBounces
}

// LoadSceneFile reads a JSON scene file
func LoadSceneFile(path string) (Description, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Description{}, fmt.Errorf("failed to read scene file: %w", err)
	}
	desc, err := ParseSceneFile(data, filepath.Dir(path))
	if err != nil {
		return Description{}, fmt.Errorf("%s: %w", path, err)
	}
	if desc.Name == "" {
		desc.Name = trimExt(filepath.Base(path))
	}
	return desc, nil
}

// ParseSceneFile decodes a JSON scene. baseDir resolves relative cube map directories.
func ParseSceneFile(data []byte, baseDir string) (Description, error) {
	var cfg FileCfg
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return Description{}, fmt.Errorf("failed to parse scene: %w", err)
	}
	return cfg.Description(baseDir)
}

// Description converts the file form into a scene description
func (cfg FileCfg) Description(baseDir string) (Description, error) {
	desc := Description{
		Name:        cfg.Name,
		Viewpoint:   DefaultViewpoint(),
		BounceLimit: MaxBounces,
	}
	if cfg.Camera != nil {
		desc.Viewpoint = Viewpoint{
			Center: cfg.Camera.Center.vec(),
			LookAt: cfg.Camera.LookAt.vec(),
			Up:     cfg.Camera.Up.vec(),
			VFov:   cfg.Camera.VFov,
		}
		if desc.Viewpoint.VFov <= 0 {
			desc.Viewpoint.VFov = DefaultViewpoint().VFov
		}
	}
	if cfg.BounceLimit != nil {
		desc.BounceLimit = *cfg.BounceLimit
	}

	for _, s := range cfg.Spheres {
		desc.Spheres = append(desc.Spheres, NewSphere(s.Center.vec(), s.Radius, NewMaterial(
			s.Material.Diffuse.vec(), s.Material.Specular.vec(), s.Material.Shininess)))
	}
	for _, l := range cfg.Lights {
		desc.Lights = append(desc.Lights, NewLight(l.Position.vec(), l.Intensity.vec()))
	}

	env, err := cfg.Environment.build(baseDir)
	if err != nil {
		return Description{}, err
	}
	desc.Environment = env
	return desc, nil
}

func (e *EnvironmentCfg) build(baseDir string) (core.Environment, error) {
	if e == nil {
		return NewUniformEnvironment(core.Vec3{}), nil
	}
	switch e.Type {
	case "uniform":
		return NewUniformEnvironment(e.Color.vec()), nil
	case "gradient":
		return NewGradientEnvironment(e.Top.vec(), e.Bottom.vec()), nil
	case "cubemap":
		swizzle, err := ParseSwizzle(e.Swizzle)
		if err != nil {
			return nil, err
		}
		dir := e.Dir
		if !filepath.IsAbs(dir) {
			dir = filepath.Join(baseDir, dir)
		}
		return LoadCubeMap(dir, swizzle)
	}
	return nil, fmt.Errorf("unknown environment type %q", e.Type)
}

// LoadCubeMap loads posx, negx, posy, negy, posz and negz images from dir
func LoadCubeMap(dir string, swizzle Swizzle) (*CubeMap, error) {
	var faces [6]CubeFace
	for i, stem := range FaceNames {
		img, err := loaders.LoadImageStem(dir, stem)
		if err != nil {
			return nil, fmt.Errorf("failed to load cube map: %w", err)
		}
		faces[i] = CubeFace{Width: img.Width, Height: img.Height, Pixels: img.Pixels}
	}
	return NewCubeMap(faces, swizzle)
}

func trimExt(name string) string {
	return name[:len(name)-len(filepath.Ext(name))]
}
