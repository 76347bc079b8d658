package integrator

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// Shade computes direct Blinn-Phong illumination at a surface point.
//
// There is no ambient term. Each light casts an unbiased shadow ray from
// position; any hit along it, even beyond the light, removes that light's
// contribution. Channels are not clamped.
func Shade(mtl scene.Material, position, normal, view core.Vec3, s *scene.Scene) core.Vec3 {
	return tracer{}.shade(mtl, position, normal, view, s)
}

func (tr tracer) shade(mtl scene.Material, position, normal, view core.Vec3, s *scene.Scene) core.Vec3 {
	color := core.Vec3{}
	spheres := s.Spheres()

	for _, light := range s.Lights() {
		lightDir := light.Position.Subtract(position).Normalize()

		if tr.occluded(core.NewRay(position, lightDir), spheres) {
			continue
		}

		cosTheta := math.Max(0, normal.Dot(lightDir))
		diffuse := light.Intensity.MultiplyVec(mtl.Diffuse).Multiply(cosTheta)

		half := view.Add(lightDir).Normalize()
		cosPhi := math.Max(0, normal.Dot(half))
		specular := light.Intensity.MultiplyVec(mtl.Specular).Multiply(math.Pow(cosPhi, mtl.Shininess))

		color = color.Add(diffuse).Add(specular)
	}

	return color
}
