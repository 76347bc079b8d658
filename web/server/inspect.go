package server

import (
	"net/http"
	"strconv"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/integrator"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// InspectResponse represents the JSON response for pixel inspection
type InspectResponse struct {
	Hit         bool          `json:"hit"`
	SphereIndex int           `json:"sphereIndex"` // -1 when nothing was hit
	Point       [3]float64    `json:"point"`
	Normal      [3]float64    `json:"normal"`
	Distance    float64       `json:"distance"` // Ray parameter of the hit
	Material    *MaterialInfo `json:"material,omitempty"`
	Color       [3]float64    `json:"color"` // Unclamped traced color
}

// MaterialInfo describes the material of an inspected sphere
type MaterialInfo struct {
	Diffuse   [3]float64 `json:"diffuse"`
	Specular  [3]float64 `json:"specular"`
	Shininess float64    `json:"shininess"`
}

func toArray(v core.Vec3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

// inspectPixel casts the primary ray through the center of a pixel and
// reports the nearest sphere along with the full traced color
func inspectPixel(sceneObj *scene.Scene, camera *renderer.Camera, pixelX, pixelY int) InspectResponse {
	ray := camera.GetRay(pixelX, pixelY, 0.5, 0.5)
	color, _ := integrator.Trace(ray, sceneObj)

	hit, isHit := integrator.Intersect(ray, sceneObj.Spheres())
	if !isHit {
		return InspectResponse{SphereIndex: -1, Color: toArray(color)}
	}

	// Find the specific sphere by testing each one alone
	index := -1
	spheres := sceneObj.Spheres()
	for i := range spheres {
		if sphereHit, ok := integrator.Intersect(ray, spheres[i:i+1]); ok && sphereHit.T == hit.T {
			index = i
			break
		}
	}

	return InspectResponse{
		Hit:         true,
		SphereIndex: index,
		Point:       toArray(hit.Position),
		Normal:      toArray(hit.Normal),
		Distance:    hit.T,
		Material: &MaterialInfo{
			Diffuse:   toArray(hit.Material.Diffuse),
			Specular:  toArray(hit.Material.Specular),
			Shininess: hit.Material.Shininess,
		},
		Color: toArray(color),
	}
}

// handleInspect handles ray casting inspection requests
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	inspectReq := &RenderRequest{}
	if err := s.parseCommonSceneParams(r, inspectReq); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid scene parameters: "+err.Error())
		return
	}

	pixelX, err := strconv.Atoi(r.URL.Query().Get("x"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid x coordinate")
		return
	}
	pixelY, err := strconv.Atoi(r.URL.Query().Get("y"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid y coordinate")
		return
	}
	if pixelX < 0 || pixelX >= inspectReq.Width || pixelY < 0 || pixelY >= inspectReq.Height {
		writeError(w, http.StatusBadRequest, "Pixel coordinates out of bounds")
		return
	}

	desc, err := s.createScene(inspectReq.Scene)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if inspectReq.Bounces >= 0 {
		desc.BounceLimit = inspectReq.Bounces
	}
	sceneObj, err := desc.Build(scene.DefaultLimits())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	camera := renderer.NewCamera(renderer.CameraConfigFromViewpoint(desc.Viewpoint, inspectReq.Width, inspectReq.Height))
	writeJSON(w, http.StatusOK, inspectPixel(sceneObj, camera, pixelX, pixelY))
}
