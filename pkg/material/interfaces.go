package material

import (
	"github.com/df07/go-pathtracer/pkg/core"
)

// Material interface for objects that can scatter rays.
// Scatter returns false when the incident ray is absorbed.
type Material interface {
	Scatter(rayIn core.Ray, hit HitRecord, sampler core.Sampler) (ScatterResult, bool)
}

// Emitter interface for materials that emit light
type Emitter interface {
	Emit() core.Vec3
}

// Emitted returns the radiance emitted by m, black for materials that do not emit
func Emitted(m Material) core.Vec3 {
	if emitter, ok := m.(Emitter); ok {
		return emitter.Emit()
	}
	return core.Vec3{}
}

// ScatterResult contains the result of material scattering
type ScatterResult struct {
	Scattered   core.Ray  // The scattered ray
	Attenuation core.Vec3 // Material albedo applied to the scattered radiance
}

// HitRecord contains information about a ray-object intersection
type HitRecord struct {
	Point     core.Vec3 // Point of intersection
	Normal    core.Vec3 // Unit outward surface normal as defined by the primitive
	T         float64   // Parameter t along the ray
	FrontFace bool      // Whether ray hit the side the normal points to
	Material  Material  // Material of the hit object, owned by the scene
}

// SetOutwardNormal stores the primitive's outward normal and records which side the ray came from
func (h *HitRecord) SetOutwardNormal(ray core.Ray, outwardNormal core.Vec3) {
	h.Normal = outwardNormal
	h.FrontFace = ray.Direction.Dot(outwardNormal) < 0
}

// FacingNormal returns the normal flipped to the side of the incoming ray
func (h HitRecord) FacingNormal() core.Vec3 {
	if h.FrontFace {
		return h.Normal
	}
	return h.Normal.Negate()
}
