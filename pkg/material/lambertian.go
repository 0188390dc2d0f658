package material

import (
	"github.com/df07/go-pathtracer/pkg/core"
)

// Lambertian represents a perfectly diffuse material
type Lambertian struct {
	Albedo core.Vec3 // Base color/reflectance
}

// NewLambertian creates a new lambertian material
func NewLambertian(albedo core.Vec3) *Lambertian {
	return &Lambertian{Albedo: albedo}
}

// Scatter implements the Material interface for lambertian scattering.
// The bounce aims at a random point in the unit sphere tangent to the surface,
// which gives a cosine-like distribution. Lambertian never absorbs.
func (l *Lambertian) Scatter(rayIn core.Ray, hit HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	normal := hit.FacingNormal()
	target := hit.Point.Add(normal).Add(core.RandomInUnitSphere(sampler))
	direction := target.Subtract(hit.Point)

	// Catch degenerate scatter direction
	if direction.NearZero() {
		direction = normal
	}

	return ScatterResult{
		Scattered:   core.NewRay(hit.Point, direction),
		Attenuation: l.Albedo,
	}, true
}
