package material

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// Dielectric represents a transparent material like glass that can both reflect and refract
type Dielectric struct {
	Albedo          core.Vec3 // Tint applied to both reflected and refracted light
	RefractiveIndex float64   // Index of refraction (e.g., 1.5 for glass)
}

// NewDielectric creates a new clear dielectric material
func NewDielectric(refractiveIndex float64) *Dielectric {
	return &Dielectric{Albedo: core.NewVec3(1, 1, 1), RefractiveIndex: refractiveIndex}
}

// NewTintedDielectric creates a dielectric that attenuates by albedo
func NewTintedDielectric(albedo core.Vec3, refractiveIndex float64) *Dielectric {
	return &Dielectric{Albedo: albedo, RefractiveIndex: refractiveIndex}
}

// Scatter implements the Material interface for dielectric scattering.
// Dielectrics never absorb: the ray is either reflected or refracted.
func (d *Dielectric) Scatter(rayIn core.Ray, hit HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	dir := rayIn.Direction
	dirDotN := dir.Dot(hit.Normal)
	length := dir.Length()

	// Determine if we're entering or exiting the material
	var outwardNormal core.Vec3
	var niOverNt, cosine float64
	if dirDotN > 0 {
		outwardNormal = hit.Normal.Negate()
		niOverNt = d.RefractiveIndex
		cosine = d.RefractiveIndex * dirDotN / length
	} else {
		outwardNormal = hit.Normal
		niOverNt = 1.0 / d.RefractiveIndex
		cosine = -dirDotN / length
	}

	// Total internal reflection always reflects
	reflectProbability := 1.0
	refracted, ok := Refract(dir, outwardNormal, niOverNt)
	if ok {
		reflectProbability = Schlick(cosine, d.RefractiveIndex)
	}

	direction := refracted
	if sampler.Get1D() < reflectProbability {
		direction = Reflect(dir.Normalize(), hit.Normal)
	}

	return ScatterResult{
		Scattered:   core.NewRay(hit.Point, direction),
		Attenuation: d.Albedo,
	}, true
}

// Reflect calculates the reflection of a vector v off a surface with normal n
func Reflect(v, n core.Vec3) core.Vec3 {
	// r = v - 2*dot(v,n)*n
	return v.Subtract(n.Multiply(2 * v.Dot(n)))
}

// Refract bends v through a surface with unit normal n (on the incident side)
// using Snell's law. It reports false on total internal reflection.
func Refract(v, n core.Vec3, niOverNt float64) (core.Vec3, bool) {
	uv := v.Normalize()
	dt := uv.Dot(n)
	discriminant := 1.0 - niOverNt*niOverNt*(1-dt*dt)
	if discriminant <= 0 {
		return core.Vec3{}, false
	}
	return uv.Subtract(n.Multiply(dt)).Multiply(niOverNt).Subtract(n.Multiply(math.Sqrt(discriminant))), true
}

// Schlick approximates Fresnel reflectance for the given incident cosine.
// The cosine is clamped to [0, 1].
func Schlick(cosine, refractiveIndex float64) float64 {
	cosine = math.Max(0, math.Min(1, cosine))
	r0 := (1 - refractiveIndex) / (1 + refractiveIndex)
	r0 = r0 * r0
	return r0 + (1-r0)*math.Pow(1-cosine, 5)
}
