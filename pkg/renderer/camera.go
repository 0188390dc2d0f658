package renderer

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/df07/go-pathtracer/pkg/core"
)

// CameraConfig describes a pinhole camera
type CameraConfig struct {
	Center      core.Vec3 // Camera position
	LookAt      core.Vec3 // Point the camera looks at
	Up          core.Vec3 // Up direction
	VFov        float64   // Vertical field of view in degrees
	AspectRatio float64   // Width / height
}

// Camera generates rays for rendering
type Camera struct {
	origin          core.Vec3
	lowerLeftCorner core.Vec3
	horizontal      core.Vec3
	vertical        core.Vec3
}

// NewCamera creates a camera from its configuration
func NewCamera(config CameraConfig) *Camera {
	halfHeight := math.Tan(mgl64.DegToRad(config.VFov) / 2)
	halfWidth := config.AspectRatio * halfHeight

	// Orthonormal basis: w points backwards, u right, v up
	lookFrom := toMgl(config.Center)
	w := lookFrom.Sub(toMgl(config.LookAt)).Normalize()
	u := toMgl(config.Up).Cross(w).Normalize()
	v := w.Cross(u)

	lowerLeft := lookFrom.
		Sub(u.Mul(halfWidth)).
		Sub(v.Mul(halfHeight)).
		Sub(w)

	return &Camera{
		origin:          config.Center,
		lowerLeftCorner: fromMgl(lowerLeft),
		horizontal:      fromMgl(u.Mul(2 * halfWidth)),
		vertical:        fromMgl(v.Mul(2 * halfHeight)),
	}
}

// GetRay generates a ray for film coordinates (s, t) where 0 <= s,t <= 1
// and t grows upwards
func (c *Camera) GetRay(s, t float64) core.Ray {
	direction := c.lowerLeftCorner.
		Add(c.horizontal.Multiply(s)).
		Add(c.vertical.Multiply(t)).
		Subtract(c.origin)

	return core.NewRay(c.origin, direction)
}

func toMgl(v core.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{v.X, v.Y, v.Z}
}

func fromMgl(v mgl64.Vec3) core.Vec3 {
	return core.NewVec3(v.X(), v.Y(), v.Z())
}
