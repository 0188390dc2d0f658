package integrator

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// Scene is the read-only view of a scene used during light transport.
// Implementations must be safe for concurrent calls.
type Scene interface {
	Intersect(ray core.Ray) (*material.HitRecord, bool)
	BackgroundColor(ray core.Ray) core.Vec3
}

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// RayColor returns the linear-space radiance arriving along ray
	RayColor(ray core.Ray, scene Scene, sampler core.Sampler) core.Vec3
}
