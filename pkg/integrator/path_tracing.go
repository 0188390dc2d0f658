package integrator

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// DefaultMaxDepth bounds recursion when no depth is configured
const DefaultMaxDepth = 50

// PathTracingIntegrator implements unidirectional path tracing
type PathTracingIntegrator struct {
	MaxDepth int // Paths are truncated to black once this many bounces are reached
}

// NewPathTracingIntegrator creates a new path tracing integrator.
// A non-positive maxDepth selects DefaultMaxDepth.
func NewPathTracingIntegrator(maxDepth int) *PathTracingIntegrator {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	return &PathTracingIntegrator{MaxDepth: maxDepth}
}

// RayColor computes the color for a single camera ray
func (pt *PathTracingIntegrator) RayColor(ray core.Ray, scene Scene, sampler core.Sampler) core.Vec3 {
	return pt.radiance(ray, scene, sampler, 0)
}

// radiance estimates incoming light along ray after depth bounces
func (pt *PathTracingIntegrator) radiance(ray core.Ray, scene Scene, sampler core.Sampler, depth int) core.Vec3 {
	// If we've exceeded the ray bounce limit, no more light is gathered
	if depth >= pt.MaxDepth {
		return core.Vec3{}
	}

	hit, isHit := scene.Intersect(ray)
	if !isHit {
		return scene.BackgroundColor(ray)
	}

	// Start with emitted light from the hit material
	colorEmitted := material.Emitted(hit.Material)

	scatter, didScatter := hit.Material.Scatter(ray, *hit, sampler)
	if !didScatter {
		// Material absorbed the ray, only return emitted light
		return colorEmitted
	}

	incoming := pt.radiance(scatter.Scattered, scene, sampler, depth+1)
	return colorEmitted.Add(scatter.Attenuation.MultiplyVec(incoming))
}
