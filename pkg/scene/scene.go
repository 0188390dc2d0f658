package scene

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

// Scene contains all the elements needed for rendering. It is immutable once
// built and safe for concurrent queries.
type Scene struct {
	Name           string
	Camera         *renderer.Camera
	CameraConfig   renderer.CameraConfig
	Background     Gradient
	Materials      map[string]material.Material // Owns every material referenced by Shapes
	Shapes         []geometry.Shape             // Objects in the scene
	SamplingConfig SamplingConfig
	BVH            *geometry.BVH // Acceleration structure for ray-object intersection
}

// SamplingConfig contains the recommended render settings for a scene
type SamplingConfig struct {
	Width           int // Image width
	Height          int // Image height
	SamplesPerPixel int // Number of rays per pixel
	MaxDepth        int // Maximum ray bounce depth
}

// Gradient is the sky seen by rays that escape the scene
type Gradient struct {
	Top    core.Vec3 // Color for rays pointing straight up
	Bottom core.Vec3 // Color for rays pointing straight down
}

// At blends bottom to top by the vertical component of the unit ray direction
func (g Gradient) At(ray core.Ray) core.Vec3 {
	t := 0.5 * (ray.Direction.Normalize().Y + 1.0)
	return g.Bottom.Lerp(g.Top, t)
}

// Intersect returns the nearest hit beyond core.ShadowEpsilon
func (s *Scene) Intersect(ray core.Ray) (*material.HitRecord, bool) {
	return s.BVH.Hit(ray, core.ShadowEpsilon, math.Inf(1))
}

// BackgroundColor returns the radiance for rays that miss every shape
func (s *Scene) BackgroundColor(ray core.Ray) core.Vec3 {
	return s.Background.At(ray)
}

// GetPrimitiveCount returns the total number of primitive objects in the scene
func (s *Scene) GetPrimitiveCount() int {
	return len(s.Shapes)
}
