package scene

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

// NewLambertScene creates a small diffuse-only scene: three spheres on a
// ground rectangle under the sky. It renders quickly and is used to check
// that renders are reproducible.
func NewLambertScene() (*Scene, error) {
	b := NewBuilder("lambert")

	b.SetCamera(renderer.CameraConfig{
		Center: core.NewVec3(0, 1, 3),
		LookAt: core.NewVec3(0, 0.5, -1),
		Up:     core.NewVec3(0, 1, 0),
		VFov:   45.0,
	})
	b.SetSampling(SamplingConfig{
		Width:           160,
		Height:          90,
		SamplesPerPixel: 16,
		MaxDepth:        8,
	})
	b.SetBVHSeed(1)

	ground := b.AddMaterial("ground", material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5)))
	clay := b.AddMaterial("clay", material.NewLambertian(core.NewVec3(0.7, 0.3, 0.3)))
	moss := b.AddMaterial("moss", material.NewLambertian(core.NewVec3(0.3, 0.6, 0.3)))
	slate := b.AddMaterial("slate", material.NewLambertian(core.NewVec3(0.2, 0.3, 0.6)))

	b.AddShape(
		geometry.NewRectXZ(-groundExtent, groundExtent, -groundExtent, groundExtent, 0, false, ground),
		geometry.NewSphere(core.NewVec3(-1.1, 0.5, -1), 0.5, clay),
		geometry.NewSphere(core.NewVec3(0, 0.5, -1), 0.5, moss),
		geometry.NewSphere(core.NewVec3(1.1, 0.5, -1), 0.5, slate),
	)

	return b.Build()
}
