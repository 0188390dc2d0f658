package scene

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

// groundExtent is the half-width of the finite ground rectangle
const groundExtent = 1000.0

// NewDefaultScene creates a default scene with spheres on a ground rectangle
// lit by the sky gradient
func NewDefaultScene() (*Scene, error) {
	b := NewBuilder("default")

	b.SetCamera(renderer.CameraConfig{
		Center: core.NewVec3(0, 0.75, 2), // Higher and farther back
		LookAt: core.NewVec3(0, 0.5, -1), // The center sphere
		Up:     core.NewVec3(0, 1, 0),
		VFov:   40.0,
	})
	b.SetSampling(SamplingConfig{
		Width:           400,
		Height:          225,
		SamplesPerPixel: 200,
		MaxDepth:        50,
	})

	ground := b.AddMaterial("ground", material.NewLambertian(core.NewVec3(0.8, 0.8, 0.0).Multiply(0.6)))
	red := b.AddMaterial("red", material.NewLambertian(core.NewVec3(0.65, 0.25, 0.2)))
	silver := b.AddMaterial("silver", material.NewMetal(core.NewVec3(0.8, 0.8, 0.8), 0.0))
	gold := b.AddMaterial("gold", material.NewMetal(core.NewVec3(0.8, 0.6, 0.2), 0.3))
	glass := b.AddMaterial("glass", material.NewDielectric(1.5))

	b.AddShape(
		geometry.NewRectXZ(-groundExtent, groundExtent, -groundExtent, groundExtent, 0, false, ground),
		geometry.NewSphere(core.NewVec3(0, 0.5, -1), 0.5, red),
		geometry.NewSphere(core.NewVec3(-1, 0.5, -1), 0.5, silver),
		geometry.NewSphere(core.NewVec3(1, 0.5, -1), 0.5, gold),
		geometry.NewSphere(core.NewVec3(0.5, 0.25, -0.5), 0.25, glass),
	)

	return b.Build()
}
