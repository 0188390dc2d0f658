package scene

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

// NewCornellScene creates the classic Cornell box lit by a ceiling panel, with
// a fuzzy metal sphere and a glass sphere inside
func NewCornellScene() (*Scene, error) {
	b := NewBuilder("cornell")

	b.SetCamera(renderer.CameraConfig{
		Center: core.NewVec3(278, 278, -800), // Outside the open front of the box
		LookAt: core.NewVec3(278, 278, 0),
		Up:     core.NewVec3(0, 1, 0),
		VFov:   40.0,
	})
	b.SetSampling(SamplingConfig{
		Width:           800,
		Height:          600,
		SamplesPerPixel: 500,
		MaxDepth:        50,
	})
	b.SetBackground(core.Vec3{}, core.Vec3{}) // Only the panel lights the box

	red := b.AddMaterial("red", material.NewLambertian(core.NewVec3(0.65, 0.05, 0.05)))
	white := b.AddMaterial("white", material.NewLambertian(core.NewVec3(0.73, 0.73, 0.73)))
	green := b.AddMaterial("green", material.NewLambertian(core.NewVec3(0.12, 0.45, 0.15)))
	light := b.AddMaterial("light", material.NewEmissive(core.NewVec3(15, 15, 15)))
	metal := b.AddMaterial("metal", material.NewMetal(core.NewVec3(0.73, 0.73, 0.73), 0.8))
	glass := b.AddMaterial("glass", material.NewDielectric(1.655))

	// Cornell box dimensions (standard 555x555x555 units)
	const boxSize = 555.0

	b.AddShape(
		geometry.NewRectYZ(0, boxSize, 0, boxSize, boxSize, true, green), // left wall
		geometry.NewRectYZ(0, boxSize, 0, boxSize, 0, false, red),        // right wall
		geometry.NewRectXZ(213, 343, 227, 332, boxSize-1, false, light),  // ceiling light
		geometry.NewRectXZ(0, boxSize, 0, boxSize, boxSize, true, white), // ceiling
		geometry.NewRectXZ(0, boxSize, 0, boxSize, 0, false, white),      // floor
		geometry.NewRectXY(0, boxSize, 0, boxSize, boxSize, true, white), // back wall
	)

	b.AddShape(
		geometry.NewSphere(core.NewVec3(200, 100, 300), 100, metal),
		geometry.NewSphere(core.NewVec3(300, 110, 100), 100, glass),
	)

	return b.Build()
}
