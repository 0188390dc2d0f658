package scene

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

// NewCornellBoxesScene creates the Cornell box with a short and a tall white
// block in place of the spheres
func NewCornellBoxesScene() (*Scene, error) {
	b := NewBuilder("cornell-boxes")

	b.SetCamera(renderer.CameraConfig{
		Center: core.NewVec3(278, 278, -800),
		LookAt: core.NewVec3(278, 278, 0),
		Up:     core.NewVec3(0, 1, 0),
		VFov:   40.0,
	})
	b.SetSampling(SamplingConfig{
		Width:           400,
		Height:          400,
		SamplesPerPixel: 200,
		MaxDepth:        50,
	})
	b.SetBackground(core.Vec3{}, core.Vec3{})

	red := b.AddMaterial("red", material.NewLambertian(core.NewVec3(0.65, 0.05, 0.05)))
	white := b.AddMaterial("white", material.NewLambertian(core.NewVec3(0.73, 0.73, 0.73)))
	green := b.AddMaterial("green", material.NewLambertian(core.NewVec3(0.12, 0.45, 0.15)))
	light := b.AddMaterial("light", material.NewEmissive(core.NewVec3(15, 15, 15)))

	const boxSize = 555.0

	b.AddShape(
		geometry.NewRectYZ(0, boxSize, 0, boxSize, boxSize, true, green),
		geometry.NewRectYZ(0, boxSize, 0, boxSize, 0, false, red),
		geometry.NewRectXZ(213, 343, 227, 332, boxSize-1, false, light),
		geometry.NewRectXZ(0, boxSize, 0, boxSize, boxSize, true, white),
		geometry.NewRectXZ(0, boxSize, 0, boxSize, 0, false, white),
		geometry.NewRectXY(0, boxSize, 0, boxSize, boxSize, true, white),
	)

	b.AddShape(
		geometry.NewBox(core.NewVec3(130, 0, 65), core.NewVec3(295, 165, 230), white),
		geometry.NewBox(core.NewVec3(265, 0, 295), core.NewVec3(430, 330, 460), white),
	)

	return b.Build()
}
