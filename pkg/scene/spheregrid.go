package scene

import (
	"fmt"
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

// oklchToRGB converts an OKLCH color (lightness 0-1, chroma, hue in degrees)
// to linear RGB clamped to [0, 1]
func oklchToRGB(lightness, chroma, hue float64) core.Vec3 {
	hRad := hue * math.Pi / 180.0
	a := chroma * math.Cos(hRad)
	b := chroma * math.Sin(hRad)

	// OKLAB to cone responses, cubed
	cone := core.NewVec3(
		lightness+0.3963377774*a+0.2158037573*b,
		lightness-0.1055613458*a-0.0638541728*b,
		lightness-0.0894841775*a-1.2914855480*b,
	)
	cone = cone.MultiplyVec(cone).MultiplyVec(cone)

	rgb := core.NewVec3(
		cone.Dot(core.NewVec3(4.0767416621, -3.3077115913, 0.2309699292)),
		cone.Dot(core.NewVec3(-1.2684380046, 2.6097574011, -0.3413193965)),
		cone.Dot(core.NewVec3(-0.0041960863, -0.7034186147, 1.7076147010)),
	)
	return rgb.Clamp(0, 1)
}

// NewSphereGridScene creates a scene with a 20x20 grid of small metal spheres.
// The many primitives make it the scene of choice for BVH stress.
func NewSphereGridScene() (*Scene, error) {
	b := NewBuilder("spheregrid")

	b.SetCamera(renderer.CameraConfig{
		Center: core.NewVec3(4.5, 6, 18),    // Farther back and slightly lower
		LookAt: core.NewVec3(4.5, 0.8, 4.5), // Center of grid, slightly lower
		Up:     core.NewVec3(0, 1, 0),
		VFov:   40.0,
	})
	b.SetSampling(SamplingConfig{
		Width:           800,
		Height:          450,
		SamplesPerPixel: 100,
		MaxDepth:        40,
	})

	ground := b.AddMaterial("ground", material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5)))
	b.AddShape(geometry.NewRectXZ(-groundExtent, groundExtent, -groundExtent, groundExtent, 0, false, ground))

	gridSize := 20

	// Fit the grid in roughly 9x9 units regardless of gridSize
	targetArea := 9.0
	spacing := targetArea / float64(gridSize-1)

	sphereRadius := spacing * 0.35
	sphereRadius = math.Max(0.02, math.Min(0.35, sphereRadius))

	// OKLCH parameters for color variation
	baseLightness := 0.65
	minChroma := 0.05
	maxChroma := 0.25

	for i := 0; i < gridSize; i++ {
		for j := 0; j < gridSize; j++ {
			x := float64(i)*spacing - targetArea/2.0 + 4.5
			z := float64(j)*spacing - targetArea/2.0 + 4.5
			position := core.NewVec3(x, sphereRadius, z) // resting on the ground

			// Hue sweeps along X, chroma along Z
			hue := (float64(i) / float64(gridSize-1)) * 360.0
			chroma := minChroma + (float64(j)/float64(gridSize-1))*(maxChroma-minChroma)
			lightness := baseLightness + 0.1*math.Sin(float64(i+j)*0.5)

			roughness := 0.05 + 0.1*float64((i+j)%3)/2.0
			metal := b.AddMaterial(fmt.Sprintf("metal-%d-%d", i, j),
				material.NewMetal(oklchToRGB(lightness, chroma, hue), roughness))

			b.AddShape(geometry.NewSphere(position, sphereRadius, metal))
		}
	}

	return b.Build()
}
