package scene

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

func testCameraConfig() renderer.CameraConfig {
	return renderer.CameraConfig{
		Center: core.NewVec3(0, 0, 1),
		LookAt: core.NewVec3(0, 0, -1),
		Up:     core.NewVec3(0, 1, 0),
		VFov:   60,
	}
}

func TestBuilder_Build(t *testing.T) {
	b := NewBuilder("test")
	b.SetCamera(testCameraConfig())
	red := b.AddMaterial("red", material.NewLambertian(core.NewVec3(0.7, 0.2, 0.2)))
	b.AddShape(
		geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5, red),
		geometry.NewRectXZ(-5, 5, -5, 5, -0.5, false, red),
	)

	s, err := b.Build()
	require.NoError(t, err)

	assert.Equal(t, "test", s.Name)
	assert.Equal(t, 2, s.GetPrimitiveCount())
	assert.Equal(t, 2, s.BVH.Stats().Shapes)
	assert.Same(t, red, s.Materials["red"])
	assert.NotNil(t, s.Camera)
	assert.InDelta(t, 400.0/225.0, s.CameraConfig.AspectRatio, 1e-12, "aspect ratio derives from sampling size")

	hit, ok := s.Intersect(core.NewRay(core.NewVec3(0, 0, 1), core.NewVec3(0, 0, -1)))
	require.True(t, ok)
	assert.InDelta(t, 1.5, hit.T, 1e-9)
	assert.Same(t, red, hit.Material)
}

func TestBuilder_Errors(t *testing.T) {
	lambertian := material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))
	unowned := material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))

	tests := []struct {
		name    string
		setup   func(b *Builder)
		wantErr error
	}{
		{
			name:    "no shapes",
			setup:   func(b *Builder) {},
			wantErr: ErrEmptyScene,
		},
		{
			name: "material not owned by scene",
			setup: func(b *Builder) {
				b.AddMaterial("gray", lambertian)
				b.AddShape(geometry.NewSphere(core.Vec3{}, 1, unowned))
			},
			wantErr: ErrInvalidScene,
		},
		{
			name: "nil material",
			setup: func(b *Builder) {
				b.AddShape(geometry.NewSphere(core.Vec3{}, 1, nil))
			},
			wantErr: ErrInvalidScene,
		},
		{
			name: "duplicate material name",
			setup: func(b *Builder) {
				b.AddMaterial("gray", lambertian)
				b.AddMaterial("gray", unowned)
				b.AddShape(geometry.NewSphere(core.Vec3{}, 1, unowned))
			},
			wantErr: ErrInvalidScene,
		},
		{
			name: "camera looks at itself",
			setup: func(b *Builder) {
				b.AddMaterial("gray", lambertian)
				b.AddShape(geometry.NewSphere(core.Vec3{}, 1, lambertian))
				b.SetCamera(renderer.CameraConfig{
					Center: core.NewVec3(1, 1, 1),
					LookAt: core.NewVec3(1, 1, 1),
					Up:     core.NewVec3(0, 1, 0),
					VFov:   40,
				})
			},
			wantErr: ErrInvalidScene,
		},
		{
			name: "up parallel to view",
			setup: func(b *Builder) {
				b.AddMaterial("gray", lambertian)
				b.AddShape(geometry.NewSphere(core.Vec3{}, 1, lambertian))
				b.SetCamera(renderer.CameraConfig{
					Center: core.NewVec3(0, 5, 0),
					LookAt: core.NewVec3(0, 0, 0),
					Up:     core.NewVec3(0, 1, 0),
					VFov:   40,
				})
			},
			wantErr: ErrInvalidScene,
		},
		{
			name: "zero samples",
			setup: func(b *Builder) {
				b.AddMaterial("gray", lambertian)
				b.AddShape(geometry.NewSphere(core.Vec3{}, 1, lambertian))
				b.SetSampling(SamplingConfig{Width: 10, Height: 10, SamplesPerPixel: 0, MaxDepth: 5})
			},
			wantErr: ErrInvalidScene,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBuilder(tt.name)
			b.SetCamera(testCameraConfig())
			tt.setup(b)

			s, err := b.Build()
			assert.Nil(t, s)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v, want %v", err, tt.wantErr)
		})
	}
}

func TestGradient_At(t *testing.T) {
	g := Gradient{Top: core.NewVec3(0.5, 0.7, 1.0), Bottom: core.NewVec3(1, 1, 1)}

	tests := []struct {
		name      string
		direction core.Vec3
		want      core.Vec3
	}{
		{"straight up", core.NewVec3(0, 3, 0), g.Top},
		{"straight down", core.NewVec3(0, -2, 0), g.Bottom},
		{"horizon", core.NewVec3(1, 0, 0), core.NewVec3(0.75, 0.85, 1.0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := g.At(core.NewRay(core.Vec3{}, tt.direction))
			assert.True(t, got.Equals(tt.want, 1e-12), "got %v, want %v", got, tt.want)
		})
	}
}
