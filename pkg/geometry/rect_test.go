package geometry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/df07/go-pathtracer/pkg/core"
)

func TestRect_Hit(t *testing.T) {
	tests := []struct {
		name           string
		rect           *Rect
		ray            core.Ray
		hit            bool
		expectedT      float64
		expectedNormal core.Vec3
	}{
		{
			name:           "XY rect head on, flipped toward the ray",
			rect:           NewRectXY(-1, 1, -1, 1, 5, true, nil),
			ray:            core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1)),
			hit:            true,
			expectedT:      5,
			expectedNormal: core.NewVec3(0, 0, -1),
		},
		{
			name:           "XZ rect from below, flipped",
			rect:           NewRectXZ(0, 2, 0, 2, 1, true, nil),
			ray:            core.NewRay(core.NewVec3(1, -1, 1), core.NewVec3(0, 2, 0)),
			hit:            true,
			expectedT:      1,
			expectedNormal: core.NewVec3(0, -1, 0),
		},
		{
			name:           "YZ rect with oblique ray",
			rect:           NewRectYZ(0, 4, 0, 4, 2, true, nil),
			ray:            core.NewRay(core.NewVec3(0, 1, 1), core.NewVec3(1, 0.5, 0.5)),
			hit:            true,
			expectedT:      2,
			expectedNormal: core.NewVec3(-1, 0, 0),
		},
		{
			name: "Outside bounds",
			rect: NewRectXY(-1, 1, -1, 1, 5, false, nil),
			ray:  core.NewRay(core.NewVec3(3, 0, 0), core.NewVec3(0, 0, 1)),
			hit:  false,
		},
		{
			name: "Parallel ray",
			rect: NewRectXY(-1, 1, -1, 1, 5, false, nil),
			ray:  core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0)),
			hit:  false,
		},
		{
			name: "Parallel ray inside plane",
			rect: NewRectXY(-1, 1, -1, 1, 0, false, nil),
			ray:  core.NewRay(core.NewVec3(-5, 0, 0), core.NewVec3(1, 0, 0)),
			hit:  false,
		},
		{
			name: "Plane behind origin",
			rect: NewRectXY(-1, 1, -1, 1, -5, false, nil),
			ray:  core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1)),
			hit:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit, ok := tt.rect.Hit(tt.ray, 0.001, math.Inf(1))
			require.Equal(t, tt.hit, ok)
			if !tt.hit {
				return
			}
			assert.InDelta(t, tt.expectedT, hit.T, 1e-9)
			assert.Equal(t, tt.expectedNormal, hit.Normal)
			assert.True(t, hit.FrontFace)
		})
	}
}

func TestRect_Hit_BackFace(t *testing.T) {
	rect := NewRectXY(-1, 1, -1, 1, 5, false, nil)
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1))

	hit, ok := rect.Hit(ray, 0.001, math.Inf(1))
	require.True(t, ok)
	assert.False(t, hit.FrontFace)
	assert.Equal(t, core.NewVec3(0, 0, 1), hit.Normal)
}

func TestRect_BoundingBox(t *testing.T) {
	tests := []struct {
		name     string
		rect     *Rect
		expected core.AABB
	}{
		{
			name:     "XY",
			rect:     NewRectXY(0, 1, 2, 3, 4, false, nil),
			expected: core.NewAABB(core.NewVec3(0, 2, 4-rectThickness), core.NewVec3(1, 3, 4+rectThickness)),
		},
		{
			name:     "XZ with swapped bounds",
			rect:     NewRectXZ(1, 0, 3, 2, 4, false, nil),
			expected: core.NewAABB(core.NewVec3(0, 4-rectThickness, 2), core.NewVec3(1, 4+rectThickness, 3)),
		},
		{
			name:     "YZ",
			rect:     NewRectYZ(0, 1, 2, 3, 4, true, nil),
			expected: core.NewAABB(core.NewVec3(4-rectThickness, 0, 2), core.NewVec3(4+rectThickness, 1, 3)),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.rect.BoundingBox().Equals(tt.expected), "got %v", tt.rect.BoundingBox())
		})
	}
}
