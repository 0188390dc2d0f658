package geometry

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// MockShape for testing
type MockShape struct {
	boundingBox core.AABB
	hitFn       func(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool)
}

func (m MockShape) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	return m.hitFn(ray, tMin, tMax)
}

func (m MockShape) BoundingBox() core.AABB {
	return m.boundingBox
}

// randomScene builds spheres and rectangles that each own a distinct material,
// so a hit identifies the object that produced it
func randomScene(sampler core.Sampler, count int) []Shape {
	shapes := make([]Shape, 0, count)
	for i := 0; i < count; i++ {
		mat := material.NewLambertian(sampler.Get3D())
		center := sampler.Get3D().Multiply(20).Subtract(core.NewVec3(10, 10, 10))
		if i%5 == 0 {
			size := 0.5 + sampler.Get1D()*2
			switch i % 3 {
			case 0:
				shapes = append(shapes, NewRectXY(center.X, center.X+size, center.Y, center.Y+size, center.Z, i%2 == 0, mat))
			case 1:
				shapes = append(shapes, NewRectXZ(center.X, center.X+size, center.Z, center.Z+size, center.Y, i%2 == 0, mat))
			default:
				shapes = append(shapes, NewRectYZ(center.Y, center.Y+size, center.Z, center.Z+size, center.X, i%2 == 0, mat))
			}
			continue
		}
		shapes = append(shapes, NewSphere(center, 0.2+sampler.Get1D()*0.8, mat))
	}
	return shapes
}

func TestBVH_MatchesLinearScan(t *testing.T) {
	sampler := core.NewRandomSampler(2024)

	for _, count := range []int{1, 2, 3, 7, 64, 300} {
		shapes := randomScene(sampler, count)
		bvh := NewBVH(shapes, 99)
		list := NewShapeList(shapes...)

		for i := 0; i < 2000; i++ {
			origin := sampler.Get3D().Multiply(30).Subtract(core.NewVec3(15, 15, 15))
			target := sampler.Get3D().Multiply(20).Subtract(core.NewVec3(10, 10, 10))
			ray := core.NewRay(origin, target.Subtract(origin))

			want, wantOK := list.Hit(ray, 0.001, math.Inf(1))
			got, gotOK := bvh.Hit(ray, 0.001, math.Inf(1))

			require.Equal(t, wantOK, gotOK, "count=%d ray=%v", count, ray)
			if !wantOK {
				continue
			}
			assert.InDelta(t, want.T, got.T, 1e-9)
			assert.Same(t, want.Material, got.Material, "BVH returned a different object")
		}
	}
}

func TestBVH_NodeBoxesAreUnionOfChildren(t *testing.T) {
	shapes := randomScene(core.NewRandomSampler(8), 100)
	bvh := NewBVH(shapes, 1)

	for i, node := range bvh.nodes {
		var expected core.AABB
		switch node.kind {
		case leafOne:
			expected = bvh.shapes[node.left].BoundingBox()
		case leafTwo:
			expected = core.SurroundingBox(bvh.shapes[node.left].BoundingBox(), bvh.shapes[node.right].BoundingBox())
		default:
			expected = core.SurroundingBox(bvh.nodes[node.left].box, bvh.nodes[node.right].box)
		}
		assert.True(t, node.box.Equals(expected), "node %d box %v, expected %v", i, node.box, expected)
	}

	assert.True(t, bvh.BoundingBox().Equals(NewShapeList(shapes...).BoundingBox()))
}

func TestBVH_Stats(t *testing.T) {
	tests := []struct {
		name     string
		count    int
		expected BVHStats
	}{
		{"Single shape", 1, BVHStats{Shapes: 1, Nodes: 1, Leaves: 1, MaxDepth: 1}},
		{"Two shapes", 2, BVHStats{Shapes: 2, Nodes: 1, Leaves: 1, MaxDepth: 1}},
		{"Five shapes", 5, BVHStats{Shapes: 5, Nodes: 5, Leaves: 3, MaxDepth: 3}},
		{"Eight shapes", 8, BVHStats{Shapes: 8, Nodes: 7, Leaves: 4, MaxDepth: 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shapes := randomScene(core.NewRandomSampler(3), tt.count)
			if diff := cmp.Diff(tt.expected, NewBVH(shapes, 0).Stats()); diff != "" {
				t.Errorf("Stats() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestBVH_DeterministicPerSeed(t *testing.T) {
	shapes := randomScene(core.NewRandomSampler(4), 50)
	original := append([]Shape(nil), shapes...)

	a := NewBVH(shapes, 17)
	b := NewBVH(shapes, 17)

	if diff := cmp.Diff(a.nodes, b.nodes, cmp.AllowUnexported(bvhNode{})); diff != "" {
		t.Errorf("same seed built different trees:\n%s", diff)
	}
	for i := range shapes {
		assert.Same(t, original[i], shapes[i], "NewBVH must not reorder the caller's slice")
	}
}

func TestBVH_PreconditionPanics(t *testing.T) {
	assert.Panics(t, func() { NewBVH(nil, 0) }, "empty input")

	inverted := MockShape{
		boundingBox: core.NewAABB(core.NewVec3(1, 1, 1), core.NewVec3(0, 0, 0)),
		hitFn: func(core.Ray, float64, float64) (*material.HitRecord, bool) {
			return nil, false
		},
	}
	assert.Panics(t, func() { NewBVH([]Shape{inverted}, 0) }, "invalid child box")
}

func TestBVH_ReturnsCloserOfOverlappingChildren(t *testing.T) {
	box := core.NewAABB(core.NewVec3(-1, -1, -1), core.NewVec3(1, 1, 1))
	fixed := func(tHit float64) MockShape {
		return MockShape{
			boundingBox: box,
			hitFn: func(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
				if tHit < tMin || tHit > tMax {
					return nil, false
				}
				return &material.HitRecord{T: tHit, Point: ray.At(tHit)}, true
			},
		}
	}

	bvh := NewBVH([]Shape{fixed(4), fixed(2), fixed(3)}, 5)
	hit, ok := bvh.Hit(core.NewRay(core.NewVec3(0, 0, -5), core.NewVec3(0, 0, 1)), 0.001, math.Inf(1))
	require.True(t, ok)
	assert.Equal(t, 2.0, hit.T)
}
