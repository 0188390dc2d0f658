package geometry

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// Axis identifies a coordinate axis
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

// rectThickness pads the bounding box of a rectangle along its fixed axis
const rectThickness = 1e-4

// Rect is an axis-aligned rectangle lying in the plane Axis = K.
// Min and Max bound the two remaining axes in x, y, z order, so an XZ
// rectangle stores (x, z) pairs.
type Rect struct {
	Axis     Axis
	K        float64
	Min      core.Vec2
	Max      core.Vec2
	Flip     bool // Negate the normal, which otherwise points along +Axis
	Material material.Material
}

// NewRectXY creates a rectangle in the plane z = k
func NewRectXY(x0, x1, y0, y1, k float64, flip bool, mat material.Material) *Rect {
	return newRect(AxisZ, k, x0, x1, y0, y1, flip, mat)
}

// NewRectXZ creates a rectangle in the plane y = k
func NewRectXZ(x0, x1, z0, z1, k float64, flip bool, mat material.Material) *Rect {
	return newRect(AxisY, k, x0, x1, z0, z1, flip, mat)
}

// NewRectYZ creates a rectangle in the plane x = k
func NewRectYZ(y0, y1, z0, z1, k float64, flip bool, mat material.Material) *Rect {
	return newRect(AxisX, k, y0, y1, z0, z1, flip, mat)
}

func newRect(axis Axis, k, u0, u1, v0, v1 float64, flip bool, mat material.Material) *Rect {
	return &Rect{
		Axis:     axis,
		K:        k,
		Min:      core.NewVec2(min(u0, u1), min(v0, v1)),
		Max:      core.NewVec2(max(u0, u1), max(v0, v1)),
		Flip:     flip,
		Material: mat,
	}
}

// planeAxes returns the two in-plane axes in x, y, z order
func (r *Rect) planeAxes() (int, int) {
	switch r.Axis {
	case AxisX:
		return 1, 2
	case AxisY:
		return 0, 2
	default:
		return 0, 1
	}
}

// Hit tests if a ray intersects with the rectangle
func (r *Rect) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	axis := int(r.Axis)

	// Parallel rays give ±Inf or NaN and are rejected here
	t := (r.K - ray.Origin.Axis(axis)) / ray.Direction.Axis(axis)
	if !(t >= tMin && t <= tMax) {
		return nil, false
	}

	point := ray.At(t)
	ua, va := r.planeAxes()
	u, v := point.Axis(ua), point.Axis(va)
	if !(u >= r.Min.X && u <= r.Max.X && v >= r.Min.Y && v <= r.Max.Y) {
		return nil, false
	}

	hitRecord := &material.HitRecord{
		T:        t,
		Point:    point,
		Material: r.Material,
	}
	hitRecord.SetOutwardNormal(ray, r.Normal())

	return hitRecord, true
}

// Normal returns the unit normal of the rectangle
func (r *Rect) Normal() core.Vec3 {
	var n core.Vec3
	switch r.Axis {
	case AxisX:
		n = core.NewVec3(1, 0, 0)
	case AxisY:
		n = core.NewVec3(0, 1, 0)
	default:
		n = core.NewVec3(0, 0, 1)
	}
	if r.Flip {
		return n.Negate()
	}
	return n
}

// BoundingBox returns the rectangle padded along its fixed axis
func (r *Rect) BoundingBox() core.AABB {
	ua, va := r.planeAxes()
	var lo, hi [3]float64
	lo[ua], hi[ua] = r.Min.X, r.Max.X
	lo[va], hi[va] = r.Min.Y, r.Max.Y
	lo[r.Axis], hi[r.Axis] = r.K, r.K
	return core.NewAABB(
		core.NewVec3(lo[0], lo[1], lo[2]),
		core.NewVec3(hi[0], hi[1], hi[2]),
	).Pad(2 * rectThickness)
}
