package geometry

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// Box is an axis-aligned box made up of six rectangles with outward normals
type Box struct {
	Min      core.Vec3         // Minimum corner
	Max      core.Vec3         // Maximum corner
	Material material.Material // Material for all faces
	faces    *ShapeList
}

// NewBox creates a box spanning the two corners in any order
func NewBox(p0, p1 core.Vec3, mat material.Material) *Box {
	lo := core.NewVec3(min(p0.X, p1.X), min(p0.Y, p1.Y), min(p0.Z, p1.Z))
	hi := core.NewVec3(max(p0.X, p1.X), max(p0.Y, p1.Y), max(p0.Z, p1.Z))

	return &Box{
		Min:      lo,
		Max:      hi,
		Material: mat,
		faces: NewShapeList(
			NewRectXY(lo.X, hi.X, lo.Y, hi.Y, hi.Z, false, mat), // front (+Z)
			NewRectXY(lo.X, hi.X, lo.Y, hi.Y, lo.Z, true, mat),  // back (-Z)
			NewRectXZ(lo.X, hi.X, lo.Z, hi.Z, hi.Y, false, mat), // top (+Y)
			NewRectXZ(lo.X, hi.X, lo.Z, hi.Z, lo.Y, true, mat),  // bottom (-Y)
			NewRectYZ(lo.Y, hi.Y, lo.Z, hi.Z, hi.X, false, mat), // right (+X)
			NewRectYZ(lo.Y, hi.Y, lo.Z, hi.Z, lo.X, true, mat),  // left (-X)
		),
	}
}

// Hit returns the nearest face hit
func (b *Box) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	return b.faces.Hit(ray, tMin, tMax)
}

// BoundingBox returns the union of the face boxes
func (b *Box) BoundingBox() core.AABB {
	return b.faces.BoundingBox()
}
