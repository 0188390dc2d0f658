package core

// AABB represents an axis-aligned bounding box. Min <= Max componentwise for
// every box that bounds something.
type AABB struct {
	Min Vec3 // Minimum corner
	Max Vec3 // Maximum corner
}

// NewAABB creates a new AABB from min and max points
func NewAABB(min, max Vec3) AABB {
	return AABB{Min: min, Max: max}
}

// Hit tests if a ray intersects this AABB within [tMin, tMax] using the slab method.
// A zero direction component yields an infinite inverse; the comparisons
// below are written so that NaN (0 * Inf) leaves the interval untouched.
func (aabb AABB) Hit(ray Ray, tMin, tMax float64) bool {
	for axis := 0; axis < 3; axis++ {
		invD := 1.0 / ray.Direction.Axis(axis)
		origin := ray.Origin.Axis(axis)

		t0 := (aabb.Min.Axis(axis) - origin) * invD
		t1 := (aabb.Max.Axis(axis) - origin) * invD
		if invD < 0 {
			t0, t1 = t1, t0
		}

		if t0 > tMin {
			tMin = t0
		}
		if t1 < tMax {
			tMax = t1
		}
		if tMax <= tMin {
			return false
		}
	}

	return true
}

// Union returns the smallest AABB that bounds both this AABB and another
func (aabb AABB) Union(other AABB) AABB {
	return AABB{
		Min: Vec3{
			X: min(aabb.Min.X, other.Min.X),
			Y: min(aabb.Min.Y, other.Min.Y),
			Z: min(aabb.Min.Z, other.Min.Z),
		},
		Max: Vec3{
			X: max(aabb.Max.X, other.Max.X),
			Y: max(aabb.Max.Y, other.Max.Y),
			Z: max(aabb.Max.Z, other.Max.Z),
		},
	}
}

// SurroundingBox returns the union of two boxes
func SurroundingBox(a, b AABB) AABB {
	return a.Union(b)
}

// Contains reports whether other lies within this box (boundaries included)
func (aabb AABB) Contains(other AABB) bool {
	return aabb.Min.X <= other.Min.X && other.Max.X <= aabb.Max.X &&
		aabb.Min.Y <= other.Min.Y && other.Max.Y <= aabb.Max.Y &&
		aabb.Min.Z <= other.Min.Z && other.Max.Z <= aabb.Max.Z
}

// Equals reports componentwise equality of both corners
func (aabb AABB) Equals(other AABB) bool {
	return aabb.Min == other.Min && aabb.Max == other.Max
}

// IsValid returns true if this is a valid AABB (min <= max for all axes)
func (aabb AABB) IsValid() bool {
	return aabb.Min.X <= aabb.Max.X &&
		aabb.Min.Y <= aabb.Max.Y &&
		aabb.Min.Z <= aabb.Max.Z
}

// Pad grows any axis thinner than delta so flat shapes get a hittable volume
func (aabb AABB) Pad(delta float64) AABB {
	padAxis := func(lo, hi float64) (float64, float64) {
		if hi-lo >= delta {
			return lo, hi
		}
		half := delta / 2
		return lo - half, hi + half
	}

	minX, maxX := padAxis(aabb.Min.X, aabb.Max.X)
	minY, maxY := padAxis(aabb.Min.Y, aabb.Max.Y)
	minZ, maxZ := padAxis(aabb.Min.Z, aabb.Max.Z)
	return AABB{Min: NewVec3(minX, minY, minZ), Max: NewVec3(maxX, maxY, maxZ)}
}
