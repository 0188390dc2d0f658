package geometry

import (
	"fmt"
	"sort"

	"pgregory.net/rand"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

type nodeKind uint8

const (
	interiorNode nodeKind = iota // left and right index nodes
	leafOne                      // left indexes a single shape
	leafTwo                      // left and right index two shapes
)

// bvhNode is stored in a flat arena; children are referenced by index so
// every node exclusively owns its two child slots.
type bvhNode struct {
	box         core.AABB
	kind        nodeKind
	left, right int32
}

// bvhItem caches a shape's bounding box during construction
type bvhItem struct {
	shape Shape
	box   core.AABB
}

// BVH represents a Bounding Volume Hierarchy for fast ray-object intersection.
// It is immutable after construction and safe for concurrent queries.
type BVH struct {
	nodes  []bvhNode
	shapes []Shape
	stats  BVHStats
}

// BVHStats describes the shape of a built hierarchy
type BVHStats struct {
	Shapes   int
	Nodes    int
	Leaves   int
	MaxDepth int
}

// NewBVH constructs a BVH over shapes. The split axis of every node is drawn
// from a generator seeded with seed, so identical inputs build identical trees.
// Panics if shapes is empty or any shape has an invalid bounding box.
func NewBVH(shapes []Shape, seed uint64) *BVH {
	if len(shapes) == 0 {
		panic("geometry: NewBVH called with no shapes")
	}

	// Copy so the caller's slice order is untouched by sorting
	items := make([]bvhItem, len(shapes))
	for i, shape := range shapes {
		items[i] = bvhItem{shape: shape, box: shape.BoundingBox()}
	}

	b := &bvhBuilder{
		items:  items,
		random: rand.New(seed),
		nodes:  make([]bvhNode, 0, 2*len(items)),
	}
	b.build(0, len(items), 1)

	ordered := make([]Shape, len(items))
	for i, item := range items {
		ordered[i] = item.shape
	}

	b.stats.Shapes = len(items)
	b.stats.Nodes = len(b.nodes)
	return &BVH{nodes: b.nodes, shapes: ordered, stats: b.stats}
}

type bvhBuilder struct {
	items  []bvhItem
	random *rand.Rand
	nodes  []bvhNode
	stats  BVHStats
}

// build creates the node for items[lo:hi] and returns its arena index
func (b *bvhBuilder) build(lo, hi, depth int) int32 {
	idx := int32(len(b.nodes))
	b.nodes = append(b.nodes, bvhNode{})
	b.stats.MaxDepth = max(b.stats.MaxDepth, depth)

	// Sort the range by bounding box minimum along a random axis
	axis := b.random.Intn(3)
	span := b.items[lo:hi]
	sort.SliceStable(span, func(i, j int) bool {
		return span[i].box.Min.Axis(axis) < span[j].box.Min.Axis(axis)
	})

	var node bvhNode
	switch hi - lo {
	case 1:
		node = bvhNode{kind: leafOne, left: int32(lo)}
		node.box = checkedUnion(b.items[lo].box, b.items[lo].box)
		b.stats.Leaves++
	case 2:
		node = bvhNode{kind: leafTwo, left: int32(lo), right: int32(lo + 1)}
		node.box = checkedUnion(b.items[lo].box, b.items[lo+1].box)
		b.stats.Leaves++
	default:
		mid := lo + (hi-lo)/2
		left := b.build(lo, mid, depth+1)
		right := b.build(mid, hi, depth+1)
		node = bvhNode{kind: interiorNode, left: left, right: right}
		node.box = checkedUnion(b.nodes[left].box, b.nodes[right].box)
	}

	b.nodes[idx] = node
	return idx
}

// checkedUnion returns the union of two child boxes and panics if either is
// invalid or the result fails to enclose them
func checkedUnion(a, c core.AABB) core.AABB {
	if !a.IsValid() || !c.IsValid() {
		panic(fmt.Sprintf("geometry: invalid child bounding box %v / %v", a, c))
	}
	box := core.SurroundingBox(a, c)
	if !box.Contains(a) || !box.Contains(c) {
		panic(fmt.Sprintf("geometry: node box %v does not bound its children", box))
	}
	return box
}

// Hit returns the closest intersection in [tMin, tMax]
func (bvh *BVH) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	return bvh.hitNode(0, ray, tMin, tMax)
}

// hitNode tests both children with the same interval; either subtree may hold
// the closer hit
func (bvh *BVH) hitNode(idx int32, ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	node := &bvh.nodes[idx]
	if !node.box.Hit(ray, tMin, tMax) {
		return nil, false
	}

	switch node.kind {
	case leafOne:
		return bvh.shapes[node.left].Hit(ray, tMin, tMax)
	case leafTwo:
		left, leftOK := bvh.shapes[node.left].Hit(ray, tMin, tMax)
		right, rightOK := bvh.shapes[node.right].Hit(ray, tMin, tMax)
		return closer(left, leftOK, right, rightOK)
	default:
		left, leftOK := bvh.hitNode(node.left, ray, tMin, tMax)
		right, rightOK := bvh.hitNode(node.right, ray, tMin, tMax)
		return closer(left, leftOK, right, rightOK)
	}
}

func closer(a *material.HitRecord, aOK bool, b *material.HitRecord, bOK bool) (*material.HitRecord, bool) {
	switch {
	case aOK && bOK:
		if b.T < a.T {
			return b, true
		}
		return a, true
	case aOK:
		return a, true
	case bOK:
		return b, true
	}
	return nil, false
}

// BoundingBox returns the root bounding box
func (bvh *BVH) BoundingBox() core.AABB {
	return bvh.nodes[0].box
}

// Stats returns node counts and depth of the hierarchy
func (bvh *BVH) Stats() BVHStats {
	return bvh.stats
}
