package geometry

import (
	"sort"

	"github.com/df07/go-light-transport/pkg/core"
)

// Hit is the closest intersection found in a BVH
type Hit struct {
	Index int     // Index of the shape in the slice passed to NewBVH
	T     float64 // Ray parameter
	Geom  core.SurfaceGeometry
}

type bvhItem struct {
	shape Shape
	index int
	box   AABB
}

// BVHNode represents a node in the Bounding Volume Hierarchy
type BVHNode struct {
	BoundingBox AABB
	Left        *BVHNode
	Right       *BVHNode
	items       []bvhItem // Leaf contents (nil for internal nodes)
}

// BVH accelerates closest-hit queries over a fixed list of shapes
type BVH struct {
	Root *BVHNode
}

// Leaf threshold: if we have this many or fewer shapes, store them in a leaf node
const leafThreshold = 8

// NewBVH constructs a BVH. Hits report indices into shapes.
func NewBVH(shapes []Shape) *BVH {
	if len(shapes) == 0 {
		return &BVH{}
	}
	items := make([]bvhItem, len(shapes))
	for i, s := range shapes {
		items[i] = bvhItem{shape: s, index: i, box: s.BoundingBox()}
	}
	return &BVH{Root: buildBVH(items)}
}

// buildBVH splits at the median along the longest axis
func buildBVH(items []bvhItem) *BVHNode {
	box := items[0].box
	for _, it := range items[1:] {
		box = box.Union(it.box)
	}

	if len(items) <= leafThreshold {
		return &BVHNode{BoundingBox: box, items: items}
	}

	axis := box.LongestAxis()
	sort.Slice(items, func(i, j int) bool {
		return items[i].box.Center().Component(axis) < items[j].box.Center().Component(axis)
	})

	mid := len(items) / 2
	return &BVHNode{
		BoundingBox: box,
		Left:        buildBVH(items[:mid]),
		Right:       buildBVH(items[mid:]),
	}
}

// Hit returns the closest intersection in [tMin, tMax]
func (bvh *BVH) Hit(ray core.Ray, tMin, tMax float64) (Hit, bool) {
	if bvh.Root == nil {
		return Hit{}, false
	}
	return hitNode(bvh.Root, ray, tMin, tMax)
}

func hitNode(node *BVHNode, ray core.Ray, tMin, tMax float64) (Hit, bool) {
	if !node.BoundingBox.Hit(ray, tMin, tMax) {
		return Hit{}, false
	}

	var closest Hit
	found := false

	if node.items != nil {
		for _, it := range node.items {
			if t, geom, ok := it.shape.Hit(ray, tMin, tMax); ok {
				found = true
				tMax = t
				closest = Hit{Index: it.index, T: t, Geom: geom}
			}
		}
		return closest, found
	}

	for _, child := range []*BVHNode{node.Left, node.Right} {
		if child == nil {
			continue
		}
		if h, ok := hitNode(child, ray, tMin, tMax); ok {
			found = true
			tMax = h.T
			closest = h
		}
	}
	return closest, found
}
