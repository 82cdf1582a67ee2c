package geometry

import (
	"math"

	"github.com/df07/go-light-transport/pkg/core"
)

// Quad represents a parallelogram defined by a corner and two edge vectors.
// The normal is U × V normalized.
type Quad struct {
	Corner core.Vec3 // One corner of the quad
	U      core.Vec3 // First edge vector
	V      core.Vec3 // Second edge vector
	Normal core.Vec3
	d      float64   // Plane equation constant: normal · p = d
	w      core.Vec3 // Cached vector for planar coordinates
	area   float64
}

// NewQuad creates a new quad from a corner point and two edge vectors
func NewQuad(corner, u, v core.Vec3) *Quad {
	cross := u.Cross(v)
	normal := cross.Normalize()
	return &Quad{
		Corner: corner,
		U:      u,
		V:      v,
		Normal: normal,
		d:      normal.Dot(corner),
		w:      cross.Multiply(1 / cross.Dot(cross)),
		area:   cross.Length(),
	}
}

// Hit tests if a ray intersects with the quad
func (q *Quad) Hit(ray core.Ray, tMin, tMax float64) (float64, core.SurfaceGeometry, bool) {
	denominator := ray.Direction.Dot(q.Normal)

	// Ray is parallel to the plane
	if math.Abs(denominator) < 1e-12 {
		return 0, core.SurfaceGeometry{}, false
	}

	t := (q.d - ray.Origin.Dot(q.Normal)) / denominator
	if t < tMin || t > tMax {
		return 0, core.SurfaceGeometry{}, false
	}

	// Planar coordinates of the hit point along U and V
	p := ray.At(t)
	rel := p.Subtract(q.Corner)
	alpha := q.w.Dot(rel.Cross(q.V))
	beta := q.w.Dot(q.U.Cross(rel))
	if alpha < 0 || alpha > 1 || beta < 0 || beta > 1 {
		return 0, core.SurfaceGeometry{}, false
	}

	return t, core.NewSurfaceGeometry(p, q.Normal), true
}

// BoundingBox returns a slightly padded box so axis-aligned quads are not flat
func (q *Quad) BoundingBox() AABB {
	return NewAABBFromPoints(
		q.Corner,
		q.Corner.Add(q.U),
		q.Corner.Add(q.V),
		q.Corner.Add(q.U).Add(q.V),
	).Expand(1e-4)
}

// SamplePosition returns a uniformly distributed point on the quad
func (q *Quad) SamplePosition(u core.Vec2) core.SurfaceGeometry {
	p := q.Corner.Add(q.U.Multiply(u.X)).Add(q.V.Multiply(u.Y))
	return core.NewSurfaceGeometry(p, q.Normal)
}

// Area returns the surface area
func (q *Quad) Area() float64 {
	return q.area
}
