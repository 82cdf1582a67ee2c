package geometry

import "github.com/df07/go-light-transport/pkg/core"

// Shape is a surface that can be intersected and sampled uniformly by area
type Shape interface {
	// Hit returns the ray parameter and surface geometry of the closest hit in [tMin, tMax]
	Hit(ray core.Ray, tMin, tMax float64) (float64, core.SurfaceGeometry, bool)
	BoundingBox() AABB
	// SamplePosition returns a point distributed uniformly over the surface
	SamplePosition(u core.Vec2) core.SurfaceGeometry
	Area() float64
}
