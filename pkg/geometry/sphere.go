package geometry

import (
	"math"

	"github.com/df07/go-light-transport/pkg/core"
)

// Sphere represents a sphere shape
type Sphere struct {
	Center core.Vec3
	Radius float64
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float64) *Sphere {
	return &Sphere{Center: center, Radius: radius}
}

// Hit tests if a ray intersects with the sphere
func (s *Sphere) Hit(ray core.Ray, tMin, tMax float64) (float64, core.SurfaceGeometry, bool) {
	// Quadratic equation coefficients: at² + 2bt + c = 0
	oc := ray.Origin.Subtract(s.Center)
	a := ray.Direction.Dot(ray.Direction)
	halfB := oc.Dot(ray.Direction)
	c := oc.Dot(oc) - s.Radius*s.Radius

	discriminant := halfB*halfB - a*c
	if discriminant < 0 {
		return 0, core.SurfaceGeometry{}, false
	}
	sqrtD := math.Sqrt(discriminant)

	// Try the closer intersection point first
	root := (-halfB - sqrtD) / a
	if root < tMin || root > tMax {
		root = (-halfB + sqrtD) / a
		if root < tMin || root > tMax {
			return 0, core.SurfaceGeometry{}, false
		}
	}

	p := ray.At(root)
	return root, core.NewSurfaceGeometry(p, p.Subtract(s.Center).Multiply(1/s.Radius)), true
}

// BoundingBox returns the axis-aligned bounding box for this sphere
func (s *Sphere) BoundingBox() AABB {
	r := core.NewVec3(s.Radius, s.Radius, s.Radius)
	return NewAABB(s.Center.Subtract(r), s.Center.Add(r))
}

// SamplePosition returns a uniformly distributed point on the sphere
func (s *Sphere) SamplePosition(u core.Vec2) core.SurfaceGeometry {
	n := core.SampleOnUnitSphere(u)
	return core.NewSurfaceGeometry(s.Center.Add(n.Multiply(s.Radius)), n)
}

// Area returns the surface area
func (s *Sphere) Area() float64 {
	return 4 * math.Pi * s.Radius * s.Radius
}
