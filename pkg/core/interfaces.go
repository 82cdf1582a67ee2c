package core

import "strings"

// SurfaceInteractionType classifies what happens at a path vertex
type SurfaceInteractionType int

const (
	Diffuse SurfaceInteractionType = 1 << iota
	Glossy
	Specular
	Emitter
	Sensor

	// BSDF matches any scattering interaction
	BSDF = Diffuse | Glossy | Specular
	// Endpoint matches light and sensor vertices
	Endpoint = Emitter | Sensor
)

// String returns the letters used in Heckbert path notation (D, G, S, L, E)
func (t SurfaceInteractionType) String() string {
	var sb strings.Builder
	for _, f := range []struct {
		flag   SurfaceInteractionType
		letter byte
	}{{Emitter, 'L'}, {Diffuse, 'D'}, {Glossy, 'G'}, {Specular, 'S'}, {Sensor, 'E'}} {
		if t&f.flag != 0 {
			sb.WriteByte(f.letter)
		}
	}
	return sb.String()
}

// TransportDirection tells which endpoint a subpath was grown from
type TransportDirection int

const (
	// LE transports radiance from a light toward the eye
	LE TransportDirection = iota
	// EL transports importance from the eye toward a light
	EL
)

func (d TransportDirection) String() string {
	if d == LE {
		return "LE"
	}
	return "EL"
}

// SurfaceGeometry describes a point on a surface
type SurfaceGeometry struct {
	P           Vec3  // Position
	N           Vec3  // Geometric normal, not flipped toward the ray
	Frame       Frame // Shading frame with W == N
	Degenerated bool  // Point-like geometry such as a pinhole
}

// NewSurfaceGeometry builds geometry with a frame around n
func NewSurfaceGeometry(p, n Vec3) SurfaceGeometry {
	return SurfaceGeometry{P: p, N: n, Frame: NewFrame(n)}
}

// Primitive is the scattering capability attached to a point in the scene.
// Directional densities are in projected solid angle, positional densities in area measure.
// For endpoints (emitters, sensors) wi is ignored and wo is the direction leaving the endpoint.
// For scattering surfaces wi and wo point away from the surface toward the neighbouring vertices.
type Primitive interface {
	// Type returns the interaction kind of this primitive
	Type() SurfaceInteractionType

	// SampleDirection samples wo given wi. uComp selects among BSDF components.
	SampleDirection(u Vec2, uComp float64, geom SurfaceGeometry, wi Vec3) (Vec3, bool)
	// EvaluateDirectionPDF returns the density of sampling wo given wi.
	// With evalDelta false, delta components evaluate to zero.
	EvaluateDirectionPDF(geom SurfaceGeometry, wi, wo Vec3, evalDelta bool) float64
	// EvaluateDirection returns the directional component of the BSDF, emission or importance
	EvaluateDirection(geom SurfaceGeometry, wi, wo Vec3, dir TransportDirection, evalDelta bool) Vec3
	// IsDeltaDirection reports whether all directional components are Dirac deltas
	IsDeltaDirection() bool

	// SamplePosition samples a point on an endpoint
	SamplePosition(u Vec2) (SurfaceGeometry, bool)
	// EvaluatePositionPDF returns the area density of SamplePosition
	EvaluatePositionPDF(geom SurfaceGeometry, evalDelta bool) float64
	// EvaluatePosition returns the positional component of emission or importance
	EvaluatePosition(geom SurfaceGeometry, evalDelta bool) Vec3
	// IsDeltaPosition reports whether the endpoint is a point
	IsDeltaPosition() bool

	// RasterPosition maps a direction leaving a sensor to [0,1]² image coordinates
	RasterPosition(wo Vec3, geom SurfaceGeometry) (Vec2, bool)
}

// Intersection is a ray hit with the primitive found there
type Intersection struct {
	T         float64
	Geom      SurfaceGeometry
	Primitive Primitive
}

// Scene is what the path engine needs from the scene graph
type Scene interface {
	// Intersect finds the closest hit along the ray
	Intersect(ray Ray) (Intersection, bool)
	// Visible reports whether the segment between two points is unoccluded
	Visible(p1, p2 Vec3) bool
	// SampleEmitter picks the endpoint primitive a subpath grown in dir starts from
	SampleEmitter(dir TransportDirection, u float64) Primitive
	// EvaluateEmitterPDF returns the selection probability of SampleEmitter
	EvaluateEmitterPDF(dir TransportDirection, p Primitive) float64
	// Sensor returns the scene's sensor
	Sensor() Primitive
	// NumPrimitives returns the number of primitives including the sensor
	NumPrimitives() int
	// PrimitiveAt returns primitive i
	PrimitiveAt(i int) Primitive
}

// Film is an image accumulator addressed by raster positions in [0,1]²
type Film interface {
	Width() int
	Height() int
	// Splat adds v to the pixel containing rasterPos
	Splat(rasterPos Vec2, v Vec3)
	// Accumulate adds every pixel of other
	Accumulate(other Film) error
	Clear()
	Rescale(factor float64)
	// Clone returns an empty film with the same dimensions
	Clone() Film
}
