package lights

import (
	"math"

	"github.com/df07/go-light-transport/pkg/core"
	"github.com/df07/go-light-transport/pkg/geometry"
)

// AreaLight is a one-sided diffuse emitter over a shape. Emission leaves along the shape normal.
type AreaLight struct {
	Shape geometry.Shape
	Le    core.Vec3 // Emitted radiance
	area  float64   // Cached area for PDF calculations
}

// NewAreaLight creates a new area light
func NewAreaLight(shape geometry.Shape, le core.Vec3) *AreaLight {
	return &AreaLight{Shape: shape, Le: le, area: shape.Area()}
}

// NewQuadLight creates a rectangular area light
func NewQuadLight(corner, u, v, le core.Vec3) *AreaLight {
	return NewAreaLight(geometry.NewQuad(corner, u, v), le)
}

// NewSphereLight creates a spherical area light
func NewSphereLight(center core.Vec3, radius float64, le core.Vec3) *AreaLight {
	return NewAreaLight(geometry.NewSphere(center, radius), le)
}

// Type returns Emitter
func (l *AreaLight) Type() core.SurfaceInteractionType {
	return core.Emitter
}

// Power returns the emitted flux, used to weight emitter selection
func (l *AreaLight) Power() float64 {
	return l.Le.Luminance() * l.area * math.Pi
}

// SampleDirection draws a cosine-weighted direction around the normal
func (l *AreaLight) SampleDirection(u core.Vec2, uComp float64, geom core.SurfaceGeometry, wi core.Vec3) (core.Vec3, bool) {
	return geom.Frame.ToWorld(core.SampleCosineHemisphere(u)), true
}

// EvaluateDirectionPDF returns 1/π on the emitting side
func (l *AreaLight) EvaluateDirectionPDF(geom core.SurfaceGeometry, wi, wo core.Vec3, evalDelta bool) float64 {
	if wo.Dot(geom.N) <= 0 {
		return 0
	}
	return 1 / math.Pi
}

// EvaluateDirection returns one on the emitting side so that radiance equals Le
func (l *AreaLight) EvaluateDirection(geom core.SurfaceGeometry, wi, wo core.Vec3, dir core.TransportDirection, evalDelta bool) core.Vec3 {
	if wo.Dot(geom.N) <= 0 {
		return core.Vec3{}
	}
	return core.NewVec3(1, 1, 1)
}

// IsDeltaDirection returns false
func (l *AreaLight) IsDeltaDirection() bool {
	return false
}

// SamplePosition samples a point uniformly by area
func (l *AreaLight) SamplePosition(u core.Vec2) (core.SurfaceGeometry, bool) {
	return l.Shape.SamplePosition(u), true
}

// EvaluatePositionPDF returns 1/Area
func (l *AreaLight) EvaluatePositionPDF(geom core.SurfaceGeometry, evalDelta bool) float64 {
	return 1 / l.area
}

// EvaluatePosition returns Le
func (l *AreaLight) EvaluatePosition(geom core.SurfaceGeometry, evalDelta bool) core.Vec3 {
	return l.Le
}

// IsDeltaPosition returns false
func (l *AreaLight) IsDeltaPosition() bool {
	return false
}

// RasterPosition is undefined for lights
func (l *AreaLight) RasterPosition(wo core.Vec3, geom core.SurfaceGeometry) (core.Vec2, bool) {
	return core.Vec2{}, false
}
