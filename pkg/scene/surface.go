package scene

import (
	"github.com/df07/go-light-transport/pkg/core"
	"github.com/df07/go-light-transport/pkg/geometry"
	"github.com/df07/go-light-transport/pkg/material"
)

// Surface is a shape with a BSDF. It never acts as a path endpoint.
type Surface struct {
	Shape geometry.Shape
	BSDF  material.BSDF
}

// Type returns the BSDF type
func (s *Surface) Type() core.SurfaceInteractionType {
	return s.BSDF.Type()
}

// SampleDirection delegates to the BSDF
func (s *Surface) SampleDirection(u core.Vec2, uComp float64, geom core.SurfaceGeometry, wi core.Vec3) (core.Vec3, bool) {
	return s.BSDF.SampleDirection(u, uComp, geom, wi)
}

// EvaluateDirectionPDF delegates to the BSDF
func (s *Surface) EvaluateDirectionPDF(geom core.SurfaceGeometry, wi, wo core.Vec3, evalDelta bool) float64 {
	return s.BSDF.EvaluateDirectionPDF(geom, wi, wo, evalDelta)
}

// EvaluateDirection delegates to the BSDF
func (s *Surface) EvaluateDirection(geom core.SurfaceGeometry, wi, wo core.Vec3, dir core.TransportDirection, evalDelta bool) core.Vec3 {
	return s.BSDF.EvaluateDirection(geom, wi, wo, dir, evalDelta)
}

// IsDeltaDirection delegates to the BSDF
func (s *Surface) IsDeltaDirection() bool {
	return s.BSDF.IsDeltaDirection()
}

// SamplePosition is not supported on plain surfaces
func (s *Surface) SamplePosition(u core.Vec2) (core.SurfaceGeometry, bool) {
	return core.SurfaceGeometry{}, false
}

// EvaluatePositionPDF returns zero
func (s *Surface) EvaluatePositionPDF(geom core.SurfaceGeometry, evalDelta bool) float64 {
	return 0
}

// EvaluatePosition returns zero
func (s *Surface) EvaluatePosition(geom core.SurfaceGeometry, evalDelta bool) core.Vec3 {
	return core.Vec3{}
}

// IsDeltaPosition returns false
func (s *Surface) IsDeltaPosition() bool {
	return false
}

// RasterPosition is undefined for surfaces
func (s *Surface) RasterPosition(wo core.Vec3, geom core.SurfaceGeometry) (core.Vec2, bool) {
	return core.Vec2{}, false
}
