package material

import "github.com/df07/go-light-transport/pkg/core"

// Mirror is a perfect specular reflector
type Mirror struct {
	Reflectance core.Vec3
}

// NewMirror creates a new mirror material
func NewMirror(reflectance core.Vec3) *Mirror {
	return &Mirror{Reflectance: reflectance}
}

// Type returns Specular
func (m *Mirror) Type() core.SurfaceInteractionType {
	return core.Specular
}

// SampleDirection returns the mirrored direction
func (m *Mirror) SampleDirection(u core.Vec2, uComp float64, geom core.SurfaceGeometry, wi core.Vec3) (core.Vec3, bool) {
	local := geom.Frame.ToLocal(wi)
	if local.Z == 0 {
		return core.Vec3{}, false
	}
	return geom.Frame.ToWorld(reflectLocal(local)), true
}

// EvaluateDirectionPDF is one for the mirrored direction
func (m *Mirror) EvaluateDirectionPDF(geom core.SurfaceGeometry, wi, wo core.Vec3, evalDelta bool) float64 {
	if !evalDelta || !m.isReflection(geom, wi, wo) {
		return 0
	}
	return 1
}

// EvaluateDirection returns the reflectance for the mirrored direction
func (m *Mirror) EvaluateDirection(geom core.SurfaceGeometry, wi, wo core.Vec3, dir core.TransportDirection, evalDelta bool) core.Vec3 {
	if !evalDelta || !m.isReflection(geom, wi, wo) {
		return core.Vec3{}
	}
	return m.Reflectance
}

// IsDeltaDirection returns true
func (m *Mirror) IsDeltaDirection() bool {
	return true
}

func (m *Mirror) isReflection(geom core.SurfaceGeometry, wi, wo core.Vec3) bool {
	expected := geom.Frame.ToWorld(reflectLocal(geom.Frame.ToLocal(wi)))
	return sameDirection(expected, wo)
}
