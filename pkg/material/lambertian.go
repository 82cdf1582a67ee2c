package material

import (
	"math"

	"github.com/df07/go-light-transport/pkg/core"
)

// Lambertian is an ideal diffuse reflector. It scatters only to the side wi arrives from.
type Lambertian struct {
	Albedo core.Vec3
}

// NewLambertian creates a new lambertian material
func NewLambertian(albedo core.Vec3) *Lambertian {
	return &Lambertian{Albedo: albedo}
}

// Type returns Diffuse
func (l *Lambertian) Type() core.SurfaceInteractionType {
	return core.Diffuse
}

// SampleDirection draws a cosine-weighted direction on the side of wi
func (l *Lambertian) SampleDirection(u core.Vec2, uComp float64, geom core.SurfaceGeometry, wi core.Vec3) (core.Vec3, bool) {
	cosI := wi.Dot(geom.N)
	if cosI == 0 {
		return core.Vec3{}, false
	}
	local := core.SampleCosineHemisphere(u)
	if cosI < 0 {
		local.Z = -local.Z
	}
	return geom.Frame.ToWorld(local), true
}

// EvaluateDirectionPDF returns 1/π for directions on the same side as wi
func (l *Lambertian) EvaluateDirectionPDF(geom core.SurfaceGeometry, wi, wo core.Vec3, evalDelta bool) float64 {
	if !sameSide(geom, wi, wo) {
		return 0
	}
	return 1 / math.Pi
}

// EvaluateDirection returns albedo/π for reflection
func (l *Lambertian) EvaluateDirection(geom core.SurfaceGeometry, wi, wo core.Vec3, dir core.TransportDirection, evalDelta bool) core.Vec3 {
	if !sameSide(geom, wi, wo) {
		return core.Vec3{}
	}
	return l.Albedo.Multiply(1 / math.Pi)
}

// IsDeltaDirection returns false
func (l *Lambertian) IsDeltaDirection() bool {
	return false
}

func sameSide(geom core.SurfaceGeometry, wi, wo core.Vec3) bool {
	return wi.Dot(geom.N)*wo.Dot(geom.N) > 0
}
