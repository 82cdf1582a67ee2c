package material

import (
	"math"

	"github.com/df07/go-light-transport/pkg/core"
)

// Dielectric is a smooth boundary between air (outside, along the normal) and a medium
// with the given refractive index. It reflects with the Fresnel probability and refracts otherwise.
type Dielectric struct {
	Tint            core.Vec3
	RefractiveIndex float64 // Index of refraction (e.g., 1.5 for glass)
}

// NewDielectric creates a new dielectric material
func NewDielectric(tint core.Vec3, refractiveIndex float64) *Dielectric {
	return &Dielectric{Tint: tint, RefractiveIndex: refractiveIndex}
}

// Type returns Specular
func (d *Dielectric) Type() core.SurfaceInteractionType {
	return core.Specular
}

// IsDeltaDirection returns true
func (d *Dielectric) IsDeltaDirection() bool {
	return true
}

// fresnel returns the reflectance for a local cosine together with the refracted cosine
// and the indices on the incident and transmitted sides
func (d *Dielectric) fresnel(cosI float64) (fr, cosT, etaI, etaT float64) {
	etaI, etaT = 1, d.RefractiveIndex
	if cosI < 0 {
		etaI, etaT = etaT, etaI
	}
	absCosI := math.Abs(cosI)

	sinT2 := (etaI / etaT) * (etaI / etaT) * math.Max(0, 1-cosI*cosI)
	if sinT2 >= 1 {
		// Total internal reflection
		return 1, 0, etaI, etaT
	}
	cosT = math.Sqrt(1 - sinT2)

	rs := (etaI*absCosI - etaT*cosT) / (etaI*absCosI + etaT*cosT)
	rp := (etaT*absCosI - etaI*cosT) / (etaT*absCosI + etaI*cosT)
	return (rs*rs + rp*rp) / 2, cosT, etaI, etaT
}

// refractLocal bends a local direction through the boundary
func refractLocal(w core.Vec3, cosT, etaI, etaT float64) core.Vec3 {
	ratio := etaI / etaT
	z := cosT
	if w.Z > 0 {
		z = -cosT
	}
	return core.NewVec3(-ratio*w.X, -ratio*w.Y, z)
}

// SampleDirection picks reflection with probability Fr and refraction otherwise
func (d *Dielectric) SampleDirection(u core.Vec2, uComp float64, geom core.SurfaceGeometry, wi core.Vec3) (core.Vec3, bool) {
	local := geom.Frame.ToLocal(wi)
	if local.Z == 0 {
		return core.Vec3{}, false
	}
	fr, cosT, etaI, etaT := d.fresnel(local.Z)
	if uComp < fr {
		return geom.Frame.ToWorld(reflectLocal(local)), true
	}
	return geom.Frame.ToWorld(refractLocal(local, cosT, etaI, etaT)), true
}

type dielectricEvent int

const (
	noEvent dielectricEvent = iota
	reflectEvent
	refractEvent
)

// classify tells whether wo is the reflection or the refraction of wi
func (d *Dielectric) classify(geom core.SurfaceGeometry, wi, wo core.Vec3) (dielectricEvent, float64, float64, float64) {
	local := geom.Frame.ToLocal(wi)
	localO := geom.Frame.ToLocal(wo)
	fr, cosT, etaI, etaT := d.fresnel(local.Z)
	if local.Z*localO.Z > 0 {
		if sameDirection(reflectLocal(local), localO) {
			return reflectEvent, fr, etaI, etaT
		}
		return noEvent, 0, 0, 0
	}
	if fr < 1 && sameDirection(refractLocal(local, cosT, etaI, etaT), localO) {
		return refractEvent, fr, etaI, etaT
	}
	return noEvent, 0, 0, 0
}

// EvaluateDirectionPDF returns Fr for reflection and 1-Fr for refraction
func (d *Dielectric) EvaluateDirectionPDF(geom core.SurfaceGeometry, wi, wo core.Vec3, evalDelta bool) float64 {
	if !evalDelta {
		return 0
	}
	event, fr, _, _ := d.classify(geom, wi, wo)
	switch event {
	case reflectEvent:
		return fr
	case refractEvent:
		return 1 - fr
	}
	return 0
}

// EvaluateDirection returns the Fresnel weighted tint. Refracted radiance is scaled by the
// squared ratio of indices between the eye side and the light side.
func (d *Dielectric) EvaluateDirection(geom core.SurfaceGeometry, wi, wo core.Vec3, dir core.TransportDirection, evalDelta bool) core.Vec3 {
	if !evalDelta {
		return core.Vec3{}
	}
	event, fr, etaI, etaT := d.classify(geom, wi, wo)
	switch event {
	case reflectEvent:
		return d.Tint.Multiply(fr)
	case refractEvent:
		// For LE wi is on the light side, for EL it is on the eye side
		scale := (etaT / etaI) * (etaT / etaI)
		if dir == core.EL {
			scale = 1 / scale
		}
		return d.Tint.Multiply((1 - fr) * scale)
	}
	return core.Vec3{}
}
