package material

import "github.com/df07/go-light-transport/pkg/core"

// BSDF is the scattering part of a surface primitive. Directions point away from the surface.
// Values and densities of specular components are delta coefficients with respect to
// projected solid angle and are only reported when evalDelta is set.
type BSDF interface {
	// Type returns Diffuse, Glossy or Specular
	Type() core.SurfaceInteractionType
	// SampleDirection samples wo given wi
	SampleDirection(u core.Vec2, uComp float64, geom core.SurfaceGeometry, wi core.Vec3) (core.Vec3, bool)
	// EvaluateDirectionPDF returns the projected solid angle density of sampling wo given wi
	EvaluateDirectionPDF(geom core.SurfaceGeometry, wi, wo core.Vec3, evalDelta bool) float64
	// EvaluateDirection returns the BSDF value. For LE, wi faces the light and wo the eye;
	// EL swaps the roles and evaluates the adjoint.
	EvaluateDirection(geom core.SurfaceGeometry, wi, wo core.Vec3, dir core.TransportDirection, evalDelta bool) core.Vec3
	// IsDeltaDirection reports whether every component is a Dirac delta
	IsDeltaDirection() bool
}

// Directions closer than this (in 1 - cos) are treated as the same specular direction
const specularTolerance = 1e-5

func sameDirection(a, b core.Vec3) bool {
	return a.Dot(b) > 1-specularTolerance
}

// reflectLocal mirrors a local direction about the z axis
func reflectLocal(w core.Vec3) core.Vec3 {
	return core.NewVec3(-w.X, -w.Y, w.Z)
}
