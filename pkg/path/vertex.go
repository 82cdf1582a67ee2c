// Package path represents light transport paths and implements bidirectional
// construction, connection, evaluation and MIS weighting of those paths.
package path

import (
	"math"

	"github.com/df07/go-light-transport/pkg/core"
)

// PathVertex is one emission, scattering or sensing event
type PathVertex struct {
	// Type is Emitter or Sensor for endpoints and the BSDF type for scattering vertices.
	// It is zero for a surface that cannot scatter, which ends a walk.
	Type      core.SurfaceInteractionType
	Geom      core.SurfaceGeometry
	Primitive core.Primitive
}

// canScatter reports whether a walk can continue from v
func (v PathVertex) canScatter() bool {
	return v.Type&(core.Endpoint|core.BSDF) != 0
}

// isDeltaDirection reports whether connecting through v is impossible
func (v PathVertex) isDeltaDirection() bool {
	return v.Primitive.IsDeltaDirection()
}

func direction(from, to PathVertex) core.Vec3 {
	return to.Geom.P.Subtract(from.Geom.P).Normalize()
}

// geometryTerm returns |cos θ1| |cos θ2| / r² between two vertices
func geometryTerm(a, b PathVertex) float64 {
	d := b.Geom.P.Subtract(a.Geom.P)
	dist2 := d.LengthSquared()
	if dist2 == 0 {
		return 0
	}
	d = d.Multiply(1 / math.Sqrt(dist2))
	cosA := math.Abs(a.Geom.N.Dot(d))
	cosB := math.Abs(b.Geom.N.Dot(d))
	return cosA * cosB / dist2
}
