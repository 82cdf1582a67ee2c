// Package camera implements the sensor side of the path engine.
package camera

import (
	"math"

	"github.com/df07/go-light-transport/pkg/core"
)

// Config describes a pinhole camera
type Config struct {
	Center      core.Vec3 // Camera position
	LookAt      core.Vec3 // Point the camera looks at
	Up          core.Vec3 // Up direction
	VFov        float64   // Vertical field of view in degrees
	AspectRatio float64   // Width / height
}

// Pinhole is a point sensor with importance normalized over its image plane.
// The image plane sits at distance one along the view direction.
type Pinhole struct {
	center     core.Vec3
	forward    core.Vec3
	right      core.Vec3
	up         core.Vec3
	halfWidth  float64
	halfHeight float64
	invArea    float64 // One over the image plane area
	geom       core.SurfaceGeometry
}

// NewPinhole creates a pinhole camera from config
func NewPinhole(config Config) *Pinhole {
	forward := config.LookAt.Subtract(config.Center).Normalize()
	right := forward.Cross(config.Up).Normalize()
	up := right.Cross(forward)

	halfHeight := math.Tan(config.VFov * math.Pi / 360)
	halfWidth := halfHeight * config.AspectRatio

	geom := core.NewSurfaceGeometry(config.Center, forward)
	geom.Degenerated = true

	return &Pinhole{
		center:     config.Center,
		forward:    forward,
		right:      right,
		up:         up,
		halfWidth:  halfWidth,
		halfHeight: halfHeight,
		invArea:    1 / (4 * halfWidth * halfHeight),
		geom:       geom,
	}
}

// Type returns Sensor
func (c *Pinhole) Type() core.SurfaceInteractionType {
	return core.Sensor
}

// SampleDirection maps u to a point on the image plane, u=(0,0) being the lower left corner
func (c *Pinhole) SampleDirection(u core.Vec2, uComp float64, geom core.SurfaceGeometry, wi core.Vec3) (core.Vec3, bool) {
	d := c.forward.
		Add(c.right.Multiply((2*u.X - 1) * c.halfWidth)).
		Add(c.up.Multiply((2*u.Y - 1) * c.halfHeight))
	return d.Normalize(), true
}

// importance returns 1/(A cos⁴θ) inside the frustum: the projected solid angle density
// of uniform image plane sampling
func (c *Pinhole) importance(wo core.Vec3) float64 {
	if _, ok := c.RasterPosition(wo, c.geom); !ok {
		return 0
	}
	cos := wo.Dot(c.forward)
	return c.invArea / (cos * cos * cos * cos)
}

// EvaluateDirectionPDF returns the density of SampleDirection
func (c *Pinhole) EvaluateDirectionPDF(geom core.SurfaceGeometry, wi, wo core.Vec3, evalDelta bool) float64 {
	return c.importance(wo)
}

// EvaluateDirection returns the directional importance, equal to its sampling density
func (c *Pinhole) EvaluateDirection(geom core.SurfaceGeometry, wi, wo core.Vec3, dir core.TransportDirection, evalDelta bool) core.Vec3 {
	w := c.importance(wo)
	return core.NewVec3(w, w, w)
}

// IsDeltaDirection returns false
func (c *Pinhole) IsDeltaDirection() bool {
	return false
}

// SamplePosition returns the pinhole
func (c *Pinhole) SamplePosition(u core.Vec2) (core.SurfaceGeometry, bool) {
	return c.geom, true
}

// EvaluatePositionPDF is a delta: one when delta components are requested
func (c *Pinhole) EvaluatePositionPDF(geom core.SurfaceGeometry, evalDelta bool) float64 {
	if !evalDelta {
		return 0
	}
	return 1
}

// EvaluatePosition is a delta: one when delta components are requested
func (c *Pinhole) EvaluatePosition(geom core.SurfaceGeometry, evalDelta bool) core.Vec3 {
	if !evalDelta {
		return core.Vec3{}
	}
	return core.NewVec3(1, 1, 1)
}

// IsDeltaPosition returns true
func (c *Pinhole) IsDeltaPosition() bool {
	return true
}

// RasterPosition projects wo onto the image plane
func (c *Pinhole) RasterPosition(wo core.Vec3, geom core.SurfaceGeometry) (core.Vec2, bool) {
	cos := wo.Dot(c.forward)
	if cos <= 0 {
		return core.Vec2{}, false
	}
	x := wo.Dot(c.right) / cos / c.halfWidth
	y := wo.Dot(c.up) / cos / c.halfHeight
	raster := core.NewVec2((x+1)/2, (y+1)/2)
	if raster.X < 0 || raster.X > 1 || raster.Y < 0 || raster.Y > 1 {
		return core.Vec2{}, false
	}
	return raster, true
}
