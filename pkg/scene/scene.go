package scene

import (
	"errors"
	"math"

	"github.com/df07/go-light-transport/pkg/core"
	"github.com/df07/go-light-transport/pkg/geometry"
	"github.com/df07/go-light-transport/pkg/lights"
	"github.com/df07/go-light-transport/pkg/material"
)

// Ray offsets used to avoid self intersections
const (
	rayEpsilon    = 1e-4
	shadowEpsilon = 1e-4
)

var (
	// ErrNoSensor is returned when a scene is built without a sensor
	ErrNoSensor = errors.New("scene: no sensor")
	// ErrNoLights is returned when a scene is built without emitters
	ErrNoLights = errors.New("scene: no lights")
)

// Scene holds the intersectable primitives, the lights and the sensor
type Scene struct {
	sensor   core.Primitive
	shapes   []geometry.Shape
	prims    []core.Primitive // prims[i] lives on shapes[i]
	lights   []*lights.AreaLight
	selector *lights.Selector
	bvh      *geometry.BVH
}

// Builder collects primitives before the acceleration structure is built
type Builder struct {
	scene Scene
}

// NewBuilder starts a scene observed by sensor
func NewBuilder(sensor core.Primitive) *Builder {
	return &Builder{scene: Scene{sensor: sensor}}
}

// AddSurface adds a scattering surface
func (b *Builder) AddSurface(shape geometry.Shape, bsdf material.BSDF) *Builder {
	b.scene.shapes = append(b.scene.shapes, shape)
	b.scene.prims = append(b.scene.prims, &Surface{Shape: shape, BSDF: bsdf})
	return b
}

// AddLight adds an area light, which is also intersectable
func (b *Builder) AddLight(light *lights.AreaLight) *Builder {
	b.scene.shapes = append(b.scene.shapes, light.Shape)
	b.scene.prims = append(b.scene.prims, light)
	b.scene.lights = append(b.scene.lights, light)
	return b
}

// Build validates the scene and constructs the BVH
func (b *Builder) Build() (*Scene, error) {
	if b.scene.sensor == nil {
		return nil, ErrNoSensor
	}
	if len(b.scene.lights) == 0 {
		return nil, ErrNoLights
	}
	s := b.scene
	s.bvh = geometry.NewBVH(s.shapes)
	s.selector = lights.NewSelector(s.lights)
	return &s, nil
}

// Intersect finds the closest primitive along the ray
func (s *Scene) Intersect(ray core.Ray) (core.Intersection, bool) {
	hit, ok := s.bvh.Hit(ray, rayEpsilon, math.Inf(1))
	if !ok {
		return core.Intersection{}, false
	}
	return core.Intersection{T: hit.T, Geom: hit.Geom, Primitive: s.prims[hit.Index]}, true
}

// Visible reports whether nothing blocks the segment between p1 and p2
func (s *Scene) Visible(p1, p2 core.Vec3) bool {
	d := p2.Subtract(p1)
	dist := d.Length()
	if dist <= 2*shadowEpsilon {
		return false
	}
	ray := core.NewRay(p1, d.Multiply(1/dist))
	_, hit := s.bvh.Hit(ray, shadowEpsilon, dist-shadowEpsilon)
	return !hit
}

// SampleEmitter returns a light for LE and the sensor for EL
func (s *Scene) SampleEmitter(dir core.TransportDirection, u float64) core.Primitive {
	if dir == core.EL {
		return s.sensor
	}
	l, _ := s.selector.Sample(u)
	if l == nil {
		return nil
	}
	return l
}

// EvaluateEmitterPDF returns the probability that SampleEmitter picks p
func (s *Scene) EvaluateEmitterPDF(dir core.TransportDirection, p core.Primitive) float64 {
	if dir == core.EL {
		if p == s.sensor {
			return 1
		}
		return 0
	}
	l, ok := p.(*lights.AreaLight)
	if !ok {
		return 0
	}
	return s.selector.PDF(l)
}

// Sensor returns the scene's sensor
func (s *Scene) Sensor() core.Primitive {
	return s.sensor
}

// NumPrimitives returns the sensor plus every intersectable primitive
func (s *Scene) NumPrimitives() int {
	return len(s.prims) + 1
}

// PrimitiveAt returns the sensor at index zero followed by the intersectable primitives
func (s *Scene) PrimitiveAt(i int) core.Primitive {
	if i == 0 {
		return s.sensor
	}
	return s.prims[i-1]
}

// Lights returns the scene's emitters
func (s *Scene) Lights() []*lights.AreaLight {
	return s.lights
}
