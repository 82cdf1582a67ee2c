package scene

import (
	"github.com/df07/go-light-transport/pkg/camera"
	"github.com/df07/go-light-transport/pkg/core"
	"github.com/df07/go-light-transport/pkg/geometry"
	"github.com/df07/go-light-transport/pkg/lights"
	"github.com/df07/go-light-transport/pkg/material"
)

// NewGroundQuad creates a horizontal quad centered at center with its normal pointing up
func NewGroundQuad(center core.Vec3, size float64) *geometry.Quad {
	corner := core.NewVec3(center.X-size/2, center.Y, center.Z-size/2)
	// u × v = (0,0,size) × (size,0,0) = (0,size²,0)
	return geometry.NewQuad(corner, core.NewVec3(0, 0, size), core.NewVec3(size, 0, 0))
}

// NewTwoSpheresScene creates two diffuse spheres resting on a floor lit by an overhead quad light
func NewTwoSpheresScene(aspect float64) (*Scene, error) {
	cam := camera.NewPinhole(camera.Config{
		Center:      core.NewVec3(0, 1.2, -4),
		LookAt:      core.NewVec3(0, 0.5, 0),
		Up:          core.NewVec3(0, 1, 0),
		VFov:        45,
		AspectRatio: aspect,
	})

	floor := material.NewLambertian(core.NewVec3(0.7, 0.7, 0.7))
	red := material.NewLambertian(core.NewVec3(0.75, 0.2, 0.2))
	blue := material.NewLambertian(core.NewVec3(0.2, 0.3, 0.75))

	// Facing down: U × V = (2,0,0) × (0,0,2) = (0,-4,0)
	light := lights.NewQuadLight(
		core.NewVec3(-1, 3, -1),
		core.NewVec3(2, 0, 0),
		core.NewVec3(0, 0, 2),
		core.NewVec3(4, 4, 4),
	)

	return NewBuilder(cam).
		AddSurface(NewGroundQuad(core.NewVec3(0, 0, 0), 8), floor).
		AddSurface(geometry.NewSphere(core.NewVec3(-0.6, 0.5, 0), 0.5), red).
		AddSurface(geometry.NewSphere(core.NewVec3(0.6, 0.5, 0.3), 0.5), blue).
		AddLight(light).
		Build()
}
