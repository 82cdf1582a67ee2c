package scene

import (
	"github.com/df07/go-light-transport/pkg/camera"
	"github.com/df07/go-light-transport/pkg/core"
	"github.com/df07/go-light-transport/pkg/geometry"
	"github.com/df07/go-light-transport/pkg/lights"
	"github.com/df07/go-light-transport/pkg/material"
)

// NewCausticScene creates a glass sphere above a diffuse floor lit by a small bright light.
// Most of the floor radiance under the sphere arrives along LS*DE paths.
func NewCausticScene(aspect float64) (*Scene, error) {
	cam := camera.NewPinhole(camera.Config{
		Center:      core.NewVec3(0, 1.6, -3),
		LookAt:      core.NewVec3(0, 0.3, 0),
		Up:          core.NewVec3(0, 1, 0),
		VFov:        40,
		AspectRatio: aspect,
	})

	floor := material.NewLambertian(core.NewVec3(0.8, 0.8, 0.8))
	glass := material.NewDielectric(core.NewVec3(1, 1, 1), 1.5)

	light := lights.NewQuadLight(
		core.NewVec3(-0.25, 2.5, -0.25),
		core.NewVec3(0.5, 0, 0),
		core.NewVec3(0, 0, 0.5),
		core.NewVec3(30, 30, 30),
	)

	return NewBuilder(cam).
		AddSurface(NewGroundQuad(core.NewVec3(0, 0, 0), 6), floor).
		AddSurface(geometry.NewSphere(core.NewVec3(0, 0.9, 0), 0.5), glass).
		AddLight(light).
		Build()
}
