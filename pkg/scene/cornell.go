package scene

import (
	"github.com/df07/go-light-transport/pkg/camera"
	"github.com/df07/go-light-transport/pkg/core"
	"github.com/df07/go-light-transport/pkg/geometry"
	"github.com/df07/go-light-transport/pkg/lights"
	"github.com/df07/go-light-transport/pkg/material"
)

// NewCornellScene creates a unit-scale Cornell box with quad walls and a ceiling light.
// The box spans [0,2]³ and is open toward the camera.
func NewCornellScene(aspect float64) (*Scene, error) {
	cam := camera.NewPinhole(camera.Config{
		Center:      core.NewVec3(1, 1, -2.9),
		LookAt:      core.NewVec3(1, 1, 0),
		Up:          core.NewVec3(0, 1, 0),
		VFov:        40,
		AspectRatio: aspect,
	})

	white := material.NewLambertian(core.NewVec3(0.73, 0.73, 0.73))
	red := material.NewLambertian(core.NewVec3(0.65, 0.05, 0.05))
	green := material.NewLambertian(core.NewVec3(0.12, 0.45, 0.15))
	mirror := material.NewMirror(core.NewVec3(0.95, 0.95, 0.95))
	glass := material.NewDielectric(core.NewVec3(1, 1, 1), 1.5)

	const size = 2.0
	x := core.NewVec3(size, 0, 0)
	y := core.NewVec3(0, size, 0)
	z := core.NewVec3(0, 0, size)
	origin := core.Vec3{}

	// Lambertian surfaces scatter on both sides, so wall orientation only matters for lights
	light := lights.NewQuadLight(
		core.NewVec3(0.75, 1.98, 0.75),
		core.NewVec3(0.5, 0, 0),
		core.NewVec3(0, 0, 0.5),
		core.NewVec3(15, 15, 15),
	)

	floorQuad := geometry.NewQuad(origin, x, z)
	ceiling := geometry.NewQuad(origin.Add(y), x, z)
	back := geometry.NewQuad(origin.Add(z), x, y)
	left := geometry.NewQuad(origin, y, z)
	right := geometry.NewQuad(origin.Add(x), y, z)

	return NewBuilder(cam).
		AddSurface(floorQuad, white).
		AddSurface(ceiling, white).
		AddSurface(back, white).
		AddSurface(left, red).
		AddSurface(right, green).
		AddSurface(geometry.NewSphere(core.NewVec3(0.6, 0.4, 1.3), 0.4), mirror).
		AddSurface(geometry.NewSphere(core.NewVec3(1.4, 0.4, 0.8), 0.4), glass).
		AddLight(light).
		Build()
}
