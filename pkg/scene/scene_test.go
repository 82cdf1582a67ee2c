package scene

import (
	"errors"
	"math"
	"testing"

	"github.com/df07/go-light-transport/pkg/camera"
	"github.com/df07/go-light-transport/pkg/core"
	"github.com/df07/go-light-transport/pkg/lights"
)

func TestBuiltinScenes(t *testing.T) {
	infos := ListScenes()
	if len(infos) != 3 {
		t.Fatalf("Expected 3 builtin scenes, got %d", len(infos))
	}
	for i := 1; i < len(infos); i++ {
		if infos[i-1].ID >= infos[i].ID {
			t.Errorf("Scenes not sorted: %s before %s", infos[i-1].ID, infos[i].ID)
		}
	}

	for _, info := range infos {
		t.Run(info.ID, func(t *testing.T) {
			s, err := Builtin(info.ID, 1)
			if err != nil {
				t.Fatalf("Builtin(%s) failed: %v", info.ID, err)
			}
			if s.Sensor() == nil || s.PrimitiveAt(0) != s.Sensor() {
				t.Error("Sensor should be primitive zero")
			}
			if len(s.Lights()) == 0 {
				t.Error("Scene has no lights")
			}

			// The center pixel sees geometry
			sensor := s.Sensor()
			geom, _ := sensor.SamplePosition(core.Vec2{})
			wo, _ := sensor.SampleDirection(core.NewVec2(0.5, 0.5), 0, geom, core.Vec3{})
			if _, ok := s.Intersect(core.NewRay(geom.P, wo)); !ok {
				t.Error("Center ray should hit the scene")
			}
		})
	}

	if _, err := Builtin("nope", 1); err == nil {
		t.Error("Expected error for unknown scene")
	}
}

func TestSceneQueries(t *testing.T) {
	s, err := NewTwoSpheresScene(1)
	if err != nil {
		t.Fatal(err)
	}

	// Straight down onto the red sphere from above it
	hit, ok := s.Intersect(core.NewRay(core.NewVec3(-0.6, 2, 0), core.NewVec3(0, -1, 0)))
	if !ok {
		t.Fatal("Expected a hit on the red sphere")
	}
	if math.Abs(hit.T-1) > 1e-9 || hit.Primitive.Type() != core.Diffuse {
		t.Errorf("Unexpected hit t=%g type=%v", hit.T, hit.Primitive.Type())
	}

	// The sphere occludes the floor point below it
	if s.Visible(core.NewVec3(-0.6, 2, 0), core.NewVec3(-0.6, 0, 0)) {
		t.Error("Segment through the sphere should be occluded")
	}
	if !s.Visible(core.NewVec3(2, 0.01, 2), core.NewVec3(2, 2.9, 2)) {
		t.Error("Open segment should be visible")
	}

	// Emitter selection
	light := s.SampleEmitter(core.LE, 0.3)
	if light == nil || light.Type() != core.Emitter {
		t.Fatalf("Expected an emitter, got %v", light)
	}
	if p := s.EvaluateEmitterPDF(core.LE, light); p != 1 {
		t.Errorf("Single light selection pdf = %g, want 1", p)
	}
	if s.SampleEmitter(core.EL, 0.3) != s.Sensor() || s.EvaluateEmitterPDF(core.EL, s.Sensor()) != 1 {
		t.Error("EL endpoint should be the sensor with probability one")
	}
	if s.EvaluateEmitterPDF(core.LE, s.Sensor()) != 0 {
		t.Error("Sensor is not a light")
	}

	// Lights are intersectable
	hit, ok = s.Intersect(core.NewRay(core.NewVec3(0, 2, 0), core.NewVec3(0, 1, 0)))
	if !ok || hit.Primitive != light {
		t.Error("Expected to hit the light from below")
	}
}

func TestBuilderValidation(t *testing.T) {
	cam := camera.NewPinhole(camera.Config{LookAt: core.NewVec3(0, 0, 1), Up: core.NewVec3(0, 1, 0), VFov: 40, AspectRatio: 1})
	if _, err := NewBuilder(cam).Build(); !errors.Is(err, ErrNoLights) {
		t.Errorf("Expected ErrNoLights, got %v", err)
	}
	light := lights.NewSphereLight(core.Vec3{}, 1, core.NewVec3(1, 1, 1))
	if _, err := NewBuilder(nil).AddLight(light).Build(); !errors.Is(err, ErrNoSensor) {
		t.Errorf("Expected ErrNoSensor, got %v", err)
	}
}
