package camera

import (
	"math"
	"testing"

	"github.com/df07/go-light-transport/pkg/core"
)

func testCamera() *Pinhole {
	return NewPinhole(Config{
		Center:      core.NewVec3(0, 1, 5),
		LookAt:      core.NewVec3(0, 1, 0),
		Up:          core.NewVec3(0, 1, 0),
		VFov:        60,
		AspectRatio: 1.5,
	})
}

func TestPinholeRasterRoundTrip(t *testing.T) {
	cam := testCamera()
	geom, _ := cam.SamplePosition(core.Vec2{})

	tests := []core.Vec2{
		core.NewVec2(0.5, 0.5),
		core.NewVec2(0.1, 0.9),
		core.NewVec2(0.999, 0.001),
	}
	for _, u := range tests {
		wo, ok := cam.SampleDirection(u, 0, geom, core.Vec3{})
		if !ok {
			t.Fatalf("SampleDirection(%v) failed", u)
		}
		raster, ok := cam.RasterPosition(wo, geom)
		if !ok || math.Abs(raster.X-u.X) > 1e-9 || math.Abs(raster.Y-u.Y) > 1e-9 {
			t.Errorf("Raster of sample %v = %v (ok=%t)", u, raster, ok)
		}
	}

	// Center of the image looks straight ahead
	wo, _ := cam.SampleDirection(core.NewVec2(0.5, 0.5), 0, geom, core.Vec3{})
	if wo.Subtract(core.NewVec3(0, 0, -1)).Length() > 1e-12 {
		t.Errorf("Center direction = %v, want (0,0,-1)", wo)
	}
	// Larger raster X is to the right (+X world here)
	wo, _ = cam.SampleDirection(core.NewVec2(0.9, 0.5), 0, geom, core.Vec3{})
	if wo.X <= 0 {
		t.Errorf("Expected right-pointing direction, got %v", wo)
	}

	if _, ok := cam.RasterPosition(core.NewVec3(0, 0, 1), geom); ok {
		t.Error("Backward direction should not map to the image")
	}
}

func TestPinholeImportanceNormalized(t *testing.T) {
	cam := testCamera()
	geom, _ := cam.SamplePosition(core.Vec2{})

	// ∫ We(ω) cos θ dω over the sphere must equal one
	rng := core.NewRandom(17)
	const n = 400000
	sum := 0.0
	for i := 0; i < n; i++ {
		w := core.SampleOnUnitSphere(rng.Get2D())
		cos := w.Dot(core.NewVec3(0, 0, -1))
		if cos <= 0 {
			continue
		}
		sum += cam.EvaluateDirection(geom, core.Vec3{}, w, core.EL, false).X * cos * 4 * math.Pi
	}
	if got := sum / n; math.Abs(got-1) > 0.05 {
		t.Errorf("Integrated importance = %g, want 1", got)
	}
}

func TestPinholeDeltaPosition(t *testing.T) {
	cam := testCamera()
	geom, _ := cam.SamplePosition(core.Vec2{})
	if !geom.Degenerated || !cam.IsDeltaPosition() {
		t.Error("Pinhole should be a degenerate delta position")
	}
	if cam.EvaluatePositionPDF(geom, false) != 0 || cam.EvaluatePosition(geom, false).X != 0 {
		t.Error("Delta position must vanish without evalDelta")
	}
	if cam.EvaluatePositionPDF(geom, true) != 1 {
		t.Error("Delta position coefficient should be one")
	}
}
