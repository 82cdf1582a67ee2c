package material

import (
	"math"
	"testing"

	"github.com/df07/go-light-transport/pkg/core"
)

var upGeom = core.NewSurfaceGeometry(core.Vec3{}, core.NewVec3(0, 0, 1))

func TestLambertian(t *testing.T) {
	l := NewLambertian(core.NewVec3(0.5, 0.5, 0.5))
	wi := core.NewVec3(0.3, 0, 1).Normalize()

	rng := core.NewRandom(1)
	for i := 0; i < 100; i++ {
		wo, ok := l.SampleDirection(rng.Get2D(), rng.Next(), upGeom, wi)
		if !ok || wo.Z <= 0 {
			t.Fatalf("Sampled direction %v should be in the upper hemisphere", wo)
		}
	}

	// Incoming from below scatters below
	wo, ok := l.SampleDirection(core.NewVec2(0.3, 0.7), 0, upGeom, wi.Negate())
	if !ok || wo.Z >= 0 {
		t.Errorf("Expected lower hemisphere sample, got %v", wo)
	}

	tests := []struct {
		name    string
		wo      core.Vec3
		wantPDF float64
	}{
		{"same side", core.NewVec3(0, 0.5, 1).Normalize(), 1 / math.Pi},
		{"opposite side", core.NewVec3(0, 0.5, -1).Normalize(), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := l.EvaluateDirectionPDF(upGeom, wi, tt.wo, false); math.Abs(got-tt.wantPDF) > 1e-12 {
				t.Errorf("PDF = %g, want %g", got, tt.wantPDF)
			}
			f := l.EvaluateDirection(upGeom, wi, tt.wo, core.LE, false)
			if want := 0.5 * tt.wantPDF; math.Abs(f.X-want) > 1e-12 {
				t.Errorf("f = %v, want %g", f, want)
			}
		})
	}
}

func TestMirror(t *testing.T) {
	m := NewMirror(core.NewVec3(0.9, 0.9, 0.9))
	wi := core.NewVec3(1, 0, 1).Normalize()

	wo, ok := m.SampleDirection(core.Vec2{}, 0, upGeom, wi)
	want := core.NewVec3(-1, 0, 1).Normalize()
	if !ok || wo.Subtract(want).Length() > 1e-12 {
		t.Fatalf("Reflection = %v, want %v", wo, want)
	}

	if p := m.EvaluateDirectionPDF(upGeom, wi, wo, true); p != 1 {
		t.Errorf("Delta PDF = %g, want 1", p)
	}
	if p := m.EvaluateDirectionPDF(upGeom, wi, wo, false); p != 0 {
		t.Errorf("PDF without delta = %g, want 0", p)
	}
	if f := m.EvaluateDirection(upGeom, wi, wo, core.LE, true); math.Abs(f.X-0.9) > 1e-12 {
		t.Errorf("f = %v, want 0.9", f)
	}
	if f := m.EvaluateDirection(upGeom, wi, core.NewVec3(0, 0, 1), core.LE, true); !f.IsBlack() {
		t.Errorf("Non-mirror direction should evaluate to zero, got %v", f)
	}
}

func TestDielectricProbabilities(t *testing.T) {
	d := NewDielectric(core.NewVec3(1, 1, 1), 1.5)

	for _, wi := range []core.Vec3{
		core.NewVec3(0.2, 0.1, 1).Normalize(),
		core.NewVec3(0.8, 0, 0.3).Normalize(),
		core.NewVec3(0.3, 0.2, -1).Normalize(),
	} {
		refl, _ := d.SampleDirection(core.Vec2{}, 0, upGeom, wi)
		refr, _ := d.SampleDirection(core.Vec2{}, 0.999999, upGeom, wi)

		pr := d.EvaluateDirectionPDF(upGeom, wi, refl, true)
		pt := d.EvaluateDirectionPDF(upGeom, wi, refr, true)
		if math.Abs(pr+pt-1) > 1e-9 {
			t.Errorf("wi=%v: reflection %g + refraction %g should sum to 1", wi, pr, pt)
		}
		if refl.Z*wi.Z <= 0 {
			t.Errorf("Reflection %v should stay on the side of %v", refl, wi)
		}
		if pt > 0 && refr.Z*wi.Z >= 0 {
			t.Errorf("Refraction %v should cross the surface", refr)
		}

		// The reverse refraction is chosen with the same probability
		if pt > 0 {
			back := d.EvaluateDirectionPDF(upGeom, refr, wi, true)
			if math.Abs(back-pt) > 1e-6 {
				t.Errorf("Reverse refraction probability %g, forward %g", back, pt)
			}

			// Radiance scaling of the two transport directions are reciprocal
			le := d.EvaluateDirection(upGeom, wi, refr, core.LE, true)
			el := d.EvaluateDirection(upGeom, wi, refr, core.EL, true)
			if math.Abs(le.X*el.X-pt*pt) > 1e-6 {
				t.Errorf("LE %g and EL %g should differ by reciprocal eta² factors", le.X, el.X)
			}
		}

		if d.EvaluateDirectionPDF(upGeom, wi, refl, false) != 0 {
			t.Error("Delta components must vanish without evalDelta")
		}
	}
}

func TestDielectricTotalInternalReflection(t *testing.T) {
	d := NewDielectric(core.NewVec3(1, 1, 1), 1.5)

	// Grazing direction inside the medium
	wi := core.NewVec3(0.95, 0, -0.1).Normalize()
	wo, ok := d.SampleDirection(core.Vec2{}, 0.99, upGeom, wi)
	if !ok || wo.Z >= 0 {
		t.Fatalf("Expected reflection back into the medium, got %v", wo)
	}
	if p := d.EvaluateDirectionPDF(upGeom, wi, wo, true); math.Abs(p-1) > 1e-12 {
		t.Errorf("TIR probability = %g, want 1", p)
	}
}
