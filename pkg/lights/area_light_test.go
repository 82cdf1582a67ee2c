package lights

import (
	"math"
	"testing"

	"github.com/df07/go-light-transport/pkg/core"
)

func TestAreaLightEmitsFromFrontFace(t *testing.T) {
	// Quad at y=2 facing down
	light := NewQuadLight(core.NewVec3(0, 2, 0), core.NewVec3(1, 0, 0), core.NewVec3(0, 0, 1), core.NewVec3(5, 5, 5))
	geom, ok := light.SamplePosition(core.NewVec2(0.5, 0.5))
	if !ok {
		t.Fatal("SamplePosition failed")
	}
	if geom.N.Y >= 0 {
		t.Fatalf("Expected downward normal, got %v", geom.N)
	}

	down := core.NewVec3(0, -1, 0)
	up := core.NewVec3(0, 1, 0)

	tests := []struct {
		name    string
		wo      core.Vec3
		wantPDF float64
		wantLe  float64
	}{
		{"front", down, 1 / math.Pi, 1},
		{"back", up, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if p := light.EvaluateDirectionPDF(geom, core.Vec3{}, tt.wo, false); math.Abs(p-tt.wantPDF) > 1e-12 {
				t.Errorf("PDF = %g, want %g", p, tt.wantPDF)
			}
			if v := light.EvaluateDirection(geom, core.Vec3{}, tt.wo, core.LE, false); v.X != tt.wantLe {
				t.Errorf("Le1 = %v, want %g", v, tt.wantLe)
			}
		})
	}

	if p := light.EvaluatePositionPDF(geom, true); math.Abs(p-1) > 1e-12 {
		t.Errorf("Position PDF = %g, want 1", p)
	}

	rng := core.NewRandom(2)
	for i := 0; i < 100; i++ {
		wo, ok := light.SampleDirection(rng.Get2D(), rng.Next(), geom, core.Vec3{})
		if !ok || wo.Dot(geom.N) <= 0 {
			t.Fatalf("Sampled emission direction %v leaves the back face", wo)
		}
	}
}
