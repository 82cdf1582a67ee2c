package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-light-transport/pkg/core"
)

func TestQuad_Hit(t *testing.T) {
	// Unit square in the XZ plane facing down (-Y)
	quad := NewQuad(core.NewVec3(0, 1, 0), core.NewVec3(0, 0, 1), core.NewVec3(1, 0, 0))
	if quad.Normal.Subtract(core.NewVec3(0, 1, 0)).Length() > 1e-12 {
		// U × V = (0,0,1) × (1,0,0) = (0,1,0)
		t.Fatalf("Unexpected normal %v", quad.Normal)
	}

	tests := []struct {
		name   string
		origin core.Vec3
		dir    core.Vec3
		hit    bool
		t      float64
	}{
		{"center from below", core.NewVec3(0.5, 0, 0.5), core.NewVec3(0, 1, 0), true, 1},
		{"center from above", core.NewVec3(0.5, 3, 0.5), core.NewVec3(0, -1, 0), true, 2},
		{"outside bounds", core.NewVec3(1.5, 0, 0.5), core.NewVec3(0, 1, 0), false, 0},
		{"parallel", core.NewVec3(0.5, 0, 0.5), core.NewVec3(1, 0, 0), false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tHit, geom, ok := quad.Hit(core.NewRay(tt.origin, tt.dir), 1e-6, 100)
			if ok != tt.hit {
				t.Fatalf("Expected hit=%t, got %t", tt.hit, ok)
			}
			if ok && math.Abs(tHit-tt.t) > 1e-9 {
				t.Errorf("Expected t=%g, got %g", tt.t, tHit)
			}
			if ok && math.Abs(geom.P.Y-1) > 1e-9 {
				t.Errorf("Hit point should lie on the plane, got %v", geom.P)
			}
		})
	}
}

func TestQuad_SampleAndArea(t *testing.T) {
	quad := NewQuad(core.NewVec3(0, 0, 0), core.NewVec3(2, 0, 0), core.NewVec3(0, 3, 0))
	if math.Abs(quad.Area()-6) > 1e-12 {
		t.Errorf("Area = %g, want 6", quad.Area())
	}
	geom := quad.SamplePosition(core.NewVec2(0.5, 0.5))
	if geom.P.Subtract(core.NewVec3(1, 1.5, 0)).Length() > 1e-12 {
		t.Errorf("Sample at (0.5,0.5) = %v, want center", geom.P)
	}
}
