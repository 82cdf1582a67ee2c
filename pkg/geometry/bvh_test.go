package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-light-transport/pkg/core"
)

func TestBVHMatchesLinearSearch(t *testing.T) {
	var shapes []Shape
	for i := 0; i < 40; i++ {
		x := float64(i%8) * 1.5
		z := float64(i/8) * 1.5
		shapes = append(shapes, NewSphere(core.NewVec3(x, 0, z), 0.5))
	}
	shapes = append(shapes, NewQuad(core.NewVec3(-5, -1, -5), core.NewVec3(0, 0, 20), core.NewVec3(20, 0, 0)))
	bvh := NewBVH(shapes)

	rng := core.NewRandom(9)
	for i := 0; i < 500; i++ {
		origin := core.NewVec3(rng.Next()*12-1, 3, rng.Next()*8-1)
		dir := core.NewVec3(rng.Next()-0.5, -1, rng.Next()-0.5).Normalize()
		ray := core.NewRay(origin, dir)

		// Reference: brute force over all shapes
		bestT := math.Inf(1)
		bestIndex := -1
		for j, s := range shapes {
			if tHit, _, ok := s.Hit(ray, 1e-6, bestT); ok {
				bestT = tHit
				bestIndex = j
			}
		}

		hit, ok := bvh.Hit(ray, 1e-6, math.Inf(1))
		if ok != (bestIndex >= 0) {
			t.Fatalf("Ray %d: BVH hit=%t, linear hit=%t", i, ok, bestIndex >= 0)
		}
		if ok && (hit.Index != bestIndex || math.Abs(hit.T-bestT) > 1e-9) {
			t.Fatalf("Ray %d: BVH found shape %d at %g, linear found %d at %g", i, hit.Index, hit.T, bestIndex, bestT)
		}
	}
}

func TestEmptyBVH(t *testing.T) {
	bvh := NewBVH(nil)
	if _, ok := bvh.Hit(core.NewRay(core.Vec3{}, core.NewVec3(0, 0, 1)), 0, 1); ok {
		t.Error("Empty BVH should never report a hit")
	}
}
