package renderer

import (
	"context"
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/stat"

	"github.com/df07/go-light-transport/pkg/config"
	"github.com/df07/go-light-transport/pkg/core"
	"github.com/df07/go-light-transport/pkg/film"
	"github.com/df07/go-light-transport/pkg/mlt"
	"github.com/df07/go-light-transport/pkg/path"
	"github.com/df07/go-light-transport/pkg/scene"
)

func twoSpheres(t *testing.T) *scene.Scene {
	t.Helper()
	sc, err := scene.Builtin("twospheres", 1)
	if err != nil {
		t.Fatalf("Builtin failed: %v", err)
	}
	return sc
}

func newRenderer(t *testing.T, typ string, values map[string]interface{}) Renderer {
	t.Helper()
	r, err := New(typ)
	if err != nil {
		t.Fatalf("New(%q) failed: %v", typ, err)
	}
	if err := r.Initialize(config.MustFromMap(values)); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	return r
}

func render(t *testing.T, r Renderer, sc core.Scene, seed uint64, width, height int) (*film.HDRFilm, *Diagnostics) {
	t.Helper()
	f := film.New(width, height)
	diag, err := r.Render(context.Background(), sc, core.NewRandom(seed), f)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	return f, diag
}

func TestNew(t *testing.T) {
	if _, err := New("pathtracer"); !errors.Is(err, ErrUnknownRenderer) {
		t.Errorf("New(pathtracer) error = %v", err)
	}
	types := Types()
	if len(types) != 2 || types[0] != "bdptfixed" || types[1] != "mltfixed" {
		t.Errorf("Types() = %v", types)
	}
}

func TestInitializeErrors(t *testing.T) {
	valid := func() map[string]interface{} {
		return map[string]interface{}{
			"num_vertices":     3,
			"num_mutations":    100,
			"num_seed_samples": 100,
		}
	}
	tests := []struct {
		name   string
		typ    string
		modify func(m map[string]interface{})
	}{
		{"missing num_vertices", "mltfixed", func(m map[string]interface{}) { delete(m, "num_vertices") }},
		{"too few vertices", "mltfixed", func(m map[string]interface{}) { m["num_vertices"] = 1 }},
		{"unparsable num_vertices", "bdptfixed", func(m map[string]interface{}) { m["num_vertices"] = "three" }},
		{"zero mutations", "mltfixed", func(m map[string]interface{}) { m["num_mutations"] = 0 }},
		{"missing mutations", "bdptfixed", func(m map[string]interface{}) { delete(m, "num_mutations") }},
		{"negative threads", "mltfixed", func(m map[string]interface{}) { m["num_threads"] = -1 }},
		{"missing seed samples", "mltfixed", func(m map[string]interface{}) { delete(m, "num_seed_samples") }},
		{"zero seed samples", "mltfixed", func(m map[string]interface{}) { m["num_seed_samples"] = 0 }},
		{"negative normalization", "mltfixed", func(m map[string]interface{}) { m["normalization"] = -1.0 }},
		{"negative weight", "mltfixed", func(m map[string]interface{}) {
			m["mutation_strategy_weights"] = map[string]interface{}{"lens": -1.0}
		}},
		{"all zero weights", "mltfixed", func(m map[string]interface{}) {
			m["mutation_strategy_weights"] = map[string]interface{}{"bidir": 0, "lens": 0, "caustic": 0, "multichain": 0}
		}},
		{"negative dump", "mltfixed", func(m map[string]interface{}) {
			m["debug"] = map[string]interface{}{"dump_paths": -2}
		}},
		{"invalid path type", "bdptfixed", func(m map[string]interface{}) { m["path_type"] = "L(D" }},
	}
	for _, tt := range tests {
		values := valid()
		tt.modify(values)
		r, err := New(tt.typ)
		if err != nil {
			t.Fatalf("New failed: %v", err)
		}
		if err := r.Initialize(config.MustFromMap(values)); !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("%s: Initialize error = %v, want ErrInvalidConfig", tt.name, err)
		}
	}

	var r MLTFixed
	if err := r.Initialize(nil); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("nil node error = %v", err)
	}
}

func TestInitializeNormalizationOverride(t *testing.T) {
	r := newRenderer(t, "mltfixed", map[string]interface{}{
		"num_vertices":  3,
		"num_mutations": 10,
		"normalization": 0.5,
	}).(*MLTFixed)
	if !r.hasNormalization || r.normalization != 0.5 || r.numSeedSamples != 0 {
		t.Errorf("normalization override not applied: %+v", r)
	}
	if r.weights != [5]float64{1, 1, 1, 1, 0} {
		t.Errorf("default weights = %v", r.weights)
	}
}

func TestRenderRequiresInitialize(t *testing.T) {
	sc := twoSpheres(t)
	for _, r := range []Renderer{&MLTFixed{}, &BDPTFixed{}} {
		if _, err := r.Render(context.Background(), sc, core.NewRandom(1), film.New(1, 1)); !errors.Is(err, ErrNotInitialized) {
			t.Errorf("%T: Render error = %v", r, err)
		}
	}
}

func TestMLTRenderIsReproducible(t *testing.T) {
	sc := twoSpheres(t)
	values := map[string]interface{}{
		"num_vertices":     3,
		"num_mutations":    4000,
		"num_seed_samples": 2000,
		"num_threads":      2,
		"debug":            map[string]interface{}{"dump_paths": 3},
	}
	a, diagA := render(t, newRenderer(t, "mltfixed", values), sc, 42, 3, 3)
	b, _ := render(t, newRenderer(t, "mltfixed", values), sc, 42, 3, 3)
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			if a.Pixel(x, y) != b.Pixel(x, y) {
				t.Fatalf("pixel (%d,%d) differs: %v vs %v", x, y, a.Pixel(x, y), b.Pixel(x, y))
			}
		}
	}

	if diagA.NumWorkers != 2 || diagA.Chains.Mutations != 4000 {
		t.Errorf("diagnostics = %+v", diagA)
	}
	if len(diagA.Paths) != 3 {
		t.Errorf("dumped %d paths, want 3", len(diagA.Paths))
	}
	// Every mutation splats luminance b and the film is rescaled by W·H/N
	want := diagA.Normalization
	if got := a.Average().Luminance(); math.Abs(got-want) > 1e-9*want {
		t.Errorf("mean pixel luminance = %v, want %v", got, want)
	}
}

func TestMLTNoContribution(t *testing.T) {
	// The light is outside the view, so no two-vertex path carries energy
	sc := twoSpheres(t)
	r := newRenderer(t, "mltfixed", map[string]interface{}{
		"num_vertices":     2,
		"num_mutations":    10,
		"num_seed_samples": 1000,
		"num_threads":      1,
	})
	if _, err := r.Render(context.Background(), sc, core.NewRandom(1), film.New(2, 2)); !errors.Is(err, ErrNoContribution) {
		t.Errorf("Render error = %v, want ErrNoContribution", err)
	}
}

func TestBDPTPathTypeFilter(t *testing.T) {
	sc := twoSpheres(t)
	base := map[string]interface{}{
		"num_vertices":  3,
		"num_mutations": 5000,
		"num_threads":   2,
	}

	base["path_type"] = "LSE"
	f, diag := render(t, newRenderer(t, "bdptfixed", base), sc, 1, 2, 2)
	if diag.Splats != 0 || !f.Average().IsBlack() {
		t.Errorf("specular filter splatted %d contributions in a diffuse scene", diag.Splats)
	}
	if diag.Connections == 0 {
		t.Error("expected connections to be counted before filtering")
	}

	base["path_type"] = "LDE"
	f, diag = render(t, newRenderer(t, "bdptfixed", base), sc, 1, 2, 2)
	if diag.Splats == 0 || f.Average().IsBlack() {
		t.Error("diffuse filter splatted nothing")
	}
}

// bruteForce returns independent samples of the luminance of F/p for the s=0 strategy
func bruteForce(sc core.Scene, numVertices, n int, seed uint64) []float64 {
	rng := core.NewRandom(seed)
	samples := make([]float64, path.NumSamples(numVertices))
	values := make([]float64, n)
	for i := range values {
		for j := range samples {
			samples[j] = rng.Next()
		}
		if p := path.MapPS2Path(sc, samples, numVertices); p != nil {
			values[i] = p.EvaluateUnweightContribution(sc, 0).Luminance()
		}
	}
	return values
}

func TestNormalizationMatchesBruteForce(t *testing.T) {
	if testing.Short() {
		t.Skip("statistical test")
	}
	const (
		numVertices = 3
		numBrute    = 400000
		numSeed     = 100000
	)
	sc := twoSpheres(t)

	mean, std := stat.MeanStdDev(bruteForce(sc, numVertices, numBrute, 99), nil)
	if mean <= 0 {
		t.Fatalf("brute force mean = %v", mean)
	}
	tol := 4 * math.Hypot(stat.StdErr(std, numBrute), stat.StdErr(std, numSeed))

	b, err := EstimateNormalization(context.Background(), sc, core.NewRandom(1), NewWorkerPool(3), numVertices, numSeed)
	if err != nil {
		t.Fatalf("EstimateNormalization failed: %v", err)
	}
	if math.Abs(b-mean) > tol {
		t.Errorf("normalization = %v, brute force = %v ± %v", b, mean, tol)
	}

	// All bidirectional strategies combined estimate the same integral
	f, _ := render(t, newRenderer(t, "bdptfixed", map[string]interface{}{
		"num_vertices":  numVertices,
		"num_mutations": 100000,
		"num_threads":   3,
	}), sc, 5, 2, 2)
	bdpt := f.Average().Luminance()
	if math.Abs(bdpt-mean) > 4*stat.StdErr(std, numBrute)+0.03*mean {
		t.Errorf("BDPT mean = %v, brute force = %v", bdpt, mean)
	}
}

func comparePixels(t *testing.T, name string, got, want *film.HDRFilm, tol float64) {
	t.Helper()
	for y := 0; y < want.Height(); y++ {
		for x := 0; x < want.Width(); x++ {
			g := got.Pixel(x, y).Luminance()
			w := want.Pixel(x, y).Luminance()
			if math.Abs(g-w) > tol*w {
				t.Errorf("%s: pixel (%d,%d) luminance %v, reference %v", name, x, y, g, w)
			}
		}
	}
}

func TestMLTConvergesToBDPT(t *testing.T) {
	if testing.Short() {
		t.Skip("statistical test")
	}
	sc := twoSpheres(t)
	reference, _ := render(t, newRenderer(t, "bdptfixed", map[string]interface{}{
		"num_vertices":  3,
		"num_mutations": 200000,
		"num_threads":   2,
	}), sc, 7, 2, 2)

	tests := []struct {
		name    string
		weights map[string]interface{}
	}{
		{"default strategies", nil},
		{"bidir only", map[string]interface{}{"lens": 0, "caustic": 0, "multichain": 0}},
		// Multichain proposals on three-vertex diffuse paths almost always fail
		{"mostly rejected", map[string]interface{}{"bidir": 0, "lens": 1, "caustic": 0, "multichain": 3}},
	}
	for _, tt := range tests {
		values := map[string]interface{}{
			"num_vertices":     3,
			"num_mutations":    400000,
			"num_seed_samples": 200000,
			"num_threads":      2,
		}
		if tt.weights != nil {
			values["mutation_strategy_weights"] = tt.weights
		}
		f, diag := render(t, newRenderer(t, "mltfixed", values), sc, 11, 2, 2)
		comparePixels(t, tt.name, f, reference, 0.1)
		if tt.name == "mostly rejected" && diag.Chains.Rejections < diag.Chains.Mutations/2 {
			t.Errorf("%s: only %d of %d mutations rejected", tt.name, diag.Chains.Rejections, diag.Chains.Mutations)
		}
	}
}

func TestMLTKernelsConvergeThroughSpecularChains(t *testing.T) {
	if testing.Short() {
		t.Skip("statistical test")
	}
	sc, err := scene.Builtin("cornell", 1)
	if err != nil {
		t.Fatalf("Builtin failed: %v", err)
	}
	reference, _ := render(t, newRenderer(t, "bdptfixed", map[string]interface{}{
		"num_vertices":  4,
		"num_mutations": 400000,
		"num_threads":   2,
	}), sc, 3, 2, 2)

	tests := []struct {
		strategy mlt.Strategy
		weights  map[string]interface{}
	}{
		{mlt.Lens, map[string]interface{}{"bidir": 1, "lens": 1, "caustic": 0, "multichain": 0}},
		{mlt.Multichain, map[string]interface{}{"bidir": 1, "lens": 0, "caustic": 0, "multichain": 1}},
		{mlt.Caustic, map[string]interface{}{"bidir": 1, "lens": 0, "caustic": 1, "multichain": 0}},
	}
	for _, tt := range tests {
		f, diag := render(t, newRenderer(t, "mltfixed", map[string]interface{}{
			"num_vertices":              4,
			"num_mutations":             1000000,
			"num_seed_samples":          200000,
			"num_threads":               2,
			"mutation_strategy_weights": tt.weights,
		}), sc, 13, 2, 2)
		if diag.Chains.Accepted[tt.strategy] == 0 {
			t.Errorf("%s: no proposal accepted out of %d", tt.strategy, diag.Chains.Proposed[tt.strategy])
		}
		comparePixels(t, tt.strategy.String(), f, reference, 0.1)
	}
}
