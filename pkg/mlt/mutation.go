package mlt

import (
	"math"

	"github.com/df07/go-light-transport/pkg/core"
	"github.com/df07/go-light-transport/pkg/path"
)

// Base of the two-tailed geometric distribution of deleted vertex counts
const bidirDeletionBase = 2

// Meta records the choices a kernel made, which the transition weights depend on
type Meta struct {
	Kd    int // Bidir: number of deleted vertices
	DL    int // Bidir: index of the first deleted vertex
	Split int // Lens, Multichain, Caustic: index of the kept vertex the kernel regrows from
}

// Proposal is a candidate path produced by a mutation
type Proposal struct {
	Path     *path.Path
	Strategy Strategy
	Meta     Meta
}

// Mutator proposes mutations of paths with a fixed number of vertices
type Mutator struct {
	numVertices int
	deletions   *core.TwoTailedGeometric // Bidir: number of deleted vertices in [1,numVertices]
}

// NewMutator creates a mutator for paths with numVertices vertices
func NewMutator(numVertices int) *Mutator {
	return &Mutator{
		numVertices: numVertices,
		deletions:   core.NewTwoTailedGeometric(bidirDeletionBase, 1, 1, numVertices),
	}
}

// Mutate proposes a new path from x. It returns false when the kernel could not produce
// a path with non-zero contribution, which the chain treats as a rejection.
// x must have the number of vertices the mutator was created for.
func (m *Mutator) Mutate(strategy Strategy, scene core.Scene, sampler core.Sampler, x *path.Path) (Proposal, bool) {
	if x.Len() != m.numVertices {
		return Proposal{}, false
	}
	var (
		y    *path.Path
		meta Meta
		ok   bool
	)
	switch strategy {
	case Bidir:
		y, meta, ok = m.mutateBidir(scene, sampler, x)
	case Lens:
		y, meta, ok = mutateEye(scene, sampler, x, 1)
	case Multichain:
		y, meta, ok = mutateEye(scene, sampler, x, 2)
	case Caustic:
		y, meta, ok = mutateCaustic(scene, sampler, x)
	case Identity:
		y, ok = x.Clone(), true
	}
	if !ok {
		return Proposal{}, false
	}
	return Proposal{Path: y, Strategy: strategy, Meta: meta}, true
}

// Q returns the transition weight T(x→y)/F(y) of moving from x to y with the given kernel
// choices, up to factors that are the same in both directions
func Q(strategy Strategy, scene core.Scene, x, y *path.Path, meta Meta) float64 {
	switch strategy {
	case Bidir:
		return qBidir(scene, y, meta)
	case Lens:
		return qSplit(scene, y, meta.Split, eyeSplit(x, 1), meta.Split)
	case Multichain:
		return qSplit(scene, y, meta.Split, eyeSplit(x, 2), meta.Split)
	case Caustic:
		return qSplit(scene, y, meta.Split, causticSplit(x), y.Len()-1)
	case Identity:
		return 1
	}
	return 0
}

// Acceptance returns the Metropolis-Hastings acceptance probability min(1, qyx/qxy).
// Non-positive or NaN weights give zero.
func Acceptance(qxy, qyx float64) float64 {
	if math.IsNaN(qxy) || math.IsNaN(qyx) || qxy <= 0 || qyx <= 0 {
		return 0
	}
	a := qyx / qxy
	if math.IsNaN(a) {
		return 0
	}
	return math.Min(1, a)
}

func clampIndex(u float64, n int) int {
	i := int(u * float64(n+1))
	if i < 0 {
		return 0
	}
	if i > n {
		return n
	}
	return i
}

func (m *Mutator) mutateBidir(scene core.Scene, sampler core.Sampler, x *path.Path) (*path.Path, Meta, bool) {
	n := x.Len()
	kd := m.deletions.Sample(sampler.Get1D())
	dL := clampIndex(sampler.Get1D(), n-kd)
	dM := dL + kd - 1
	aL := clampIndex(sampler.Get1D(), kd)
	aM := kd - aL

	light := &path.Subpath{Dir: core.LE, Vertices: make([]path.PathVertex, 0, dL+aL)}
	light.Vertices = append(light.Vertices, x.Vertices[:dL]...)
	if light.SampleSubpathFromEndpoint(scene, sampler, core.LE, aL) != aL {
		return nil, Meta{}, false
	}

	eye := &path.Subpath{Dir: core.EL, Vertices: make([]path.PathVertex, 0, n-dM-1+aM)}
	for i := n - 1; i > dM; i-- {
		eye.Vertices = append(eye.Vertices, x.Vertices[i])
	}
	if eye.SampleSubpathFromEndpoint(scene, sampler, core.EL, aM) != aM {
		return nil, Meta{}, false
	}

	y := &path.Path{}
	if !y.ConnectSubpaths(scene, light, eye, len(light.Vertices), len(eye.Vertices)) {
		return nil, Meta{}, false
	}
	if y.EvaluateF(dL + aL).IsBlack() {
		return nil, Meta{}, false
	}
	return y, Meta{Kd: kd, DL: dL}, true
}

// qBidir sums p_s(y)/F_s(y) over every split that could have regrown the deleted range
func qBidir(scene core.Scene, y *path.Path, meta Meta) float64 {
	sum := 0.0
	for i := 0; i <= meta.Kd; i++ {
		s := meta.DL + i
		f := y.EvaluateF(s)
		if f.IsBlack() {
			continue
		}
		lum := f.Luminance()
		if lum <= 0 {
			continue
		}
		sum += y.EvaluatePathPDF(scene, s) / lum
	}
	return sum
}

func nonSpecular(v path.PathVertex) bool {
	return v.Type&core.Specular == 0
}

// eyeSplit returns the index of the numChains-th non-specular vertex counted from the
// sensor side, excluding the sensor itself, or -1
func eyeSplit(x *path.Path, numChains int) int {
	found := 0
	for i := x.Len() - 2; i >= 0; i-- {
		if nonSpecular(x.Vertices[i]) {
			found++
			if found == numChains {
				return i
			}
		}
	}
	return -1
}

// causticSplit returns the last non-specular vertex before the specular chain that ends
// at the vertex seen by the sensor, or -1 when that vertex is specular
func causticSplit(x *path.Path) int {
	n := x.Len()
	if n < 3 || !nonSpecular(x.Vertices[n-2]) {
		return -1
	}
	for i := n - 3; i >= 0; i-- {
		if nonSpecular(x.Vertices[i]) {
			return i
		}
	}
	return -1
}

// mutateEye keeps x[0..d-1] and regrows the eye side from the sensor. The new eye
// subpath must meet exactly numChains non-specular vertices, the last at index d.
func mutateEye(scene core.Scene, sampler core.Sampler, x *path.Path, numChains int) (*path.Path, Meta, bool) {
	n := x.Len()
	d := eyeSplit(x, numChains)
	if d < 0 {
		return nil, Meta{}, false
	}

	light := &path.Subpath{Dir: core.LE, Vertices: append([]path.PathVertex(nil), x.Vertices[:d]...)}
	eye := &path.Subpath{Dir: core.EL, Vertices: []path.PathVertex{x.Vertices[n-1]}}
	want := n - d
	found := 0
	path.TraceSubpathFromEndpoint(scene, sampler, eye, want-1, func(numVertices int, v path.PathVertex) bool {
		if nonSpecular(v) {
			found++
		}
		return found < numChains
	})
	if len(eye.Vertices) != want || found != numChains {
		return nil, Meta{}, false
	}

	y := &path.Path{}
	if !y.ConnectSubpaths(scene, light, eye, d, want) {
		return nil, Meta{}, false
	}
	if y.EvaluateF(d).IsBlack() {
		return nil, Meta{}, false
	}
	return y, Meta{Split: d}, true
}

// mutateCaustic keeps x[0..c] and the sensor, regrows the specular chain from x[c] so
// that its first non-specular hit is the vertex seen by the sensor, and connects with t=1
func mutateCaustic(scene core.Scene, sampler core.Sampler, x *path.Path) (*path.Path, Meta, bool) {
	n := x.Len()
	c := causticSplit(x)
	if c < 0 {
		return nil, Meta{}, false
	}

	light := &path.Subpath{Dir: core.LE, Vertices: append([]path.PathVertex(nil), x.Vertices[:c+1]...)}
	want := n - 1
	stopped := false
	path.TraceSubpathFromEndpoint(scene, sampler, light, want-len(light.Vertices), func(numVertices int, v path.PathVertex) bool {
		if nonSpecular(v) {
			stopped = numVertices < want
			return false
		}
		return true
	})
	if stopped || len(light.Vertices) != want || !nonSpecular(light.Vertices[want-1]) {
		return nil, Meta{}, false
	}

	eye := &path.Subpath{Dir: core.EL, Vertices: []path.PathVertex{x.Vertices[n-1]}}
	y := &path.Path{}
	if !y.ConnectSubpaths(scene, light, eye, want, 1) {
		return nil, Meta{}, false
	}
	if y.EvaluateF(want).IsBlack() {
		return nil, Meta{}, false
	}
	return y, Meta{Split: c}, true
}

// qSplit is p_s(y)/F_s(y) for kernels that regrow from a fixed split. The move is only
// possible when the split recomputed on x matches the one the kernel used.
func qSplit(scene core.Scene, y *path.Path, split, splitOfX, s int) float64 {
	if split < 0 || splitOfX != split {
		return 0
	}
	f := y.EvaluateF(s)
	if f.IsBlack() {
		return 0
	}
	lum := f.Luminance()
	if lum <= 0 {
		return 0
	}
	return y.EvaluatePathPDF(scene, s) / lum
}
