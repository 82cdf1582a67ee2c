package path

import "github.com/df07/go-light-transport/pkg/core"

// NumSamples returns the primary sample space dimension of a path with numVertices
// vertices: three numbers select and place the sensor, three more sample each direction.
func NumSamples(numVertices int) int {
	return 3 + 3*(numVertices-1)
}

// pssSampler replays a fixed primary sample vector and flags any read past its end
type pssSampler struct {
	samples   []float64
	index     int
	underflow bool
}

func (s *pssSampler) Get1D() float64 {
	if s.index >= len(s.samples) {
		s.underflow = true
		return 0
	}
	v := s.samples[s.index]
	s.index++
	return v
}

func (s *pssSampler) Get2D() core.Vec2 {
	u := s.Get1D()
	v := s.Get1D()
	return core.NewVec2(u, v)
}

// MapPS2Path deterministically maps a primary sample vector to a path with exactly
// numVertices vertices, traced from the sensor until it reaches an emitter.
// It returns nil when the walk does not produce such a path.
func MapPS2Path(scene core.Scene, samples []float64, numVertices int) *Path {
	if numVertices < 2 || len(samples) < NumSamples(numVertices) {
		return nil
	}

	sampler := &pssSampler{samples: samples}
	var eye Subpath
	if eye.SampleSubpathFromEndpoint(scene, sampler, core.EL, numVertices) != numVertices || sampler.underflow {
		return nil
	}

	p := &Path{}
	if !p.ConnectSubpaths(scene, &Subpath{Dir: core.LE}, &eye, 0, numVertices) {
		return nil
	}
	return p
}
