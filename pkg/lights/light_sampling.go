package lights

import "github.com/df07/go-light-transport/pkg/core"

// Selector picks one light among many with probability proportional to emitted power
type Selector struct {
	lights []*AreaLight
	index  map[*AreaLight]int
	dist   *core.Distribution1D
}

// NewSelector builds a power-weighted selector. Lights that all emit nothing are chosen uniformly.
func NewSelector(lights []*AreaLight) *Selector {
	s := &Selector{lights: lights, index: make(map[*AreaLight]int, len(lights)), dist: &core.Distribution1D{}}
	total := 0.0
	for _, l := range lights {
		total += l.Power()
	}
	for i, l := range lights {
		s.index[l] = i
		if total > 0 {
			s.dist.Add(l.Power())
		} else {
			s.dist.Add(1)
		}
	}
	s.dist.Normalize()
	return s
}

// Len returns the number of lights
func (s *Selector) Len() int {
	return len(s.lights)
}

// Sample returns the light selected by u and its selection probability
func (s *Selector) Sample(u float64) (*AreaLight, float64) {
	i := s.dist.Sample(u)
	if i < 0 {
		return nil, 0
	}
	return s.lights[i], s.dist.EvaluatePDF(i)
}

// PDF returns the selection probability of l
func (s *Selector) PDF(l *AreaLight) float64 {
	i, ok := s.index[l]
	if !ok {
		return 0
	}
	return s.dist.EvaluatePDF(i)
}
