package mlt

import (
	"context"
	"errors"

	"github.com/df07/go-light-transport/pkg/core"
	"github.com/df07/go-light-transport/pkg/path"
)

// Seeding checks for cancellation once per this many attempts
const seedCheckInterval = 1024

// ErrSeedingCanceled is returned when the context ends before a chain found a start path
var ErrSeedingCanceled = errors.New("mlt: chain seeding canceled")

// ChainStats counts what happened in a chain
type ChainStats struct {
	Proposed         [NumStrategies]int64
	Failed           [NumStrategies]int64 // Kernel produced no path
	Accepted         [NumStrategies]int64
	Mutations        int64
	Rejections       int64 // Includes failed proposals
	LongestRejection int64 // Longest run of consecutive rejections
	SeedAttempts     int64
}

// Merge adds the counts of other. The longest rejection run is the maximum of both.
func (s *ChainStats) Merge(other ChainStats) {
	for i := 0; i < NumStrategies; i++ {
		s.Proposed[i] += other.Proposed[i]
		s.Failed[i] += other.Failed[i]
		s.Accepted[i] += other.Accepted[i]
	}
	s.Mutations += other.Mutations
	s.Rejections += other.Rejections
	s.SeedAttempts += other.SeedAttempts
	if other.LongestRejection > s.LongestRejection {
		s.LongestRejection = other.LongestRejection
	}
}

// AcceptanceRate returns the fraction of accepted mutations
func (s *ChainStats) AcceptanceRate() float64 {
	if s.Mutations == 0 {
		return 0
	}
	return float64(s.Mutations-s.Rejections) / float64(s.Mutations)
}

// ChainConfig holds the parameters shared by every chain of a render
type ChainConfig struct {
	NumVertices   int
	Weights       Weights
	Normalization float64 // Scale b of the splatted contributions
	DumpPaths     int     // Number of accumulated states to record
}

// ChainState is one Markov chain with its private generator and film.
// A ChainState is not safe for concurrent use.
type ChainState struct {
	config     ChainConfig
	rng        *core.Random
	strategies *core.Distribution1D
	mutator    *Mutator
	film       core.Film
	current    *path.Path
	stats      ChainStats
	rejectRun  int64
	dumped     []*path.Path
}

// NewChainState creates a chain seeded with seed that accumulates into film.
// The weights must have been validated.
func NewChainState(config ChainConfig, seed uint64, film core.Film) *ChainState {
	return &ChainState{
		config:     config,
		rng:        core.NewRandom(seed),
		strategies: config.Weights.Distribution(),
		mutator:    NewMutator(config.NumVertices),
		film:       film,
	}
}

// Seed draws start paths from master until one has non-zero contribution.
// Start-up bias is ignored.
func (c *ChainState) Seed(ctx context.Context, scene core.Scene, master *core.Random) error {
	samples := make([]float64, path.NumSamples(c.config.NumVertices))
	for {
		c.stats.SeedAttempts++
		if c.stats.SeedAttempts%seedCheckInterval == 0 && ctx.Err() != nil {
			return errors.Join(ErrSeedingCanceled, ctx.Err())
		}
		for i := range samples {
			samples[i] = master.Next()
		}
		p := path.MapPS2Path(scene, samples, c.config.NumVertices)
		if p == nil || p.EvaluateF(0).IsBlack() {
			continue
		}
		c.current = p
		return nil
	}
}

// Current returns the current state of the chain
func (c *ChainState) Current() *path.Path {
	return c.current
}

// Stats returns the counters collected so far
func (c *ChainState) Stats() ChainStats {
	return c.stats
}

// Dumped returns the recorded accumulated states
func (c *ChainState) Dumped() []*path.Path {
	return c.dumped
}

// Film returns the chain's private film
func (c *ChainState) Film() core.Film {
	return c.film
}

// Step performs one Metropolis-Hastings iteration and accumulates the resulting state.
// A rejected or failed proposal accumulates the current state again.
func (c *ChainState) Step(scene core.Scene) bool {
	strategy := Strategy(c.strategies.Sample(c.rng.Get1D()))
	c.stats.Proposed[strategy]++
	c.stats.Mutations++

	accepted := false
	if prop, ok := c.mutator.Mutate(strategy, scene, c.rng, c.current); ok {
		qxy := Q(strategy, scene, c.current, prop.Path, prop.Meta)
		qyx := Q(strategy, scene, prop.Path, c.current, prop.Meta)
		if c.rng.Get1D() < Acceptance(qxy, qyx) {
			c.current = prop.Path
			accepted = true
		}
	} else {
		c.stats.Failed[strategy]++
	}

	if accepted {
		c.stats.Accepted[strategy]++
		c.rejectRun = 0
	} else {
		c.stats.Rejections++
		c.rejectRun++
		if c.rejectRun > c.stats.LongestRejection {
			c.stats.LongestRejection = c.rejectRun
		}
	}

	c.accumulate()
	return accepted
}

func (c *ChainState) accumulate() {
	f := c.current.EvaluateF(0)
	if !f.IsBlack() {
		if raster, ok := c.current.RasterPosition(); ok {
			c.film.Splat(raster, f.Multiply(c.config.Normalization/f.Luminance()))
		}
	}
	if len(c.dumped) < c.config.DumpPaths {
		c.dumped = append(c.dumped, c.current.Clone())
	}
}
