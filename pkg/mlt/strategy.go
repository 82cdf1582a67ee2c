// Package mlt implements fixed-length Metropolis light transport: mutation strategies,
// their transition weights and the per-chain Metropolis-Hastings state.
package mlt

import (
	"errors"
	"fmt"
	"strings"

	"github.com/df07/go-light-transport/pkg/config"
	"github.com/df07/go-light-transport/pkg/core"
)

// Strategy identifies a mutation kernel
type Strategy int

const (
	// Bidir deletes a random range of vertices and regrows it from both sides
	Bidir Strategy = iota
	// Lens regenerates the eye side up to the first non-specular vertex
	Lens
	// Caustic regenerates the specular chain ending at the vertex seen by the sensor
	Caustic
	// Multichain regenerates the eye side through two non-specular vertices
	Multichain
	// Identity proposes the current path
	Identity

	NumStrategies = int(Identity) + 1
)

var strategyNames = [NumStrategies]string{"bidir", "lens", "caustic", "multichain", "identity"}

func (s Strategy) String() string {
	if s < 0 || int(s) >= NumStrategies {
		return fmt.Sprintf("strategy(%d)", int(s))
	}
	return strategyNames[s]
}

// ParseStrategy converts a configuration name into a Strategy
func ParseStrategy(name string) (Strategy, error) {
	for i, n := range strategyNames {
		if strings.EqualFold(n, name) {
			return Strategy(i), nil
		}
	}
	return 0, fmt.Errorf("unknown mutation strategy %q", name)
}

var (
	// ErrNegativeWeight is returned for a strategy weight below zero
	ErrNegativeWeight = errors.New("mlt: negative strategy weight")
	// ErrZeroWeights is returned when no strategy can be selected
	ErrZeroWeights = errors.New("mlt: all strategy weights are zero")
)

// Weights holds the selection weight of every strategy
type Weights [NumStrategies]float64

// DefaultWeights selects every strategy except Identity with equal probability
func DefaultWeights() Weights {
	return Weights{1, 1, 1, 1, 0}
}

// Validate checks that the weights define a selection distribution
func (w Weights) Validate() error {
	sum := 0.0
	for i, v := range w {
		if v < 0 {
			return fmt.Errorf("%w: %s = %v", ErrNegativeWeight, Strategy(i), v)
		}
		sum += v
	}
	if sum == 0 {
		return ErrZeroWeights
	}
	return nil
}

// Distribution returns the normalized selection distribution
func (w Weights) Distribution() *core.Distribution1D {
	return core.NewDistribution1D(w[:]...)
}

// ReadWeights reads weights from a mutation_strategy_weights node. Missing entries keep
// their default; a nil node yields the defaults.
func ReadWeights(node *config.Node) (Weights, error) {
	w := DefaultWeights()
	for i := range w {
		v, err := node.FloatOr(Strategy(i).String(), w[i])
		if err != nil {
			return w, err
		}
		w[i] = v
	}
	return w, w.Validate()
}
