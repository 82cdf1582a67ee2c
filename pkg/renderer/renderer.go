// Package renderer drives the path engine over a film: a fixed-length Metropolis light
// transport renderer and a fixed-length bidirectional path tracer used as its reference.
package renderer

import (
	"context"
	"fmt"
	"runtime"
	"sort"

	"github.com/df07/go-light-transport/pkg/config"
	"github.com/df07/go-light-transport/pkg/core"
	"github.com/df07/go-light-transport/pkg/log"
)

var logger = log.New("renderer")

// Renderer estimates the image of a scene into a film
type Renderer interface {
	// Initialize reads the renderer configuration node
	Initialize(node *config.Node) error
	// Render runs the full estimate. rng is the master generator all worker streams are seeded from.
	Render(ctx context.Context, scene core.Scene, rng *core.Random, film core.Film) (*Diagnostics, error)
}

var registry = map[string]func() Renderer{
	"mltfixed":  func() Renderer { return &MLTFixed{} },
	"bdptfixed": func() Renderer { return &BDPTFixed{} },
}

// New creates an uninitialized renderer of the given type
func New(typ string) (Renderer, error) {
	create, ok := registry[typ]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownRenderer, typ)
	}
	return create(), nil
}

// Types returns the registered renderer types
func Types() []string {
	types := make([]string, 0, len(registry))
	for typ := range registry {
		types = append(types, typ)
	}
	sort.Strings(types)
	return types
}

// commonConfig holds the keys shared by the fixed-length renderers
type commonConfig struct {
	numVertices  int
	numMutations int64
	numThreads   int
}

func invalidConfig(err error) error {
	return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
}

func readCommonConfig(node *config.Node) (commonConfig, error) {
	var c commonConfig
	if node == nil {
		return c, invalidConfig(config.ErrMissingKey)
	}

	var err error
	if c.numVertices, err = node.Int("num_vertices"); err != nil {
		return c, invalidConfig(err)
	}
	if c.numVertices < 2 {
		return c, invalidConfig(fmt.Errorf("num_vertices must be at least 2, got %d", c.numVertices))
	}

	if c.numMutations, err = node.Int64("num_mutations"); err != nil {
		return c, invalidConfig(err)
	}
	if c.numMutations <= 0 {
		return c, invalidConfig(fmt.Errorf("num_mutations must be positive, got %d", c.numMutations))
	}

	if c.numThreads, err = node.IntOr("num_threads", 0); err != nil {
		return c, invalidConfig(err)
	}
	if c.numThreads < 0 {
		return c, invalidConfig(fmt.Errorf("num_threads must not be negative, got %d", c.numThreads))
	}
	if c.numThreads == 0 {
		c.numThreads = runtime.NumCPU()
	}
	return c, nil
}

// gatherFilms merges the worker films into film and converts the splat sum into an estimate
func gatherFilms(film core.Film, films []core.Film, numIterations int64) error {
	scale := float64(film.Width()*film.Height()) / float64(numIterations)
	logger.Infof("merging %d films, rescaling by %g", len(films), scale)
	film.Clear()
	for _, f := range films {
		if err := film.Accumulate(f); err != nil {
			return err
		}
	}
	film.Rescale(scale)
	return nil
}
