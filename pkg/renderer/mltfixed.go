package renderer

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/df07/go-light-transport/pkg/config"
	"github.com/df07/go-light-transport/pkg/core"
	"github.com/df07/go-light-transport/pkg/mlt"
)

// MLTFixed renders with Metropolis light transport restricted to paths with a fixed
// number of vertices. One Markov chain runs per worker.
type MLTFixed struct {
	common           commonConfig
	numSeedSamples   int64
	weights          mlt.Weights
	normalization    float64
	hasNormalization bool
	dumpPaths        int
	initialized      bool
}

// Initialize reads num_vertices, num_mutations, num_seed_samples, num_threads,
// mutation_strategy_weights, normalization and debug.dump_paths
func (r *MLTFixed) Initialize(node *config.Node) error {
	common, err := readCommonConfig(node)
	if err != nil {
		return err
	}
	r.common = common

	r.hasNormalization = node.Has("normalization")
	if r.hasNormalization {
		if r.normalization, err = node.Float("normalization"); err != nil {
			return invalidConfig(err)
		}
		if r.normalization <= 0 {
			return invalidConfig(fmt.Errorf("normalization must be positive, got %v", r.normalization))
		}
	} else {
		if r.numSeedSamples, err = node.Int64("num_seed_samples"); err != nil {
			return invalidConfig(err)
		}
		if r.numSeedSamples <= 0 {
			return invalidConfig(fmt.Errorf("num_seed_samples must be positive, got %d", r.numSeedSamples))
		}
	}

	if !node.Has("mutation_strategy_weights") {
		logger.Warningf("mutation_strategy_weights not set, using %v", mlt.DefaultWeights())
	}
	if r.weights, err = mlt.ReadWeights(node.Child("mutation_strategy_weights")); err != nil {
		return invalidConfig(err)
	}

	if r.dumpPaths, err = node.IntOr("debug.dump_paths", 0); err != nil {
		return invalidConfig(err)
	}
	if r.dumpPaths < 0 {
		return invalidConfig(fmt.Errorf("debug.dump_paths must not be negative, got %d", r.dumpPaths))
	}

	r.initialized = true
	return nil
}

// Render computes the normalization factor, seeds one chain per worker from rng, runs
// num_mutations Metropolis-Hastings steps split across the chains and merges their films
func (r *MLTFixed) Render(ctx context.Context, scene core.Scene, rng *core.Random, film core.Film) (*Diagnostics, error) {
	if !r.initialized {
		return nil, ErrNotInitialized
	}

	ctx, span := otel.Tracer("renderer").Start(ctx, "renderer.MLTFixed.Render",
		trace.WithAttributes(
			attribute.Int("num_vertices", r.common.numVertices),
			attribute.Int64("num_mutations", r.common.numMutations),
			attribute.Int("num_threads", r.common.numThreads),
		),
	)
	defer span.End()

	start := time.Now()
	pool := NewWorkerPool(r.common.numThreads)
	diag := &Diagnostics{
		Renderer:   "mltfixed",
		NumWorkers: pool.GetNumWorkers(),
		Iterations: r.common.numMutations,
	}

	b := r.normalization
	if !r.hasNormalization {
		logger.Info("computing normalization factor")
		var err error
		b, err = EstimateNormalization(ctx, scene, rng, pool, r.common.numVertices, r.numSeedSamples)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return nil, err
		}
		if b <= 0 {
			err := fmt.Errorf("%w: %d vertices, %d seed samples", ErrNoContribution, r.common.numVertices, r.numSeedSamples)
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return nil, err
		}
	}
	logger.Infof("normalization factor: %.10f", b)
	diag.Normalization = b
	span.SetAttributes(attribute.Float64("normalization", b))

	chainConfig := mlt.ChainConfig{
		NumVertices:   r.common.numVertices,
		Weights:       r.weights,
		Normalization: b,
	}
	chains := make([]*mlt.ChainState, pool.GetNumWorkers())
	films := make([]core.Film, len(chains))
	for i := range chains {
		chainConfig.DumpPaths = 0
		if i == 0 {
			chainConfig.DumpPaths = r.dumpPaths
		}
		films[i] = film.Clone()
		chains[i] = mlt.NewChainState(chainConfig, rng.NextUInt(), films[i])
		if err := chains[i].Seed(ctx, scene, rng); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return nil, err
		}
		logger.Debugf("chain %d seeded after %d attempts", i, chains[i].Stats().SeedAttempts)
	}

	logger.Info("rendering")
	err := pool.Run(ctx, r.common.numMutations, func(ctx context.Context, task Task) error {
		chain := chains[task.WorkerID]
		for i := task.Begin; i < task.End; i++ {
			if err := canceled(ctx, i-task.Begin); err != nil {
				return err
			}
			chain.Step(scene)
		}
		return nil
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	for _, chain := range chains {
		diag.Chains.Merge(chain.Stats())
	}
	diag.Chains.Publish()
	diag.Splats = diag.Chains.Mutations
	diag.Paths = chains[0].Dumped()
	logger.Infof("longest rejection run: %d", diag.Chains.LongestRejection)

	if err := gatherFilms(film, films, r.common.numMutations); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	diag.Elapsed = time.Since(start)
	span.SetAttributes(attribute.Float64("acceptance_rate", diag.Chains.AcceptanceRate()))
	return diag, nil
}
