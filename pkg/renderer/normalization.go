package renderer

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/df07/go-light-transport/pkg/core"
	"github.com/df07/go-light-transport/pkg/path"
)

// EstimateNormalization returns the mean luminance of the unweighted contribution of
// independently mapped primary sample vectors. Vectors that do not map to a path count as zero.
// Every worker draws from its own generator seeded from master.
func EstimateNormalization(ctx context.Context, scene core.Scene, master *core.Random, pool *WorkerPool, numVertices int, numSeedSamples int64) (float64, error) {
	ctx, span := otel.Tracer("renderer").Start(ctx, "renderer.EstimateNormalization",
		trace.WithAttributes(attribute.Int64("num_seed_samples", numSeedSamples)),
	)
	defer span.End()

	numWorkers := pool.GetNumWorkers()
	rngs := make([]*core.Random, numWorkers)
	for i := range rngs {
		rngs[i] = core.NewRandom(master.NextUInt())
	}
	sums := make([]float64, numWorkers)

	err := pool.Run(ctx, numSeedSamples, func(ctx context.Context, task Task) error {
		rng := rngs[task.WorkerID]
		samples := make([]float64, path.NumSamples(numVertices))
		sum := 0.0
		for i := task.Begin; i < task.End; i++ {
			if err := canceled(ctx, i-task.Begin); err != nil {
				return err
			}
			for j := range samples {
				samples[j] = rng.Next()
			}
			p := path.MapPS2Path(scene, samples, numVertices)
			if p == nil {
				continue
			}
			sum += p.EvaluateUnweightContribution(scene, 0).Luminance()
		}
		sums[task.WorkerID] = sum
		return nil
	})
	if err != nil {
		span.RecordError(err)
		return 0, err
	}

	b := 0.0
	for _, s := range sums {
		b += s
	}
	b /= float64(numSeedSamples)
	span.SetAttributes(attribute.Float64("normalization", b))
	return b, nil
}
