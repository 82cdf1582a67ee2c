package renderer

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/df07/go-light-transport/pkg/config"
	"github.com/df07/go-light-transport/pkg/core"
	"github.com/df07/go-light-transport/pkg/path"
)

// BDPTFixed is a bidirectional path tracer restricted to paths with a fixed number of
// vertices. Every strategy is weighted with the balance heuristic.
type BDPTFixed struct {
	common      commonConfig
	pathType    string
	filter      *path.TypeFilter
	initialized bool
}

// Initialize reads num_vertices, num_mutations (the number of samples), num_threads and path_type
func (r *BDPTFixed) Initialize(node *config.Node) error {
	common, err := readCommonConfig(node)
	if err != nil {
		return err
	}
	r.common = common

	if r.pathType, err = node.StringOr("path_type", ""); err != nil {
		return invalidConfig(err)
	}
	if r.filter, err = path.NewTypeFilter(r.pathType); err != nil {
		return invalidConfig(err)
	}

	r.initialized = true
	return nil
}

type bdptCounters struct {
	connections int64
	splats      int64
}

// Render samples a light and an eye subpath per iteration and splats every connection
// of the requested length
func (r *BDPTFixed) Render(ctx context.Context, scene core.Scene, rng *core.Random, film core.Film) (*Diagnostics, error) {
	if !r.initialized {
		return nil, ErrNotInitialized
	}

	ctx, span := otel.Tracer("renderer").Start(ctx, "renderer.BDPTFixed.Render",
		trace.WithAttributes(
			attribute.Int("num_vertices", r.common.numVertices),
			attribute.Int64("num_samples", r.common.numMutations),
			attribute.String("path_type", r.pathType),
		),
	)
	defer span.End()

	start := time.Now()
	pool := NewWorkerPool(r.common.numThreads)
	numWorkers := pool.GetNumWorkers()
	rngs := make([]*core.Random, numWorkers)
	films := make([]core.Film, numWorkers)
	counters := make([]bdptCounters, numWorkers)
	for i := range rngs {
		rngs[i] = core.NewRandom(rng.NextUInt())
		films[i] = film.Clone()
	}

	logger.Info("rendering")
	n := r.common.numVertices
	err := pool.Run(ctx, r.common.numMutations, func(ctx context.Context, task Task) error {
		rng := rngs[task.WorkerID]
		f := films[task.WorkerID]
		c := &counters[task.WorkerID]
		var light, eye path.Subpath
		p := &path.Path{}
		for i := task.Begin; i < task.End; i++ {
			if err := canceled(ctx, i-task.Begin); err != nil {
				return err
			}
			light.Clear()
			eye.Clear()
			light.SampleSubpathFromEndpoint(scene, rng, core.LE, n)
			eye.SampleSubpathFromEndpoint(scene, rng, core.EL, n)

			for s := 0; s <= n; s++ {
				t := n - s
				if s > len(light.Vertices) || t > len(eye.Vertices) {
					continue
				}
				if !p.ConnectSubpaths(scene, &light, &eye, s, t) {
					continue
				}
				c.connections++
				if !r.filter.Match(p) {
					continue
				}
				contrib := p.EvaluateUnweightContribution(scene, s)
				if contrib.IsBlack() {
					continue
				}
				w := p.EvaluateMISWeight(scene, s)
				if w == 0 {
					continue
				}
				raster, ok := p.RasterPosition()
				if !ok {
					continue
				}
				f.Splat(raster, contrib.Multiply(w))
				c.splats++
			}
		}
		return nil
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	diag := &Diagnostics{
		Renderer:   "bdptfixed",
		NumWorkers: numWorkers,
		Iterations: r.common.numMutations,
	}
	for _, c := range counters {
		diag.Connections += c.connections
		diag.Splats += c.splats
	}

	if err := gatherFilms(film, films, r.common.numMutations); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	diag.Elapsed = time.Since(start)
	span.SetAttributes(attribute.Int64("splats", diag.Splats))
	return diag, nil
}
