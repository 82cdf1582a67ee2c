package renderer

import (
	"time"

	"github.com/df07/go-light-transport/pkg/mlt"
	"github.com/df07/go-light-transport/pkg/path"
)

// Diagnostics describes a finished render
type Diagnostics struct {
	Renderer      string        // Renderer type
	NumWorkers    int           // Number of parallel workers
	Iterations    int64         // Mutations or BDPT samples
	Normalization float64       // Normalization factor b (MLT only)
	Elapsed       time.Duration // Wall time of the render
	Chains        mlt.ChainStats
	Connections   int64        // Successful subpath connections (BDPT only)
	Splats        int64        // Contributions splatted to the film
	Paths         []*path.Path // Recorded states of the first chain
}

// SplatsPerSecond returns the splat throughput of the render
func (d *Diagnostics) SplatsPerSecond() float64 {
	if d.Elapsed <= 0 {
		return 0
	}
	return float64(d.Splats) / d.Elapsed.Seconds()
}
