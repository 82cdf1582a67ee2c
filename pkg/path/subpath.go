package path

import "github.com/df07/go-light-transport/pkg/core"

// Unbounded walks start Russian roulette after this many vertices
const (
	rrDepth        = 3
	rrContinuation = 0.5
)

// Subpath is a sequence of vertices grown from a light (LE) or from the sensor (EL).
// Vertex 0 is the endpoint.
type Subpath struct {
	Dir      core.TransportDirection
	Vertices []PathVertex
}

// Clear empties the subpath, keeping its storage
func (sp *Subpath) Clear() {
	sp.Vertices = sp.Vertices[:0]
}

// Truncate keeps the first n vertices
func (sp *Subpath) Truncate(n int) {
	sp.Vertices = sp.Vertices[:n]
}

// SampleSubpathFromEndpoint grows the subpath by random walk. An empty subpath starts by
// sampling an endpoint in dir; otherwise the walk continues from the last vertex.
// At most maxVertices vertices are added; a negative maxVertices walks until Russian
// roulette, escape or a failed scattering ends it. It returns the number of vertices added,
// which may be less than requested.
//
// Samples are consumed in a fixed order: endpoint selection (1D) and position (2D),
// then for every vertex a 2D direction sample and a 1D component sample.
func (sp *Subpath) SampleSubpathFromEndpoint(scene core.Scene, sampler core.Sampler, dir core.TransportDirection, maxVertices int) int {
	added := 0
	if len(sp.Vertices) == 0 {
		if maxVertices == 0 {
			return 0
		}
		sp.Dir = dir
		prim := scene.SampleEmitter(dir, sampler.Get1D())
		u := sampler.Get2D()
		if prim == nil {
			return 0
		}
		geom, ok := prim.SamplePosition(u)
		if !ok {
			return 0
		}
		typ := core.Emitter
		if dir == core.EL {
			typ = core.Sensor
		}
		sp.Vertices = append(sp.Vertices, PathVertex{Type: typ, Geom: geom, Primitive: prim})
		added++
	}

	remaining := -1
	if maxVertices >= 0 {
		remaining = maxVertices - added
	}
	return added + TraceSubpathFromEndpoint(scene, sampler, sp, remaining, nil)
}

// TraceSubpathFromEndpoint extends a non-empty subpath by up to maxVertices vertices
// (unbounded with Russian roulette when negative). The callback sees every new vertex
// with the resulting subpath length and stops the walk by returning false.
// It returns the number of vertices added.
func TraceSubpathFromEndpoint(scene core.Scene, sampler core.Sampler, sp *Subpath, maxVertices int, callback func(numVertices int, v PathVertex) bool) int {
	count := 0
	for maxVertices < 0 || count < maxVertices {
		n := len(sp.Vertices)
		if n == 0 {
			break
		}
		v := sp.Vertices[n-1]
		if !v.canScatter() {
			break
		}

		if maxVertices < 0 && n >= rrDepth && sampler.Get1D() > rrContinuation {
			break
		}

		var wi core.Vec3
		if n >= 2 {
			wi = direction(v, sp.Vertices[n-2])
		}
		u := sampler.Get2D()
		uComp := sampler.Get1D()
		wo, ok := v.Primitive.SampleDirection(u, uComp, v.Geom, wi)
		if !ok {
			break
		}

		hit, ok := scene.Intersect(core.NewRay(v.Geom.P, wo))
		if !ok {
			break
		}

		next := PathVertex{Type: hit.Primitive.Type() & core.BSDF, Geom: hit.Geom, Primitive: hit.Primitive}
		sp.Vertices = append(sp.Vertices, next)
		count++

		if callback != nil && !callback(len(sp.Vertices), next) {
			break
		}
	}
	return count
}
