package path

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/df07/go-light-transport/pkg/core"
)

// Path is a full light transport path. Vertex 0 lies on a light and the last vertex
// is the sensor. A path with n vertices can be generated by n+1 sampling strategies,
// indexed by the number s of vertices taken from the light subpath (t = n - s).
type Path struct {
	Vertices []PathVertex
}

// Len returns the number of vertices
func (p *Path) Len() int {
	return len(p.Vertices)
}

// Clone returns a copy that does not share vertex storage
func (p *Path) Clone() *Path {
	c := &Path{Vertices: make([]PathVertex, len(p.Vertices))}
	copy(c.Vertices, p.Vertices)
	return c
}

// ConnectSubpaths builds the path from the first s vertices of the light subpath and the
// first t vertices of the eye subpath, reversed. With s == 0 the eye subpath must end on an
// emitter; with t == 0 the light subpath must end on a sensor. Otherwise both connection
// vertices must be connectable and mutually visible. On failure the path is left empty.
func (p *Path) ConnectSubpaths(scene core.Scene, light, eye *Subpath, s, t int) bool {
	p.Vertices = p.Vertices[:0]
	if s < 0 || t < 0 || s+t < 2 || s > len(light.Vertices) || t > len(eye.Vertices) {
		return false
	}

	switch {
	case s == 0:
		last := eye.Vertices[t-1]
		if last.Primitive.Type()&core.Emitter == 0 || last.Primitive.IsDeltaPosition() {
			return false
		}
		last.Type = core.Emitter
		p.Vertices = append(p.Vertices, last)
		for i := t - 2; i >= 0; i-- {
			p.Vertices = append(p.Vertices, eye.Vertices[i])
		}

	case t == 0:
		last := light.Vertices[s-1]
		if last.Primitive.Type()&core.Sensor == 0 || last.Primitive.IsDeltaPosition() {
			return false
		}
		p.Vertices = append(p.Vertices, light.Vertices[:s-1]...)
		last.Type = core.Sensor
		p.Vertices = append(p.Vertices, last)

	default:
		vL := light.Vertices[s-1]
		vE := eye.Vertices[t-1]
		if !vL.canScatter() || !vE.canScatter() {
			return false
		}
		if vL.isDeltaDirection() || vE.isDeltaDirection() {
			return false
		}
		if !scene.Visible(vL.Geom.P, vE.Geom.P) {
			return false
		}
		p.Vertices = append(p.Vertices, light.Vertices[:s]...)
		for i := t - 1; i >= 0; i-- {
			p.Vertices = append(p.Vertices, eye.Vertices[i])
		}
	}
	return true
}

// directionalF evaluates the directional component at vertex i. Scattering vertices use
// the direction toward the light-side neighbour as wi and toward the eye-side one as wo.
func (p *Path) directionalF(i int, evalDelta bool) core.Vec3 {
	n := len(p.Vertices)
	v := p.Vertices[i]
	switch i {
	case 0:
		return v.Primitive.EvaluateDirection(v.Geom, core.Vec3{}, direction(v, p.Vertices[1]), core.LE, evalDelta)
	case n - 1:
		return v.Primitive.EvaluateDirection(v.Geom, core.Vec3{}, direction(v, p.Vertices[n-2]), core.EL, evalDelta)
	}
	wi := direction(v, p.Vertices[i-1])
	wo := direction(v, p.Vertices[i+1])
	return v.Primitive.EvaluateDirection(v.Geom, wi, wo, core.LE, evalDelta)
}

// directionPDF is the density of sampling the neighbour of vertex i that follows it in dir
func (p *Path) directionPDF(i int, dir core.TransportDirection, evalDelta bool) float64 {
	n := len(p.Vertices)
	v := p.Vertices[i]
	if dir == core.LE {
		if i == 0 {
			return v.Primitive.EvaluateDirectionPDF(v.Geom, core.Vec3{}, direction(v, p.Vertices[1]), evalDelta)
		}
		return v.Primitive.EvaluateDirectionPDF(v.Geom, direction(v, p.Vertices[i-1]), direction(v, p.Vertices[i+1]), evalDelta)
	}
	if i == n-1 {
		return v.Primitive.EvaluateDirectionPDF(v.Geom, core.Vec3{}, direction(v, p.Vertices[n-2]), evalDelta)
	}
	return v.Primitive.EvaluateDirectionPDF(v.Geom, direction(v, p.Vertices[i+1]), direction(v, p.Vertices[i-1]), evalDelta)
}

// EvaluateF returns the measurement contribution as seen by strategy s. Delta components
// at the two connection vertices evaluate to zero, so a path that strategy s cannot
// generate returns black. EvaluateF(0) is the full contribution of the path.
func (p *Path) EvaluateF(s int) core.Vec3 {
	n := len(p.Vertices)
	t := n - s
	if n < 2 || s < 0 || t < 0 {
		return core.Vec3{}
	}

	v0 := p.Vertices[0]
	vn := p.Vertices[n-1]
	f := v0.Primitive.EvaluatePosition(v0.Geom, s > 0).
		MultiplyVec(vn.Primitive.EvaluatePosition(vn.Geom, t > 0))
	if f.IsBlack() {
		return core.Vec3{}
	}

	for i := 0; i < n; i++ {
		evalDelta := i != s-1 && i != s
		f = f.MultiplyVec(p.directionalF(i, evalDelta))
		if f.IsBlack() {
			return core.Vec3{}
		}
	}
	for i := 0; i < n-1; i++ {
		f = f.Multiply(geometryTerm(p.Vertices[i], p.Vertices[i+1]))
	}
	return f
}

// EvaluateCst returns the connection term of strategy s: emission at vertex 0 for s == 0,
// importance at the sensor for t == 0, and f·G·f across the connecting edge otherwise.
func (p *Path) EvaluateCst(s int) core.Vec3 {
	n := len(p.Vertices)
	t := n - s
	if n < 2 || s < 0 || t < 0 {
		return core.Vec3{}
	}
	switch {
	case s == 0:
		v := p.Vertices[0]
		return v.Primitive.EvaluatePosition(v.Geom, false).MultiplyVec(p.directionalF(0, false))
	case t == 0:
		v := p.Vertices[n-1]
		return v.Primitive.EvaluatePosition(v.Geom, false).MultiplyVec(p.directionalF(n-1, false))
	}
	fL := p.directionalF(s-1, false)
	if fL.IsBlack() {
		return core.Vec3{}
	}
	fE := p.directionalF(s, false)
	if fE.IsBlack() {
		return core.Vec3{}
	}
	g := geometryTerm(p.Vertices[s-1], p.Vertices[s])
	return fL.MultiplyVec(fE).Multiply(g)
}

// EvaluatePathPDF returns the area-measure density of generating the path with strategy s
func (p *Path) EvaluatePathPDF(scene core.Scene, s int) float64 {
	n := len(p.Vertices)
	t := n - s
	if n < 2 || s < 0 || t < 0 {
		return 0
	}

	pdf := 1.0
	if s > 0 {
		v0 := p.Vertices[0]
		pdf *= scene.EvaluateEmitterPDF(core.LE, v0.Primitive) * v0.Primitive.EvaluatePositionPDF(v0.Geom, true)
		for i := 0; i <= s-2; i++ {
			pdf *= p.directionPDF(i, core.LE, true) * geometryTerm(p.Vertices[i], p.Vertices[i+1])
		}
	}
	if pdf == 0 {
		return 0
	}
	if t > 0 {
		vn := p.Vertices[n-1]
		pdf *= scene.EvaluateEmitterPDF(core.EL, vn.Primitive) * vn.Primitive.EvaluatePositionPDF(vn.Geom, true)
		for j := n - 1; j >= s+1; j-- {
			pdf *= p.directionPDF(j, core.EL, true) * geometryTerm(p.Vertices[j], p.Vertices[j-1])
		}
	}
	return pdf
}

// EvaluateUnweightContribution returns EvaluateF(s) / EvaluatePathPDF(s) computed as the
// product of subpath throughputs and the connection term, so geometry terms cancel.
func (p *Path) EvaluateUnweightContribution(scene core.Scene, s int) core.Vec3 {
	n := len(p.Vertices)
	t := n - s
	if n < 2 || s < 0 || t < 0 {
		return core.Vec3{}
	}

	alphaL := core.NewVec3(1, 1, 1)
	if s > 0 {
		v0 := p.Vertices[0]
		pdf := scene.EvaluateEmitterPDF(core.LE, v0.Primitive) * v0.Primitive.EvaluatePositionPDF(v0.Geom, true)
		if pdf == 0 {
			return core.Vec3{}
		}
		alphaL = v0.Primitive.EvaluatePosition(v0.Geom, true).Multiply(1 / pdf)
		for i := 0; i <= s-2; i++ {
			pdfDir := p.directionPDF(i, core.LE, true)
			if pdfDir == 0 {
				return core.Vec3{}
			}
			alphaL = alphaL.MultiplyVec(p.directionalF(i, true)).Multiply(1 / pdfDir)
		}
	}
	if alphaL.IsBlack() {
		return core.Vec3{}
	}

	alphaE := core.NewVec3(1, 1, 1)
	if t > 0 {
		vn := p.Vertices[n-1]
		pdf := scene.EvaluateEmitterPDF(core.EL, vn.Primitive) * vn.Primitive.EvaluatePositionPDF(vn.Geom, true)
		if pdf == 0 {
			return core.Vec3{}
		}
		alphaE = vn.Primitive.EvaluatePosition(vn.Geom, true).Multiply(1 / pdf)
		for j := n - 1; j >= s+1; j-- {
			pdfDir := p.directionPDF(j, core.EL, true)
			if pdfDir == 0 {
				return core.Vec3{}
			}
			alphaE = alphaE.MultiplyVec(p.directionalF(j, true)).Multiply(1 / pdfDir)
		}
	}
	if alphaE.IsBlack() {
		return core.Vec3{}
	}

	return alphaL.MultiplyVec(p.EvaluateCst(s)).MultiplyVec(alphaE)
}

// canSplit reports whether strategy s could have generated the path
func (p *Path) canSplit(s int) bool {
	n := len(p.Vertices)
	t := n - s
	switch {
	case s == 0:
		v := p.Vertices[0]
		return !v.Primitive.IsDeltaPosition() && !v.isDeltaDirection()
	case t == 0:
		v := p.Vertices[n-1]
		return !v.Primitive.IsDeltaPosition() && !v.isDeltaDirection()
	}
	return !p.Vertices[s-1].isDeltaDirection() && !p.Vertices[s].isDeltaDirection()
}

// EvaluateMISWeight returns the balance heuristic weight of strategy s among all
// strategies that could have generated the path. The weights of the valid strategies
// sum to one.
func (p *Path) EvaluateMISWeight(scene core.Scene, s int) float64 {
	n := len(p.Vertices)
	if n < 2 || s < 0 || s > n || !p.canSplit(s) {
		return 0
	}
	ps := p.EvaluatePathPDF(scene, s)
	if ps == 0 {
		return 0
	}

	invWeight := 0.0
	for i := 0; i <= n; i++ {
		if !p.canSplit(i) {
			continue
		}
		pi := p.EvaluatePathPDF(scene, i)
		invWeight += pi / ps
	}
	if invWeight == 0 {
		return 0
	}
	return 1 / invWeight
}

// RasterPosition returns the image position the path reaches through the sensor
func (p *Path) RasterPosition() (core.Vec2, bool) {
	n := len(p.Vertices)
	if n < 2 {
		return core.Vec2{}, false
	}
	v := p.Vertices[n-1]
	return v.Primitive.RasterPosition(direction(v, p.Vertices[n-2]), v.Geom)
}

// TypeString returns the path in Heckbert notation, for example "LDSE"
func (p *Path) TypeString() string {
	var sb strings.Builder
	n := len(p.Vertices)
	for i, v := range p.Vertices {
		switch i {
		case 0:
			sb.WriteByte('L')
		case n - 1:
			sb.WriteByte('E')
		default:
			sb.WriteString((v.Type & core.BSDF).String())
		}
	}
	return sb.String()
}

// IsPathType reports whether the path matches a regular expression over Heckbert
// notation, anchored at both ends. An empty pattern matches every path.
func (p *Path) IsPathType(pattern string) bool {
	if pattern == "" {
		return true
	}
	filter, err := NewTypeFilter(pattern)
	if err != nil {
		return false
	}
	return filter.Match(p)
}

// TypeFilter is a compiled IsPathType pattern
type TypeFilter struct {
	re *regexp.Regexp
}

// NewTypeFilter compiles a path type pattern. An empty pattern matches every path.
func NewTypeFilter(pattern string) (*TypeFilter, error) {
	if pattern == "" {
		return &TypeFilter{}, nil
	}
	re, err := regexp.Compile("^(?:" + pattern + ")$")
	if err != nil {
		return nil, fmt.Errorf("invalid path type %q: %w", pattern, err)
	}
	return &TypeFilter{re: re}, nil
}

// Match reports whether p matches the filter
func (f *TypeFilter) Match(p *Path) bool {
	if f == nil || f.re == nil {
		return true
	}
	return f.re.MatchString(p.TypeString())
}

func (p *Path) String() string {
	var sb strings.Builder
	sb.WriteString(p.TypeString())
	for _, v := range p.Vertices {
		sb.WriteString(" ")
		sb.WriteString(v.Geom.P.String())
	}
	return sb.String()
}
