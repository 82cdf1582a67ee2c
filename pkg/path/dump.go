package path

import (
	"bufio"
	"fmt"
	"io"
)

// WritePositions writes one line per path with the vertex positions, light first
func WritePositions(w io.Writer, paths []*Path) error {
	lines := make([][]PathVertex, len(paths))
	for i, p := range paths {
		lines[i] = p.Vertices
	}
	return writeVertexLines(w, lines)
}

// WriteSubpathPositions writes one line per subpath with the vertex positions,
// starting at the endpoint the subpath was grown from
func WriteSubpathPositions(w io.Writer, subpaths []*Subpath) error {
	lines := make([][]PathVertex, len(subpaths))
	for i, sp := range subpaths {
		lines[i] = sp.Vertices
	}
	return writeVertexLines(w, lines)
}

func writeVertexLines(w io.Writer, lines [][]PathVertex) error {
	bw := bufio.NewWriter(w)
	for _, vertices := range lines {
		for i, v := range vertices {
			if i > 0 {
				if err := bw.WriteByte(' '); err != nil {
					return err
				}
			}
			if _, err := fmt.Fprintf(bw, "%.10f %.10f %.10f", v.Geom.P.X, v.Geom.P.Y, v.Geom.P.Z); err != nil {
				return err
			}
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}
