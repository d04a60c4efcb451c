package render

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/schreier/pkg/group"
	"github.com/matzehuels/schreier/pkg/perm"
)

// Options configures DOT generation.
type Options struct {
	// ShowFixedPoints includes points the permutation fixes as isolated
	// grey nodes. When false, only moved points appear.
	ShowFixedPoints bool
}

// CycleDOT converts a permutation to Graphviz DOT format. Each cycle
// becomes a directed ring; point p has an edge to its image. The resulting
// DOT string can be rendered with [RenderSVG].
func CycleDOT(p perm.Permutation, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph permutation {\n")
	buf.WriteString("  layout=circo;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=circle, style=filled, fillcolor=white, fontsize=18];\n")
	buf.WriteString("\n")

	for _, cycle := range p.Cycles() {
		if len(cycle) == 1 {
			if opts.ShowFixedPoints {
				fmt.Fprintf(&buf, "  %d [fillcolor=lightgrey];\n", cycle[0])
			}
			continue
		}
		for _, point := range cycle {
			fmt.Fprintf(&buf, "  %d;\n", point)
		}
		for i, point := range cycle {
			fmt.Fprintf(&buf, "  %d -> %d;\n", point, cycle[(i+1)%len(cycle)])
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

// OrbitDOT renders the orbit of point under gens as a labeled action graph:
// nodes are the orbit points, and an edge p -> q labeled k records that
// generator k maps p to q. Self-loops (fixed orbit points) are omitted.
func OrbitDOT(degree, point int, gens []perm.Permutation) (string, error) {
	vec, err := group.Orbit(degree, point, gens)
	if err != nil {
		return "", err
	}
	sv := vec.Points()

	var buf bytes.Buffer
	buf.WriteString("digraph orbit {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=circle, style=filled, fillcolor=white, fontsize=18];\n")
	buf.WriteString("  edge [fontsize=12];\n")
	buf.WriteString("\n")

	fmt.Fprintf(&buf, "  %d [fillcolor=lightblue];\n", point)
	for _, p := range sv {
		if p != point {
			fmt.Fprintf(&buf, "  %d;\n", p)
		}
	}

	buf.WriteString("\n")
	for _, p := range sv {
		for k, g := range gens {
			q := g.Image(p)
			if q == p {
				continue
			}
			fmt.Fprintf(&buf, "  %d -> %d [label=\"g%d\"];\n", p, q, k)
		}
	}

	buf.WriteString("}\n")
	return buf.String(), nil
}
