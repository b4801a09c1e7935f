package render

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"

	"github.com/skylinelab/watertower/pkg/skyline"
	"github.com/skylinelab/watertower/pkg/skyline/reduce"
)

// ToDOT runs the reducer on the given heights and emits the reduction
// lineage in Graphviz DOT format: one node per building that ever existed
// (labelled with its original height) and one edge per rule application
// that removed or merged a building, labelled with the rule name. The
// surviving building, if any, is highlighted.
//
// This is a debugging view of the rewrite engine, not a picture of the
// skyline itself - use [SVG] for that.
func ToDOT(heights []int) (string, error) {
	s, err := skyline.FromHeights(heights...)
	if err != nil {
		return "", err
	}

	type edge struct {
		from, to int
		rule     string
	}
	var edges []edge
	raised := map[int]int{} // arena index -> final raised height

	water := reduce.ReduceTrace(s, func(st reduce.Step, _ *skyline.Skyline) {
		if st.Absorbed != skyline.None {
			edges = append(edges, edge{from: st.Absorbed, to: st.Index, rule: st.Rule})
		}
		if st.Rule == reduce.RuleLocalMin {
			raised[st.Index] = st.Height
		}
	})

	var buf bytes.Buffer
	buf.WriteString("digraph reduction {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white];\n")
	fmt.Fprintf(&buf, "  label=\"water = %d\";\n\n", water)

	for i, h := range heights {
		label := fmt.Sprintf("#%d h=%d", i, h)
		if r, ok := raised[i]; ok && r != h {
			label += fmt.Sprintf("\\nraised to %d", r)
		}
		attrs := fmt.Sprintf("label=%q", label)
		if s.Len() == 1 && s.First() == i {
			attrs += ", fillcolor=lightblue"
		}
		fmt.Fprintf(&buf, "  n%d [%s];\n", i, attrs)
	}

	buf.WriteString("\n")
	for _, e := range edges {
		fmt.Fprintf(&buf, "  n%d -> n%d [label=%q];\n", e.from, e.to, e.rule)
	}

	buf.WriteString("}\n")
	return buf.String(), nil
}

// DOT renders a DOT graph to the given Graphviz format (SVG or PNG).
func DOT(dot string, format graphviz.Format) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}

// DOTSVG renders a DOT graph to SVG.
func DOTSVG(dot string) ([]byte, error) { return DOT(dot, graphviz.SVG) }

// DOTPNG renders a DOT graph to PNG.
func DOTPNG(dot string) ([]byte, error) { return DOT(dot, graphviz.PNG) }
