// Package nodelink renders the resolved entity graph as a node-link diagram.
//
// The renderer is a consumer of the entity graph: nodes are entities (filled
// with their application's color, tooltip carrying the resolved link when one
// exists) and edges are references. DOT output is deterministic, following
// file order for both nodes and edges.
package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/goccy/go-graphviz"

	"github.com/fortuna-events/crosslink/pkg/entity"
	"github.com/fortuna-events/crosslink/pkg/errors"
)

// ToDOT converts the entity graph to Graphviz DOT format.
// The resulting DOT string can be rendered with [WritePNG].
func ToDOT(g *entity.Graph) string {
	var buf bytes.Buffer
	buf.WriteString("digraph preview {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"white\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("\n")

	for _, e := range g.Entities() {
		fmt.Fprintf(&buf, "  %q [label=%q, fillcolor=%q", e.ID, e.ID, e.App.Color())
		if e.Link != "" {
			fmt.Fprintf(&buf, ", tooltip=%q", e.Link)
		}
		buf.WriteString("];\n")
	}

	buf.WriteString("\n")
	for _, e := range g.Entities() {
		for _, ref := range e.Refs {
			fmt.Fprintf(&buf, "  %q -> %q;\n", e.ID, ref)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

// RenderPNG renders a DOT graph to PNG bytes using Graphviz.
func RenderPNG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.PNG, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "render PNG")
	}
	return buf.Bytes(), nil
}

// WritePNG renders the entity graph and writes the PNG to path.
func WritePNG(ctx context.Context, g *entity.Graph, path string) error {
	png, err := RenderPNG(ctx, ToDOT(g))
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, png, 0644); err != nil {
		return errors.Wrap(errors.ErrCodeRenderFailed, err, "write %s", path)
	}
	return nil
}
