// Package preview renders a built graph for human inspection.
//
// The editor's own canvas is the real view; this is the quick look the CLI
// and the API offer without launching it. DOT output is deterministic and
// diff-friendly, SVG goes through Graphviz.
package preview

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/terrasmith/terrasmith/pkg/graph"
)

// Options configures preview rendering.
type Options struct {
	// Detailed includes resolved property values in node labels.
	// When false, only the node type and id are shown.
	Detailed bool
}

// ToDOT converts a built graph to Graphviz DOT format. The resulting
// string can be rendered with [RenderSVG].
//
// Generator nodes are filled to stand out as graph roots; export nodes get
// a double border as the build targets.
func ToDOT(g *graph.Graph, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph terrain {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.6;\n")
	buf.WriteString("  nodesep=0.4;\n")
	buf.WriteString("\n")

	for _, n := range g.Nodes() {
		label := fmtLabel(n, opts.Detailed)
		attrs := fmtAttrs(n, label)
		fmt.Fprintf(&buf, "  %q [%s];\n", fmt.Sprint(n.ID), strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, c := range g.Connections() {
		edge := fmt.Sprintf("  %q -> %q", fmt.Sprint(c.FromNode), fmt.Sprint(c.ToNode))
		if c.FromPort != "Out" || c.ToPort != "In" {
			edge += fmt.Sprintf(" [label=%q]", c.FromPort+" to "+c.ToPort)
		}
		buf.WriteString(edge + ";\n")
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(n *graph.Node, detailed bool) string {
	label := fmt.Sprintf("%s (%d)", n.Type.Name, n.ID)
	if !detailed || len(n.Properties) == 0 {
		return label
	}

	parts := []string{label}
	for _, p := range n.Type.Properties {
		if v, ok := n.Properties[p.Key]; ok {
			parts = append(parts, fmt.Sprintf("%s: %v", p.Key, v))
		}
	}
	return strings.Join(parts, "\n")
}

func fmtAttrs(n *graph.Node, label string) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	switch {
	case len(n.Type.Ports) > 0 && n.Type.Ports[0].Name == "Out":
		// No input ports: a generator, the root of the flow.
		attrs = append(attrs, "fillcolor=lightblue")
	case n.Type.EmbedsSaveDefinition:
		attrs = append(attrs, "peripheries=2")
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
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
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
