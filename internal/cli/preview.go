package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/terrasmith/terrasmith/pkg/blueprint"
	"github.com/terrasmith/terrasmith/pkg/graph"
	"github.com/terrasmith/terrasmith/pkg/preview"
	"github.com/terrasmith/terrasmith/pkg/registry"
	"github.com/terrasmith/terrasmith/pkg/template"
)

// previewCommand creates the preview command.
func (c *CLI) previewCommand() *cobra.Command {
	var (
		tpl      string
		format   string
		out      string
		detailed bool
	)

	cmd := &cobra.Command{
		Use:   "preview [blueprint]",
		Short: "Render a graph as DOT or SVG without building a project",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			nodes, conns, name, err := previewInput(args, tpl)
			if err != nil {
				return err
			}

			g, err := graph.Build(registry.Builtin(), nodes, conns, graph.Options{})
			if err != nil {
				return err
			}
			if err := g.ResolveProperties(graph.ModeSmart); err != nil {
				return err
			}

			dot := preview.ToDOT(g, preview.Options{Detailed: detailed})

			var data []byte
			switch format {
			case "dot":
				data = []byte(dot)
			case "svg":
				data, err = preview.RenderSVG(cmd.Context(), dot)
				if err != nil {
					return err
				}
			default:
				return fmt.Errorf("unknown preview format %q (dot, svg)", format)
			}

			if out == "" {
				out = name + "." + format
			}
			if out == "-" {
				_, err := os.Stdout.Write(data)
				return err
			}
			if err := os.WriteFile(out, data, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", out, err)
			}

			printSuccess("Preview written")
			printFile(out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&tpl, "template", "t", "", "preview a shipped template")
	cmd.Flags().StringVarP(&format, "format", "f", "dot", "output format: dot or svg")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output path, or - for stdout")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "include resolved properties in node labels")

	return cmd
}

// previewInput resolves the graph definition for preview from either a
// blueprint argument or a template flag.
func previewInput(args []string, tpl string) ([]graph.NodeSpec, []graph.ConnectionSpec, string, error) {
	if tpl != "" {
		t, err := template.Get(tpl)
		if err != nil {
			return nil, nil, "", err
		}
		return t.Nodes, t.Connections, t.Name, nil
	}
	if len(args) == 0 {
		return nil, nil, "", fmt.Errorf("give a blueprint file or --template")
	}

	bp, err := blueprint.Load(args[0])
	if err != nil {
		return nil, nil, "", err
	}
	name := strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
	return bp.Nodes, bp.Connections, name, nil
}
