package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/terrasmith/terrasmith/pkg/blueprint"
	"github.com/terrasmith/terrasmith/pkg/external"
	"github.com/terrasmith/terrasmith/pkg/pipeline"
)

// buildFlags holds the flags shared by build and watch.
type buildFlags struct {
	template   string
	out        string
	title      string
	mode       string
	resolution int
	seed       uint64
	appPath    string
	noCache    bool
	refresh    bool
}

func (f *buildFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.template, "template", "t", "", "build a shipped template instead of a blueprint file")
	cmd.Flags().StringVarP(&f.out, "out", "o", "", "output path (default: derived from the input)")
	cmd.Flags().StringVar(&f.title, "title", "", "project title")
	cmd.Flags().StringVarP(&f.mode, "mode", "m", "", "property emission mode: smart, minimal, or full")
	cmd.Flags().IntVar(&f.resolution, "resolution", 0, "build resolution")
	cmd.Flags().Uint64Var(&f.seed, "seed", 0, "seed for generated node ids")
	cmd.Flags().StringVar(&f.appPath, "app", "", "editor binary for external validation")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable the build cache")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "rebuild even if the result is cached")
}

// options assembles pipeline options from the flags and an optional
// blueprint path.
func (f *buildFlags) options(path string) (pipeline.Options, error) {
	opts := pipeline.Options{
		Template:   f.template,
		Title:      f.title,
		Mode:       f.mode,
		Resolution: f.resolution,
		Seed:       f.seed,
		Refresh:    f.refresh,
		AppPath:    f.appPath,
	}

	if path != "" {
		bp, err := blueprint.Load(path)
		if err != nil {
			return opts, err
		}
		opts.Nodes = bp.Nodes
		opts.Connections = bp.Connections
		if opts.Title == "" {
			opts.Title = bp.Title
		}
		if opts.Mode == "" {
			opts.Mode = bp.Mode
		}
		if opts.Resolution == 0 {
			opts.Resolution = bp.Resolution
		}
		if bp.Description != "" {
			opts.Description = bp.Description
		}
	}
	return opts, nil
}

// outputPath derives the output file from the flags and input.
func (f *buildFlags) outputPath(input string) string {
	if f.out != "" {
		return f.out
	}
	if f.template != "" {
		return f.template + ".terrain"
	}
	base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	return base + ".terrain"
}

// buildCommand creates the build command.
func (c *CLI) buildCommand() *cobra.Command {
	flags := &buildFlags{}

	cmd := &cobra.Command{
		Use:   "build [blueprint]",
		Short: "Build a terrain project file from a blueprint or template",
		Long: `Build constructs the node graph, resolves properties, validates it, and
writes a project file the editor can open.

The graph definition comes from a blueprint file (.hcl or .json) or from a
shipped template via --template.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := ""
			if len(args) > 0 {
				input = args[0]
			}
			if input == "" && flags.template == "" {
				return fmt.Errorf("give a blueprint file or --template")
			}

			opts, err := flags.options(input)
			if err != nil {
				return err
			}

			runner, err := c.newRunner(flags.noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			prog := newProgress(c.Logger)
			spinner := newSpinnerWithContext(cmd.Context(), "building project")
			spinner.Start()

			result, err := runner.Execute(cmd.Context(), opts)
			spinner.Stop()
			if err != nil {
				printError("build failed")
				if result != nil {
					for _, d := range result.ConnectionDefects {
						printDetail("%s", d.Message)
					}
					for _, d := range result.Defects {
						printDetail("%s", d)
					}
				}
				return err
			}
			prog.done(fmt.Sprintf("Built %s", opts.Title))

			out := flags.outputPath(input)
			if err := os.WriteFile(out, result.Document, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", out, err)
			}

			printSuccess("Project written")
			printFile(out)
			printStats(result.Stats.NodeCount, result.Stats.EdgeCount, result.CacheHit)
			if result.Repaired {
				printWarning("document needed a repair pass")
			}
			if result.External != nil {
				switch result.External.Verdict {
				case external.Opened:
					printDetail("editor verdict: opened")
				case external.Inconclusive:
					printWarning("editor verdict inconclusive")
				}
			}
			printNextStep("Validate it again later", appName+" check "+out)
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}
