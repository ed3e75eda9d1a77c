package cli

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/terrasmith/terrasmith/pkg/template"
)

// templatesCommand creates the templates command.
func (c *CLI) templatesCommand() *cobra.Command {
	var (
		pick bool
		out  string
	)

	cmd := &cobra.Command{
		Use:   "templates",
		Short: "List shipped templates, or pick one to build",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !pick {
				for _, name := range template.Names() {
					t, err := template.Get(name)
					if err != nil {
						return err
					}
					printKeyValue(name, t.Description)
					printDetail("%d nodes, %d connections", len(t.Nodes), len(t.Connections))
				}
				printNextStep("Build one", appName+" build --template <name>")
				return nil
			}

			model := newTemplateListModel()
			final, err := tea.NewProgram(model).Run()
			if err != nil {
				return fmt.Errorf("run template picker: %w", err)
			}
			selected := final.(templateListModel).Selected
			if selected == "" {
				printInfo("No template selected")
				return nil
			}

			flags := &buildFlags{template: selected, out: out}
			opts, err := flags.options("")
			if err != nil {
				return err
			}

			runner, err := c.newRunner(false)
			if err != nil {
				return err
			}
			defer runner.Close()

			result, err := runner.Execute(cmd.Context(), opts)
			if err != nil {
				return err
			}

			target := flags.outputPath("")
			if err := os.WriteFile(target, result.Document, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", target, err)
			}
			printSuccess("Project written")
			printFile(target)
			printStats(result.Stats.NodeCount, result.Stats.EdgeCount, result.CacheHit)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&pick, "pick", "p", false, "pick a template interactively and build it")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output path when building a picked template")

	return cmd
}
