package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/terrasmith/terrasmith/pkg/registry"
	"github.com/terrasmith/terrasmith/pkg/terrain"
)

// checkCommand creates the check command.
func (c *CLI) checkCommand() *cobra.Command {
	var (
		repair    bool
		out       string
		overrides string
	)

	cmd := &cobra.Command{
		Use:   "check <project file>",
		Short: "Validate an existing project file",
		Long: `Check re-parses a project file and reports every structural defect:
identity collisions, dangling references, missing connection records,
unknown property keys, and malformed collection placeholders.

With --repair, a single repair pass runs and the corrected file is written
back (or to --out). Defects the repair pass cannot fix are reported and
the command fails.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]

			reg, err := loadRegistry(overrides)
			if err != nil {
				return err
			}

			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("read %s: %w", path, err)
			}
			doc, err := terrain.ParseDocument(data)
			if err != nil {
				return err
			}

			defects := terrain.Check(doc, reg)
			if len(defects) == 0 {
				printSuccess("No structural defects")
				return nil
			}

			printWarning("%d structural defects", len(defects))
			for _, d := range defects {
				printDetail("%s", d)
			}

			if !repair {
				printNextStep("Attempt an automatic repair", appName+" check --repair "+path)
				return fmt.Errorf("%d structural defects", len(defects))
			}

			repaired, remaining := terrain.Repair(doc, defects, reg)
			if len(remaining) > 0 {
				printError("%d defects remain after repair", len(remaining))
				for _, d := range remaining {
					printDetail("%s", d)
				}
				return fmt.Errorf("%d defects remain after repair", len(remaining))
			}

			target := out
			if target == "" {
				target = path
			}
			fixed, err := repaired.Bytes()
			if err != nil {
				return err
			}
			if err := os.WriteFile(target, fixed, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", target, err)
			}

			printSuccess("Repaired")
			printFile(target)
			return nil
		},
	}

	cmd.Flags().BoolVar(&repair, "repair", false, "attempt an automatic repair pass")
	cmd.Flags().StringVarP(&out, "out", "o", "", "write the repaired file here instead of in place")
	cmd.Flags().StringVar(&overrides, "overrides", "", "TOML file with node type catalog overrides")

	return cmd
}

// loadRegistry returns the builtin catalog, overlaid from a TOML file when
// one is given.
func loadRegistry(path string) (*registry.Registry, error) {
	reg := registry.Builtin()
	if path == "" {
		return reg, nil
	}

	ov, err := registry.LoadOverrides(path)
	if err != nil {
		return nil, err
	}
	if err := reg.ApplyOverrides(ov); err != nil {
		return nil, err
	}
	return reg, nil
}
