package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/terrasmith/terrasmith/pkg/registry"
)

// typesCommand creates the types command.
func (c *CLI) typesCommand() *cobra.Command {
	var overrides string

	cmd := &cobra.Command{
		Use:   "types [name]",
		Short: "Inspect the node type catalog",
		Long: `Types lists every node type the catalog knows, or shows the full schema
of one type: properties with defaults and ranges, ports, and the
emission class that governs how many properties a build writes out.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := loadRegistry(overrides)
			if err != nil {
				return err
			}

			if len(args) == 0 {
				for _, name := range reg.Names() {
					def, err := reg.Definition(name)
					if err != nil {
						continue
					}
					printKeyValue(name, fmt.Sprintf("%s, %d properties, %d ports",
						def.Class, len(def.Properties), len(def.Ports)))
				}
				printNextStep("Show one type in full", appName+" types Mountain")
				return nil
			}

			def, err := reg.Definition(args[0])
			if err != nil {
				return err
			}
			printTypeDefinition(def)
			return nil
		},
	}

	cmd.Flags().StringVar(&overrides, "overrides", "", "TOML file with node type catalog overrides")

	return cmd
}

// printTypeDefinition shows one catalog entry in full.
func printTypeDefinition(def *registry.NodeTypeDefinition) {
	fmt.Println(StyleTitle.Render(def.Name))
	printKeyValue("type", def.TypeString)
	printKeyValue("class", def.Class.String())
	if len(def.Essentials) > 0 {
		printKeyValue("essentials", strings.Join(def.Essentials, ", "))
	}
	if def.FragileWhenEmpty {
		printKeyValue("fragile", "defaults synthesized in smart mode")
	}
	if def.EmbedsSaveDefinition {
		printKeyValue("export", "embeds a save definition")
	}

	fmt.Println()
	fmt.Println(StyleDim.Render("properties"))
	for _, p := range def.Properties {
		detail := p.Kind.String()
		switch {
		case len(p.Enum) > 0:
			detail += " (" + strings.Join(p.Enum, ", ") + ")"
		case p.Min != 0 || p.Max != 0:
			detail += fmt.Sprintf(" [%g, %g]", p.Min, p.Max)
		}
		if p.Default != nil {
			detail += fmt.Sprintf(", default %v", p.Default)
		}
		name := p.Key
		if p.Display != "" {
			name = fmt.Sprintf("%s (%q)", p.Key, p.Display)
		}
		printDetail("%-24s %s", name, detail)
	}

	fmt.Println()
	fmt.Println(StyleDim.Render("ports"))
	for _, p := range def.Ports {
		detail := p.Dir.String()
		if p.Required {
			detail += ", required"
		}
		printDetail("%-24s %s", p.Name, detail)
	}
}
