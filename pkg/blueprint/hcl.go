package blueprint

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/terrasmith/terrasmith/pkg/graph"
)

// hclFile is the top-level structure of a blueprint file for decoding.
type hclFile struct {
	Title       string        `hcl:"title,optional"`
	Description string        `hcl:"description,optional"`
	Mode        string        `hcl:"mode,optional"`
	Resolution  int           `hcl:"resolution,optional"`
	Nodes       []*hclNode    `hcl:"node,block"`
	Connections []*hclConnect `hcl:"connect,block"`
}

type hclNode struct {
	Label      string         `hcl:"label,label"`
	Type       string         `hcl:"type"`
	ID         int            `hcl:"id,optional"`
	Name       string         `hcl:"name,optional"`
	Position   []float64      `hcl:"position,optional"`
	Properties hcl.Expression `hcl:"properties,optional"`
	Save       *hclSave       `hcl:"save,block"`
}

type hclSave struct {
	Filename string `hcl:"filename"`
	Format   string `hcl:"format,optional"`
}

type hclConnect struct {
	From     string `hcl:"from"`
	FromPort string `hcl:"from_port,optional"`
	To       string `hcl:"to"`
	ToPort   string `hcl:"to_port,optional"`
}

// loadHCL parses one HCL blueprint file and resolves node labels to ids.
func loadHCL(path string) (*Blueprint, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("parse blueprint %s: %s", path, diags.Error())
	}

	var parsed hclFile
	if diags := gohcl.DecodeBody(file.Body, nil, &parsed); diags.HasErrors() {
		return nil, fmt.Errorf("decode blueprint %s: %s", path, diags.Error())
	}

	bp := &Blueprint{
		Title:       parsed.Title,
		Description: parsed.Description,
		Mode:        parsed.Mode,
		Resolution:  parsed.Resolution,
	}

	taken := make(map[int]bool, len(parsed.Nodes))
	for _, n := range parsed.Nodes {
		if n.ID != 0 {
			taken[n.ID] = true
		}
	}

	var seq idSequence
	labels := make(map[string]int, len(parsed.Nodes))
	for _, n := range parsed.Nodes {
		if _, exists := labels[n.Label]; exists {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateLabel, n.Label)
		}

		id := n.ID
		if id == 0 {
			id = seq.next(taken)
		}
		labels[n.Label] = id

		spec := graph.NodeSpec{
			ID:   id,
			Type: n.Type,
			Name: n.Name,
		}
		if len(n.Position) >= 2 {
			spec.X = n.Position[0]
			spec.Y = n.Position[1]
		}
		if n.Save != nil {
			spec.Save = &graph.SaveSpec{Filename: n.Save.Filename, Format: n.Save.Format}
		}

		props, err := decodeProperties(n.Properties)
		if err != nil {
			return nil, fmt.Errorf("node %q: %w", n.Label, err)
		}
		spec.Properties = props

		bp.Nodes = append(bp.Nodes, spec)
	}

	for _, c := range parsed.Connections {
		from, ok := labels[c.From]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownLabel, c.From)
		}
		to, ok := labels[c.To]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownLabel, c.To)
		}

		fromPort := c.FromPort
		if fromPort == "" {
			fromPort = "Out"
		}
		toPort := c.ToPort
		if toPort == "" {
			toPort = "In"
		}

		bp.Connections = append(bp.Connections, graph.ConnectionSpec{
			From: from, FromPort: fromPort,
			To: to, ToPort: toPort,
		})
	}

	return bp, nil
}

// decodeProperties evaluates the properties expression into plain Go
// values the resolver understands.
func decodeProperties(expr hcl.Expression) (map[string]any, error) {
	if expr == nil {
		return nil, nil
	}

	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return nil, fmt.Errorf("evaluate properties: %s", diags.Error())
	}
	if val.IsNull() {
		return nil, nil
	}
	if !val.Type().IsObjectType() && !val.Type().IsMapType() {
		return nil, fmt.Errorf("properties must be an object, got %s", val.Type().FriendlyName())
	}

	out := make(map[string]any)
	for key, v := range val.AsValueMap() {
		converted, err := ctyToGo(v)
		if err != nil {
			return nil, fmt.Errorf("property %q: %w", key, err)
		}
		out[key] = converted
	}
	return out, nil
}

func ctyToGo(v cty.Value) (any, error) {
	if v.IsNull() {
		return nil, nil
	}
	switch {
	case v.Type() == cty.String:
		return v.AsString(), nil
	case v.Type() == cty.Number:
		f, _ := v.AsBigFloat().Float64()
		return f, nil
	case v.Type() == cty.Bool:
		return v.True(), nil
	default:
		return nil, fmt.Errorf("unsupported value type %s", v.Type().FriendlyName())
	}
}
