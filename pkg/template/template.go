// Package template ships a small library of ready-made graph definitions.
//
// Templates are starting points, not fixtures: each one is a plain set of
// node and connection specs that runs through the same build, resolve, and
// validation path as user input. Nothing here touches the serializer
// directly.
package template

import (
	"errors"
	"fmt"
	"sort"

	"github.com/terrasmith/terrasmith/pkg/graph"
)

// ErrNotFound is returned when no template carries the requested name.
var ErrNotFound = errors.New("template not found")

// Template is a named, buildable graph definition.
type Template struct {
	Name        string
	Description string
	Nodes       []graph.NodeSpec
	Connections []graph.ConnectionSpec
}

var catalog = map[string]Template{
	"basic-mountain": {
		Name:        "basic-mountain",
		Description: "A single mountain exported as a heightmap.",
		Nodes: []graph.NodeSpec{
			{ID: 183, Type: "Mountain", X: 24000, Y: 26000},
			{ID: 668, Type: "Export", X: 27000, Y: 26000,
				Save: &graph.SaveSpec{Filename: "mountain", Format: "EXR"}},
		},
		Connections: []graph.ConnectionSpec{
			{From: 183, FromPort: "Out", To: 668, ToPort: "In"},
		},
	},
	"eroded-peak": {
		Name:        "eroded-peak",
		Description: "Mountain with hydraulic and thermal weathering.",
		Nodes: []graph.NodeSpec{
			{ID: 183, Type: "Mountain", X: 24000, Y: 26000,
				Properties: map[string]any{"Scale": 1.2, "Style": "Alpine"}},
			{ID: 281, Type: "Erosion", X: 25500, Y: 26000,
				Properties: map[string]any{"Duration": 0.07}},
			{ID: 427, Type: "Thermal", X: 27000, Y: 26000},
			{ID: 668, Type: "Export", X: 28500, Y: 26000,
				Save: &graph.SaveSpec{Filename: "peak", Format: "PNG"}},
		},
		Connections: []graph.ConnectionSpec{
			{From: 183, FromPort: "Out", To: 281, ToPort: "In"},
			{From: 281, FromPort: "Out", To: 427, ToPort: "In"},
			{From: 427, FromPort: "Out", To: 668, ToPort: "In"},
		},
	},
	"river-valley": {
		Name:        "river-valley",
		Description: "Eroded ridge carved by rivers, masked by an adjustment pass.",
		Nodes: []graph.NodeSpec{
			{ID: 112, Type: "Ridge", X: 23000, Y: 26000},
			{ID: 281, Type: "Erosion", X: 24500, Y: 26000},
			{ID: 334, Type: "Adjust", X: 24500, Y: 27500},
			{ID: 539, Type: "Rivers", X: 26000, Y: 26000,
				Properties: map[string]any{"Water": 0.4}},
			{ID: 668, Type: "Export", X: 27500, Y: 26000,
				Save: &graph.SaveSpec{Filename: "valley", Format: "EXR"}},
		},
		Connections: []graph.ConnectionSpec{
			{From: 112, FromPort: "Out", To: 281, ToPort: "In"},
			{From: 281, FromPort: "Out", To: 539, ToPort: "In"},
			{From: 281, FromPort: "Wear", To: 334, ToPort: "In"},
			{From: 334, FromPort: "Out", To: 539, ToPort: "Mask"},
			{From: 539, FromPort: "Out", To: 668, ToPort: "In"},
		},
	},
	"snowy-range": {
		Name:        "snowy-range",
		Description: "High-altitude range with a snow pass above the snow line.",
		Nodes: []graph.NodeSpec{
			{ID: 183, Type: "Mountain", X: 24000, Y: 26000,
				Properties: map[string]any{"Height": 0.9}},
			{ID: 281, Type: "Erosion", X: 25500, Y: 26000},
			{ID: 712, Type: "Snow", X: 27000, Y: 26000,
				Properties: map[string]any{"Snow Line": 0.7, "Duration": 0.4}},
			{ID: 668, Type: "Export", X: 28500, Y: 26000,
				Save: &graph.SaveSpec{Filename: "range", Format: "EXR"}},
		},
		Connections: []graph.ConnectionSpec{
			{From: 183, FromPort: "Out", To: 281, ToPort: "In"},
			{From: 281, FromPort: "Out", To: 712, ToPort: "In"},
			{From: 712, FromPort: "Out", To: 668, ToPort: "In"},
		},
	},
	"island-coast": {
		Name:        "island-coast",
		Description: "Island landmass with softened coastline and a color map.",
		Nodes: []graph.NodeSpec{
			{ID: 205, Type: "Island", X: 23500, Y: 26000},
			{ID: 281, Type: "Erosion", X: 25000, Y: 26000},
			{ID: 450, Type: "Blur", X: 26500, Y: 26000,
				Properties: map[string]any{"Radius": 0.02}},
			{ID: 590, Type: "SatMap", X: 28000, Y: 26000},
			{ID: 668, Type: "Export", X: 29500, Y: 26000,
				Save: &graph.SaveSpec{Filename: "island", Format: "PNG"}},
		},
		Connections: []graph.ConnectionSpec{
			{From: 205, FromPort: "Out", To: 281, ToPort: "In"},
			{From: 281, FromPort: "Out", To: 450, ToPort: "In"},
			{From: 450, FromPort: "Out", To: 590, ToPort: "In"},
			{From: 590, FromPort: "Out", To: 668, ToPort: "In"},
		},
	},
	"canyon-strata": {
		Name:        "canyon-strata",
		Description: "Stratified canyon combined with plate uplift.",
		Nodes: []graph.NodeSpec{
			{ID: 140, Type: "Canyon", X: 23000, Y: 25500},
			{ID: 155, Type: "Plates", X: 23000, Y: 27000},
			{ID: 360, Type: "Combine", X: 24500, Y: 26000,
				Properties: map[string]any{"Ratio": 0.35}},
			{ID: 470, Type: "Terraces", X: 26000, Y: 26000},
			{ID: 668, Type: "Export", X: 27500, Y: 26000,
				Save: &graph.SaveSpec{Filename: "canyon", Format: "EXR"}},
		},
		Connections: []graph.ConnectionSpec{
			{From: 140, FromPort: "Out", To: 360, ToPort: "In"},
			{From: 155, FromPort: "Out", To: 360, ToPort: "Input2"},
			{From: 360, FromPort: "Out", To: 470, ToPort: "In"},
			{From: 470, FromPort: "Out", To: 668, ToPort: "In"},
		},
	},
}

// Get returns the template registered under name.
func Get(name string) (Template, error) {
	tpl, ok := catalog[name]
	if !ok {
		return Template{}, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return tpl, nil
}

// Names lists every registered template name in sorted order.
func Names() []string {
	out := make([]string, 0, len(catalog))
	for name := range catalog {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// All returns every template, ordered by name.
func All() []Template {
	out := make([]Template, 0, len(catalog))
	for _, name := range Names() {
		out = append(out, catalog[name])
	}
	return out
}
