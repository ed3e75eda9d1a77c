package preview

import (
	"strings"
	"testing"

	"github.com/terrasmith/terrasmith/pkg/graph"
	"github.com/terrasmith/terrasmith/pkg/registry"
)

func buildChain(t *testing.T) *graph.Graph {
	t.Helper()
	g, err := graph.Build(registry.Builtin(),
		[]graph.NodeSpec{
			{ID: 183, Type: "Mountain", Properties: map[string]any{"Scale": 1.5}},
			{ID: 281, Type: "Erosion"},
			{ID: 668, Type: "Export"},
		},
		[]graph.ConnectionSpec{
			{From: 183, FromPort: "Out", To: 281, ToPort: "In"},
			{From: 281, FromPort: "Wear", To: 668, ToPort: "In"},
		},
		graph.Options{})
	if err != nil {
		t.Fatal(err)
	}
	if err := g.ResolveProperties(graph.ModeMinimal); err != nil {
		t.Fatal(err)
	}
	return g
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(buildChain(t), Options{})

	if !strings.HasPrefix(dot, "digraph terrain {") {
		t.Fatalf("unexpected prefix: %q", dot[:30])
	}
	for _, want := range []string{
		`"183" [label="Mountain (183)"`,
		`"281" [label="Erosion (281)"`,
		`"183" -> "281";`,
		`"281" -> "668"`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q:\n%s", want, dot)
		}
	}

	// Non-default ports are labeled on the edge.
	if !strings.Contains(dot, `label="Wear to In"`) {
		t.Errorf("auxiliary edge not labeled:\n%s", dot)
	}
	// Default Out-to-In edges are not.
	if strings.Contains(dot, `label="Out to In"`) {
		t.Errorf("default edge needlessly labeled:\n%s", dot)
	}
}

func TestToDOTDetailed(t *testing.T) {
	dot := ToDOT(buildChain(t), Options{Detailed: true})

	if !strings.Contains(dot, "Scale: 1.5") {
		t.Errorf("detailed label missing property:\n%s", dot)
	}
}

func TestToDOTDeterministic(t *testing.T) {
	g := buildChain(t)
	if ToDOT(g, Options{}) != ToDOT(g, Options{}) {
		t.Error("DOT output not deterministic")
	}
}

func TestToDOTNodeStyles(t *testing.T) {
	dot := ToDOT(buildChain(t), Options{})

	if !strings.Contains(dot, "fillcolor=lightblue") {
		t.Errorf("generator not highlighted:\n%s", dot)
	}
	if !strings.Contains(dot, "peripheries=2") {
		t.Errorf("export node not highlighted:\n%s", dot)
	}
}
