package graph

import (
	"testing"

	"github.com/terrasmith/terrasmith/pkg/registry"
)

func buildValid(t *testing.T) *Graph {
	t.Helper()
	g, err := Build(testRegistry(), []NodeSpec{
		{ID: 183, Type: "Mountain"},
		{ID: 281, Type: "Erosion"},
		{ID: 668, Type: "Export"},
	}, []ConnectionSpec{
		{From: 183, FromPort: "Out", To: 281, ToPort: "In"},
		{From: 281, FromPort: "Out", To: 668, ToPort: "In"},
	}, Options{})
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func TestValidateCleanGraph(t *testing.T) {
	if defects := ValidateConnections(buildValid(t)); len(defects) != 0 {
		t.Fatalf("defects = %v, want none", defects)
	}
}

func TestValidateMissingRequired(t *testing.T) {
	g, err := Build(testRegistry(), []NodeSpec{
		{ID: 1, Type: "Mountain"},
		{ID: 2, Type: "Erosion"},
	}, nil, Options{})
	if err != nil {
		t.Fatal(err)
	}

	defects := ValidateConnections(g)
	if len(defects) != 1 {
		t.Fatalf("defects = %v, want exactly one", defects)
	}
	d := defects[0]
	if d.Kind != DefectMissingRequired || d.NodeID != 2 || d.Port != "In" {
		t.Errorf("defect = %+v", d)
	}
}

// A Rivers Mask wired from an Adjust output: the destination port's declared
// direction stays "In" no matter which node supplies the data.
func TestValidateMaskDirectionScenario(t *testing.T) {
	g, err := Build(testRegistry(), []NodeSpec{
		{ID: 101, Type: "Mountain"},
		{ID: 202, Type: "Adjust"},
		{ID: 303, Type: "Rivers"},
	}, []ConnectionSpec{
		{From: 101, FromPort: "Out", To: 202, ToPort: "In"},
		{From: 101, FromPort: "Out", To: 303, ToPort: "In"},
		{From: 202, FromPort: "Out", To: 303, ToPort: "Mask"},
	}, Options{})
	if err != nil {
		t.Fatal(err)
	}

	if defects := ValidateConnections(g); len(defects) != 0 {
		t.Fatalf("defects = %v, want none", defects)
	}

	rivers, _ := g.Node(303)
	mask, _ := rivers.Port("Mask")
	if mask.Def.Dir != registry.In {
		t.Error("Mask port direction must read In")
	}
	if mask.Connection() == nil {
		t.Fatal("Mask carries no connection")
	}
}

func TestValidateAuxiliaryFromPort(t *testing.T) {
	// Rivers exposes a named auxiliary output; using it is legal.
	g, err := Build(testRegistry(), []NodeSpec{
		{ID: 1, Type: "Mountain"},
		{ID: 2, Type: "Rivers"},
		{ID: 3, Type: "Adjust"},
	}, []ConnectionSpec{
		{From: 1, FromPort: "Out", To: 2, ToPort: "In"},
		{From: 2, FromPort: "Rivers", To: 3, ToPort: "In"},
	}, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if defects := ValidateConnections(g); len(defects) != 0 {
		t.Fatalf("defects = %v, want none", defects)
	}
}

func TestValidateBadFromPort(t *testing.T) {
	// Wiring from an input port is both a direction mismatch and a bad
	// from-port name; both defects must be reported.
	g, err := Build(testRegistry(), []NodeSpec{
		{ID: 1, Type: "Mountain"},
		{ID: 2, Type: "Erosion"},
		{ID: 3, Type: "Adjust"},
	}, []ConnectionSpec{
		{From: 1, FromPort: "Out", To: 2, ToPort: "In"},
		{From: 2, FromPort: "Mask", To: 3, ToPort: "In"},
	}, Options{})
	if err != nil {
		t.Fatal(err)
	}

	defects := ValidateConnections(g)
	kinds := make(map[DefectKind]bool)
	for _, d := range defects {
		kinds[d.Kind] = true
	}
	if !kinds[DefectDirection] {
		t.Error("missing direction-mismatch defect")
	}
	if !kinds[DefectBadFromPort] {
		t.Error("missing bad-from-port defect")
	}
}

func TestValidateDuplicateConnection(t *testing.T) {
	g, err := Build(testRegistry(), []NodeSpec{
		{ID: 1, Type: "Mountain"},
		{ID: 2, Type: "Ridge"},
		{ID: 3, Type: "Erosion"},
	}, []ConnectionSpec{
		{From: 1, FromPort: "Out", To: 3, ToPort: "In"},
		{From: 2, FromPort: "Out", To: 3, ToPort: "In"},
	}, Options{})
	if err != nil {
		t.Fatal(err)
	}

	defects := ValidateConnections(g)
	found := false
	for _, d := range defects {
		if d.Kind == DefectDuplicateConnection && d.NodeID == 3 && d.Port == "In" {
			found = true
		}
	}
	if !found {
		t.Errorf("defects = %v, want duplicate-connection on node 3 In", defects)
	}
}

// All defects in a graph are accumulated in a single pass.
func TestValidateCollectsEverything(t *testing.T) {
	g, err := Build(testRegistry(), []NodeSpec{
		{ID: 1, Type: "Mountain"},
		{ID: 2, Type: "Ridge"},
		{ID: 3, Type: "Combine"}, // In and Input2 both required, both missing
		{ID: 4, Type: "Erosion"},
	}, []ConnectionSpec{
		{From: 1, FromPort: "Out", To: 4, ToPort: "In"},
		{From: 2, FromPort: "Out", To: 4, ToPort: "In"},
	}, Options{})
	if err != nil {
		t.Fatal(err)
	}

	defects := ValidateConnections(g)
	if len(defects) < 3 {
		t.Fatalf("defects = %v, want at least 3 (two missing required + one duplicate)", defects)
	}
}
