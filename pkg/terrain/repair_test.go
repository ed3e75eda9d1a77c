package terrain

import (
	"testing"

	"github.com/terrasmith/terrasmith/pkg/graph"
	"github.com/terrasmith/terrasmith/pkg/registry"
)

const mountainType = "QuadSpinner.Gaea.Nodes.Mountain, Gaea.Nodes"

func parseDoc(t *testing.T, src string) *Document {
	t.Helper()
	doc, err := ParseDocument([]byte(src))
	if err != nil {
		t.Fatal(err)
	}
	return doc
}

func kinds(defects []StructuralDefect) []StructuralDefectKind {
	out := make([]StructuralDefectKind, len(defects))
	for i, d := range defects {
		out[i] = d.Kind
	}
	return out
}

func hasKind(defects []StructuralDefect, kind StructuralDefectKind) bool {
	for _, d := range defects {
		if d.Kind == kind {
			return true
		}
	}
	return false
}

func TestCheckDuplicateIdentity(t *testing.T) {
	doc := parseDoc(t, `{
		"$id": "1",
		"A": {"$id": "5", "X": 1},
		"B": {"$id": "5", "Y": 2},
		"C": {"$ref": "5"}
	}`)

	defects := Check(doc, registry.Builtin())
	if !hasKind(defects, DefectDuplicateIdentity) {
		t.Fatalf("defects = %v, want duplicate identity", kinds(defects))
	}

	repaired, remaining := Repair(doc, defects, registry.Builtin())
	if len(remaining) != 0 {
		t.Errorf("defects after one repair pass: %v", remaining)
	}

	// The first definition keeps the identity; the sibling gets a fresh
	// one allocated past everything already in the document.
	if id, _ := repaired.Root.GetObject("A").ID(); id != "5" {
		t.Errorf("first definition re-identified to %q", id)
	}
	if id, _ := repaired.Root.GetObject("B").ID(); id == "5" {
		t.Error("second definition still shares identity 5")
	}
}

func TestCheckForwardReference(t *testing.T) {
	doc := parseDoc(t, `{
		"$id": "1",
		"A": {"$ref": "9"},
		"B": {"$id": "9"}
	}`)

	defects := Check(doc, registry.Builtin())
	if !hasKind(defects, DefectUnresolvedReference) {
		t.Fatalf("defects = %v, want unresolved reference (refs must point backwards)", kinds(defects))
	}
}

func TestCheckAndRepairPlaceholderShape(t *testing.T) {
	doc := parseDoc(t, `{
		"$id": "1",
		"Groups": [],
		"Notes": {"$id": "2", "$values": []}
	}`)

	defects := Check(doc, registry.Builtin())
	if !hasKind(defects, DefectPlaceholderShape) {
		t.Fatalf("defects = %v, want placeholder shape", kinds(defects))
	}
	for _, d := range defects {
		if d.Kind == DefectPlaceholderShape && d.Path != "$.Groups" {
			t.Errorf("placeholder defect at %s, want $.Groups", d.Path)
		}
	}

	repaired, remaining := Repair(doc, defects, registry.Builtin())
	if len(remaining) != 0 {
		t.Errorf("defects after repair: %v", remaining)
	}

	groups := repaired.Root.GetObject("Groups")
	if groups == nil {
		t.Fatal("Groups not coerced into an object holder")
	}
	if _, ok := groups.ID(); !ok {
		t.Error("coerced holder has no identity")
	}
	if _, ok := groups.Get("$values"); !ok {
		t.Error("coerced holder has no $values list")
	}
}

func TestCheckAndRepairUnknownPropertyKey(t *testing.T) {
	doc := parseDoc(t, `{
		"$id": "1",
		"Nodes": {
			"$id": "2",
			"183": {
				"$type": "`+mountainType+`",
				"$id": "3",
				"Scale": 1.2,
				"Wetness": 0.5,
				"Id": 183,
				"Name": "Mountain"
			}
		}
	}`)

	defects := Check(doc, registry.Builtin())
	if !hasKind(defects, DefectUnknownPropertyKey) {
		t.Fatalf("defects = %v, want unknown property key", kinds(defects))
	}

	repaired, remaining := Repair(doc, defects, registry.Builtin())
	if len(remaining) != 0 {
		t.Errorf("defects after repair: %v", remaining)
	}

	node := repaired.Root.GetObject("Nodes").GetObject("183")
	if _, ok := node.Get("Wetness"); ok {
		t.Error("unknown property key survived repair")
	}
	if _, ok := node.Get("Scale"); !ok {
		t.Error("known property key dropped by repair")
	}
}

func TestCheckMissingRecord(t *testing.T) {
	doc := parseDoc(t, `{
		"$id": "1",
		"Node": {
			"$type": "QuadSpinner.Gaea.Nodes.Export, Gaea.Nodes",
			"$id": "2",
			"Id": 668,
			"Name": "Export",
			"Ports": {
				"$id": "3",
				"$values": [
					{"$id": "4", "Name": "In", "Type": "PrimaryIn, Required"}
				]
			}
		}
	}`)

	defects := Check(doc, registry.Builtin())
	if !hasKind(defects, DefectMissingRecord) {
		t.Fatalf("defects = %v, want missing record", kinds(defects))
	}

	// A missing connection record is not repairable; it must survive the
	// repair pass and be reported.
	_, remaining := Repair(doc, defects, registry.Builtin())
	if !hasKind(remaining, DefectMissingRecord) {
		t.Errorf("missing record silently dropped by repair: %v", kinds(remaining))
	}
}

// Two sibling nodes forced to share a structural identity are detected and
// re-allocated in a single repair pass.
func TestRepairDuplicateNodeIdentityScenario(t *testing.T) {
	g := buildGraph(t,
		[]graph.NodeSpec{
			{ID: 183, Type: "Mountain"},
			{ID: 668, Type: "Export", Save: &graph.SaveSpec{Filename: "out", Format: "PNG"}},
		},
		[]graph.ConnectionSpec{
			{From: 183, FromPort: "Out", To: 668, ToPort: "In"},
		},
		graph.ModeSmart)

	doc, err := Assemble(g, AssembleOptions{Clock: fixedClock})
	if err != nil {
		t.Fatal(err)
	}

	nodes := terrainSection(t, doc).GetObject("Nodes")
	firstPos := nodes.GetObject("183").GetObject("Position")
	secondPos := nodes.GetObject("668").GetObject("Position")
	firstID, _ := firstPos.ID()
	secondPos.Set("$id", firstID)

	defects := Check(doc, registry.Builtin())
	if !hasKind(defects, DefectDuplicateIdentity) {
		t.Fatalf("defects = %v, want duplicate identity", kinds(defects))
	}

	repaired, remaining := Repair(doc, defects, registry.Builtin())
	if len(remaining) != 0 {
		t.Fatalf("defects after one repair pass: %v", remaining)
	}

	repairedNodes := terrainSection(t, repaired).GetObject("Nodes")
	a, _ := repairedNodes.GetObject("183").GetObject("Position").ID()
	b, _ := repairedNodes.GetObject("668").GetObject("Position").ID()
	if a == b {
		t.Errorf("objects still share identity %q after repair", a)
	}
}

func TestRepairCleanDocumentIsIdentity(t *testing.T) {
	g := buildGraph(t, []graph.NodeSpec{{ID: 1, Type: "Mountain"}}, nil, graph.ModeSmart)
	doc, err := Assemble(g, AssembleOptions{Clock: fixedClock})
	if err != nil {
		t.Fatal(err)
	}

	defects := Check(doc, registry.Builtin())
	if len(defects) != 0 {
		t.Fatalf("fresh document has defects: %v", defects)
	}

	repaired, remaining := Repair(doc, defects, registry.Builtin())
	if remaining != nil {
		t.Errorf("repair of a clean document reported defects: %v", remaining)
	}
	if !doc.Equal(repaired) {
		t.Error("repair of a clean document changed it")
	}
	if doc.Root == repaired.Root {
		t.Error("repair returned the same generation instead of a copy")
	}
}
