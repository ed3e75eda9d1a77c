package terrain

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/terrasmith/terrasmith/pkg/ident"
)

func TestObjectMarshalPreservesOrder(t *testing.T) {
	a := ident.New()
	o := NewObject(a).
		Set("Scale", 1.25).
		Set("Height", 0.7).
		Set("Id", 183).
		Set("Name", "Mountain")

	data, err := json.Marshal(o)
	if err != nil {
		t.Fatal(err)
	}

	s := string(data)
	order := []string{"$id", "Scale", "Height", "Id", "Name"}
	last := -1
	for _, key := range order {
		idx := strings.Index(s, `"`+key+`"`)
		if idx < 0 {
			t.Fatalf("key %q missing from %s", key, s)
		}
		if idx < last {
			t.Fatalf("key %q out of order in %s", key, s)
		}
		last = idx
	}
}

func TestObjectOverwriteKeepsPosition(t *testing.T) {
	o := NewPlainObject().Set("A", 1).Set("B", 2).Set("A", 3)

	if keys := o.Keys(); len(keys) != 2 || keys[0] != "A" || keys[1] != "B" {
		t.Errorf("Keys = %v, want [A B]", keys)
	}
	if v, _ := o.Get("A"); v != 3 {
		t.Errorf("A = %v, want 3", v)
	}
}

func TestObjectRoundTrip(t *testing.T) {
	a := ident.New()
	o := NewObject(a).
		Set("Water", 0.3).
		Set("Nested", NewObject(a).Set("X", 24000.0).Set("Y", 26000.0)).
		Set("Empty", NewValues(a)).
		Set("Flag", true).
		Set("Label", "Rivers")

	data, err := json.Marshal(o)
	if err != nil {
		t.Fatal(err)
	}

	back := NewPlainObject()
	if err := json.Unmarshal(data, back); err != nil {
		t.Fatal(err)
	}

	data2, err := json.Marshal(back)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != string(data2) {
		t.Errorf("round-trip changed the document:\n%s\n%s", data, data2)
	}
}

func TestValuesPlaceholderShape(t *testing.T) {
	a := ident.New()
	data, err := json.Marshal(NewValues(a))
	if err != nil {
		t.Fatal(err)
	}

	s := string(data)
	if !strings.Contains(s, `"$id"`) || !strings.Contains(s, `"$values":[]`) {
		t.Errorf("placeholder = %s, want identified $values holder", s)
	}
	if strings.HasPrefix(s, "[") {
		t.Error("placeholder serialized as a bare list")
	}
}

func TestRefMarshal(t *testing.T) {
	data, err := json.Marshal(ident.Ref{Target: 7})
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `{"$ref":"7"}` {
		t.Errorf("ref = %s", data)
	}
}

func TestObjectDelete(t *testing.T) {
	o := NewPlainObject().Set("A", 1).Set("B", 2).Set("C", 3)
	o.Delete("B")

	if keys := o.Keys(); len(keys) != 2 || keys[0] != "A" || keys[1] != "C" {
		t.Errorf("Keys = %v, want [A C]", keys)
	}
	if _, ok := o.Get("B"); ok {
		t.Error("B still present after Delete")
	}
}

func TestObjectClone(t *testing.T) {
	a := ident.New()
	o := NewObject(a).Set("Child", NewObject(a).Set("X", 1.0))

	cp := o.Clone()
	cp.GetObject("Child").Set("X", 2.0)

	if v, _ := o.GetObject("Child").Get("X"); v != 1.0 {
		t.Error("Clone shares child objects with the original")
	}
}
