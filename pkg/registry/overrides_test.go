package registry

import (
	"os"
	"path/filepath"
	"testing"
)

func writeOverrides(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "types.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestApplyOverrides(t *testing.T) {
	path := writeOverrides(t, `
[types.Terraces]
class = "limited"
essentials = ["TerraceCount", "Uniformity"]
key_order = "props-last"
fragile_when_empty = true
`)

	ov, err := LoadOverrides(path)
	if err != nil {
		t.Fatal(err)
	}

	r := Builtin()
	if err := r.ApplyOverrides(ov); err != nil {
		t.Fatal(err)
	}

	def, _ := r.Definition("Terraces")
	if def.Class != ClassLimited {
		t.Errorf("Class = %v, want limited", def.Class)
	}
	if len(def.Essentials) != 2 || def.Essentials[0] != "TerraceCount" {
		t.Errorf("Essentials = %v", def.Essentials)
	}
	if def.KeyOrder != PropsLast {
		t.Errorf("KeyOrder = %v, want PropsLast", def.KeyOrder)
	}
	if !def.FragileWhenEmpty {
		t.Error("FragileWhenEmpty should be set")
	}
}

func TestApplyOverridesDoesNotMutateBuiltin(t *testing.T) {
	r1 := Builtin()
	ov := &Overrides{Types: map[string]TypeOverride{
		"Adjust": {Class: "limited", Essentials: []string{"Multiply"}},
	}}
	if err := r1.ApplyOverrides(ov); err != nil {
		t.Fatal(err)
	}

	r2 := Builtin()
	def, _ := r2.Definition("Adjust")
	if def.Class != ClassFull {
		t.Error("override leaked into a fresh registry")
	}
}

func TestApplyOverridesRejectsUnknowns(t *testing.T) {
	tests := []struct {
		name string
		ov   Overrides
	}{
		{"UnknownType", Overrides{Types: map[string]TypeOverride{"Volcano": {Class: "full"}}}},
		{"UnknownClass", Overrides{Types: map[string]TypeOverride{"Snow": {Class: "huge"}}}},
		{"UnknownEssential", Overrides{Types: map[string]TypeOverride{"Snow": {Essentials: []string{"LavaLine"}}}}},
		{"TooManyEssentials", Overrides{Types: map[string]TypeOverride{"Snow": {Essentials: []string{"Duration", "SnowLine", "Melt", "Intensity"}}}}},
		{"UnknownKeyOrder", Overrides{Types: map[string]TypeOverride{"Snow": {KeyOrder: "alphabetical"}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Builtin()
			if err := r.ApplyOverrides(&tt.ov); err == nil {
				t.Error("ApplyOverrides accepted invalid override")
			}
		})
	}
}
