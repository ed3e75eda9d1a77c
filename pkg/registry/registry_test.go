package registry

import (
	"errors"
	"testing"
)

func TestDefinitionKnownTypes(t *testing.T) {
	r := Builtin()

	for _, name := range []string{"Mountain", "Erosion", "Rivers", "Snow", "Combine", "Export"} {
		if _, err := r.Definition(name); err != nil {
			t.Errorf("Definition(%q) error: %v", name, err)
		}
	}
}

func TestDefinitionUnknownType(t *testing.T) {
	r := Builtin()

	_, err := r.Definition("Volcano")
	if !errors.Is(err, ErrUnknownType) {
		t.Fatalf("Definition(Volcano) error = %v, want ErrUnknownType", err)
	}
}

func TestLimitedTypesHaveEssentials(t *testing.T) {
	r := Builtin()

	for _, name := range r.Names() {
		def, err := r.Definition(name)
		if err != nil {
			t.Fatal(err)
		}
		if def.Class != ClassLimited {
			continue
		}
		if len(def.Essentials) == 0 {
			t.Errorf("%s: limited class but no essential list", name)
		}
		if len(def.Essentials) > MaxLimitedProperties {
			t.Errorf("%s: %d essentials exceeds cap %d", name, len(def.Essentials), MaxLimitedProperties)
		}
		for _, key := range def.Essentials {
			if _, ok := def.Property(key); !ok {
				t.Errorf("%s: essential %q is not a defined property", name, key)
			}
		}
	}
}

func TestEnumDefaultsAreValidLabels(t *testing.T) {
	r := Builtin()

	for _, name := range r.Names() {
		def, _ := r.Definition(name)
		for _, p := range def.Properties {
			if p.Kind != ValueEnum {
				continue
			}
			label, ok := p.Default.(string)
			if !ok {
				t.Errorf("%s.%s: enum default %v is not a string label", name, p.Key, p.Default)
				continue
			}
			found := false
			for _, e := range p.Enum {
				if e == label {
					found = true
				}
			}
			if !found {
				t.Errorf("%s.%s: default %q not in enum set %v", name, p.Key, label, p.Enum)
			}
		}
	}
}

func TestResolveKey(t *testing.T) {
	r := Builtin()
	snow, _ := r.Definition("Snow")

	tests := []struct {
		name    string
		input   string
		wantKey string
		wantOK  bool
	}{
		{"SerializedKey", "SnowLine", "SnowLine", true},
		{"DisplayName", "Snow Line", "SnowLine", true},
		{"SingleWord", "Melt", "Melt", true},
		{"Unknown", "Lava Line", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, ok := snow.ResolveKey(tt.input)
			if ok != tt.wantOK || key != tt.wantKey {
				t.Errorf("ResolveKey(%q) = (%q, %v), want (%q, %v)", tt.input, key, ok, tt.wantKey, tt.wantOK)
			}
		})
	}
}

func TestPortSchemas(t *testing.T) {
	r := Builtin()

	mountain, _ := r.Definition("Mountain")
	if _, ok := mountain.Port("In"); ok {
		t.Error("Mountain is a generator and should not have an In port")
	}

	rivers, _ := r.Definition("Rivers")
	mask, ok := rivers.Port("Mask")
	if !ok {
		t.Fatal("Rivers should have a Mask port")
	}
	if mask.Dir != In {
		t.Error("Mask port direction must be In")
	}
	if mask.Required {
		t.Error("Mask port must be optional")
	}

	aux := rivers.AuxiliaryOutputs()
	if len(aux) != 2 {
		t.Fatalf("Rivers auxiliary outputs = %v, want [Rivers Depth]", aux)
	}

	combine, _ := r.Definition("Combine")
	input2, ok := combine.Port("Input2")
	if !ok || !input2.Required {
		t.Error("Combine.Input2 should exist and be required")
	}
}

func TestSerializationHints(t *testing.T) {
	r := Builtin()

	export, _ := r.Definition("Export")
	if !export.EmbedsSaveDefinition {
		t.Error("Export must embed its save definition")
	}

	combine, _ := r.Definition("Combine")
	if len(combine.ExtraNumeric) != 1 || combine.ExtraNumeric[0].Name != "PortCount" {
		t.Errorf("Combine.ExtraNumeric = %v, want PortCount", combine.ExtraNumeric)
	}
}
