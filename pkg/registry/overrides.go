package registry

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Overrides adjusts per-type policy without touching property or port
// schemas. The limited-class membership, essential lists, and key-ordering
// rules were inferred empirically against a closed-source editor, so they
// are deliberately kept as configuration that can be corrected independently
// of the engine.
//
// Example override file:
//
//	[types.Snow]
//	class = "limited"
//	essentials = ["Duration", "SnowLine", "Melt"]
//
//	[types.Terraces]
//	key_order = "props-last"
type Overrides struct {
	Types map[string]TypeOverride `toml:"types"`
}

// TypeOverride is the per-type section of an override file.
// Zero-valued fields leave the built-in definition untouched.
type TypeOverride struct {
	Class            string   `toml:"class"`              // "limited", "full", "minimal"
	Essentials       []string `toml:"essentials"`         // serialized keys, max MaxLimitedProperties
	KeyOrder         string   `toml:"key_order"`          // "props-first", "props-last"
	FragileWhenEmpty *bool    `toml:"fragile_when_empty"` // smart-mode default synthesis
}

// LoadOverrides reads an override file in TOML format.
func LoadOverrides(path string) (*Overrides, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read overrides: %w", err)
	}
	var ov Overrides
	if err := toml.Unmarshal(data, &ov); err != nil {
		return nil, fmt.Errorf("parse overrides: %w", err)
	}
	return &ov, nil
}

// ApplyOverrides overlays ov onto the registry.
// Overrides can only adjust existing types - the registry never invents
// types or properties - and essential lists may only name keys the type
// actually defines.
func (r *Registry) ApplyOverrides(ov *Overrides) error {
	for name, to := range ov.Types {
		def, ok := r.types[name]
		if !ok {
			return fmt.Errorf("override %q: %w", name, ErrUnknownType)
		}

		if to.Class != "" {
			class, err := parseClass(to.Class)
			if err != nil {
				return fmt.Errorf("override %q: %w", name, err)
			}
			def.Class = class
		}

		if to.Essentials != nil {
			if len(to.Essentials) > MaxLimitedProperties {
				return fmt.Errorf("override %q: %d essentials exceeds cap of %d",
					name, len(to.Essentials), MaxLimitedProperties)
			}
			for _, key := range to.Essentials {
				if _, ok := def.Property(key); !ok {
					return fmt.Errorf("override %q: essential %q is not a property of the type", name, key)
				}
			}
			def.Essentials = append([]string(nil), to.Essentials...)
		}

		if to.KeyOrder != "" {
			order, err := parseKeyOrder(to.KeyOrder)
			if err != nil {
				return fmt.Errorf("override %q: %w", name, err)
			}
			def.KeyOrder = order
		}

		if to.FragileWhenEmpty != nil {
			def.FragileWhenEmpty = *to.FragileWhenEmpty
		}
	}
	return nil
}

func parseClass(s string) (PropertyClass, error) {
	switch s {
	case "full":
		return ClassFull, nil
	case "limited":
		return ClassLimited, nil
	case "minimal":
		return ClassMinimal, nil
	default:
		return 0, fmt.Errorf("unknown property class %q", s)
	}
}

func parseKeyOrder(s string) (KeyOrder, error) {
	switch s {
	case "props-first":
		return PropsFirst, nil
	case "props-last":
		return PropsLast, nil
	default:
		return 0, fmt.Errorf("unknown key order %q", s)
	}
}
