package graph

import (
	"errors"
	"fmt"
	"strings"

	"github.com/terrasmith/terrasmith/pkg/registry"
)

// ErrUnknownProperty is returned when an override names a property the node
// type does not define. Properties are never invented; display-name forms
// are substituted, anything else is a schema violation.
var ErrUnknownProperty = errors.New("unknown property")

// ErrBadPropertyValue is returned when an override value cannot be coerced
// to the property's declared kind.
var ErrBadPropertyValue = errors.New("bad property value")

// Mode selects how default property values are synthesized during
// resolution.
type Mode int

const (
	// ModeSmart synthesizes defaults only for types known to fail in the
	// editor when under-specified. This is the default.
	ModeSmart Mode = iota
	// ModeMinimal keeps caller overrides only.
	ModeMinimal
	// ModeFull applies every default, then overrides.
	ModeFull
)

// String returns the mode name as accepted by ParseMode.
func (m Mode) String() string {
	switch m {
	case ModeMinimal:
		return "minimal"
	case ModeFull:
		return "full"
	default:
		return "smart"
	}
}

// ParseMode parses a mode name.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(s) {
	case "", "smart":
		return ModeSmart, nil
	case "minimal":
		return ModeMinimal, nil
	case "full":
		return ModeFull, nil
	default:
		return 0, fmt.Errorf("unknown property mode %q", s)
	}
}

// ResolveProperties resolves the property map of every node in the graph
// under the given mode. This is the only step that mutates node properties.
func (g *Graph) ResolveProperties(mode Mode) error {
	for _, n := range g.Nodes() {
		props, err := ResolveNode(n.Type, mode, n.Overrides)
		if err != nil {
			return fmt.Errorf("node %d (%s): %w", n.ID, n.Type.Name, err)
		}
		n.Properties = props
	}
	return nil
}

// ResolveNode computes a node's final property map.
//
// Overrides may use either serialized keys or display names; display forms
// are substituted, unknown names are rejected. Values are coerced to the
// property's declared kind: numbers stay numeric (clamped to the valid
// range), enums resolve to their string label (a numeric index is accepted
// and converted, a raw index is never emitted), booleans stay boolean.
//
// For limited-class types the result is capped at
// [registry.MaxLimitedProperties] entries drawn from the type's essential
// list: overrides outside the list are dropped, overrides inside it win
// over defaults. Minimal-class types never receive synthesized defaults
// regardless of mode.
func ResolveNode(def *registry.NodeTypeDefinition, mode Mode, overrides map[string]any) (map[string]any, error) {
	// Normalize override keys first so schema violations surface even when
	// the mode or class would drop the value later.
	normalized := make(map[string]any, len(overrides))
	for name, value := range overrides {
		key, ok := def.ResolveKey(name)
		if !ok {
			return nil, fmt.Errorf("%w: %s.%s", ErrUnknownProperty, def.Name, name)
		}
		prop, _ := def.Property(key)
		coerced, err := coerce(prop, value)
		if err != nil {
			return nil, fmt.Errorf("%s.%s: %w", def.Name, key, err)
		}
		normalized[key] = coerced
	}

	synthesize := false
	switch mode {
	case ModeFull:
		synthesize = true
	case ModeSmart:
		synthesize = def.FragileWhenEmpty
	}
	// Minimal-class types keep caller values only, whatever the mode says.
	if def.Class == registry.ClassMinimal {
		synthesize = false
	}

	result := make(map[string]any)
	if synthesize {
		for _, p := range def.Properties {
			result[p.Key] = p.Default
		}
	}
	for k, v := range normalized {
		result[k] = v
	}

	// Overrides outside a limited type's essential list are dropped, not
	// rejected; overrides inside it win over defaults.
	if def.Class == registry.ClassLimited {
		capped := make(map[string]any, registry.MaxLimitedProperties)
		for _, key := range def.Essentials {
			if v, ok := result[key]; ok {
				capped[key] = v
			}
			if len(capped) == registry.MaxLimitedProperties {
				break
			}
		}
		result = capped
	}

	return result, nil
}

// coerce converts value to the property's declared kind.
func coerce(prop registry.PropertyDefinition, value any) (any, error) {
	switch prop.Kind {
	case registry.ValueNumber:
		f, ok := toFloat(value)
		if !ok {
			return nil, fmt.Errorf("%w: %v is not a number", ErrBadPropertyValue, value)
		}
		if prop.Max > prop.Min {
			if f < prop.Min {
				f = prop.Min
			}
			if f > prop.Max {
				f = prop.Max
			}
		}
		return f, nil

	case registry.ValueEnum:
		if s, ok := value.(string); ok {
			for _, label := range prop.Enum {
				if strings.EqualFold(label, s) {
					return label, nil
				}
			}
			return nil, fmt.Errorf("%w: %q not in %v", ErrBadPropertyValue, s, prop.Enum)
		}
		// A raw index is accepted on input but always serialized as its label.
		if f, ok := toFloat(value); ok {
			i := int(f)
			if i >= 0 && i < len(prop.Enum) {
				return prop.Enum[i], nil
			}
			return nil, fmt.Errorf("%w: index %d out of range for %v", ErrBadPropertyValue, i, prop.Enum)
		}
		return nil, fmt.Errorf("%w: %v is not an enum label", ErrBadPropertyValue, value)

	case registry.ValueBool:
		b, ok := value.(bool)
		if !ok {
			return nil, fmt.Errorf("%w: %v is not a boolean", ErrBadPropertyValue, value)
		}
		return b, nil

	case registry.ValueString:
		s, ok := value.(string)
		if !ok {
			return nil, fmt.Errorf("%w: %v is not a string", ErrBadPropertyValue, value)
		}
		return s, nil

	default:
		return nil, fmt.Errorf("%w: unhandled kind", ErrBadPropertyValue)
	}
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	}
	return 0, false
}
