// Package registry is the canonical catalog of terrain node type definitions.
//
// Every component of the engine - templates, the graph builder, the property
// resolver, the connection validator, and the structural checker - consults
// this one catalog, so per-type knowledge cannot drift between them.
//
// Each node type carries its ordered property schema, its port schema, and
// the serialization quirks the target editor expects (embedded save
// definitions, extra free-standing numeric fields, key ordering). Types are
// additionally tagged with a property class:
//
//   - ClassLimited: empirically unstable in the editor once too many
//     properties are supplied; resolved output is capped at 3 entries drawn
//     from a curated essential list.
//   - ClassFull: all defaults may be synthesized.
//   - ClassMinimal: no defaults are synthesized, only caller values survive.
//
// The limited-class membership and essential lists were determined
// empirically against a closed-source application. They are a starting
// configuration, not a verified schema, and can be overlaid from a TOML file
// via [Registry.ApplyOverrides].
package registry

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownType is returned by [Registry.Definition] when no node type with
// the requested name exists. The registry never invents types.
var ErrUnknownType = errors.New("unknown node type")

// ValueKind describes how a property value is typed and serialized.
type ValueKind int

const (
	// ValueNumber serializes as a JSON number and stays numeric.
	ValueNumber ValueKind = iota
	// ValueEnum serializes as its string label, never as a raw index.
	ValueEnum
	// ValueBool serializes as a JSON boolean.
	ValueBool
	// ValueString serializes as a JSON string.
	ValueString
)

// String returns a human-readable name for the value kind.
func (k ValueKind) String() string {
	switch k {
	case ValueNumber:
		return "number"
	case ValueEnum:
		return "enum"
	case ValueBool:
		return "bool"
	case ValueString:
		return "string"
	default:
		return "unknown"
	}
}

// PropertyClass controls how many default values may be synthesized for a
// node type.
type PropertyClass int

const (
	// ClassFull allows every default to be synthesized.
	ClassFull PropertyClass = iota
	// ClassLimited caps resolved properties at MaxLimitedProperties entries
	// drawn from the type's essential list.
	ClassLimited
	// ClassMinimal keeps only caller-supplied values.
	ClassMinimal
)

// MaxLimitedProperties is the hard cap on resolved properties for
// limited-class types. Editor versions tested so far reject nodes of these
// types once more properties are present.
const MaxLimitedProperties = 3

// String returns the class name as used in override files.
func (c PropertyClass) String() string {
	switch c {
	case ClassLimited:
		return "limited"
	case ClassMinimal:
		return "minimal"
	default:
		return "full"
	}
}

// Direction of a port.
type Direction int

const (
	// In ports receive data. Mask ports are In ports regardless of which
	// node supplies the data.
	In Direction = iota
	// Out ports emit data.
	Out
)

// String returns the serialized direction label.
func (d Direction) String() string {
	if d == Out {
		return "Out"
	}
	return "In"
}

// KeyOrder is the per-type placement policy for property keys relative to
// the common identity/name/position/port block. Working files produced by
// the editor write per-type property keys first; the rule was inferred from
// samples rather than an official schema, so it stays configurable per type.
type KeyOrder int

const (
	// PropsFirst writes property keys before the common block. This is what
	// every working sample file shows and the default for all types.
	PropsFirst KeyOrder = iota
	// PropsLast writes property keys after the common block.
	PropsLast
)

// PropertyDefinition describes one serializable property of a node type.
type PropertyDefinition struct {
	Key     string    // serialized key, single token ("SnowLine")
	Display string    // display name when it differs from Key ("Snow Line")
	Kind    ValueKind // value typing and coercion rule
	Default any       // default value, typed per Kind
	Min     float64   // valid range lower bound (ValueNumber only)
	Max     float64   // valid range upper bound (ValueNumber only)
	Enum    []string  // valid labels (ValueEnum only)
}

// DisplayName returns the display form of the property, falling back to the
// serialized key when no separate display name exists.
func (p PropertyDefinition) DisplayName() string {
	if p.Display != "" {
		return p.Display
	}
	return p.Key
}

// PortDefinition describes one attachment point of a node type.
type PortDefinition struct {
	Name     string    // "In", "Out", "Mask", "Input2", or an auxiliary output name
	Dir      Direction // declared direction; a property of the port, not of data flow
	Required bool      // required ports must carry exactly one connection
}

// IsPrimaryOut reports whether this is the node's primary output.
func (p PortDefinition) IsPrimaryOut() bool {
	return p.Dir == Out && p.Name == "Out"
}

// NodeTypeDefinition is the complete per-type schema.
type NodeTypeDefinition struct {
	Name       string // registry name ("Mountain")
	TypeString string // serialized .NET type identity for the editor
	Class      PropertyClass
	Essentials []string // curated keys kept for limited-class types

	// FragileWhenEmpty marks types known to fail in the editor when
	// under-specified; smart mode synthesizes defaults only for these.
	FragileWhenEmpty bool

	Properties []PropertyDefinition
	Ports      []PortDefinition

	// Serialization hints.
	EmbedsSaveDefinition bool         // save/export descriptor embedded in the node
	ExtraNumeric         []ExtraField // free-standing numeric fields besides canvas position
	KeyOrder             KeyOrder
}

// ExtraField is a free-standing numeric field some types serialize in
// addition to their properties and canvas position (e.g. Combine's
// PortCount).
type ExtraField struct {
	Name  string
	Value float64
}

// Property looks up a property definition by its serialized key.
func (d *NodeTypeDefinition) Property(key string) (PropertyDefinition, bool) {
	for _, p := range d.Properties {
		if p.Key == key {
			return p, true
		}
	}
	return PropertyDefinition{}, false
}

// ResolveKey maps a caller-supplied property name to its serialized key.
// Callers frequently supply the two-word display form ("Snow Line"); that is
// recoverable by substitution, not an error. Returns false only when the
// name matches neither a key nor a display name.
func (d *NodeTypeDefinition) ResolveKey(name string) (string, bool) {
	for _, p := range d.Properties {
		if p.Key == name || p.DisplayName() == name {
			return p.Key, true
		}
	}
	// Tolerate display forms with collapsed or stray spacing.
	folded := strings.ReplaceAll(name, " ", "")
	for _, p := range d.Properties {
		if strings.ReplaceAll(p.DisplayName(), " ", "") == folded || p.Key == folded {
			return p.Key, true
		}
	}
	return "", false
}

// Port looks up a port definition by name.
func (d *NodeTypeDefinition) Port(name string) (PortDefinition, bool) {
	for _, p := range d.Ports {
		if p.Name == name {
			return p, true
		}
	}
	return PortDefinition{}, false
}

// AuxiliaryOutputs lists the names of output ports other than "Out".
func (d *NodeTypeDefinition) AuxiliaryOutputs() []string {
	var aux []string
	for _, p := range d.Ports {
		if p.Dir == Out && p.Name != "Out" {
			aux = append(aux, p.Name)
		}
	}
	return aux
}

// EssentialSet returns the essential keys as a set for membership checks.
func (d *NodeTypeDefinition) EssentialSet() map[string]bool {
	set := make(map[string]bool, len(d.Essentials))
	for _, k := range d.Essentials {
		set[k] = true
	}
	return set
}

// Registry is a read-only catalog of node type definitions, loaded once.
type Registry struct {
	types map[string]*NodeTypeDefinition
	names []string // insertion order for deterministic listings
}

// Builtin returns a registry populated with the built-in catalog.
func Builtin() *Registry {
	r := &Registry{types: make(map[string]*NodeTypeDefinition)}
	for i := range builtinCatalog {
		r.add(&builtinCatalog[i])
	}
	return r
}

func (r *Registry) add(def *NodeTypeDefinition) {
	if _, exists := r.types[def.Name]; !exists {
		r.names = append(r.names, def.Name)
	}
	// Store a copy so override mutation cannot reach the built-in catalog.
	cp := *def
	r.types[def.Name] = &cp
}

// Definition returns the schema for a node type.
// Returns ErrUnknownType (wrapped with the requested name) on a miss.
func (r *Registry) Definition(typeName string) (*NodeTypeDefinition, error) {
	def, ok := r.types[typeName]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownType, typeName)
	}
	return def, nil
}

// DefinitionByTypeString finds the schema whose serialized type identity
// matches ts. The structural checker uses this to re-derive a node's schema
// from an assembled document.
func (r *Registry) DefinitionByTypeString(ts string) (*NodeTypeDefinition, error) {
	for _, name := range r.names {
		if def := r.types[name]; def.TypeString == ts {
			return def, nil
		}
	}
	return nil, fmt.Errorf("%w: type string %q", ErrUnknownType, ts)
}

// Names returns all registered type names in catalog order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// Len returns the number of registered types.
func (r *Registry) Len() int { return len(r.types) }
