package terrain

import (
	"fmt"
	"strconv"

	"github.com/terrasmith/terrasmith/pkg/ident"
	"github.com/terrasmith/terrasmith/pkg/registry"
)

// StructuralDefectKind classifies a structural defect.
type StructuralDefectKind int

const (
	// DefectDuplicateIdentity flags two objects defining the same "$id".
	DefectDuplicateIdentity StructuralDefectKind = iota
	// DefectUnresolvedReference flags a "$ref" whose target was not defined
	// earlier in the document.
	DefectUnresolvedReference
	// DefectMissingRecord flags a required input port with no connection
	// record.
	DefectMissingRecord
	// DefectUnknownPropertyKey flags a node property key absent from the
	// node's type definition.
	DefectUnknownPropertyKey
	// DefectPlaceholderShape flags an empty collection serialized as a bare
	// list instead of an identified "$values" holder.
	DefectPlaceholderShape
)

// String returns a short label for the defect kind.
func (k StructuralDefectKind) String() string {
	switch k {
	case DefectDuplicateIdentity:
		return "duplicate-identity"
	case DefectUnresolvedReference:
		return "unresolved-reference"
	case DefectMissingRecord:
		return "missing-record"
	case DefectUnknownPropertyKey:
		return "unknown-property-key"
	case DefectPlaceholderShape:
		return "placeholder-shape"
	default:
		return "unknown"
	}
}

// StructuralDefect describes one integrity violation in an assembled
// document.
type StructuralDefect struct {
	Kind    StructuralDefectKind
	Path    string // dotted location in the document tree
	Message string
}

func (d StructuralDefect) String() string {
	return fmt.Sprintf("%s at %s: %s", d.Kind, d.Path, d.Message)
}

// placeholderKeys are the collection keys the editor always writes as
// identified "$values" holders. A bare list in any of these positions is a
// shape mismatch.
var placeholderKeys = map[string]bool{
	"Groups":          true,
	"Notes":           true,
	"GraphTabs":       true,
	"Modifiers":       true,
	"SnapIns":         true,
	"Bindings":        true,
	"BoundProperties": true,
	"NodeBookmarks":   true,
	"Assets":          true,
}

// commonNodeKeys are node object keys that are not properties.
var commonNodeKeys = map[string]bool{
	"$id":            true,
	"$type":          true,
	"Id":             true,
	"Name":           true,
	"Position":       true,
	"Ports":          true,
	"SaveDefinition": true,
	"Modifiers":      true,
	"SnapIns":        true,
}

// Check re-parses an assembled document and collects every structural
// defect: identity and reference integrity, required-port records, property
// keys against the registry, and placeholder shapes. Defects are
// accumulated, never fail-fast.
func Check(doc *Document, reg *registry.Registry) []StructuralDefect {
	c := &checker{reg: reg, defined: make(map[string]bool)}
	c.walkObject(doc.Root, "$")
	return c.defects
}

type checker struct {
	reg     *registry.Registry
	defined map[string]bool
	defects []StructuralDefect
}

func (c *checker) add(kind StructuralDefectKind, path, format string, args ...any) {
	c.defects = append(c.defects, StructuralDefect{
		Kind:    kind,
		Path:    path,
		Message: fmt.Sprintf(format, args...),
	})
}

// walkObject visits an object in document order, tracking identity
// definitions so that references can only point backwards.
func (c *checker) walkObject(o *Object, path string) {
	if ref, ok := o.GetString("$ref"); ok && o.Len() == 1 {
		if !c.defined[ref] {
			c.add(DefectUnresolvedReference, path, "reference to undefined identity %q", ref)
		}
		return
	}

	if id, ok := o.ID(); ok {
		if c.defined[id] {
			c.add(DefectDuplicateIdentity, path, "identity %q already defined", id)
		}
		c.defined[id] = true
	}

	if ts, ok := o.GetString("$type"); ok {
		c.checkNode(o, ts, path)
	}

	for _, key := range o.Keys() {
		v, _ := o.Get(key)
		childPath := path + "." + key

		if placeholderKeys[key] {
			if _, isList := v.([]any); isList {
				c.add(DefectPlaceholderShape, childPath,
					"bare list where an identified $values holder is required")
			}
		}
		c.walkValue(v, childPath)
	}
}

func (c *checker) walkValue(v any, path string) {
	switch t := v.(type) {
	case *Object:
		c.walkObject(t, path)
	case ident.Ref:
		if !c.defined[t.Target.String()] {
			c.add(DefectUnresolvedReference, path, "reference to undefined identity %q", t.Target)
		}
	case []any:
		for i, item := range t {
			c.walkValue(item, fmt.Sprintf("%s[%d]", path, i))
		}
	}
}

// checkNode validates a node object against its registry schema: property
// keys and required-port records.
func (c *checker) checkNode(o *Object, typeString, path string) {
	def, err := c.reg.DefinitionByTypeString(typeString)
	if err != nil {
		c.add(DefectUnknownPropertyKey, path, "node type %q is not registered", typeString)
		return
	}

	extras := make(map[string]bool, len(def.ExtraNumeric))
	for _, e := range def.ExtraNumeric {
		extras[e.Name] = true
	}

	for _, key := range o.Keys() {
		if commonNodeKeys[key] || extras[key] {
			continue
		}
		if _, ok := def.Property(key); !ok {
			c.add(DefectUnknownPropertyKey, path+"."+key,
				"%s does not define property %q", def.Name, key)
		}
	}

	records := recordedPorts(o)
	for _, pd := range def.Ports {
		if pd.Required && pd.Dir == registry.In && !records[pd.Name] {
			c.add(DefectMissingRecord, path,
				"required port %q has no connection record", pd.Name)
		}
	}
}

// recordedPorts returns the set of port names carrying a Record.
func recordedPorts(node *Object) map[string]bool {
	out := make(map[string]bool)
	ports := node.GetObject("Ports")
	if ports == nil {
		return out
	}
	values, _ := ports.Get("$values")
	list, ok := values.([]any)
	if !ok {
		return out
	}
	for _, item := range list {
		port, ok := item.(*Object)
		if !ok {
			continue
		}
		name, _ := port.GetString("Name")
		if _, hasRecord := port.Get("Record"); hasRecord {
			out[name] = true
		}
	}
	return out
}

// maxIdentity scans the tree for the highest numeric "$id".
func maxIdentity(o *Object) ident.ID {
	var max ident.ID
	var visit func(v any)
	visit = func(v any) {
		switch t := v.(type) {
		case *Object:
			if id, ok := t.ID(); ok {
				if n, err := strconv.Atoi(id); err == nil && ident.ID(n) > max {
					max = ident.ID(n)
				}
			}
			for _, k := range t.Keys() {
				val, _ := t.Get(k)
				visit(val)
			}
		case []any:
			for _, item := range t {
				visit(item)
			}
		}
	}
	visit(o)
	return max
}
