package terrain

import (
	"github.com/terrasmith/terrasmith/pkg/ident"
	"github.com/terrasmith/terrasmith/pkg/registry"
)

// Repair attempts one automatic repair pass over a defective document.
//
// It re-assembles a corrected generation rather than mutating the input:
// colliding identities are re-allocated from a counter advanced past every
// identity observed in the document, property keys absent from their type
// definition are dropped, and bare-list placeholders are coerced back into
// identified "$values" holders. The result is re-checked exactly once;
// whatever remains is returned for the caller to surface. Repair is
// best-effort and never loops.
//
// Repairing an already-clean document returns an equal generation.
func Repair(doc *Document, defects []StructuralDefect, reg *registry.Registry) (*Document, []StructuralDefect) {
	if len(defects) == 0 {
		return &Document{Root: doc.Root.Clone()}, nil
	}

	root := doc.Root.Clone()

	alloc := ident.New()
	alloc.Advance(maxIdentity(root))

	r := &repairer{reg: reg, alloc: alloc, seen: make(map[string]bool)}
	r.fixObject(root)

	repaired := &Document{Root: root}
	return repaired, Check(repaired, reg)
}

type repairer struct {
	reg   *registry.Registry
	alloc *ident.Allocator
	seen  map[string]bool
}

func (r *repairer) fixObject(o *Object) {
	if o.IsRef() {
		return
	}

	// Re-allocate the second and later definitions of a shared identity.
	// References to the old identity keep resolving to the first
	// definition, which is the one the format considers defining.
	if id, ok := o.ID(); ok {
		if r.seen[id] {
			o.Set("$id", r.alloc.Next().String())
		} else {
			r.seen[id] = true
		}
	}

	if ts, ok := o.GetString("$type"); ok {
		r.fixNode(o, ts)
	}

	for _, key := range o.Keys() {
		v, _ := o.Get(key)

		if placeholderKeys[key] {
			if list, isList := v.([]any); isList {
				holder := NewValues(r.alloc, list...)
				o.Set(key, holder)
				v = holder
			}
		}
		r.fixValue(v)
	}
}

func (r *repairer) fixValue(v any) {
	switch t := v.(type) {
	case *Object:
		r.fixObject(t)
	case []any:
		for _, item := range t {
			r.fixValue(item)
		}
	}
}

// fixNode drops property keys the node's type does not define. Unknown
// types are left alone; inventing a schema would be worse than reporting.
func (r *repairer) fixNode(o *Object, typeString string) {
	def, err := r.reg.DefinitionByTypeString(typeString)
	if err != nil {
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
			o.Delete(key)
		}
	}
}
