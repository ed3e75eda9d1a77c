package terrain

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/terrasmith/terrasmith/pkg/ident"
)

// Object is a JSON object that preserves key insertion order.
//
// The editor's save format is order-sensitive, so the usual map-backed
// encoding is unusable here. Values may be *Object, ident.Ref, []any,
// string, float64, int, bool, or nil.
type Object struct {
	keys []string
	vals map[string]any
}

// NewObject creates an object carrying a freshly allocated "$id".
func NewObject(a *ident.Allocator) *Object {
	o := &Object{vals: make(map[string]any)}
	o.Set("$id", a.Next().String())
	return o
}

// NewPlainObject creates an object with no structural identity.
// Used for re-parsing existing documents and for the rare leaf objects the
// editor writes without a "$id".
func NewPlainObject() *Object {
	return &Object{vals: make(map[string]any)}
}

// NewValues creates the editor's empty-collection placeholder: an
// identified object holding a "$values" list. An empty placeholder must
// keep this shape; a bare JSON list is not interchangeable with it.
func NewValues(a *ident.Allocator, items ...any) *Object {
	o := NewObject(a)
	if items == nil {
		items = []any{}
	}
	o.Set("$values", items)
	return o
}

// Set stores a value under key, appending the key on first use and
// preserving the original position on overwrite. Returns the object for
// chaining.
func (o *Object) Set(key string, v any) *Object {
	if _, exists := o.vals[key]; !exists {
		o.keys = append(o.keys, key)
	}
	o.vals[key] = v
	return o
}

// Get returns the value stored under key.
func (o *Object) Get(key string) (any, bool) {
	v, ok := o.vals[key]
	return v, ok
}

// GetObject returns the child object stored under key, or nil when the key
// is absent or holds a non-object.
func (o *Object) GetObject(key string) *Object {
	if v, ok := o.vals[key]; ok {
		if child, ok := v.(*Object); ok {
			return child
		}
	}
	return nil
}

// GetString returns the string stored under key.
func (o *Object) GetString(key string) (string, bool) {
	if v, ok := o.vals[key]; ok {
		if s, ok := v.(string); ok {
			return s, true
		}
	}
	return "", false
}

// Delete removes key and its value, preserving the order of the rest.
func (o *Object) Delete(key string) {
	if _, exists := o.vals[key]; !exists {
		return
	}
	delete(o.vals, key)
	for i, k := range o.keys {
		if k == key {
			o.keys = append(o.keys[:i], o.keys[i+1:]...)
			break
		}
	}
}

// Keys returns the keys in insertion order.
func (o *Object) Keys() []string {
	out := make([]string, len(o.keys))
	copy(out, o.keys)
	return out
}

// Len returns the number of keys.
func (o *Object) Len() int { return len(o.keys) }

// ID returns the object's structural identity, if it carries one.
func (o *Object) ID() (string, bool) {
	return o.GetString("$id")
}

// IsRef reports whether the object is a back-reference.
func (o *Object) IsRef() bool {
	_, ok := o.GetString("$ref")
	return ok && o.Len() == 1
}

// Clone deep-copies the object tree. Repair passes operate on a clone so a
// defective document generation survives unmodified.
func (o *Object) Clone() *Object {
	cp := &Object{vals: make(map[string]any, len(o.vals))}
	for _, k := range o.keys {
		cp.Set(k, cloneValue(o.vals[k]))
	}
	return cp
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case *Object:
		return t.Clone()
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = cloneValue(item)
		}
		return out
	default:
		return v
	}
}

// MarshalJSON writes the object with keys in insertion order.
func (o *Object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range o.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		vb, err := json.Marshal(o.vals[k])
		if err != nil {
			return nil, fmt.Errorf("marshal %q: %w", k, err)
		}
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON re-parses an object, preserving the key order found in the
// input. Numbers decode as float64, nested objects as *Object.
func (o *Object) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("expected object, got %v", tok)
	}
	return o.decodeFields(dec)
}

func (o *Object) decodeFields(dec *json.Decoder) error {
	if o.vals == nil {
		o.vals = make(map[string]any)
	}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("expected key, got %v", keyTok)
		}
		val, err := decodeValue(dec)
		if err != nil {
			return fmt.Errorf("key %q: %w", key, err)
		}
		o.Set(key, val)
	}
	// Consume closing brace.
	_, err := dec.Token()
	return err
}

func decodeValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			child := NewPlainObject()
			if err := child.decodeFields(dec); err != nil {
				return nil, err
			}
			return child, nil
		case '[':
			items := []any{}
			for dec.More() {
				item, err := decodeValue(dec)
				if err != nil {
					return nil, err
				}
				items = append(items, item)
			}
			if _, err := dec.Token(); err != nil { // closing bracket
				return nil, err
			}
			return items, nil
		default:
			return nil, fmt.Errorf("unexpected delimiter %v", t)
		}
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return nil, err
		}
		return f, nil
	default:
		// string, bool, nil
		return t, nil
	}
}
