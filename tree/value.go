package tree

import (
	"encoding/json"
	"strconv"
)

// Kind discriminates the three shapes a Value can take.
type Kind int

// Value kinds.
const (
	KindScalar Kind = iota
	KindMap
	KindSequence
)

func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindMap:
		return "map"
	case KindSequence:
		return "sequence"
	}
	return "unknown"
}

// Value is one node of the extracted-data tree: a scalar, a map, or a
// sequence. The zero Value is a nil scalar.
type Value struct {
	kind   Kind
	scalar any
	fields map[string]*Value
	items  []*Value
}

// NewScalar creates a scalar value. Supported dynamic types are string,
// bool, int, float64, and nil; anything else is stored as-is and serialized
// by encoding/json's rules.
func NewScalar(v any) *Value {
	return &Value{kind: KindScalar, scalar: v}
}

// NewMap creates an empty map value.
func NewMap() *Value {
	return &Value{kind: KindMap, fields: make(map[string]*Value)}
}

// NewSequence creates an empty sequence value.
func NewSequence() *Value {
	return &Value{kind: KindSequence}
}

// FromAny converts a plain Go value into a Value. Slices become sequences,
// maps become map values, everything else a scalar.
func FromAny(v any) *Value {
	switch t := v.(type) {
	case *Value:
		return t
	case []any:
		seq := NewSequence()
		for _, item := range t {
			seq.Append(FromAny(item))
		}
		return seq
	case map[string]any:
		m := NewMap()
		for k, item := range t {
			m.SetField(k, FromAny(item))
		}
		return m
	default:
		return NewScalar(v)
	}
}

// Kind returns the value's shape.
func (v *Value) Kind() Kind {
	if v == nil {
		return KindScalar
	}
	return v.kind
}

// Scalar returns the underlying scalar, or nil for non-scalars.
func (v *Value) Scalar() any {
	if v == nil || v.kind != KindScalar {
		return nil
	}
	return v.scalar
}

// Field returns the named child of a map value.
func (v *Value) Field(name string) (*Value, bool) {
	if v == nil || v.kind != KindMap {
		return nil, false
	}
	child, ok := v.fields[name]
	return child, ok
}

// SetField sets a named child on a map value. It is a no-op on non-maps.
func (v *Value) SetField(name string, child *Value) {
	if v == nil || v.kind != KindMap {
		return
	}
	v.fields[name] = child
}

// FieldNames returns the map's keys in unspecified order, or nil.
func (v *Value) FieldNames() []string {
	if v == nil || v.kind != KindMap {
		return nil
	}
	names := make([]string, 0, len(v.fields))
	for k := range v.fields {
		names = append(names, k)
	}
	return names
}

// Len returns the element count of a sequence, the field count of a map,
// and 0 for scalars.
func (v *Value) Len() int {
	if v == nil {
		return 0
	}
	switch v.kind {
	case KindSequence:
		return len(v.items)
	case KindMap:
		return len(v.fields)
	}
	return 0
}

// Index returns element i of a sequence, or nil if out of range.
func (v *Value) Index(i int) *Value {
	if v == nil || v.kind != KindSequence || i < 0 || i >= len(v.items) {
		return nil
	}
	return v.items[i]
}

// Items returns the sequence's elements, or nil.
func (v *Value) Items() []*Value {
	if v == nil || v.kind != KindSequence {
		return nil
	}
	return v.items
}

// Append adds an element to a sequence. It is a no-op on non-sequences.
func (v *Value) Append(child *Value) {
	if v == nil || v.kind != KindSequence {
		return
	}
	v.items = append(v.items, child)
}

// Grow appends empty map records until the sequence holds at least n
// elements.
func (v *Value) Grow(n int) {
	if v == nil || v.kind != KindSequence {
		return
	}
	for len(v.items) < n {
		v.items = append(v.items, NewMap())
	}
}

// Number coerces a scalar to float64. Strings are parsed; unparseable or
// non-scalar values report false.
func (v *Value) Number() (float64, bool) {
	if v == nil || v.kind != KindScalar {
		return 0, false
	}
	switch t := v.scalar.(type) {
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case json.Number:
		f, err := t.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(t, 64)
		return f, err == nil
	case bool:
		if t {
			return 1, true
		}
		return 0, true
	}
	return 0, false
}

// Truthy reports whether the value counts as true in a predicate context:
// non-empty maps/sequences, non-zero numbers, non-empty strings, true bools.
func (v *Value) Truthy() bool {
	if v == nil {
		return false
	}
	switch v.kind {
	case KindMap, KindSequence:
		return v.Len() > 0
	}
	switch t := v.scalar.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	default:
		if f, ok := v.Number(); ok {
			return f != 0
		}
		return true
	}
}

// Interface converts the tree back into plain Go values: map[string]any,
// []any, and scalars.
func (v *Value) Interface() any {
	if v == nil {
		return nil
	}
	switch v.kind {
	case KindMap:
		m := make(map[string]any, len(v.fields))
		for k, child := range v.fields {
			m[k] = child.Interface()
		}
		return m
	case KindSequence:
		s := make([]any, len(v.items))
		for i, child := range v.items {
			s[i] = child.Interface()
		}
		return s
	}
	return v.scalar
}

// MarshalJSON serializes the tree. Map keys are emitted in sorted order
// (encoding/json's map behavior), so identical trees serialize to identical
// bytes.
func (v *Value) MarshalJSON() ([]byte, error) {
	if v == nil {
		return []byte("null"), nil
	}
	switch v.kind {
	case KindMap:
		return json.Marshal(v.fields)
	case KindSequence:
		if v.items == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(v.items)
	}
	return json.Marshal(v.scalar)
}
