// Package compose turns container inspection records into compose documents.
//
// Attributes are built as a small tree of Values and run through one shared
// emptiness predicate before they reach the document. The renderer walks the
// same tree, so key order and quoting are decided here rather than by
// struct tags.
package compose

// Kind discriminates the Value variants.
type Kind int

const (
	KindAbsent Kind = iota
	KindScalar
	KindList
	KindMapping
)

// Style is the quoting hint a scalar carries to the renderer.
type Style int

const (
	StyleDefault Style = iota
	// StyleSingleQuoted keeps YAML parsers from resolving the scalar to a
	// non-string type, e.g. a timestamp.
	StyleSingleQuoted
)

// Value is an output attribute value: absent, scalar, list or mapping.
// The zero Value is absent.
type Value struct {
	kind    Kind
	scalar  any
	style   Style
	list    []Value
	mapping *Mapping
}

// Absent is the value of a field that has no source.
var Absent = Value{}

// String returns a string scalar.
func String(s string) Value { return Value{kind: KindScalar, scalar: s} }

// Quoted returns a string scalar that renders single-quoted.
func Quoted(s string) Value { return Value{kind: KindScalar, scalar: s, style: StyleSingleQuoted} }

// Bool returns a boolean scalar.
func Bool(b bool) Value { return Value{kind: KindScalar, scalar: b} }

// Int returns an integer scalar.
func Int(n int64) Value { return Value{kind: KindScalar, scalar: n} }

// Uint returns an unsigned integer scalar.
func Uint(n uint64) Value { return Value{kind: KindScalar, scalar: n} }

// List returns a list value.
func List(items ...Value) Value {
	if items == nil {
		items = []Value{}
	}
	return Value{kind: KindList, list: items}
}

// Strings returns a list of string scalars. A nil slice yields Absent so
// callers can tell "no source" from "empty source".
func Strings(ss []string) Value {
	if ss == nil {
		return Absent
	}
	items := make([]Value, 0, len(ss))
	for _, s := range ss {
		items = append(items, String(s))
	}
	return List(items...)
}

// Map wraps a Mapping. A nil Mapping yields Absent.
func Map(m *Mapping) Value {
	if m == nil {
		return Absent
	}
	return Value{kind: KindMapping, mapping: m}
}

// Kind reports the variant.
func (v Value) Kind() Kind { return v.kind }

// Scalar returns the scalar payload, or nil for non-scalars.
func (v Value) Scalar() any { return v.scalar }

// Style returns the quoting hint of a scalar.
func (v Value) Style() Style { return v.style }

// Items returns the elements of a list value.
func (v Value) Items() []Value { return v.list }

// Mapping returns the mapping payload, or nil for non-mappings.
func (v Value) Mapping() *Mapping { return v.mapping }

// emptyStrings are the literal strings the engine uses to mean "unset".
var emptyStrings = map[string]bool{
	"":        true,
	"null":    true,
	"default": true,
	",":       true,
	"no":      true,
}

// IsEmpty reports whether v is one of the sentinels that keep an attribute
// out of the document: absent, "", "null", "default", ",", "no", numeric
// zero (false included), an empty list or an empty mapping.
func IsEmpty(v Value) bool {
	switch v.kind {
	case KindAbsent:
		return true
	case KindList:
		return len(v.list) == 0
	case KindMapping:
		return v.mapping == nil || v.mapping.Len() == 0
	}
	switch s := v.scalar.(type) {
	case nil:
		return true
	case string:
		return emptyStrings[s]
	case bool:
		return !s
	case int64:
		return s == 0
	case uint64:
		return s == 0
	}
	return false
}

// Prune removes empty entries from mappings, recursing into nested
// mappings. Lists are returned untouched.
func Prune(v Value) Value {
	if v.kind != KindMapping {
		return v
	}
	if v.mapping == nil {
		return Absent
	}
	out := NewMapping()
	for _, k := range v.mapping.Keys() {
		child := Prune(v.mapping.Get(k))
		if IsEmpty(child) {
			continue
		}
		out.Set(k, child)
	}
	return Map(out)
}

// Mapping is an insertion-ordered string-keyed map of Values.
type Mapping struct {
	keys   []string
	values map[string]Value
}

// NewMapping returns an empty Mapping.
func NewMapping() *Mapping {
	return &Mapping{values: map[string]Value{}}
}

// Set stores v under k. Replacing an existing key keeps its position.
func (m *Mapping) Set(k string, v Value) {
	if _, ok := m.values[k]; !ok {
		m.keys = append(m.keys, k)
	}
	m.values[k] = v
}

// SetIfNotEmpty stores v under k unless IsEmpty(v).
func (m *Mapping) SetIfNotEmpty(k string, v Value) {
	if IsEmpty(v) {
		return
	}
	m.Set(k, v)
}

// Get returns the value stored under k, or Absent.
func (m *Mapping) Get(k string) Value {
	if m == nil {
		return Absent
	}
	return m.values[k]
}

// Has reports whether k is present.
func (m *Mapping) Has(k string) bool {
	if m == nil {
		return false
	}
	_, ok := m.values[k]
	return ok
}

// Keys returns the keys in insertion order.
func (m *Mapping) Keys() []string {
	if m == nil {
		return nil
	}
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// Len returns the number of entries.
func (m *Mapping) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}
