package model

import "encoding/json"

// Kind discriminates the variants of Value.
type Kind uint8

const (
	KindString Kind = iota
	KindNumber
	KindBool
	KindNull
	KindObject
	KindArray
)

// Value represents a single JSON value. Exactly one variant is populated,
// selected by Kind. Numbers keep their textual form (json.Number) so nothing
// is lost between parsing and rendering.
type Value struct {
	Kind Kind
	Str  string
	Num  json.Number
	Bool bool
	Obj  []Field // ordered, insertion order from the source text
	Arr  []Value
}

// Field is one key/value pair of a JSON object. Order of fields is
// significant and preserved through parsing and iteration.
type Field struct {
	Name  string
	Value Value
}

func String(s string) Value       { return Value{Kind: KindString, Str: s} }
func Number(n json.Number) Value  { return Value{Kind: KindNumber, Num: n} }
func Bool(b bool) Value           { return Value{Kind: KindBool, Bool: b} }
func Null() Value                 { return Value{Kind: KindNull} }
func Object(fields []Field) Value { return Value{Kind: KindObject, Obj: fields} }
func Array(elems []Value) Value   { return Value{Kind: KindArray, Arr: elems} }

// ---------------------------------------------------------------------------
// FieldMap
// ---------------------------------------------------------------------------

// FieldMap is an order-preserving map from field name to Value, used for the
// top level of each log line. One instance is allocated per process and
// reused for every line: Reset clears the entries but keeps the backing
// storage, so the hot per-line path does not reallocate.
type FieldMap struct {
	fields []Field
	index  map[string]int
}

// NewFieldMap returns a FieldMap with room for n fields before growing.
func NewFieldMap(n int) *FieldMap {
	return &FieldMap{
		fields: make([]Field, 0, n),
		index:  make(map[string]int, n),
	}
}

// Reset removes all entries while retaining backing storage.
func (m *FieldMap) Reset() {
	m.fields = m.fields[:0]
	clear(m.index)
}

// Set inserts a field, preserving insertion order. Setting an existing name
// overwrites its value in place (last write wins, standard JSON object
// semantics) without changing its position.
func (m *FieldMap) Set(name string, v Value) {
	if i, ok := m.index[name]; ok {
		m.fields[i].Value = v
		return
	}
	m.index[name] = len(m.fields)
	m.fields = append(m.fields, Field{Name: name, Value: v})
}

// Len returns the number of fields.
func (m *FieldMap) Len() int { return len(m.fields) }

// At returns the field at position i in insertion order.
func (m *FieldMap) At(i int) Field { return m.fields[i] }

// Index returns the position of name, if present.
func (m *FieldMap) Index(name string) (int, bool) {
	i, ok := m.index[name]
	return i, ok
}
