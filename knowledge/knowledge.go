// Package knowledge holds hand-authored wire examples for types whose
// serialized form cannot be derived from their structural schema. The
// canonical case is glam's math types: structurally they are {x, y, z}
// structs, but they serialize as plain number sequences.
package knowledge

// Entry overrides the walker's structural guess for one type, field, or
// enum variant.
//
// TreatAsValue entries stop recursion entirely: the type gets a single
// mutable path with Example as its wire form. Teach entries let the
// walk proceed normally but substitute Example for the assembled root
// example and Subfields values for the matching child examples.
type Entry struct {
	Example      any
	Subfields    map[string]any
	TreatAsValue bool
}

// FieldKey addresses a named field of a specific parent type.
type FieldKey struct {
	ParentType string
	Field      string
}

// VariantKey addresses one positional element of an enum variant shape.
// Signature is the canonical key of the variant's structural signature.
type VariantKey struct {
	EnumType  string
	Signature string
	Index     int
}

// Table is a read-only lookup of override entries. Lookup precedence is
// struct-field, then enum-signature, then exact type; the walker applies
// the most specific entry it finds. Build it once and share it by
// reference; it is never mutated after construction.
type Table struct {
	exact    map[string]Entry
	fields   map[FieldKey]Entry
	variants map[VariantKey]Entry
}

// NewTable builds an empty Table.
func NewTable() *Table {
	return &Table{
		exact:    map[string]Entry{},
		fields:   map[FieldKey]Entry{},
		variants: map[VariantKey]Entry{},
	}
}

// SetExact registers an exact-type entry. Returns the table for chaining.
func (t *Table) SetExact(typeName string, e Entry) *Table {
	t.exact[typeName] = e
	return t
}

// SetField registers a struct-field entry.
func (t *Table) SetField(parentType, field string, e Entry) *Table {
	t.fields[FieldKey{ParentType: parentType, Field: field}] = e
	return t
}

// SetVariant registers an enum-variant element entry.
func (t *Table) SetVariant(enumType, signature string, index int, e Entry) *Table {
	t.variants[VariantKey{EnumType: enumType, Signature: signature, Index: index}] = e
	return t
}

// ForType looks up an exact-type entry.
func (t *Table) ForType(typeName string) (Entry, bool) {
	e, ok := t.exact[typeName]
	return e, ok
}

// ForField looks up a struct-field entry.
func (t *Table) ForField(parentType, field string) (Entry, bool) {
	e, ok := t.fields[FieldKey{ParentType: parentType, Field: field}]
	return e, ok
}

// ForVariant looks up an enum-variant element entry.
func (t *Table) ForVariant(enumType, signature string, index int) (Entry, bool) {
	e, ok := t.variants[VariantKey{EnumType: enumType, Signature: signature, Index: index}]
	return e, ok
}
