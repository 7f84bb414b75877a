// Package registry models the structural type schemas exported by a
// BRP target's reflection registry and provides the read-only store the
// mutation-path walker consumes.
package registry

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// refPrefix is how the registry export refers to other types.
const refPrefix = "#/$defs/"

// TypeRef is a reference to another registered type, wrapped the way the
// registry emits it: {"type": {"$ref": "#/$defs/<full type path>"}}.
type TypeRef struct {
	Type *RefTarget `json:"type,omitempty"`
}

// RefTarget holds the raw $ref string.
type RefTarget struct {
	Ref string `json:"$ref"`
}

// TypeName returns the fully-qualified type name the reference points
// at, or "" when the reference is absent or malformed.
func (r TypeRef) TypeName() string {
	if r.Type == nil {
		return ""
	}
	return strings.TrimPrefix(r.Type.Ref, refPrefix)
}

// Ref builds a TypeRef pointing at the named type. Used by tests and
// fakes; the wire format produces these via JSON decoding.
func Ref(typeName string) TypeRef {
	return TypeRef{Type: &RefTarget{Ref: refPrefix + typeName}}
}

// Schema is one structural type description from the registry export.
// Which payload fields are meaningful depends on the kind discriminant:
// Struct uses Properties/Required, TupleStruct and Tuple use PrefixItems,
// Enum uses OneOf, Array/List/Set use Items, Map uses KeyType/ValueType,
// and Value carries only the scalar Type hint.
type Schema struct {
	ShortPath    string             `json:"shortPath"`
	TypePath     string             `json:"typePath"`
	ModulePath   string             `json:"modulePath,omitempty"`
	CrateName    string             `json:"crateName,omitempty"`
	ReflectTypes []string           `json:"reflectTypes,omitempty"`
	Kind         string             `json:"kind"`
	Type         string             `json:"type,omitempty"`
	KeyType      *TypeRef           `json:"keyType,omitempty"`
	ValueType    *TypeRef           `json:"valueType,omitempty"`
	Items        *TypeRef           `json:"items,omitempty"`
	PrefixItems  []TypeRef          `json:"prefixItems,omitempty"`
	Properties   map[string]TypeRef `json:"properties,omitempty"`
	Required     []string           `json:"required,omitempty"`
	OneOf        []Variant          `json:"oneOf,omitempty"`
}

// HasReflect reports whether the type registered the named reflect trait
// (e.g. "Component", "Resource", "Serialize", "Deserialize").
func (s *Schema) HasReflect(trait string) bool {
	for _, t := range s.ReflectTypes {
		if t == trait {
			return true
		}
	}
	return false
}

// HasSerialize reports wire-serialization support.
func (s *Schema) HasSerialize() bool { return s.HasReflect("Serialize") }

// HasDeserialize reports wire-deserialization support.
func (s *Schema) HasDeserialize() bool { return s.HasReflect("Deserialize") }

// ArrayLen extracts N from a fixed-size array type path like
// "[f32; 3]". It returns 0 when the path does not carry a length.
func (s *Schema) ArrayLen() int {
	path := s.TypePath
	if !strings.HasPrefix(path, "[") || !strings.HasSuffix(path, "]") {
		return 0
	}
	idx := strings.LastIndex(path, "; ")
	if idx < 0 {
		return 0
	}
	n, err := strconv.Atoi(strings.TrimSuffix(path[idx+2:], "]"))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// Variant is one enum variant from a schema's oneOf list. Unit variants
// arrive as bare strings; tuple and struct variants arrive as objects
// with their own payload.
type Variant struct {
	Name        string             `json:"shortPath"`
	Kind        string             `json:"kind,omitempty"`
	PrefixItems []TypeRef          `json:"prefixItems,omitempty"`
	Properties  map[string]TypeRef `json:"properties,omitempty"`
	Required    []string           `json:"required,omitempty"`
}

// UnmarshalJSON accepts both the bare-string unit form and the object
// form the registry emits.
func (v *Variant) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var name string
		if err := json.Unmarshal(data, &name); err != nil {
			return err
		}
		v.Name = name
		v.Kind = "Unit"
		return nil
	}
	type objectVariant Variant
	var ov objectVariant
	if err := json.Unmarshal(data, &ov); err != nil {
		return fmt.Errorf("invalid enum variant: %w", err)
	}
	*v = Variant(ov)
	if v.Kind == "" {
		// Objects without an explicit kind are classified by payload.
		switch {
		case len(v.PrefixItems) > 0:
			v.Kind = "Tuple"
		case len(v.Properties) > 0:
			v.Kind = "Struct"
		default:
			v.Kind = "Unit"
		}
	}
	return nil
}
