package mutation

import (
	"sort"
	"strings"

	"github.com/natepiano/bevy-brp-sub002/registry"
)

// SignatureKind distinguishes the three structural shapes an enum
// variant can take.
type SignatureKind int

const (
	SigUnit SignatureKind = iota
	SigTuple
	SigStruct
)

// FieldSig is one named field of a struct-shaped variant.
type FieldSig struct {
	Name string
	Type string
}

// VariantSignature is the structural fingerprint of an enum variant.
// Variants with equal signatures are shape-identical and are walked
// once as a group rather than once per variant.
type VariantSignature struct {
	Kind   SignatureKind
	Elems  []string   // tuple element type names, in order
	Fields []FieldSig // struct fields, sorted by name
}

// SignatureOf fingerprints a variant from its schema payload.
func SignatureOf(v registry.Variant) VariantSignature {
	switch v.Kind {
	case "Tuple":
		elems := make([]string, len(v.PrefixItems))
		for i, ref := range v.PrefixItems {
			elems[i] = ref.TypeName()
		}
		return VariantSignature{Kind: SigTuple, Elems: elems}
	case "Struct":
		fields := make([]FieldSig, 0, len(v.Properties))
		for name, ref := range v.Properties {
			fields = append(fields, FieldSig{Name: name, Type: ref.TypeName()})
		}
		sort.Slice(fields, func(i, j int) bool { return fields[i].Name < fields[j].Name })
		return VariantSignature{Kind: SigStruct, Fields: fields}
	default:
		return VariantSignature{Kind: SigUnit}
	}
}

// Key returns a canonical string form used for grouping and for
// knowledge-table lookups. Equal signatures have equal keys.
func (s VariantSignature) Key() string {
	switch s.Kind {
	case SigTuple:
		return "Tuple(" + strings.Join(s.Elems, ",") + ")"
	case SigStruct:
		parts := make([]string, len(s.Fields))
		for i, f := range s.Fields {
			parts[i] = f.Name + ":" + f.Type
		}
		return "Struct(" + strings.Join(parts, ",") + ")"
	default:
		return "Unit"
	}
}

// Equal reports structural equality.
func (s VariantSignature) Equal(o VariantSignature) bool {
	if s.Kind != o.Kind || len(s.Elems) != len(o.Elems) || len(s.Fields) != len(o.Fields) {
		return false
	}
	for i := range s.Elems {
		if s.Elems[i] != o.Elems[i] {
			return false
		}
	}
	for i := range s.Fields {
		if s.Fields[i] != o.Fields[i] {
			return false
		}
	}
	return true
}
