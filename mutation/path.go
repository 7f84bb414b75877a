// Package mutation computes the legal mutation paths into a registered
// type: every field, element, and variant accessor, each with a
// wire-correct example value and a mutability verdict. The walk is a
// bounded recursive descent over registry schemas, dispatched on the
// closed TypeKind set.
package mutation

import (
	"encoding/json"
	"fmt"
)

// Mutability is the verdict for one path. A parent's verdict is a
// strict function of its children: NotMutable when no mutable
// descendant was used in assembly, PartiallyMutable when mixed,
// Mutable otherwise.
type Mutability int

const (
	NotMutable Mutability = iota
	PartiallyMutable
	Mutable
)

func (m Mutability) String() string {
	switch m {
	case Mutable:
		return "mutable"
	case PartiallyMutable:
		return "partially_mutable"
	default:
		return "not_mutable"
	}
}

// MarshalJSON emits the snake_case wire form.
func (m Mutability) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

// UnmarshalJSON accepts the snake_case wire form.
func (m *Mutability) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch s {
	case "mutable":
		*m = Mutable
	case "partially_mutable":
		*m = PartiallyMutable
	case "not_mutable":
		*m = NotMutable
	default:
		return fmt.Errorf("unknown mutability %q", s)
	}
	return nil
}

// Reason explains a NotMutable or PartiallyMutable verdict. Reasons are
// values, never aborts; one field's reason never affects its siblings.
type Reason string

const (
	ReasonNotInRegistry              Reason = "NotInRegistry"
	ReasonRecursionLimitExceeded     Reason = "RecursionLimitExceeded"
	ReasonMissingSerializationTraits Reason = "MissingSerializationTraits"
	ReasonNoMutableChildren          Reason = "NoMutableChildren"
)

// Path is one mutation path into a type. The root path ("") always
// exists. Paths are assembled bottom-up and never mutated after the
// walk returns them.
type Path struct {
	Path        string     `json:"path"`
	TypeName    string     `json:"type_name"`
	Mutability  Mutability `json:"mutability"`
	Reason      Reason     `json:"reason,omitempty"`
	Description string     `json:"description,omitempty"`
	Example     any        `json:"example,omitempty"`
	Examples    []any      `json:"examples,omitempty"`
	EnumMeta    *EnumMeta  `json:"enum_metadata,omitempty"`
}

// EnumMeta rides on paths that reach inside an enum variant. The path is
// only valid while one of Variants is active; RootExample is a complete
// root value that activates such a variant first.
type EnumMeta struct {
	Variants    []string `json:"applicable_variants"`
	RootExample any      `json:"root_example"`
}

// VariantRef is one step of the variant chain: descending into a
// variant of an enum type.
type VariantRef struct {
	EnumType string `json:"enum_type"`
	Variant  string `json:"variant"`
}
