package mutation

import (
	"context"
	"fmt"

	"github.com/natepiano/bevy-brp-sub002/registry"
)

// sequenceDefaultLen is the example length for lists and for arrays
// whose length cannot be read from the type path.
const sequenceDefaultLen = 2

// buildSequence handles Array and List kinds. The example is a
// homogeneous sequence; one indexed-element path `[0]` is exposed,
// recursing into the element type.
func (b *Builder) buildSequence(ctx context.Context, wc Context, schema *registry.Schema) level {
	if schema.Items == nil {
		return single(wc, NotMutable, ReasonNotInRegistry, nil)
	}
	elemType := schema.Items.TypeName()

	cwc := wc.child("[0]", elemType)
	clv := b.walk(ctx, cwc)
	if len(clv.paths) > 0 && clv.paths[0].Path == cwc.path && clv.paths[0].Description == "" {
		clv.paths[0].Description = fmt.Sprintf("mutate the element at index 0 of %s", schema.ShortPath)
	}

	length := sequenceDefaultLen
	if registry.KindOf(schema) == registry.KindArray {
		if n := schema.ArrayLen(); n > 0 {
			length = n
		}
	}
	example := make([]any, 0, length)
	if clv.example != nil {
		for i := 0; i < length; i++ {
			example = append(example, clv.example)
		}
	}

	mutability, reason := aggregate([]Mutability{clv.mutability})
	self := Path{
		Path:        wc.path,
		TypeName:    wc.typeName,
		Mutability:  mutability,
		Reason:      reason,
		Example:     example,
		Description: describeRoot(wc),
	}
	return level{
		paths:      append([]Path{self}, clv.paths...),
		example:    example,
		mutability: mutability,
		reason:     reason,
	}
}

// buildMap handles the Map kind. The example is an empty object; the
// value type is walked in Skip mode so its examples and verdict feed
// the aggregate without leaking key-dependent paths.
func (b *Builder) buildMap(ctx context.Context, wc Context, schema *registry.Schema) level {
	if schema.ValueType == nil {
		return single(wc, NotMutable, ReasonNotInRegistry, nil)
	}
	clv := b.walk(ctx, wc.child("", schema.ValueType.TypeName()).withSkip())

	mutability, reason := aggregate([]Mutability{clv.mutability})
	example := map[string]any{}
	return level{
		paths: []Path{{
			Path:        wc.path,
			TypeName:    wc.typeName,
			Mutability:  mutability,
			Reason:      reason,
			Example:     example,
			Description: describeRoot(wc),
		}},
		example:    example,
		mutability: mutability,
		reason:     reason,
	}
}

// buildSet handles the Set kind the same way as Map, with an empty
// array example.
func (b *Builder) buildSet(ctx context.Context, wc Context, schema *registry.Schema) level {
	if schema.Items == nil {
		return single(wc, NotMutable, ReasonNotInRegistry, nil)
	}
	clv := b.walk(ctx, wc.child("", schema.Items.TypeName()).withSkip())

	mutability, reason := aggregate([]Mutability{clv.mutability})
	example := []any{}
	return level{
		paths: []Path{{
			Path:        wc.path,
			TypeName:    wc.typeName,
			Mutability:  mutability,
			Reason:      reason,
			Example:     example,
			Description: describeRoot(wc),
		}},
		example:    example,
		mutability: mutability,
		reason:     reason,
	}
}

// buildValue handles opaque leaf types. Mutation requires both
// serialization traits; the example is derived from the scalar hint.
func (b *Builder) buildValue(wc Context, schema *registry.Schema) level {
	if !schema.HasSerialize() || !schema.HasDeserialize() {
		return single(wc, NotMutable, ReasonMissingSerializationTraits, nil)
	}
	lv := single(wc, Mutable, "", scalarExample(schema.Type))
	lv.paths[0].Description = describeRoot(wc)
	return lv
}

// scalarExample maps the registry's scalar hint to a representative
// wire value.
func scalarExample(typeHint string) any {
	switch typeHint {
	case "float", "number":
		return 1.0
	case "int":
		return 1
	case "uint":
		return 1
	case "boolean":
		return true
	case "string":
		return "example string"
	default:
		return map[string]any{}
	}
}
