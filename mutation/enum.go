package mutation

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"github.com/natepiano/bevy-brp-sub002/registry"
)

// variantGroup collects the variants sharing one structural signature.
// The group is walked once; every member variant is listed in names.
type variantGroup struct {
	sig   VariantSignature
	names []string
	first registry.Variant
}

// groupVariants dedupes shape-identical variants, preserving first
// occurrence order.
func groupVariants(schema *registry.Schema) []variantGroup {
	var groups []variantGroup
	index := map[string]int{}
	for _, v := range schema.OneOf {
		sig := SignatureOf(v)
		key := sig.Key()
		if i, ok := index[key]; ok {
			groups[i].names = append(groups[i].names, v.Name)
			continue
		}
		index[key] = len(groups)
		groups = append(groups, variantGroup{sig: sig, names: []string{v.Name}, first: v})
	}
	return groups
}

// buildEnum walks an enum. Shape-identical variants are grouped so each
// distinct signature is recursed once, and a combined example set is
// produced with one entry per shape.
//
// Variant-inner paths are exposed only when the enum is the root of the
// walk: an enum reached as a field must be set atomically, since only
// one variant is active at a time. Exposed inner paths carry EnumMeta
// naming the variants they apply to and a root example that activates
// one of them.
func (b *Builder) buildEnum(ctx context.Context, wc Context, schema *registry.Schema) level {
	if len(schema.OneOf) == 0 {
		return single(wc, NotMutable, ReasonNotInRegistry, nil)
	}
	if !schema.HasSerialize() || !schema.HasDeserialize() {
		return single(wc, NotMutable, ReasonMissingSerializationTraits, nil)
	}

	expose := wc.depth == 0
	groups := groupVariants(schema)

	examples := make([]any, 0, len(groups))
	var children []Path
	var muts []Mutability
	for _, g := range groups {
		example, paths, m := b.buildVariantGroup(ctx, wc, g, expose)
		examples = append(examples, example)
		children = append(children, paths...)
		muts = append(muts, m)
	}

	mutability, reason := aggregate(muts)
	self := Path{
		Path:        wc.path,
		TypeName:    wc.typeName,
		Mutability:  mutability,
		Reason:      reason,
		Example:     examples[0],
		Examples:    examples,
		Description: describeRoot(wc),
	}
	if self.Description == "" {
		self.Description = fmt.Sprintf("set the active variant of %s", schema.ShortPath)
	}
	return level{
		paths:      append([]Path{self}, children...),
		example:    examples[0],
		mutability: mutability,
		reason:     reason,
	}
}

// buildVariantGroup produces the wire example for one variant shape,
// the group's folded mutability verdict, and, when expose is set, the
// paths into its inner types. A unit variant has no payload to fail,
// so it is a trivially mutable option.
func (b *Builder) buildVariantGroup(ctx context.Context, wc Context, g variantGroup, expose bool) (any, []Path, Mutability) {
	name := g.names[0]
	var example any
	var paths []Path
	var muts []Mutability

	switch g.sig.Kind {
	case SigUnit:
		example = name
		muts = append(muts, Mutable)

	case SigTuple:
		if g.first.Kind != "Tuple" {
			// Walker invariant: an indexed signature must come from a
			// tuple variant. Anything else is a miscoded walker.
			panic(fmt.Sprintf("mutation: indexed access into non-tuple variant %s::%s", wc.typeName, name))
		}
		inner := make([]any, 0, len(g.first.PrefixItems))
		for i, ref := range g.first.PrefixItems {
			cwc := wc.child("."+strconv.Itoa(i), ref.TypeName()).withVariant(VariantRef{EnumType: wc.typeName, Variant: name})
			if !expose {
				cwc = cwc.withSkip()
			}
			if e, ok := b.knowledge.ForVariant(wc.typeName, g.sig.Key(), i); ok {
				cwc = cwc.withOverride(&e)
			}
			clv := b.walk(ctx, cwc)
			inner = append(inner, clv.example)
			muts = append(muts, clv.mutability)
			if expose {
				if len(clv.paths) > 0 && clv.paths[0].Path == cwc.path && clv.paths[0].Description == "" {
					clv.paths[0].Description = fmt.Sprintf("mutate element %d of the %s variant", i, name)
				}
				paths = append(paths, clv.paths...)
			}
		}
		if len(inner) == 1 {
			example = map[string]any{name: inner[0]}
		} else {
			example = map[string]any{name: inner}
		}

	case SigStruct:
		if g.first.Kind != "Struct" {
			panic(fmt.Sprintf("mutation: field access into non-struct variant %s::%s", wc.typeName, name))
		}
		fields := make([]string, 0, len(g.first.Properties))
		for field := range g.first.Properties {
			fields = append(fields, field)
		}
		sort.Strings(fields)
		inner := make(map[string]any, len(fields))
		for i, field := range fields {
			ref := g.first.Properties[field]
			cwc := wc.child("."+field, ref.TypeName()).withVariant(VariantRef{EnumType: wc.typeName, Variant: name})
			if !expose {
				cwc = cwc.withSkip()
			}
			if e, ok := b.knowledge.ForVariant(wc.typeName, g.sig.Key(), i); ok {
				cwc = cwc.withOverride(&e)
			}
			clv := b.walk(ctx, cwc)
			muts = append(muts, clv.mutability)
			if clv.example != nil {
				inner[field] = clv.example
			}
			if expose {
				if len(clv.paths) > 0 && clv.paths[0].Path == cwc.path && clv.paths[0].Description == "" {
					clv.paths[0].Description = fmt.Sprintf("mutate the `%s` field of the %s variant", field, name)
				}
				paths = append(paths, clv.paths...)
			}
		}
		example = map[string]any{name: inner}
	}

	if expose {
		meta := &EnumMeta{Variants: g.names, RootExample: example}
		for i := range paths {
			paths[i].EnumMeta = meta
		}
	}
	mutability, _ := aggregate(muts)
	return example, paths, mutability
}
