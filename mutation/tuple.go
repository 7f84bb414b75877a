package mutation

import (
	"context"
	"fmt"
	"strconv"

	"github.com/natepiano/bevy-brp-sub002/registry"
)

// buildTupleLike handles TupleStruct and Tuple kinds: one child per
// positional element with a `.index` accessor. A single-element tuple
// struct unwraps to its bare inner value on the wire, so its example is
// the inner example, not a one-element array.
func (b *Builder) buildTupleLike(ctx context.Context, wc Context, schema *registry.Schema, teach map[string]any, unwrapSingle bool) level {
	n := len(schema.PrefixItems)
	if n == 0 {
		// Marker tuple struct; only whole-value replacement applies.
		return single(wc, Mutable, "", []any{})
	}

	elems := make([]any, n)
	var children []Path
	var muts []Mutability
	for i, ref := range schema.PrefixItems {
		cwc := wc.child("."+strconv.Itoa(i), ref.TypeName())
		if e, ok := b.knowledge.ForField(wc.typeName, strconv.Itoa(i)); ok {
			cwc = cwc.withOverride(&e)
		}
		clv := b.walk(ctx, cwc)
		if sub, ok := teach[strconv.Itoa(i)]; ok {
			clv.example = sub
			patchExample(clv.paths, cwc.path, sub)
		}
		muts = append(muts, clv.mutability)
		elems[i] = clv.example
		if len(clv.paths) > 0 && clv.paths[0].Path == cwc.path && clv.paths[0].Description == "" {
			clv.paths[0].Description = fmt.Sprintf("mutate element %d of %s", i, schema.ShortPath)
		}
		children = append(children, clv.paths...)
	}

	var example any
	if n == 1 && unwrapSingle {
		example = elems[0]
	} else {
		example = elems
	}

	mutability, reason := aggregate(muts)
	self := Path{
		Path:        wc.path,
		TypeName:    wc.typeName,
		Mutability:  mutability,
		Reason:      reason,
		Example:     example,
		Description: describeRoot(wc),
	}
	return level{
		paths:      append([]Path{self}, children...),
		example:    example,
		mutability: mutability,
		reason:     reason,
	}
}
