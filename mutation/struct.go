package mutation

import (
	"context"
	"fmt"
	"sort"

	"github.com/natepiano/bevy-brp-sub002/registry"
)

// buildStruct walks one child per named property with a `.field`
// accessor. A field's failure never aborts its siblings; the struct's
// own verdict is aggregated from all of them afterwards.
func (b *Builder) buildStruct(ctx context.Context, wc Context, schema *registry.Schema, teach map[string]any) level {
	fields := make([]string, 0, len(schema.Properties))
	for name := range schema.Properties {
		fields = append(fields, name)
	}
	sort.Strings(fields)

	example := make(map[string]any, len(fields))
	var children []Path
	var muts []Mutability
	for _, field := range fields {
		childType := schema.Properties[field].TypeName()
		cwc := wc.child("."+field, childType)
		if e, ok := b.knowledge.ForField(wc.typeName, field); ok {
			cwc = cwc.withOverride(&e)
		}
		clv := b.walk(ctx, cwc)
		if sub, ok := teach[field]; ok {
			clv.example = sub
			patchExample(clv.paths, cwc.path, sub)
		}
		muts = append(muts, clv.mutability)
		if clv.example != nil {
			example[field] = clv.example
		}
		if len(clv.paths) > 0 && clv.paths[0].Path == cwc.path && clv.paths[0].Description == "" {
			clv.paths[0].Description = fmt.Sprintf("mutate the `%s` field of %s", field, schema.ShortPath)
		}
		children = append(children, clv.paths...)
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
