package mutation

import (
	"context"
	"log/slog"

	"github.com/natepiano/bevy-brp-sub002/internal/logctx"
	"github.com/natepiano/bevy-brp-sub002/knowledge"
	"github.com/natepiano/bevy-brp-sub002/registry"
)

// DefaultDepthLimit bounds the recursive walk. Exceeding it yields a
// single NotMutable path, never a crash or loop.
const DefaultDepthLimit = 10

// Builder walks registry schemas and produces mutation paths. A Builder
// holds only read-only state and is safe for concurrent use; each Build
// call owns its own context tree and accumulators.
type Builder struct {
	store     *registry.Store
	knowledge *knowledge.Table
	limit     int
	log       *slog.Logger
}

// Option configures a Builder.
type Option func(*Builder)

// WithKnowledge substitutes the knowledge table (tests swap in fakes).
func WithKnowledge(t *knowledge.Table) Option {
	return func(b *Builder) { b.knowledge = t }
}

// WithDepthLimit overrides the recursion depth limit. Non-positive
// values are ignored.
func WithDepthLimit(n int) Option {
	return func(b *Builder) {
		if n > 0 {
			b.limit = n
		}
	}
}

// WithLogger sets the logger used for walk tracing.
func WithLogger(log *slog.Logger) Option {
	return func(b *Builder) { b.log = log }
}

// NewBuilder builds a Builder over the given store.
func NewBuilder(store *registry.Store, opts ...Option) *Builder {
	b := &Builder{
		store:     store,
		knowledge: knowledge.Default(),
		limit:     DefaultDepthLimit,
		log:       slog.Default(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build returns every exposed mutation path for the named type, root
// path first. Failures are represented in the verdicts; Build itself
// never fails.
func (b *Builder) Build(ctx context.Context, typeName string) []Path {
	lv := b.walk(ctx, Context{typeName: typeName})
	return lv.paths
}

// level is the result one walk level hands its parent: the exposed
// paths, a representative example for parent assembly, and the verdict.
type level struct {
	paths      []Path
	example    any
	mutability Mutability
	reason     Reason
}

// single builds a one-path level, used by every short-circuit.
func single(wc Context, m Mutability, reason Reason, example any) level {
	return level{
		paths: []Path{{
			Path:       wc.path,
			TypeName:   wc.typeName,
			Mutability: m,
			Reason:     reason,
			Example:    example,
		}},
		example:    example,
		mutability: m,
		reason:     reason,
	}
}

// walk is the protocol enforcer: every recursive step passes through
// the same depth, registry, and knowledge checks before dispatching on
// the type kind, and the same exposure filtering after.
func (b *Builder) walk(ctx context.Context, wc Context) level {
	if wc.depth > b.limit {
		b.log.DebugContext(logctx.WithWalkData(ctx, &logctx.WalkData{TypeName: wc.typeName, Path: wc.path, Depth: wc.depth}),
			"recursion limit exceeded")
		return single(wc, NotMutable, ReasonRecursionLimitExceeded, nil)
	}

	schema, ok := b.store.Get(wc.typeName)
	if !ok {
		return single(wc, NotMutable, ReasonNotInRegistry, nil)
	}

	entry, hasEntry := b.resolveKnowledge(wc)
	if hasEntry && entry.TreatAsValue {
		lv := single(wc, Mutable, "", entry.Example)
		lv.paths[0].Description = describeRoot(wc)
		return lv
	}

	var lv level
	switch registry.KindOf(schema) {
	case registry.KindStruct:
		lv = b.buildStruct(ctx, wc, schema, teachEntry(entry, hasEntry))
	case registry.KindTupleStruct:
		lv = b.buildTupleLike(ctx, wc, schema, teachEntry(entry, hasEntry), true)
	case registry.KindTuple:
		lv = b.buildTupleLike(ctx, wc, schema, teachEntry(entry, hasEntry), false)
	case registry.KindEnum:
		lv = b.buildEnum(ctx, wc, schema)
	case registry.KindArray, registry.KindList:
		lv = b.buildSequence(ctx, wc, schema)
	case registry.KindMap:
		lv = b.buildMap(ctx, wc, schema)
	case registry.KindSet:
		lv = b.buildSet(ctx, wc, schema)
	case registry.KindValue:
		lv = b.buildValue(wc, schema)
	default:
		// Malformed or unrecognized schemas behave like absent types.
		return single(wc, NotMutable, ReasonNotInRegistry, nil)
	}

	if hasEntry && !entry.TreatAsValue && entry.Example != nil {
		lv.example = entry.Example
		patchExample(lv.paths, wc.path, entry.Example)
	}

	if wc.exposure == ExposureSkip {
		lv.paths = keepOnly(lv.paths, wc.path)
	}
	return lv
}

// resolveKnowledge applies lookup precedence: an override planted by
// the parent (struct-field or variant-element entry) beats the
// exact-type table.
func (b *Builder) resolveKnowledge(wc Context) (knowledge.Entry, bool) {
	if wc.override != nil {
		return *wc.override, true
	}
	return b.knowledge.ForType(wc.typeName)
}

// teachEntry returns the subfield map of a teach entry, or nil.
func teachEntry(e knowledge.Entry, ok bool) map[string]any {
	if !ok || e.TreatAsValue {
		return nil
	}
	return e.Subfields
}

// aggregate folds child verdicts per the mutability invariant.
func aggregate(muts []Mutability) (Mutability, Reason) {
	if len(muts) == 0 {
		return Mutable, ""
	}
	mutable, immutable := 0, 0
	for _, m := range muts {
		switch m {
		case Mutable:
			mutable++
		case NotMutable:
			immutable++
		default:
			// A partially mutable child counts on both sides.
			mutable++
			immutable++
		}
	}
	switch {
	case mutable == 0:
		return NotMutable, ReasonNoMutableChildren
	case immutable == 0:
		return Mutable, ""
	default:
		return PartiallyMutable, ""
	}
}

// patchExample replaces the example on the path entry matching path.
// Example is always the head of Examples when both are present, so an
// override rewrites that head too.
func patchExample(paths []Path, path string, example any) {
	for i := range paths {
		if paths[i].Path == path {
			paths[i].Example = example
			if len(paths[i].Examples) > 0 {
				paths[i].Examples[0] = example
			}
			return
		}
	}
}

// keepOnly filters paths down to the entry matching path.
func keepOnly(paths []Path, path string) []Path {
	for i := range paths {
		if paths[i].Path == path {
			return paths[i : i+1]
		}
	}
	return nil
}

func describeRoot(wc Context) string {
	if wc.path == "" {
		return "replace the entire value"
	}
	return ""
}
