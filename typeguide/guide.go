package typeguide

import (
	"context"
	"log/slog"
	"sort"
	"sync"

	"github.com/natepiano/bevy-brp-sub002/mutation"
	"github.com/natepiano/bevy-brp-sub002/registry"
)

// Guide derives unified records from a registry snapshot. It holds only
// read-only state; concurrent ForType calls are independent.
type Guide struct {
	store   *registry.Store
	builder *mutation.Builder
	log     *slog.Logger
}

// GuideOption configures a Guide.
type GuideOption func(*Guide)

// WithBuilder substitutes the mutation path builder.
func WithBuilder(b *mutation.Builder) GuideOption {
	return func(g *Guide) { g.builder = b }
}

// WithGuideLogger sets the logger.
func WithGuideLogger(log *slog.Logger) GuideOption {
	return func(g *Guide) { g.log = log }
}

// NewGuide builds a Guide over the given store.
func NewGuide(store *registry.Store, opts ...GuideOption) *Guide {
	g := &Guide{
		store: store,
		log:   slog.Default(),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.builder == nil {
		g.builder = mutation.NewBuilder(store)
	}
	return g
}

// ForType produces the registry-derived record for one type. A type
// absent from the registry yields a record with InRegistry=false rather
// than an error.
func (g *Guide) ForType(ctx context.Context, typeName string) *Record {
	rec := &Record{TypeName: typeName, Source: SourceRegistry}

	schema, ok := g.store.Get(typeName)
	if !ok {
		return rec
	}
	rec.InRegistry = true
	rec.HasSerialize = schema.HasSerialize()
	rec.HasDeserialize = schema.HasDeserialize()
	rec.Category = categoryOf(schema)
	rec.Schema = summarize(schema)
	if registry.KindOf(schema) == registry.KindEnum {
		for _, v := range schema.OneOf {
			rec.EnumVariants = append(rec.EnumVariants, v.Name)
		}
	}

	paths := g.builder.Build(ctx, typeName)
	rec.MutationPaths = make(map[string]mutation.Path, len(paths))
	mutatable := false
	for _, p := range paths {
		rec.MutationPaths[p.Path] = p
		if p.Mutability != mutation.NotMutable {
			mutatable = true
		}
	}
	if root, ok := rec.MutationPaths[""]; ok && root.Example != nil {
		rec.SpawnFormat = root.Example
	}

	rec.Operations = supportedOperations(schema, mutatable)
	rec.Examples = map[Operation]any{}
	if rec.SpawnFormat != nil {
		for _, op := range rec.Operations {
			if op == OpSpawn || op == OpInsert {
				rec.Examples[op] = rec.SpawnFormat
			}
		}
	}
	return rec
}

// ForTypes derives records for a batch of type names. Each type is an
// independent walk over the shared read-only store, so the batch runs
// concurrently with no cross-synchronization beyond result collection.
func (g *Guide) ForTypes(ctx context.Context, typeNames []string) map[string]*Record {
	out := make(map[string]*Record, len(typeNames))
	var mu sync.Mutex
	var wg sync.WaitGroup
	for _, name := range typeNames {
		wg.Add(1)
		go func(name string) {
			defer wg.Done()
			rec := g.ForType(ctx, name)
			mu.Lock()
			out[name] = rec
			mu.Unlock()
		}(name)
	}
	wg.Wait()
	return out
}

// categoryOf classifies a type by its registered reflect traits.
func categoryOf(schema *registry.Schema) string {
	switch {
	case schema.HasReflect("Component"):
		return "Component"
	case schema.HasReflect("Resource"):
		return "Resource"
	default:
		return "Value"
	}
}

// supportedOperations derives what BRP operations make sense for the
// type: components are queryable and gettable once registered, spawn
// and insert need full serialization support, and mutate needs at
// least one mutable path.
func supportedOperations(schema *registry.Schema, mutatable bool) []Operation {
	var ops []Operation
	if schema.HasReflect("Component") {
		ops = append(ops, OpQuery, OpGet)
		if schema.HasSerialize() && schema.HasDeserialize() {
			ops = append(ops, OpSpawn, OpInsert)
		}
	}
	if mutatable {
		ops = append(ops, OpMutate)
	}
	return ops
}

func summarize(schema *registry.Schema) *Summary {
	s := &Summary{
		Kind:     schema.Kind,
		Required: schema.Required,
		Module:   schema.ModulePath,
		Crate:    schema.CrateName,
	}
	for field := range schema.Properties {
		s.Fields = append(s.Fields, field)
	}
	sort.Strings(s.Fields)
	return s
}
