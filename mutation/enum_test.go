package mutation

import (
	"context"
	"reflect"
	"testing"

	"github.com/natepiano/bevy-brp-sub002/knowledge"
	"github.com/natepiano/bevy-brp-sub002/registry"
)

// enumStore registers an enum with five unit variants and two
// structurally identical single-f32 tuple variants.
func enumStore() *registry.Store {
	variants := []registry.Variant{
		{Name: "Red", Kind: "Unit"},
		{Name: "Green", Kind: "Unit"},
		{Name: "Blue", Kind: "Unit"},
		{Name: "Black", Kind: "Unit"},
		{Name: "White", Kind: "Unit"},
		{Name: "Gray", Kind: "Tuple", PrefixItems: []registry.TypeRef{registry.Ref(f32Type)}},
		{Name: "Alpha", Kind: "Tuple", PrefixItems: []registry.TypeRef{registry.Ref(f32Type)}},
	}
	return registry.NewStore(map[string]*registry.Schema{
		f32Type: scalarSchema(f32Type, "float", true),
		"test::Shade": {
			ShortPath:    "Shade",
			TypePath:     "test::Shade",
			Kind:         "Enum",
			OneOf:        variants,
			ReflectTypes: []string{"Serialize", "Deserialize"},
		},
		"test::Material": {
			ShortPath: "Material",
			TypePath:  "test::Material",
			Kind:      "Struct",
			Properties: map[string]registry.TypeRef{
				"shade": registry.Ref("test::Shade"),
			},
			ReflectTypes: []string{"Serialize", "Deserialize"},
		},
	})
}

func TestEnumVariantDeduplication(t *testing.T) {
	b := NewBuilder(enumStore(), WithKnowledge(knowledge.NewTable()))
	paths := b.Build(context.Background(), "test::Shade")

	root := findPath(t, paths, "")
	if len(root.Examples) != 2 {
		t.Fatalf("got %d shape examples, want 2 (unit group + tuple group): %#v", len(root.Examples), root.Examples)
	}
	if root.Examples[0] != "Red" {
		t.Fatalf("unit group example = %#v, want %q", root.Examples[0], "Red")
	}
	if !reflect.DeepEqual(root.Examples[1], map[string]any{"Gray": 1.0}) {
		t.Fatalf("tuple group example = %#v", root.Examples[1])
	}
	if root.Mutability != Mutable {
		t.Fatalf("root = %v, want mutable", root.Mutability)
	}
}

func TestEnumRootExposesVariantInnerPaths(t *testing.T) {
	b := NewBuilder(enumStore(), WithKnowledge(knowledge.NewTable()))
	paths := b.Build(context.Background(), "test::Shade")

	inner := findPath(t, paths, ".0")
	if inner.TypeName != f32Type {
		t.Fatalf(".0 type = %q, want %q", inner.TypeName, f32Type)
	}
	if inner.EnumMeta == nil {
		t.Fatal(".0 carries no enum metadata")
	}
	if !reflect.DeepEqual(inner.EnumMeta.Variants, []string{"Gray", "Alpha"}) {
		t.Fatalf("applicable variants = %#v, want [Gray Alpha]", inner.EnumMeta.Variants)
	}
	if !reflect.DeepEqual(inner.EnumMeta.RootExample, map[string]any{"Gray": 1.0}) {
		t.Fatalf("root example = %#v", inner.EnumMeta.RootExample)
	}
	// The tuple group is walked once, not once per member variant.
	count := 0
	for _, p := range paths {
		if p.Path == ".0" {
			count++
		}
	}
	if count != 1 {
		t.Fatalf(".0 appears %d times, want 1", count)
	}
}

func TestEnumAsFieldIsNotExpanded(t *testing.T) {
	b := NewBuilder(enumStore(), WithKnowledge(knowledge.NewTable()))
	paths := b.Build(context.Background(), "test::Material")

	shade := findPath(t, paths, ".shade")
	if shade.Mutability != Mutable {
		t.Fatalf(".shade = %v, want mutable", shade.Mutability)
	}
	if len(shade.Examples) != 2 {
		t.Fatalf(".shade has %d shape examples, want 2", len(shade.Examples))
	}
	// A variant is active one at a time and must be set atomically, so
	// no variant-inner path may leak out of a field position.
	if hasPath(paths, ".shade.0") {
		t.Fatal("variant-inner path .shade.0 leaked into output")
	}
}

func TestEnumWithoutSerializationIsNotMutable(t *testing.T) {
	store := registry.NewStore(map[string]*registry.Schema{
		"test::Opaque": {
			ShortPath: "Opaque",
			TypePath:  "test::Opaque",
			Kind:      "Enum",
			OneOf:     []registry.Variant{{Name: "A", Kind: "Unit"}},
		},
	})
	b := NewBuilder(store, WithKnowledge(knowledge.NewTable()))
	paths := b.Build(context.Background(), "test::Opaque")

	if len(paths) != 1 {
		t.Fatalf("got %d paths, want 1", len(paths))
	}
	if paths[0].Reason != ReasonMissingSerializationTraits {
		t.Fatalf("reason = %v, want MissingSerializationTraits", paths[0].Reason)
	}
}

func TestEnumVerdictFollowsVariantPayloads(t *testing.T) {
	// Wrapper's only variant wraps a type absent from the registry, so
	// no value for it can be assembled and the enum must not claim to
	// be mutable.
	store := registry.NewStore(map[string]*registry.Schema{
		"test::Wrapper": {
			ShortPath: "Wrapper",
			TypePath:  "test::Wrapper",
			Kind:      "Enum",
			OneOf: []registry.Variant{
				{Name: "Only", Kind: "Tuple", PrefixItems: []registry.TypeRef{registry.Ref("test::Opaque")}},
			},
			ReflectTypes: []string{"Serialize", "Deserialize"},
		},
	})
	b := NewBuilder(store, WithKnowledge(knowledge.NewTable()))
	paths := b.Build(context.Background(), "test::Wrapper")

	root := findPath(t, paths, "")
	if root.Mutability != NotMutable || root.Reason != ReasonNoMutableChildren {
		t.Fatalf("root = %v/%v, want not_mutable/NoMutableChildren", root.Mutability, root.Reason)
	}
}

func TestEnumMixedVariantPayloadsArePartiallyMutable(t *testing.T) {
	store := registry.NewStore(map[string]*registry.Schema{
		f32Type: scalarSchema(f32Type, "float", true),
		"test::Mode": {
			ShortPath: "Mode",
			TypePath:  "test::Mode",
			Kind:      "Enum",
			OneOf: []registry.Variant{
				{Name: "Auto", Kind: "Unit"},
				{Name: "Custom", Kind: "Tuple", PrefixItems: []registry.TypeRef{registry.Ref("test::Opaque")}},
			},
			ReflectTypes: []string{"Serialize", "Deserialize"},
		},
	})
	b := NewBuilder(store, WithKnowledge(knowledge.NewTable()))
	paths := b.Build(context.Background(), "test::Mode")

	// The unit variant is a usable option; the broken tuple payload is
	// not, so the verdict is mixed.
	root := findPath(t, paths, "")
	if root.Mutability != PartiallyMutable {
		t.Fatalf("root = %v, want partially_mutable", root.Mutability)
	}
}

func TestEnumTeachOverridePatchesExamplesHead(t *testing.T) {
	know := knowledge.NewTable().
		SetExact("test::Shade", knowledge.Entry{Example: "Gray"})
	b := NewBuilder(enumStore(), WithKnowledge(know))
	paths := b.Build(context.Background(), "test::Shade")

	root := findPath(t, paths, "")
	if root.Example != "Gray" {
		t.Fatalf("root example = %#v, want override", root.Example)
	}
	if len(root.Examples) == 0 || root.Examples[0] != "Gray" {
		t.Fatalf("examples head = %#v, must match the overridden example", root.Examples)
	}
}

func TestStructVariantPathsCarryMeta(t *testing.T) {
	store := registry.NewStore(map[string]*registry.Schema{
		f32Type: scalarSchema(f32Type, "float", true),
		"test::Light": {
			ShortPath: "Light",
			TypePath:  "test::Light",
			Kind:      "Enum",
			OneOf: []registry.Variant{
				{Name: "Off", Kind: "Unit"},
				{Name: "Point", Kind: "Struct", Properties: map[string]registry.TypeRef{
					"intensity": registry.Ref(f32Type),
				}},
			},
			ReflectTypes: []string{"Serialize", "Deserialize"},
		},
	})
	b := NewBuilder(store, WithKnowledge(knowledge.NewTable()))
	paths := b.Build(context.Background(), "test::Light")

	p := findPath(t, paths, ".intensity")
	if p.EnumMeta == nil || len(p.EnumMeta.Variants) != 1 || p.EnumMeta.Variants[0] != "Point" {
		t.Fatalf("enum meta = %#v, want applicable variant Point", p.EnumMeta)
	}
	want := map[string]any{"Point": map[string]any{"intensity": 1.0}}
	if !reflect.DeepEqual(p.EnumMeta.RootExample, want) {
		t.Fatalf("root example = %#v, want %#v", p.EnumMeta.RootExample, want)
	}
}
