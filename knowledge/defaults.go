package knowledge

import "sync"

var defaultTable = sync.OnceValue(buildDefaults)

// Default returns the shipped table covering the Bevy/glam types whose
// wire form diverges from their structural schema. The table is built
// once and shared; callers must not mutate entries.
func Default() *Table {
	return defaultTable()
}

func buildDefaults() *Table {
	t := NewTable()

	// glam vectors serialize as bare number sequences, not objects.
	t.SetExact("glam::Vec2", Entry{
		Example:   []any{1.0, 2.0},
		Subfields: map[string]any{"x": 1.0, "y": 2.0},
	})
	t.SetExact("glam::Vec3", Entry{
		Example:   []any{1.0, 2.0, 3.0},
		Subfields: map[string]any{"x": 1.0, "y": 2.0, "z": 3.0},
	})
	t.SetExact("glam::Vec3A", Entry{
		Example:   []any{1.0, 2.0, 3.0},
		Subfields: map[string]any{"x": 1.0, "y": 2.0, "z": 3.0},
	})
	t.SetExact("glam::Vec4", Entry{
		Example:   []any{1.0, 2.0, 3.0, 4.0},
		Subfields: map[string]any{"x": 1.0, "y": 2.0, "z": 3.0, "w": 4.0},
	})
	t.SetExact("glam::Quat", Entry{
		Example:   []any{0.0, 0.0, 0.0, 1.0},
		Subfields: map[string]any{"x": 0.0, "y": 0.0, "z": 0.0, "w": 1.0},
	})
	for _, name := range []string{"glam::IVec2", "glam::UVec2"} {
		t.SetExact(name, Entry{
			Example:   []any{1, 2},
			Subfields: map[string]any{"x": 1, "y": 2},
		})
	}
	for _, name := range []string{"glam::IVec3", "glam::UVec3"} {
		t.SetExact(name, Entry{
			Example:   []any{1, 2, 3},
			Subfields: map[string]any{"x": 1, "y": 2, "z": 3},
		})
	}
	for _, name := range []string{"glam::IVec4", "glam::UVec4"} {
		t.SetExact(name, Entry{
			Example:   []any{1, 2, 3, 4},
			Subfields: map[string]any{"x": 1, "y": 2, "z": 3, "w": 4},
		})
	}
	t.SetExact("glam::Mat3", Entry{
		Example: []any{
			[]any{1.0, 0.0, 0.0},
			[]any{0.0, 1.0, 0.0},
			[]any{0.0, 0.0, 1.0},
		},
		TreatAsValue: true,
	})
	t.SetExact("glam::Mat4", Entry{
		Example: []any{
			[]any{1.0, 0.0, 0.0, 0.0},
			[]any{0.0, 1.0, 0.0, 0.0},
			[]any{0.0, 0.0, 1.0, 0.0},
			[]any{0.0, 0.0, 0.0, 1.0},
		},
		TreatAsValue: true,
	})

	// Color variants wrap per-space color structs; seed wire-correct
	// channel values so variant examples are not all zero.
	t.SetVariant("bevy_color::color::Color", "Tuple(bevy_color::srgba::Srgba)", 0, Entry{
		Example: map[string]any{"red": 1.0, "green": 0.0, "blue": 0.0, "alpha": 1.0},
	})
	t.SetVariant("bevy_color::color::Color", "Tuple(bevy_color::linear_rgba::LinearRgba)", 0, Entry{
		Example: map[string]any{"red": 1.0, "green": 0.0, "blue": 0.0, "alpha": 1.0},
	})
	t.SetVariant("bevy_color::color::Color", "Tuple(bevy_color::hsla::Hsla)", 0, Entry{
		Example: map[string]any{"hue": 180.0, "saturation": 0.5, "lightness": 0.5, "alpha": 1.0},
	})

	// Name is a single-field tuple struct over a SmolStr the registry
	// cannot describe; its wire form is a bare string.
	t.SetExact("bevy_ecs::name::Name", Entry{
		Example:      "Entity Name",
		TreatAsValue: true,
	})
	t.SetExact("bevy_core::name::Name", Entry{
		Example:      "Entity Name",
		TreatAsValue: true,
	})

	// Entity serializes as its packed u64 bits.
	t.SetExact("bevy_ecs::entity::Entity", Entry{
		Example:      4294967297,
		TreatAsValue: true,
	})

	t.SetExact("core::time::Duration", Entry{
		Example:      map[string]any{"secs": 1, "nanos": 0},
		TreatAsValue: true,
	})

	t.SetExact("alloc::string::String", Entry{Example: "example string", TreatAsValue: true})
	t.SetExact("alloc::borrow::Cow<str>", Entry{Example: "example string", TreatAsValue: true})
	t.SetExact("char", Entry{Example: "c", TreatAsValue: true})

	return t
}
