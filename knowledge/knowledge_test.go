package knowledge

import (
	"reflect"
	"testing"
)

func TestLookupPrecedenceKeys(t *testing.T) {
	table := NewTable().
		SetExact("glam::Vec3", Entry{Example: []any{1.0, 2.0, 3.0}}).
		SetField("bevy_transform::components::transform::Transform", "scale", Entry{Example: []any{1.0, 1.0, 1.0}}).
		SetVariant("bevy_color::color::Color", "Tuple(f32,f32,f32)", 0, Entry{Example: 0.5})

	if e, ok := table.ForType("glam::Vec3"); !ok || !reflect.DeepEqual(e.Example, []any{1.0, 2.0, 3.0}) {
		t.Fatalf("exact lookup = %+v, found=%v", e, ok)
	}
	if e, ok := table.ForField("bevy_transform::components::transform::Transform", "scale"); !ok || !reflect.DeepEqual(e.Example, []any{1.0, 1.0, 1.0}) {
		t.Fatalf("field lookup = %+v, found=%v", e, ok)
	}
	if e, ok := table.ForVariant("bevy_color::color::Color", "Tuple(f32,f32,f32)", 0); !ok || e.Example != 0.5 {
		t.Fatalf("variant lookup = %+v, found=%v", e, ok)
	}

	if _, ok := table.ForType("glam::Vec2"); ok {
		t.Fatal("unexpected hit for unregistered type")
	}
	if _, ok := table.ForField("glam::Vec3", "x"); ok {
		t.Fatal("unexpected hit for unregistered field")
	}
	if _, ok := table.ForVariant("bevy_color::color::Color", "Tuple(f32,f32,f32)", 1); ok {
		t.Fatal("unexpected hit for other index")
	}
}

func TestDefaultTable(t *testing.T) {
	table := Default()

	vec3, ok := table.ForType("glam::Vec3")
	if !ok {
		t.Fatal("glam::Vec3 missing from default table")
	}
	if !reflect.DeepEqual(vec3.Example, []any{1.0, 2.0, 3.0}) {
		t.Fatalf("Vec3 example = %#v", vec3.Example)
	}
	if vec3.TreatAsValue {
		t.Fatal("Vec3 must be a teach entry, not treat-as-value")
	}
	if vec3.Subfields["x"] != 1.0 {
		t.Fatalf("Vec3 .x subfield = %#v", vec3.Subfields["x"])
	}

	name, ok := table.ForType("bevy_ecs::name::Name")
	if !ok || !name.TreatAsValue {
		t.Fatalf("Name entry = %+v, found=%v, want treat-as-value", name, ok)
	}
	if _, isString := name.Example.(string); !isString {
		t.Fatalf("Name example is %T, want bare string", name.Example)
	}

	srgba, ok := table.ForVariant("bevy_color::color::Color", "Tuple(bevy_color::srgba::Srgba)", 0)
	if !ok {
		t.Fatal("Color Srgba variant entry missing from default table")
	}
	channels, ok := srgba.Example.(map[string]any)
	if !ok || channels["alpha"] != 1.0 {
		t.Fatalf("Srgba example = %#v", srgba.Example)
	}

	if Default() != table {
		t.Fatal("Default() must return the same shared table")
	}
}
