package recovery

import (
	"context"
	"sort"

	"github.com/natepiano/bevy-brp-sub002/registry"
)

// Method names the transform that produced a corrected value.
type Method string

const (
	MethodObjectToArray    Method = "ObjectToArray"
	MethodStringExtraction Method = "StringExtraction"
	MethodUnitVariant      Method = "UnitVariant"
	MethodSchemaGuidance   Method = "SchemaGuidance"
	MethodLiveDiscovery    Method = "LiveDiscovery"
)

// objectToArray converts an object value into the positional sequence
// the target expects: {"x":0,"y":0,"z":0} becomes [0,0,0]. Field order
// follows the schema's required list when it covers every key,
// otherwise sorted key order.
func objectToArray(value any, schema *registry.Schema) (any, bool) {
	obj, ok := value.(map[string]any)
	if !ok || len(obj) == 0 {
		return nil, false
	}

	var order []string
	if schema != nil && len(schema.Required) == len(obj) {
		covered := true
		for _, field := range schema.Required {
			if _, ok := obj[field]; !ok {
				covered = false
				break
			}
		}
		if covered {
			order = schema.Required
		}
	}
	if order == nil {
		order = make([]string, 0, len(obj))
		for k := range obj {
			order = append(order, k)
		}
		sort.Strings(order)
	}

	out := make([]any, 0, len(obj))
	for _, field := range order {
		out = append(out, obj[field])
	}
	return out, true
}

// extractString unwraps a single-field object holding a string, the
// shape clients produce for single-field tuple-struct wrappers like
// Name: {"0": "hello"} or {"name": "hello"} become "hello".
func extractString(value any) (any, bool) {
	obj, ok := value.(map[string]any)
	if !ok || len(obj) != 1 {
		return nil, false
	}
	for _, v := range obj {
		if s, ok := v.(string); ok {
			return s, true
		}
	}
	return nil, false
}

// reshapeDepthLimit bounds the schema-driven reshape recursion.
const reshapeDepthLimit = 10

// reshape walks value against its schema and converts any nested
// object that the wire actually expects as a sequence, using the
// guide's derived examples as the authority on each type's wire shape.
// This is what fixes object-form vectors inside an otherwise correct
// struct: {"translation": {"x":0,"y":0,"z":0}} becomes
// {"translation": [0,0,0]}.
func (e *Engine) reshape(ctx context.Context, value any, typeName string, depth int) (any, bool) {
	if e.store == nil || depth > reshapeDepthLimit {
		return nil, false
	}
	schema, ok := e.store.Get(typeName)
	if !ok {
		return nil, false
	}

	switch registry.KindOf(schema) {
	case registry.KindStruct:
		obj, isMap := value.(map[string]any)
		if !isMap {
			return nil, false
		}
		if e.wantsSequence(ctx, typeName) {
			return objectToArray(value, schema)
		}
		changed := false
		out := make(map[string]any, len(obj))
		for field, v := range obj {
			out[field] = v
			ref, ok := schema.Properties[field]
			if !ok {
				continue
			}
			if nv, ok := e.reshape(ctx, v, ref.TypeName(), depth+1); ok {
				out[field] = nv
				changed = true
			}
		}
		if changed {
			return out, true
		}
		return nil, false

	case registry.KindTupleStruct, registry.KindTuple, registry.KindArray:
		return objectToArray(value, schema)

	case registry.KindEnum:
		return unitVariant(value, schema)
	}
	return nil, false
}

// wantsSequence reports whether the wire form of typeName is a
// sequence even though its schema is a struct (glam's vectors).
func (e *Engine) wantsSequence(ctx context.Context, typeName string) bool {
	if e.guide == nil {
		return false
	}
	rec := e.guide.ForType(ctx, typeName)
	if rec.SpawnFormat == nil {
		return false
	}
	_, isSeq := rec.SpawnFormat.([]any)
	return isSeq
}

// unitVariant detects a unit enum variant wrapped in an object, e.g.
// {"Srgba": {}} for an enum where Srgba is a unit variant, and unwraps
// it to the bare variant name.
func unitVariant(value any, schema *registry.Schema) (any, bool) {
	if schema == nil || registry.KindOf(schema) != registry.KindEnum {
		return nil, false
	}
	obj, ok := value.(map[string]any)
	if !ok || len(obj) != 1 {
		return nil, false
	}
	for name := range obj {
		for _, v := range schema.OneOf {
			if v.Name == name && v.Kind == "Unit" {
				return name, true
			}
		}
	}
	return nil, false
}
