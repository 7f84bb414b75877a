// Package toolinfo publishes descriptors for the operations this module
// exposes, with JSON input schemas reflected from the Go argument
// structs. The outer tool-dispatch layer mounts these however it likes;
// no dispatch happens here.
package toolinfo

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
)

// Descriptor names one exposed operation and its input schema.
type Descriptor struct {
	Name        string             `json:"name"`
	Description string             `json:"description"`
	InputSchema *jsonschema.Schema `json:"inputSchema"`
}

// TypeGuideArgs are the inputs of the brp_type_guide operation.
type TypeGuideArgs struct {
	Types []string `json:"types" jsonschema:"minItems=1,description=Fully-qualified type names to describe"`
}

// FormatRecoveryArgs are the inputs of the brp_format_recovery
// operation.
type FormatRecoveryArgs struct {
	Method       string          `json:"method" jsonschema:"description=BRP method whose call was rejected"`
	Type         string          `json:"type" jsonschema:"description=Fully-qualified target type name"`
	Value        json.RawMessage `json:"value" jsonschema:"description=The rejected wire value"`
	ErrorCode    int             `json:"error_code" jsonschema:"description=JSON-RPC error code from the rejection"`
	ErrorMessage string          `json:"error_message" jsonschema:"description=Error message from the rejection"`
}

// Tools returns the exposed operation descriptors.
func Tools() []Descriptor {
	return []Descriptor{
		{
			Name:        "brp_type_guide",
			Description: "Describe registered types: registry status, supported operations, spawn format, and every mutation path with a wire-correct example.",
			InputSchema: reflectSchema[TypeGuideArgs](),
		},
		{
			Name:        "brp_format_recovery",
			Description: "Diagnose a rejected BRP value and, when possible, produce an accepted form or actionable guidance.",
			InputSchema: reflectSchema[FormatRecoveryArgs](),
		},
	}
}

// reflectSchema reflects a JSON schema from the argument struct,
// inlined at the root with no $defs indirection.
func reflectSchema[A any]() *jsonschema.Schema {
	r := &jsonschema.Reflector{
		DoNotReference: true,
		ExpandedStruct: true,
	}
	return r.Reflect(new(A))
}
