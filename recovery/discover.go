package recovery

import (
	"github.com/natepiano/bevy-brp-sub002/mutation"
	"github.com/natepiano/bevy-brp-sub002/typeguide"
)

// DiscoverParams are the arguments to brp_extras/discover_format.
type DiscoverParams struct {
	Types []string `json:"types"`
}

// DiscoverResponse is the reply shape of brp_extras/discover_format.
type DiscoverResponse struct {
	TypeInfo map[string]DiscoveredType `json:"type_info"`
}

// DiscoveredType is the live target's authoritative description of one
// type's wire formats.
type DiscoveredType struct {
	InRegistry          bool              `json:"in_registry"`
	HasSerialize        bool              `json:"has_serialize"`
	HasDeserialize      bool              `json:"has_deserialize"`
	TypeCategory        string            `json:"type_category,omitempty"`
	SupportedOperations []string          `json:"supported_operations,omitempty"`
	ExampleValues       map[string]any    `json:"example_values,omitempty"`
	MutationPaths       map[string]string `json:"mutation_paths,omitempty"`
}

// record converts live-discovered data into a unified record so it can
// merge additively with registry-derived knowledge.
func (d DiscoveredType) record(typeName string) *typeguide.Record {
	rec := &typeguide.Record{
		TypeName:       typeName,
		InRegistry:     d.InRegistry,
		HasSerialize:   d.HasSerialize,
		HasDeserialize: d.HasDeserialize,
		Category:       d.TypeCategory,
		Source:         typeguide.SourceLiveDiscovery,
	}
	for _, op := range d.SupportedOperations {
		rec.Operations = append(rec.Operations, typeguide.Operation(op))
	}
	if len(d.ExampleValues) > 0 {
		rec.Examples = make(map[typeguide.Operation]any, len(d.ExampleValues))
		for op, v := range d.ExampleValues {
			rec.Examples[typeguide.Operation(op)] = v
		}
		if spawn, ok := d.ExampleValues["spawn"]; ok {
			rec.SpawnFormat = spawn
		}
	}
	if len(d.MutationPaths) > 0 {
		rec.MutationPaths = make(map[string]mutation.Path, len(d.MutationPaths))
		for p, desc := range d.MutationPaths {
			rec.MutationPaths[p] = mutation.Path{
				Path:        p,
				TypeName:    typeName,
				Mutability:  mutation.Mutable,
				Description: desc,
			}
		}
	}
	return rec
}
