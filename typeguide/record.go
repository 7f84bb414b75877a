// Package typeguide assembles everything known about a type into one
// record for the outer tool-dispatch layer: registry status,
// serialization support, supported operations, mutation paths with
// examples, and any live-discovered or corrected values.
package typeguide

import "github.com/natepiano/bevy-brp-sub002/mutation"

// Source identifies where a piece of type information came from.
// Higher values are more authoritative and win merge ties.
type Source int

const (
	SourceUnknown Source = iota
	SourcePattern
	SourceRegistry
	SourceLiveDiscovery
)

func (s Source) String() string {
	switch s {
	case SourcePattern:
		return "pattern"
	case SourceRegistry:
		return "registry"
	case SourceLiveDiscovery:
		return "live_discovery"
	default:
		return "unknown"
	}
}

// Operation is a BRP operation a type can participate in.
type Operation string

const (
	OpQuery  Operation = "query"
	OpGet    Operation = "get"
	OpSpawn  Operation = "spawn"
	OpInsert Operation = "insert"
	OpMutate Operation = "mutate"
)

// Summary is the condensed schema view exposed alongside a record.
type Summary struct {
	Kind     string   `json:"kind"`
	Fields   []string `json:"fields,omitempty"`
	Required []string `json:"required,omitempty"`
	Module   string   `json:"module,omitempty"`
	Crate    string   `json:"crate,omitempty"`
}

// Record is the unified view of one type. Merging is additive: a merge
// never discards a mutation path or example the record already holds.
type Record struct {
	TypeName       string                   `json:"type_name"`
	InRegistry     bool                     `json:"in_registry"`
	HasSerialize   bool                     `json:"has_serialize"`
	HasDeserialize bool                     `json:"has_deserialize"`
	Operations     []Operation              `json:"supported_operations,omitempty"`
	Category       string                   `json:"type_category,omitempty"`
	Examples       map[Operation]any        `json:"example_values,omitempty"`
	MutationPaths  map[string]mutation.Path `json:"mutation_paths,omitempty"`
	SpawnFormat    any                      `json:"spawn_format,omitempty"`
	Schema         *Summary                 `json:"schema_summary,omitempty"`
	EnumVariants   []string                 `json:"enum_variants,omitempty"`
	OriginalValue  any                      `json:"original_value,omitempty"`
	CorrectedValue any                      `json:"corrected_value,omitempty"`
	Source         Source                   `json:"-"`
}

// Merge folds other into r additively. Scalar fields are taken from the
// more authoritative source on conflict; collections union, with the
// more authoritative side winning per-key ties. Previously known
// mutation paths are never lost.
func (r *Record) Merge(other *Record) {
	if other == nil {
		return
	}
	otherWins := other.Source >= r.Source

	if otherWins {
		if other.Category != "" {
			r.Category = other.Category
		}
		if other.SpawnFormat != nil {
			r.SpawnFormat = other.SpawnFormat
		}
		if other.Schema != nil {
			r.Schema = other.Schema
		}
		if len(other.EnumVariants) > 0 {
			r.EnumVariants = other.EnumVariants
		}
		if other.OriginalValue != nil {
			r.OriginalValue = other.OriginalValue
		}
		if other.CorrectedValue != nil {
			r.CorrectedValue = other.CorrectedValue
		}
		r.InRegistry = r.InRegistry || other.InRegistry
		r.HasSerialize = r.HasSerialize || other.HasSerialize
		r.HasDeserialize = r.HasDeserialize || other.HasDeserialize
	}

	for _, op := range other.Operations {
		if !hasOperation(r.Operations, op) {
			r.Operations = append(r.Operations, op)
		}
	}

	if len(other.Examples) > 0 && r.Examples == nil {
		r.Examples = make(map[Operation]any, len(other.Examples))
	}
	for op, ex := range other.Examples {
		if _, exists := r.Examples[op]; !exists || otherWins {
			r.Examples[op] = ex
		}
	}

	if len(other.MutationPaths) > 0 && r.MutationPaths == nil {
		r.MutationPaths = make(map[string]mutation.Path, len(other.MutationPaths))
	}
	for p, info := range other.MutationPaths {
		if _, exists := r.MutationPaths[p]; !exists || otherWins {
			r.MutationPaths[p] = info
		}
	}

	if otherWins {
		r.Source = other.Source
	}
}

func hasOperation(ops []Operation, op Operation) bool {
	for _, o := range ops {
		if o == op {
			return true
		}
	}
	return false
}
