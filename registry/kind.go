package registry

// TypeKind is the closed classification of registry schemas. Every
// builder in the mutation walker dispatches on exactly this set; an
// unrecognized discriminant classifies as KindUnknown and callers treat
// the type as absent from the registry.
type TypeKind int

const (
	KindUnknown TypeKind = iota
	KindStruct
	KindTupleStruct
	KindTuple
	KindEnum
	KindArray
	KindList
	KindMap
	KindSet
	KindValue
)

var kindNames = map[string]TypeKind{
	"Struct":      KindStruct,
	"TupleStruct": KindTupleStruct,
	"Tuple":       KindTuple,
	"Enum":        KindEnum,
	"Array":       KindArray,
	"List":        KindList,
	"Map":         KindMap,
	"Set":         KindSet,
	"Value":       KindValue,
}

// KindOf classifies a schema by its kind discriminant.
func KindOf(s *Schema) TypeKind {
	if s == nil {
		return KindUnknown
	}
	return kindNames[s.Kind]
}

func (k TypeKind) String() string {
	switch k {
	case KindStruct:
		return "Struct"
	case KindTupleStruct:
		return "TupleStruct"
	case KindTuple:
		return "Tuple"
	case KindEnum:
		return "Enum"
	case KindArray:
		return "Array"
	case KindList:
		return "List"
	case KindMap:
		return "Map"
	case KindSet:
		return "Set"
	case KindValue:
		return "Value"
	default:
		return "Unknown"
	}
}
