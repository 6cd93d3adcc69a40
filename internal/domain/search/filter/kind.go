package filter

import "github.com/BubbleCoding/spellfinder/internal/domain/search/query"

// Kind is the compilation strategy of a field.
type Kind int

// Kinds.
const (
	// KindExact matches a spell column case-insensitively against a value list.
	KindExact Kind = iota + 1
	// KindAssociation matches through a one-to-many association table.
	KindAssociation
	// KindLevel matches class levels, single values or lo-hi ranges.
	KindLevel
	// KindFlag maps labels to boolean columns, combined with each clause's operator.
	KindFlag
	// KindSubstring maps option labels to a column substring.
	KindSubstring
	// KindExclusion requires every named boolean column to be unset.
	KindExclusion
	// KindIdentifier matches record ids.
	KindIdentifier
)

func (k Kind) String() string {
	switch k {
	case KindExact:
		return "exact"
	case KindAssociation:
		return "association"
	case KindLevel:
		return "level"
	case KindFlag:
		return "flag"
	case KindSubstring:
		return "substring"
	case KindExclusion:
		return "exclusion"
	case KindIdentifier:
		return "identifier"
	}
	return "unknown"
}

// kinds assigns every field its strategy. TestKindOf_EveryField keeps it total.
var kinds = map[query.Field]Kind{
	query.FieldSchool:          KindExact,
	query.FieldSubschool:       KindExact,
	query.FieldTargets:         KindExact,
	query.FieldEffect:          KindExact,
	query.FieldSource:          KindExact,
	query.FieldClass:           KindAssociation,
	query.FieldCategory:        KindAssociation,
	query.FieldLevel:           KindLevel,
	query.FieldDescriptor:      KindFlag,
	query.FieldCastingTime:     KindSubstring,
	query.FieldRange:           KindSubstring,
	query.FieldDuration:        KindSubstring,
	query.FieldArea:            KindSubstring,
	query.FieldSavingThrow:     KindSubstring,
	query.FieldSpellResistance: KindSubstring,
	query.FieldComponents:      KindExclusion,
	query.FieldID:              KindIdentifier,
}

// KindOf returns the strategy of f and false for an unknown field.
func KindOf(f query.Field) (Kind, bool) {
	k, ok := kinds[f]
	return k, ok
}

// exactColumns maps exact-kind fields to their spell column.
var exactColumns = map[query.Field]string{
	query.FieldSchool:    "school",
	query.FieldSubschool: "subschool",
	query.FieldTargets:   "targets",
	query.FieldEffect:    "effect",
	query.FieldSource:    "source",
}

// associations maps association fields to their table and value column.
var associations = map[query.Field]Column{
	query.FieldClass:    {Rel: ClassLevels, Name: "class_name"},
	query.FieldCategory: {Rel: CategoryLinks, Name: "category"},
}
