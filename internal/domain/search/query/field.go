package query

import "strings"

// Field is a canonical filterable attribute. Its string value doubles as the
// facet request parameter name.
type Field string

// Canonical fields.
const (
	FieldClass           Field = "class"
	FieldLevel           Field = "level"
	FieldSchool          Field = "school"
	FieldSubschool       Field = "subschool"
	FieldCategory        Field = "category"
	FieldDescriptor      Field = "descriptor"
	FieldCastingTime     Field = "casting_time"
	FieldRange           Field = "range"
	FieldDuration        Field = "duration"
	FieldArea            Field = "area"
	FieldSavingThrow     Field = "saving_throw"
	FieldSpellResistance Field = "spell_resistance"
	FieldTargets         Field = "targets"
	FieldEffect          Field = "effect"
	FieldSource          Field = "source"
	FieldComponents      Field = "components"
	FieldID              Field = "id"
)

// Fields lists every canonical field in facet compilation order.
var Fields = []Field{
	FieldClass,
	FieldLevel,
	FieldSchool,
	FieldSubschool,
	FieldCategory,
	FieldDescriptor,
	FieldCastingTime,
	FieldRange,
	FieldDuration,
	FieldArea,
	FieldSavingThrow,
	FieldSpellResistance,
	FieldTargets,
	FieldEffect,
	FieldSource,
	FieldComponents,
	FieldID,
}

// IsValid reports whether f is one of the canonical fields.
func (f Field) IsValid() bool {
	for _, known := range Fields {
		if f == known {
			return true
		}
	}
	return false
}

// aliases maps the prefixes accepted in `field:value` tokens to canonical fields.
// Components and ids are facet parameters only.
var aliases = map[string]Field{
	"class":            FieldClass,
	"classes":          FieldClass,
	"level":            FieldLevel,
	"lvl":              FieldLevel,
	"school":           FieldSchool,
	"subschool":        FieldSubschool,
	"category":         FieldCategory,
	"cat":              FieldCategory,
	"descriptor":       FieldDescriptor,
	"desc":             FieldDescriptor,
	"cast":             FieldCastingTime,
	"casting_time":     FieldCastingTime,
	"range":            FieldRange,
	"duration":         FieldDuration,
	"dur":              FieldDuration,
	"area":             FieldArea,
	"save":             FieldSavingThrow,
	"saving_throw":     FieldSavingThrow,
	"sr":               FieldSpellResistance,
	"spell_resistance": FieldSpellResistance,
	"target":           FieldTargets,
	"targets":          FieldTargets,
	"effect":           FieldEffect,
	"source":           FieldSource,
}

// LookupField resolves a query prefix to its canonical field.
func LookupField(prefix string) (Field, bool) {
	f, ok := aliases[strings.ToLower(prefix)]
	return f, ok
}
