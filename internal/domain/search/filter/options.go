package filter

import (
	"strings"

	"github.com/BubbleCoding/spellfinder/internal/domain/search/query"
)

// Option is a grouped choice of a substring field.
type Option struct {
	Label   string
	Aliases []string
	Substr  string
}

// SubstringField is a substring-kind field with its column and options.
type SubstringField struct {
	Field   query.Field
	Column  string
	Options []Option
}

// SubstringFields lists the substring fields in presentation order.
var SubstringFields = []SubstringField{
	{
		Field:  query.FieldCastingTime,
		Column: "casting_time",
		Options: []Option{
			{Label: "Standard Action", Aliases: []string{"standard"}, Substr: "standard"},
			{Label: "Swift Action", Aliases: []string{"swift"}, Substr: "swift"},
			{Label: "Immediate Action", Aliases: []string{"immediate"}, Substr: "immediate"},
			{Label: "Move Action", Aliases: []string{"move"}, Substr: "move action"},
			{Label: "Full Round", Aliases: []string{"full round", "full-round", "fullround"}, Substr: "full round"},
			{Label: "Minutes", Aliases: []string{"minute", "min"}, Substr: "minute"},
			{Label: "1 Hour+", Aliases: []string{"hour", "hours"}, Substr: "hour"},
		},
	},
	{
		Field:  query.FieldRange,
		Column: "range",
		Options: []Option{
			{Label: "Personal", Aliases: []string{"self"}, Substr: "personal"},
			{Label: "Touch", Substr: "touch"},
			{Label: "Close", Substr: "close"},
			{Label: "Medium", Substr: "medium"},
			{Label: "Long", Substr: "long"},
			{Label: "Unlimited", Substr: "unlimited"},
			{Label: "See Text", Aliases: []string{"see"}, Substr: "see text"},
		},
	},
	{
		Field:  query.FieldDuration,
		Column: "duration",
		Options: []Option{
			{Label: "Instantaneous", Aliases: []string{"instant"}, Substr: "instantaneous"},
			{Label: "Rounds", Aliases: []string{"round"}, Substr: "round"},
			{Label: "Minutes", Aliases: []string{"minute", "min"}, Substr: "minute"},
			{Label: "Hours", Aliases: []string{"hour"}, Substr: "hour"},
			{Label: "Days", Aliases: []string{"day"}, Substr: "day"},
			{Label: "Permanent", Substr: "permanent"},
			{Label: "Concentration", Aliases: []string{"conc"}, Substr: "concentration"},
		},
	},
	{
		Field:  query.FieldArea,
		Column: "area",
		Options: []Option{
			{Label: "Line", Substr: "line"},
			{Label: "Radius", Aliases: []string{"burst", "spread", "emanation"}, Substr: "radius"},
			{Label: "Cone", Substr: "cone"},
			{Label: "Cube", Substr: "cube"},
			{Label: "Sphere", Substr: "sphere"},
			{Label: "Cylinder", Substr: "cylinder"},
		},
	},
	{
		Field:  query.FieldSavingThrow,
		Column: "saving_throw",
		Options: []Option{
			{Label: "Will", Substr: "will"},
			{Label: "Fortitude", Aliases: []string{"fort"}, Substr: "fortitude"},
			{Label: "Reflex", Aliases: []string{"ref"}, Substr: "reflex"},
			{Label: "None", Substr: "none"},
		},
	},
	{
		Field:  query.FieldSpellResistance,
		Column: "spell_resistance",
		Options: []Option{
			{Label: "Yes", Substr: "yes"},
			{Label: "No", Substr: "no"},
		},
	},
}

// SubstringFieldOf returns the substring definition for f.
func SubstringFieldOf(f query.Field) (SubstringField, bool) {
	for _, sf := range SubstringFields {
		if sf.Field == f {
			return sf, true
		}
	}
	return SubstringField{}, false
}

// Resolve maps a label or alias to its option. Unknown names report false.
func (sf SubstringField) Resolve(name string) (Option, bool) {
	key := normalize(name)
	for _, o := range sf.Options {
		if normalize(o.Label) == key {
			return o, true
		}
		for _, a := range o.Aliases {
			if normalize(a) == key {
				return o, true
			}
		}
	}
	return Option{}, false
}

// Labels returns the option labels in order.
func (sf SubstringField) Labels() []string {
	out := make([]string, len(sf.Options))
	for i, o := range sf.Options {
		out[i] = o.Label
	}
	return out
}

func normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(strings.ReplaceAll(s, "_", " "))), " ")
}
