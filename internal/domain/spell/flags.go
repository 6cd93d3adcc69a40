package spell

import "strings"

// Flag is a boolean attribute column with its display label.
type Flag struct {
	Label  string
	Column string
}

// DescriptorFlags are the descriptor tag columns, in display order.
var DescriptorFlags = []Flag{
	{"Acid", "acid"},
	{"Air", "air"},
	{"Chaotic", "chaotic"},
	{"Cold", "cold"},
	{"Curse", "curse"},
	{"Darkness", "darkness"},
	{"Death", "death"},
	{"Disease", "disease"},
	{"Earth", "earth"},
	{"Electricity", "electricity"},
	{"Emotion", "emotion"},
	{"Evil", "evil"},
	{"Fear", "fear"},
	{"Fire", "fire"},
	{"Force", "force"},
	{"Good", "good"},
	{"Language-Dependent", "language_dependent"},
	{"Lawful", "lawful"},
	{"Light", "light"},
	{"Mind-Affecting", "mind_affecting"},
	{"Pain", "pain"},
	{"Poison", "poison"},
	{"Shadow", "shadow"},
	{"Sonic", "sonic"},
	{"Water", "water"},
}

// ComponentFlags are the component columns, in display order.
var ComponentFlags = []Flag{
	{"Verbal", "verbal"},
	{"Somatic", "somatic"},
	{"Material", "material"},
	{"Focus", "focus"},
	{"Divine Focus", "divine_focus"},
}

// componentAbbrev maps the stat-block abbreviations to component columns.
var componentAbbrev = map[string]string{
	"v":  "verbal",
	"s":  "somatic",
	"m":  "material",
	"f":  "focus",
	"df": "divine_focus",
}

var (
	descriptorIndex = flagIndex(DescriptorFlags)
	componentIndex  = flagIndex(ComponentFlags)
)

func flagIndex(flags []Flag) map[string]string {
	idx := make(map[string]string, len(flags)*3)
	for _, f := range flags {
		idx[normalizeLabel(f.Label)] = f.Column
		idx[normalizeLabel(f.Column)] = f.Column
	}
	return idx
}

// normalizeLabel folds case and treats '-', '_' and spaces alike.
func normalizeLabel(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer("-", " ", "_", " ").Replace(s)
}

// DescriptorColumn resolves a descriptor tag label to its flag column.
func DescriptorColumn(label string) (string, bool) {
	col, ok := descriptorIndex[normalizeLabel(label)]
	return col, ok
}

// ComponentColumn resolves a component name or abbreviation to its flag column.
func ComponentColumn(name string) (string, bool) {
	key := normalizeLabel(name)
	if col, ok := componentIndex[key]; ok {
		return col, true
	}
	col, ok := componentAbbrev[key]
	return col, ok
}

// DescriptorLabels returns the display labels of all descriptor flags.
func DescriptorLabels() []string {
	return labels(DescriptorFlags)
}

// ComponentLabels returns the display labels of all component flags.
func ComponentLabels() []string {
	return labels(ComponentFlags)
}

func labels(flags []Flag) []string {
	out := make([]string, len(flags))
	for i, f := range flags {
		out[i] = f.Label
	}
	return out
}
