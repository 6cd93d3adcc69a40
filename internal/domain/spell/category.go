package spell

import "strings"

// Category labels assigned by the offline classifier. A spell with no stored
// category takes one of the fallback labels instead.
var Categories = []string{
	"Buff",
	"Control",
	"Damage",
	"Debuff",
	"Movement",
	"Protection",
	"Utility",
}

// Fallback category labels.
const (
	CategoryDivination = "Divination"
	CategoryOther      = "Other"
)

// fallbackSubschools are covered by the subschool facet and never classified.
var fallbackSubschools = map[string]struct{}{
	"healing":   {},
	"summoning": {},
	"calling":   {},
	"polymorph": {},
	"scrying":   {},
}

// FallbackCategories derives the category list of an uncategorized spell from
// its school and subschool alone.
func FallbackCategories(school, subschool string) []string {
	if strings.EqualFold(strings.TrimSpace(school), "divination") {
		return []string{CategoryDivination}
	}
	sub := strings.ToLower(strings.TrimSpace(subschool))
	if _, ok := fallbackSubschools[sub]; ok {
		return []string{strings.ToUpper(sub[:1]) + sub[1:]}
	}
	return []string{CategoryOther}
}

// FallbackLabels lists every label FallbackCategories can produce.
func FallbackLabels() []string {
	return []string{CategoryDivination, "Calling", "Healing", "Polymorph", "Scrying", "Summoning", CategoryOther}
}

// ResolveCategories applies the fallback rule when no category row exists.
func (s *Spell) ResolveCategories(stored []string) {
	if len(stored) > 0 {
		s.Categories = stored
		return
	}
	s.Categories = FallbackCategories(s.School, s.Subschool)
}
