// Package spell holds the searchable record and its associations.
package spell

// Spell is one immutable corpus record with its enriched associations.
type Spell struct {
	ID               int64
	Name             string
	School           string
	Subschool        string
	Descriptor       string
	SpellLevel       string
	CastingTime      string
	Components       string
	CostlyComponents bool
	Range            string
	Area             string
	Effect           string
	Targets          string
	Duration         string
	Dismissible      bool
	Shapeable        bool
	SavingThrow      string
	SpellResistance  string
	Description      string
	ShortDescription string
	Source           string
	Verbal           bool
	Somatic          bool
	Material         bool
	Focus            bool
	DivineFocus      bool
	Mythic           bool
	MythicText       string
	Linktext         string

	// Descriptors lists the labels of the descriptor flags set on the record.
	Descriptors []string
	// Classes is ordered by class name.
	Classes []ClassLevel
	// Categories is never empty once enriched, see FallbackCategories.
	Categories []string
}

// ClassLevel is one (class, level) membership of a spell.
type ClassLevel struct {
	ClassName string
	Level     int
}

// MinLevel and MaxLevel bound the level of a class membership.
const (
	MinLevel = 0
	MaxLevel = 9
)

// MinClassLevel returns the lowest level across all class memberships, or -1 if none.
func (s *Spell) MinClassLevel() int {
	lowest := -1
	for _, cl := range s.Classes {
		if lowest < 0 || cl.Level < lowest {
			lowest = cl.Level
		}
	}
	return lowest
}
