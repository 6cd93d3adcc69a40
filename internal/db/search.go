package db

import (
	"github.com/BubbleCoding/spellfinder/internal/domain/search/filter"
	"github.com/BubbleCoding/spellfinder/internal/domain/search/order"
)

// SearchQuery is the input for the count and page queries.
type SearchQuery struct {
	Filters filter.Set
	Order   order.Key
	// Limit of 0 returns every matching record.
	Limit  int
	Offset int
}

// SpellRow is one record row. Text columns are never NULL once scanned.
type SpellRow struct {
	ID               int64  `db:"id"`
	Name             string `db:"name"`
	School           string `db:"school"`
	Subschool        string `db:"subschool"`
	Descriptor       string `db:"descriptor"`
	SpellLevel       string `db:"spell_level"`
	CastingTime      string `db:"casting_time"`
	Components       string `db:"components"`
	CostlyComponents bool   `db:"costly_components"`
	Range            string `db:"range"`
	Area             string `db:"area"`
	Effect           string `db:"effect"`
	Targets          string `db:"targets"`
	Duration         string `db:"duration"`
	Dismissible      bool   `db:"dismissible"`
	Shapeable        bool   `db:"shapeable"`
	SavingThrow      string `db:"saving_throw"`
	SpellResistance  string `db:"spell_resistance"`
	Description      string `db:"description"`
	ShortDescription string `db:"short_description"`
	Source           string `db:"source"`
	Verbal           bool   `db:"verbal"`
	Somatic          bool   `db:"somatic"`
	Material         bool   `db:"material"`
	Focus            bool   `db:"focus"`
	DivineFocus      bool   `db:"divine_focus"`
	Mythic           bool   `db:"mythic"`
	MythicText       string `db:"mythic_text"`
	Linktext         string `db:"linktext"`
	// DescriptorFlags is a comma-separated list of the set descriptor columns.
	DescriptorFlags string `db:"descriptor_flags"`
}

// ClassLevelRow is one class membership.
type ClassLevelRow struct {
	SpellID   int64  `db:"spell_id"`
	ClassName string `db:"class_name"`
	Level     int    `db:"level"`
}

// CategoryRow is one stored category assignment.
type CategoryRow struct {
	SpellID  int64  `db:"spell_id"`
	Category string `db:"category"`
}

// Attribute is a record column that may be projected for selection UIs.
type Attribute string

// Projectable attributes.
const (
	AttrSchool    Attribute = "school"
	AttrSubschool Attribute = "subschool"
	AttrSource    Attribute = "source"
	AttrEffect    Attribute = "effect"
	AttrTargets   Attribute = "targets"
)

// IsValid reports whether a is a projectable attribute.
func (a Attribute) IsValid() bool {
	switch a {
	case AttrSchool, AttrSubschool, AttrSource, AttrEffect, AttrTargets:
		return true
	}
	return false
}
