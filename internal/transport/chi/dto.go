package chi

import (
	"github.com/BubbleCoding/spellfinder/internal/domain/search/query"
	"github.com/BubbleCoding/spellfinder/internal/domain/search/result"
	"github.com/BubbleCoding/spellfinder/internal/domain/spell"
	facetuc "github.com/BubbleCoding/spellfinder/internal/usecase/facet"
)

// ErrorResponseCode is the machine-readable error code of an error response.
type ErrorResponseCode string

// Error codes.
const (
	ErrorResponseCodeBadRequest    ErrorResponseCode = "bad_request"
	ErrorResponseCodeInvalidQuery  ErrorResponseCode = "invalid_query"
	ErrorResponseCodeUnavailable   ErrorResponseCode = "storage_unavailable"
	ErrorResponseCodeInternalError ErrorResponseCode = "internal_error"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Code    ErrorResponseCode `json:"code"`
	Message string            `json:"message"`
}

// ClassLevel is one class membership of a record.
type ClassLevel struct {
	ClassName string `json:"class_name"`
	Level     int    `json:"level"`
}

// Record is one enriched spell.
type Record struct {
	ID               int64        `json:"id"`
	Name             string       `json:"name"`
	School           string       `json:"school"`
	Subschool        string       `json:"subschool"`
	Descriptor       string       `json:"descriptor"`
	SpellLevel       string       `json:"spell_level"`
	CastingTime      string       `json:"casting_time"`
	Components       string       `json:"components"`
	CostlyComponents bool         `json:"costly_components"`
	Range            string       `json:"range"`
	Area             string       `json:"area"`
	Effect           string       `json:"effect"`
	Targets          string       `json:"targets"`
	Duration         string       `json:"duration"`
	Dismissible      bool         `json:"dismissible"`
	Shapeable        bool         `json:"shapeable"`
	SavingThrow      string       `json:"saving_throw"`
	SpellResistance  string       `json:"spell_resistance"`
	Description      string       `json:"description"`
	ShortDescription string       `json:"short_description"`
	Source           string       `json:"source"`
	Verbal           bool         `json:"verbal"`
	Somatic          bool         `json:"somatic"`
	Material         bool         `json:"material"`
	Focus            bool         `json:"focus"`
	DivineFocus      bool         `json:"divine_focus"`
	Mythic           bool         `json:"mythic"`
	MythicText       string       `json:"mythic_text"`
	Linktext         string       `json:"linktext"`
	Descriptors      []string     `json:"descriptors"`
	Classes          []ClassLevel `json:"classes"`
	Categories       []string     `json:"categories"`
}

// SearchResponse is the body of GET /api/spells.
type SearchResponse struct {
	Records []Record `json:"records"`
	Total   int      `json:"total"`
	Page    int      `json:"page"`
	PerPage int      `json:"per_page"`
	Pages   int      `json:"pages"`
}

// FiltersResponse is the body of GET /api/filters.
type FiltersResponse struct {
	Classes         []string `json:"classes"`
	Schools         []string `json:"schools"`
	Subschools      []string `json:"subschools"`
	Sources         []string `json:"sources"`
	Categories      []string `json:"categories"`
	Descriptors     []string `json:"descriptors"`
	Components      []string `json:"components"`
	Levels          []int    `json:"levels"`
	Sorts           []string `json:"sorts"`
	CastingTime     []string `json:"casting_time"`
	Range           []string `json:"range"`
	Duration        []string `json:"duration"`
	Area            []string `json:"area"`
	SavingThrow     []string `json:"saving_throw"`
	SpellResistance []string `json:"spell_resistance"`
	Effect          []string `json:"effect"`
	Targets         []string `json:"targets"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

func searchResponse(p *result.Page) SearchResponse {
	records := make([]Record, len(p.Records()))
	for i := range p.Records() {
		records[i] = NewRecord(&p.Records()[i])
	}
	return SearchResponse{
		Records: records,
		Total:   p.Total(),
		Page:    p.Number(),
		PerPage: p.PerPage(),
		Pages:   p.Pages(),
	}
}

// NewRecord converts a spell to its wire form.
func NewRecord(s *spell.Spell) Record {
	classes := make([]ClassLevel, len(s.Classes))
	for i, c := range s.Classes {
		classes[i] = ClassLevel{ClassName: c.ClassName, Level: c.Level}
	}
	return Record{
		ID:               s.ID,
		Name:             s.Name,
		School:           s.School,
		Subschool:        s.Subschool,
		Descriptor:       s.Descriptor,
		SpellLevel:       s.SpellLevel,
		CastingTime:      s.CastingTime,
		Components:       s.Components,
		CostlyComponents: s.CostlyComponents,
		Range:            s.Range,
		Area:             s.Area,
		Effect:           s.Effect,
		Targets:          s.Targets,
		Duration:         s.Duration,
		Dismissible:      s.Dismissible,
		Shapeable:        s.Shapeable,
		SavingThrow:      s.SavingThrow,
		SpellResistance:  s.SpellResistance,
		Description:      s.Description,
		ShortDescription: s.ShortDescription,
		Source:           s.Source,
		Verbal:           s.Verbal,
		Somatic:          s.Somatic,
		Material:         s.Material,
		Focus:            s.Focus,
		DivineFocus:      s.DivineFocus,
		Mythic:           s.Mythic,
		MythicText:       s.MythicText,
		Linktext:         s.Linktext,
		Descriptors:      nonNil(s.Descriptors),
		Classes:          classes,
		Categories:       nonNil(s.Categories),
	}
}

// NewFiltersResponse converts facet metadata to its wire form.
func NewFiltersResponse(m *facetuc.Metadata) FiltersResponse {
	sorts := make([]string, len(m.Sorts))
	for i, k := range m.Sorts {
		sorts[i] = string(k)
	}
	return FiltersResponse{
		Classes:         nonNil(m.Classes),
		Schools:         nonNil(m.Schools),
		Subschools:      nonNil(m.Subschools),
		Sources:         nonNil(m.Sources),
		Categories:      nonNil(m.Categories),
		Descriptors:     nonNil(m.Descriptors),
		Components:      nonNil(m.Components),
		Levels:          m.Levels,
		Sorts:           sorts,
		CastingTime:     nonNil(m.Grouped[query.FieldCastingTime]),
		Range:           nonNil(m.Grouped[query.FieldRange]),
		Duration:        nonNil(m.Grouped[query.FieldDuration]),
		Area:            nonNil(m.Grouped[query.FieldArea]),
		SavingThrow:     nonNil(m.Grouped[query.FieldSavingThrow]),
		SpellResistance: nonNil(m.Grouped[query.FieldSpellResistance]),
		Effect:          nonNil(m.Effects),
		Targets:         nonNil(m.Targets),
	}
}

// nonNil keeps empty lists encoded as [] rather than null.
func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
