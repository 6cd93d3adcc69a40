package sqlite

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/BubbleCoding/spellfinder/internal/domain/search/filter"
	"github.com/BubbleCoding/spellfinder/internal/domain/search/order"
	"github.com/BubbleCoding/spellfinder/internal/domain/spell"
)

const (
	spellsAlias     = "s"
	classAlias      = "sc"
	classJoinAlias  = "sc_filter"
	categoryAlias   = "cat"
	ftsTable        = "spells_fts"
	minLevelSubExpr = "(SELECT MIN(level) FROM spell_classes WHERE spell_id = s.id)"
)

var identPattern = regexp.MustCompile(`^[a-z][a-z_]*$`)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// renderer turns a predicate tree into SQL with positional parameters.
// Only identifiers from static tables are interpolated; values are always bound.
type renderer struct {
	args []any
}

func (r *renderer) bind(v any) string {
	r.args = append(r.args, v)
	return "?"
}

func (r *renderer) column(c filter.Column) (string, error) {
	if !identPattern.MatchString(c.Name) {
		return "", fmt.Errorf("invalid column %q", c.Name)
	}
	var alias string
	switch c.Rel {
	case filter.Spells:
		alias = spellsAlias
	case filter.ClassLevels:
		alias = classAlias
		if c.Joined {
			alias = classJoinAlias
		}
	case filter.CategoryLinks:
		alias = categoryAlias
	default:
		return "", fmt.Errorf("unknown relation %q", c.Rel)
	}
	return alias + `."` + c.Name + `"`, nil
}

func (r *renderer) fold(col string, doFold bool) string {
	if doFold {
		return "LOWER(" + col + ")"
	}
	return col
}

func foldValue(v any, doFold bool) any {
	if s, ok := v.(string); ok && doFold {
		return strings.ToLower(s)
	}
	return v
}

func (r *renderer) predicate(p filter.Predicate) (string, error) {
	switch p := p.(type) {
	case filter.In:
		col, err := r.column(p.Col)
		if err != nil {
			return "", err
		}
		marks := make([]string, len(p.Values))
		for i, v := range p.Values {
			marks[i] = r.bind(foldValue(v, p.Fold))
		}
		return r.fold(col, p.Fold) + " IN (" + strings.Join(marks, ", ") + ")", nil

	case filter.Equal:
		col, err := r.column(p.Col)
		if err != nil {
			return "", err
		}
		return r.fold(col, p.Fold) + " = " + r.bind(foldValue(p.Value, p.Fold)), nil

	case filter.Like:
		col, err := r.column(p.Col)
		if err != nil {
			return "", err
		}
		pattern := "%" + likeEscaper.Replace(strings.ToLower(p.Substr)) + "%"
		return "LOWER(" + col + ") LIKE " + r.bind(pattern) + ` ESCAPE '\'`, nil

	case filter.Flag:
		col, err := r.column(p.Col)
		if err != nil {
			return "", err
		}
		if p.Set {
			return col + " = 1", nil
		}
		return "COALESCE(" + col + ", 0) = 0", nil

	case filter.Range:
		col, err := r.column(p.Col)
		if err != nil {
			return "", err
		}
		return col + " BETWEEN " + r.bind(p.Min) + " AND " + r.bind(p.Max), nil

	case filter.Match:
		return ftsTable + " MATCH " + r.bind(p.Query), nil

	case filter.Exists:
		var from string
		switch p.Rel {
		case filter.ClassLevels:
			from = "spell_classes " + classAlias
		case filter.CategoryLinks:
			from = "spell_categories " + categoryAlias
		default:
			return "", fmt.Errorf("relation %q cannot be used in a subquery", p.Rel)
		}
		alias := from[strings.LastIndexByte(from, ' ')+1:]
		conds, err := r.join(p.Where, " AND ")
		if err != nil {
			return "", err
		}
		return "EXISTS (SELECT 1 FROM " + from + " WHERE " + alias + ".spell_id = s.id AND " + conds + ")", nil

	case filter.Any:
		conds, err := r.join(p.Preds, " OR ")
		if err != nil {
			return "", err
		}
		return "(" + conds + ")", nil

	case filter.All:
		conds, err := r.join(p.Preds, " AND ")
		if err != nil {
			return "", err
		}
		return "(" + conds + ")", nil
	}
	return "", fmt.Errorf("unsupported predicate %T", p)
}

func (r *renderer) join(preds []filter.Predicate, sep string) (string, error) {
	parts := make([]string, 0, len(preds))
	for _, p := range preds {
		if filter.IsVacuous(p) {
			continue
		}
		sql, err := r.predicate(p)
		if err != nil {
			return "", err
		}
		parts = append(parts, sql)
	}
	if len(parts) == 0 {
		return "", fmt.Errorf("empty predicate group")
	}
	return strings.Join(parts, sep), nil
}

// fromWhere renders the shared FROM/JOIN/WHERE tail of the count and page queries.
func (r *renderer) fromWhere(set *filter.Set) (string, error) {
	var b strings.Builder
	b.WriteString(" FROM spells s")
	if set.Needs(filter.JoinFullText) {
		b.WriteString(" JOIN " + ftsTable + " ON " + ftsTable + ".rowid = s.id")
	}
	if set.Needs(filter.JoinClassLevel) {
		b.WriteString(" JOIN spell_classes " + classJoinAlias + " ON " + classJoinAlias + ".spell_id = s.id")
	}
	if set.IsEmpty() {
		return b.String(), nil
	}
	where, err := r.join(set.Predicates(), " AND ")
	if err != nil {
		return "", err
	}
	b.WriteString(" WHERE ")
	b.WriteString(where)
	return b.String(), nil
}

// orderBy renders the ordering. Every ordering ends on s.id so pages are stable.
func orderBy(key order.Key, hasText bool) string {
	switch key {
	case order.NameDesc:
		return " ORDER BY s.name DESC, s.id"
	case order.Level:
		return " ORDER BY " + minLevelSubExpr + ", s.name, s.id"
	case order.LevelDesc:
		return " ORDER BY " + minLevelSubExpr + " DESC, s.name, s.id"
	case order.School:
		return " ORDER BY s.school, s.name, s.id"
	case order.SchoolDesc:
		return " ORDER BY s.school DESC, s.name, s.id"
	case order.Relevance:
		if hasText {
			return " ORDER BY " + ftsTable + ".rank, s.id"
		}
	}
	return " ORDER BY s.name, s.id"
}

type selectColumn struct {
	name string
	flag bool
}

var recordColumns = []selectColumn{
	{name: "name"},
	{name: "school"},
	{name: "subschool"},
	{name: "descriptor"},
	{name: "spell_level"},
	{name: "casting_time"},
	{name: "components"},
	{name: "costly_components", flag: true},
	{name: "range"},
	{name: "area"},
	{name: "effect"},
	{name: "targets"},
	{name: "duration"},
	{name: "dismissible", flag: true},
	{name: "shapeable", flag: true},
	{name: "saving_throw"},
	{name: "spell_resistance"},
	{name: "description"},
	{name: "short_description"},
	{name: "source"},
	{name: "verbal", flag: true},
	{name: "somatic", flag: true},
	{name: "material", flag: true},
	{name: "focus", flag: true},
	{name: "divine_focus", flag: true},
	{name: "mythic", flag: true},
	{name: "mythic_text"},
	{name: "linktext"},
}

// selectList is built once: NULL text becomes "", flags become 0/1, and the
// set descriptor columns are folded into one comma-separated value.
var selectList = buildSelectList()

func buildSelectList() string {
	parts := []string{"s.id AS id"}
	for _, c := range recordColumns {
		ref := `s."` + c.name + `"`
		if c.flag {
			parts = append(parts, "(COALESCE("+ref+", 0) != 0) AS "+c.name)
			continue
		}
		parts = append(parts, "COALESCE("+ref+", '') AS "+c.name)
	}

	cases := make([]string, len(spell.DescriptorFlags))
	for i, f := range spell.DescriptorFlags {
		cases[i] = `(CASE WHEN COALESCE(s."` + f.Column + `", 0) != 0 THEN '` + f.Column + `,' ELSE '' END)`
	}
	parts = append(parts, "RTRIM("+strings.Join(cases, " || ")+", ',') AS descriptor_flags")
	return strings.Join(parts, ", ")
}
