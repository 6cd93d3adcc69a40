package filter

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/BubbleCoding/spellfinder/internal/domain/search/query"
	"github.com/BubbleCoding/spellfinder/internal/domain/spell"
)

// Facets are structured selections keyed by field. Values of one field are OR-ed.
type Facets map[query.Field][]string

// Values returns the non-blank values of f.
func (f Facets) Values(field query.Field) []string {
	var out []string
	for _, v := range f[field] {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// Compile builds the predicate set for parsed clauses and facet selections.
// Facets and clause groups compile independently and are AND-ed together.
func Compile(clauses []query.Clause, facets Facets) Set {
	var set Set
	compileFacets(&set, facets)
	for _, g := range groupClauses(clauses) {
		compileGroup(&set, g)
	}
	return set
}

// group holds the clauses of one field in input order.
type group struct {
	field   query.Field
	clauses []query.Clause
}

func (g group) anyAnd() bool {
	for _, c := range g.clauses {
		if c.Op == query.OpAnd {
			return true
		}
	}
	return false
}

func (g group) values() []string {
	out := make([]string, len(g.clauses))
	for i, c := range g.clauses {
		out[i] = c.Value
	}
	return out
}

func groupClauses(clauses []query.Clause) []group {
	var groups []group
	idx := make(map[query.Field]int)
	for _, c := range clauses {
		i, ok := idx[c.Field]
		if !ok {
			i = len(groups)
			idx[c.Field] = i
			groups = append(groups, group{field: c.Field})
		}
		groups[i].clauses = append(groups[i].clauses, c)
	}
	return groups
}

func compileGroup(set *Set, g group) {
	kind, ok := KindOf(g.field)
	if !ok {
		return
	}

	switch kind {
	case KindExact:
		col := SpellColumn(exactColumns[g.field])
		vals := lowered(g.values())
		if g.anyAnd() {
			for _, v := range vals {
				set.Add(Equal{Col: col, Value: v, Fold: true})
			}
			return
		}
		set.Add(In{Col: col, Values: vals, Fold: true})

	case KindAssociation:
		col := associations[g.field]
		vals := lowered(g.values())
		if g.anyAnd() {
			for _, v := range vals {
				set.Add(Exists{Rel: col.Rel, Where: []Predicate{Equal{Col: col, Value: v, Fold: true}}})
			}
			return
		}
		set.Add(Exists{Rel: col.Rel, Where: []Predicate{In{Col: col, Values: vals, Fold: true}}})

	case KindLevel:
		col := Column{Rel: ClassLevels, Name: "level"}
		if g.anyAnd() {
			for _, v := range g.values() {
				set.Add(Exists{Rel: ClassLevels, Where: []Predicate{levelPredicate(col, []string{v})}})
			}
			return
		}
		set.Add(Exists{Rel: ClassLevels, Where: []Predicate{levelPredicate(col, g.values())}})

	case KindFlag:
		set.Add(foldFlags(g.clauses))

	case KindSubstring:
		likes := substringPredicates(g.field, g.values())
		if g.anyAnd() {
			for _, p := range likes {
				set.Add(p)
			}
			return
		}
		set.Add(anyOf(likes))

	case KindExclusion:
		for _, p := range exclusionPredicates(g.values()) {
			set.Add(p)
		}

	case KindIdentifier:
		set.Add(idPredicate(g.values()))
	}
}

// foldFlags combines descriptor clauses left to right with each clause's own
// operator. Unknown tags are dropped.
func foldFlags(clauses []query.Clause) Predicate {
	var acc Predicate
	for _, c := range clauses {
		colName, ok := spell.DescriptorColumn(c.Value)
		if !ok {
			continue
		}
		f := Flag{Col: SpellColumn(colName), Set: true}
		switch {
		case acc == nil:
			acc = f
		case c.Op == query.OpAnd:
			acc = All{Preds: []Predicate{acc, f}}
		default:
			acc = Any{Preds: []Predicate{acc, f}}
		}
	}
	return acc
}

func compileFacets(set *Set, facets Facets) {
	if len(facets) == 0 {
		return
	}

	compileClassLevelFacets(set, facets)

	for _, field := range query.Fields {
		vals := facets.Values(field)
		if len(vals) == 0 {
			continue
		}
		kind, _ := KindOf(field)
		switch kind {
		case KindExact:
			set.Add(In{Col: SpellColumn(exactColumns[field]), Values: lowered(vals), Fold: true})
		case KindAssociation:
			if field == query.FieldClass {
				continue
			}
			col := associations[field]
			set.Add(Exists{Rel: col.Rel, Where: []Predicate{In{Col: col, Values: lowered(vals), Fold: true}}})
		case KindFlag:
			var flags []Predicate
			for _, v := range vals {
				if colName, ok := spell.DescriptorColumn(v); ok {
					flags = append(flags, Flag{Col: SpellColumn(colName), Set: true})
				}
			}
			set.Add(anyOf(flags))
		case KindSubstring:
			set.Add(anyOf(substringPredicates(field, vals)))
		case KindExclusion:
			for _, p := range exclusionPredicates(vals) {
				set.Add(p)
			}
		case KindIdentifier:
			set.Add(idPredicate(vals))
		case KindLevel:
			// handled with class
		}
	}
}

// compileClassLevelFacets constrains class and level through one shared join
// row, so class=wizard&level=3 means "wizard level 3".
func compileClassLevelFacets(set *Set, facets Facets) {
	classes := lowered(facets.Values(query.FieldClass))
	levelCol := Column{Rel: ClassLevels, Name: "level", Joined: true}
	level := levelPredicate(levelCol, facets.Values(query.FieldLevel))

	if len(classes) == 0 && IsVacuous(level) {
		return
	}
	set.join(JoinClassLevel)
	set.Add(In{Col: Column{Rel: ClassLevels, Name: "class_name", Joined: true}, Values: classes, Fold: true})
	set.Add(level)
}

var levelRangePattern = regexp.MustCompile(`^(-?\d+)\s*-\s*(-?\d+)$`)

// levelPredicate accepts integers and lo-hi ranges; anything else is dropped.
func levelPredicate(col Column, values []string) Predicate {
	var (
		exact  []any
		preds  []Predicate
		ranges []Predicate
	)
	for _, v := range values {
		v = strings.TrimSpace(v)
		if n, err := strconv.Atoi(v); err == nil {
			exact = append(exact, n)
			continue
		}
		if m := levelRangePattern.FindStringSubmatch(v); m != nil {
			lo, _ := strconv.Atoi(m[1])
			hi, _ := strconv.Atoi(m[2])
			if lo > hi {
				lo, hi = hi, lo
			}
			ranges = append(ranges, Range{Col: col, Min: lo, Max: hi})
		}
	}
	if len(exact) > 0 {
		preds = append(preds, In{Col: col, Values: exact})
	}
	return anyOf(append(preds, ranges...))
}

func substringPredicates(field query.Field, values []string) []Predicate {
	sf, ok := SubstringFieldOf(field)
	if !ok {
		return nil
	}
	var out []Predicate
	seen := make(map[string]bool)
	for _, v := range values {
		o, ok := sf.Resolve(v)
		if !ok || seen[o.Substr] {
			continue
		}
		seen[o.Substr] = true
		out = append(out, Like{Col: SpellColumn(sf.Column), Substr: o.Substr})
	}
	return out
}

// exclusionPredicates requires each named component to be absent.
func exclusionPredicates(values []string) []Predicate {
	var out []Predicate
	seen := make(map[string]bool)
	for _, v := range values {
		col, ok := spell.ComponentColumn(v)
		if !ok || seen[col] {
			continue
		}
		seen[col] = true
		out = append(out, Flag{Col: SpellColumn(col), Set: false})
	}
	return out
}

func idPredicate(values []string) Predicate {
	var ids []any
	for _, v := range values {
		if n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64); err == nil {
			ids = append(ids, n)
		}
	}
	return In{Col: SpellColumn("id"), Values: ids}
}

func lowered(values []string) []any {
	out := make([]any, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, strings.ToLower(v))
		}
	}
	return out
}
