// Package filter compiles field clauses and facet selections into a typed
// predicate set. Predicates only carry values; storage renders them as bound
// parameters.
package filter

// Relation is a table predicates can reference.
type Relation string

// Relations.
const (
	Spells        Relation = "spells"
	ClassLevels   Relation = "spell_classes"
	CategoryLinks Relation = "spell_categories"
)

// Column is a column of a relation. Joined selects the shared class/level join
// row instead of a correlated subquery row.
type Column struct {
	Rel    Relation
	Name   string
	Joined bool
}

// SpellColumn returns a column of the record table.
func SpellColumn(name string) Column { return Column{Rel: Spells, Name: name} }

// Predicate is a compiled condition. The set of implementations is closed.
type Predicate interface {
	vacuous() bool
}

// In matches when the column equals any of Values. Fold compares lowercased.
type In struct {
	Col    Column
	Values []any
	Fold   bool
}

// Equal matches one value. Fold compares lowercased.
type Equal struct {
	Col   Column
	Value any
	Fold  bool
}

// Like matches when the lowercased column contains Substr.
type Like struct {
	Col    Column
	Substr string
}

// Flag matches a boolean column. Set=false also matches NULL.
type Flag struct {
	Col Column
	Set bool
}

// Range matches Min <= column <= Max.
type Range struct {
	Col      Column
	Min, Max int
}

// Exists matches when a row of Rel belongs to the spell and satisfies all of Where.
type Exists struct {
	Rel   Relation
	Where []Predicate
}

// Any matches when at least one member matches.
type Any struct {
	Preds []Predicate
}

// All matches when every member matches.
type All struct {
	Preds []Predicate
}

// Match is a full-text query against the text index.
type Match struct {
	Query string
}

func (p In) vacuous() bool     { return len(p.Values) == 0 }
func (p Equal) vacuous() bool  { return p.Value == nil }
func (p Like) vacuous() bool   { return p.Substr == "" }
func (p Flag) vacuous() bool   { return p.Col.Name == "" }
func (p Range) vacuous() bool  { return p.Col.Name == "" }
func (p Match) vacuous() bool  { return p.Query == "" }
func (p Exists) vacuous() bool { return allVacuous(p.Where) }
func (p Any) vacuous() bool    { return allVacuous(p.Preds) }
func (p All) vacuous() bool    { return allVacuous(p.Preds) }

func allVacuous(preds []Predicate) bool {
	for _, p := range preds {
		if p != nil && !p.vacuous() {
			return false
		}
	}
	return true
}

// IsVacuous reports whether p would constrain nothing.
func IsVacuous(p Predicate) bool {
	return p == nil || p.vacuous()
}

// anyOf collapses a single-member group to the member itself.
func anyOf(preds []Predicate) Predicate {
	preds = prune(preds)
	switch len(preds) {
	case 0:
		return nil
	case 1:
		return preds[0]
	}
	return Any{Preds: preds}
}

// prune drops vacuous members.
func prune(preds []Predicate) []Predicate {
	out := preds[:0:0]
	for _, p := range preds {
		if !IsVacuous(p) {
			out = append(out, p)
		}
	}
	return out
}
