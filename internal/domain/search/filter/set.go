package filter

// Join is an extra relation the record query must join.
type Join int

// Joins.
const (
	// JoinClassLevel joins one class/level row shared by the class and level facets.
	JoinClassLevel Join = iota + 1
	// JoinFullText joins the text index for MATCH and relevance ordering.
	JoinFullText
)

// Set is a flat conjunction of predicates plus the joins they need.
type Set struct {
	preds []Predicate
	joins []Join
	text  string
}

// Add appends p unless it is vacuous. It reports whether p was kept.
func (s *Set) Add(p Predicate) bool {
	if IsVacuous(p) {
		return false
	}
	s.preds = append(s.preds, p)
	return true
}

// AddText adds a full-text predicate and the text index join.
func (s *Set) AddText(q string) {
	if q == "" {
		return
	}
	s.text = q
	s.Add(Match{Query: q})
	s.join(JoinFullText)
}

func (s *Set) join(j Join) {
	if !s.Needs(j) {
		s.joins = append(s.joins, j)
	}
}

// Predicates returns the conjunction members in insertion order.
func (s *Set) Predicates() []Predicate { return s.preds }

// Joins returns the required joins in insertion order.
func (s *Set) Joins() []Join { return s.joins }

// Needs reports whether join j is required.
func (s *Set) Needs(j Join) bool {
	for _, have := range s.joins {
		if have == j {
			return true
		}
	}
	return false
}

// NeedsAssociationJoin reports whether a one-to-many join may duplicate records.
func (s *Set) NeedsAssociationJoin() bool { return s.Needs(JoinClassLevel) }

// HasText reports whether a full-text predicate is present.
func (s *Set) HasText() bool { return s.text != "" }

// Text returns the full-text engine query, if any.
func (s *Set) Text() string { return s.text }

// Len returns the number of predicates.
func (s *Set) Len() int { return len(s.preds) }

// IsEmpty reports whether the set constrains nothing.
func (s *Set) IsEmpty() bool { return len(s.preds) == 0 }
