// Package query splits an advanced query string into free text and field clauses.
package query

import (
	"regexp"
	"strings"

	"github.com/google/shlex"
)

// Op combines a clause with the previous clause of the same field.
type Op string

// Boolean operators.
const (
	OpOr  Op = "OR"
	OpAnd Op = "AND"
)

// Clause is one `field:value` unit of the advanced query syntax.
type Clause struct {
	Field Field
	Value string
	Op    Op
}

// Parsed is the result of splitting a raw query.
type Parsed struct {
	Text    string
	Clauses []Clause
}

// HasClauses reports whether any field clause was recognized.
func (p Parsed) HasClauses() bool { return len(p.Clauses) > 0 }

var clausePattern = regexp.MustCompile(`(?s)^([A-Za-z_]+):(.+)$`)

// Parse splits q into free text and field clauses. It never fails: unbalanced
// quoting falls back to whitespace splitting and unknown prefixes stay free text.
func Parse(q string) Parsed {
	tokens, err := shlex.Split(q)
	if err != nil {
		tokens = strings.Fields(q)
	}

	var (
		text    []string
		clauses []Clause
		pending = OpOr
	)

	for _, tok := range tokens {
		switch strings.ToUpper(tok) {
		case string(OpAnd):
			pending = OpAnd
			continue
		case string(OpOr):
			pending = OpOr
			continue
		}

		if c, ok := parseClause(tok); ok {
			c.Op = pending
			clauses = append(clauses, c)
			pending = OpOr
			continue
		}

		if tok != "" {
			text = append(text, freeTextToken(tok))
		}
		pending = OpOr
	}

	return Parsed{Text: strings.Join(text, " "), Clauses: clauses}
}

func parseClause(tok string) (Clause, bool) {
	m := clausePattern.FindStringSubmatch(tok)
	if m == nil {
		return Clause{}, false
	}
	field, ok := LookupField(m[1])
	if !ok {
		return Clause{}, false
	}
	value := strings.TrimSpace(stripQuotes(m[2]))
	if value == "" {
		return Clause{}, false
	}
	return Clause{Field: field, Value: value}, true
}

// stripQuotes removes one layer of matching single or double quotes.
func stripQuotes(s string) string {
	if len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if first == last && (first == '"' || first == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}

// freeTextToken re-quotes a token that shell quoting merged from several words,
// so the phrase reaches the text engine as a phrase.
func freeTextToken(tok string) string {
	if !strings.ContainsAny(tok, " \t\n") {
		return tok
	}
	return `"` + strings.ReplaceAll(tok, `"`, `""`) + `"`
}
