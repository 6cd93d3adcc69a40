// Package fts converts free text into the text-search engine's query syntax.
package fts

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// operatorPattern matches an explicit boolean keyword as a whole word.
var operatorPattern = regexp.MustCompile(`(?i)(^|\s)(AND|OR|NOT)(\s|$)`)

// IsRaw reports whether text is already written in engine syntax: it contains
// a quote character or a whole-word AND, OR or NOT.
func IsRaw(text string) bool {
	return strings.Contains(text, `"`) || operatorPattern.MatchString(text)
}

// Build returns the engine query for text and false when text is blank, in
// which case no full-text predicate is emitted at all.
//
// Raw engine syntax passes through unmodified. Otherwise every whitespace
// separated token gets a prefix wildcard; adjacency supplies the implicit AND.
// A token with punctuation (foo:bar, light-wounds) is quoted so the engine
// never reads it as a column filter or operator, and a token with no word
// characters at all is dropped.
func Build(text string) (string, bool) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return "", false
	}
	if IsRaw(trimmed) {
		return text, true
	}

	var terms []string
	for _, tok := range strings.Fields(trimmed) {
		if t, ok := prefixTerm(tok); ok {
			terms = append(terms, t)
		}
	}
	if len(terms) == 0 {
		return "", false
	}
	return strings.Join(terms, " "), true
}

func prefixTerm(tok string) (string, bool) {
	core := strings.TrimRight(tok, "*")
	if !strings.ContainsFunc(core, isBareword) {
		return "", false
	}
	if strings.IndexFunc(core, func(r rune) bool { return !isBareword(r) }) < 0 {
		return core + "*", true
	}
	return `"` + strings.ReplaceAll(core, `"`, `""`) + `"*`, true
}

// isBareword reports whether r may appear in an unquoted FTS5 term.
func isBareword(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case r == '_', r == 0x1A, r >= utf8.RuneSelf:
		return true
	}
	return false
}
