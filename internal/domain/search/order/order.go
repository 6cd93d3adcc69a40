// Package order defines result ordering keys.
package order

// Key is a result ordering.
type Key string

// Explicit sort keys accepted from callers.
const (
	Name       Key = "name"
	NameDesc   Key = "name_desc"
	Level      Key = "level"
	LevelDesc  Key = "level_desc"
	School     Key = "school"
	SchoolDesc Key = "school_desc"
)

// Relevance orders by full-text rank. It is never accepted from callers.
const Relevance Key = "relevance"

// Keys lists the explicit sort keys in presentation order.
var Keys = []Key{Name, NameDesc, Level, LevelDesc, School, SchoolDesc}

// IsValid reports whether k is an explicit sort key.
func (k Key) IsValid() bool {
	for _, known := range Keys {
		if k == known {
			return true
		}
	}
	return false
}

// Resolve picks the effective ordering. An explicit key always wins; without
// one, full-text queries rank by relevance and everything else sorts by name.
// Unknown keys count as absent.
func Resolve(requested Key, hasText bool) Key {
	switch {
	case requested.IsValid():
		return requested
	case hasText:
		return Relevance
	default:
		return Name
	}
}
