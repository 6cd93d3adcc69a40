package db

import (
	"context"
	"time"
)

// Store is the main database facade combining all sub-interfaces.
type Store interface {
	Pinger
	SessionOpener
	Close() error
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// Pinger checks database connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// SessionOpener hands out request-scoped sessions.
type SessionOpener interface {
	Session(ctx context.Context) (Session, error)
}

// Session pins one pooled connection for the lifetime of a request.
// It must be closed by the caller.
type Session interface {
	Searcher
	AssociationReader
	AttributeReader
	Close() error
}

// Searcher runs the count and page queries of a compiled filter set.
type Searcher interface {
	Count(ctx context.Context, q *SearchQuery) (int, error)
	Select(ctx context.Context, q *SearchQuery) ([]SpellRow, error)
}

// AssociationReader loads one-to-many associations for a batch of records.
type AssociationReader interface {
	ClassLevels(ctx context.Context, spellIDs []int64) ([]ClassLevelRow, error)
	Categories(ctx context.Context, spellIDs []int64) ([]CategoryRow, error)
}

// AttributeReader projects distinct observed values for selection UIs.
type AttributeReader interface {
	DistinctClasses(ctx context.Context) ([]string, error)
	DistinctCategories(ctx context.Context) ([]string, error)
	Distinct(ctx context.Context, attr Attribute) ([]string, error)
	ByFrequency(ctx context.Context, attr Attribute) ([]string, error)
}
