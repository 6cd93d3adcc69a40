package search

import (
	"context"
	"fmt"

	"github.com/BubbleCoding/spellfinder/internal/db"
	"github.com/BubbleCoding/spellfinder/internal/domain/search/filter"
	"github.com/BubbleCoding/spellfinder/internal/domain/search/order"
	"github.com/BubbleCoding/spellfinder/internal/domain/search/request"
	"github.com/BubbleCoding/spellfinder/internal/domain/spell"
)

// store is the consumer interface for search operations (ISP).
type store interface {
	Session(ctx context.Context) (db.Session, error)
}

// Repo implements usecase/search.Repository.
type Repo struct {
	store store
}

// New creates a search repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// Search counts the records matching filters and loads the requested page,
// enriched with class levels, categories and descriptor labels. All queries
// of one call run on the same connection.
func (r *Repo) Search(
	ctx context.Context, filters filter.Set, key order.Key, page request.Page,
) ([]spell.Spell, int, error) {
	sess, err := r.store.Session(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("open session: %w", err)
	}
	defer sess.Close()

	q := &db.SearchQuery{
		Filters: filters,
		Order:   key,
		Limit:   page.Size(),
		Offset:  page.Offset(),
	}

	total, err := sess.Count(ctx, q)
	if err != nil {
		return nil, 0, fmt.Errorf("count: %w", err)
	}
	if total == 0 {
		return []spell.Spell{}, 0, nil
	}

	rows, err := sess.Select(ctx, q)
	if err != nil {
		return nil, 0, fmt.Errorf("select page: %w", err)
	}

	records, err := enrich(ctx, sess, rows)
	if err != nil {
		return nil, 0, err
	}
	return records, total, nil
}
