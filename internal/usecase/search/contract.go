package search

import (
	"context"

	"github.com/BubbleCoding/spellfinder/internal/domain/search/filter"
	"github.com/BubbleCoding/spellfinder/internal/domain/search/order"
	"github.com/BubbleCoding/spellfinder/internal/domain/search/request"
	"github.com/BubbleCoding/spellfinder/internal/domain/spell"
)

// Repository defines the storage contract for search operations.
type Repository interface {
	Search(
		ctx context.Context, filters filter.Set, key order.Key, page request.Page,
	) ([]spell.Spell, int, error)
}
