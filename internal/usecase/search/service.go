package search

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/BubbleCoding/spellfinder/internal/domain/search/filter"
	"github.com/BubbleCoding/spellfinder/internal/domain/search/fts"
	"github.com/BubbleCoding/spellfinder/internal/domain/search/order"
	"github.com/BubbleCoding/spellfinder/internal/domain/search/query"
	"github.com/BubbleCoding/spellfinder/internal/domain/search/request"
	"github.com/BubbleCoding/spellfinder/internal/domain/search/result"
	"github.com/BubbleCoding/spellfinder/internal/logger"
)

// Service runs advanced-query searches over the corpus.
type Service struct {
	repo    Repository
	timeout time.Duration
}

// Option configures a Service.
type Option func(*Service)

// WithTimeout bounds every search. Zero disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(s *Service) { s.timeout = d }
}

// New creates a search service.
func New(repo Repository, opts ...Option) *Service {
	s := &Service{repo: repo}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Plan is the compiled form of a request.
type Plan struct {
	Parsed  query.Parsed
	Filters filter.Set
	Order   order.Key
}

// Compile parses the raw query, compiles clauses and facets, and adds the
// full-text predicate. It never fails.
func Compile(req *request.Request) Plan {
	parsed := query.Parse(req.Query())
	set := filter.Compile(parsed.Clauses, req.Facets())
	if q, ok := fts.Build(parsed.Text); ok {
		set.AddText(q)
	}
	return Plan{
		Parsed:  parsed,
		Filters: set,
		Order:   order.Resolve(req.Sort(), set.HasText()),
	}
}

// Search executes req and returns one enriched page.
func (s *Service) Search(ctx context.Context, req *request.Request) (result.Page, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	plan := Compile(req)
	start := time.Now()

	records, total, err := s.repo.Search(ctx, plan.Filters, plan.Order, req.Page())
	if err != nil {
		return result.Page{}, fmt.Errorf("search: %w", err)
	}

	logger.FromContext(ctx).Debug("Search completed",
		zap.String("text", plan.Parsed.Text),
		zap.Int("clauses", len(plan.Parsed.Clauses)),
		zap.Int("predicates", plan.Filters.Len()),
		zap.String("order", string(plan.Order)),
		zap.Int("total", total),
		zap.Duration("elapsed", time.Since(start)),
	)

	return result.New(records, total, req.Page()), nil
}
