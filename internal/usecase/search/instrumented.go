package search

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/BubbleCoding/spellfinder/internal/domain"
	"github.com/BubbleCoding/spellfinder/internal/domain/search/fts"
	"github.com/BubbleCoding/spellfinder/internal/domain/search/query"
	"github.com/BubbleCoding/spellfinder/internal/domain/search/request"
	"github.com/BubbleCoding/spellfinder/internal/domain/search/result"
	"github.com/BubbleCoding/spellfinder/internal/metrics"
)

// Searcher is the search use case as seen by transports.
type Searcher interface {
	Search(ctx context.Context, req *request.Request) (result.Page, error)
}

// InstrumentedService wraps a Searcher with Prometheus metrics.
// Metrics must be registered with metrics.RegisterSearchMetrics.
type InstrumentedService struct {
	inner Searcher
}

// NewInstrumented wraps inner with metrics.
func NewInstrumented(inner Searcher) *InstrumentedService {
	return &InstrumentedService{inner: inner}
}

// Search delegates to the inner service and records duration, result size and failures.
func (s *InstrumentedService) Search(ctx context.Context, req *request.Request) (result.Page, error) {
	_, hasText := fts.Build(query.Parse(req.Query()).Text)
	start := time.Now()

	page, err := s.inner.Search(ctx, req)

	metrics.SearchDuration.WithLabelValues(strconv.FormatBool(hasText)).Observe(time.Since(start).Seconds())
	if err != nil {
		stage := metrics.StageStorage
		if errors.Is(err, domain.ErrInvalidQuery) {
			stage = metrics.StageQuery
		}
		metrics.SearchErrorsTotal.WithLabelValues(stage).Inc()
		return result.Page{}, err
	}

	metrics.SearchResults.Observe(float64(page.Total()))
	return page, nil
}
