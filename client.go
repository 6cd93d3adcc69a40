// Package spellfinder searches a spell corpus database in-process.
//
//	c, err := spellfinder.Open(ctx, "spells.db")
//	if err != nil { ... }
//	defer c.Close()
//	page, err := c.Search(ctx, "fire class:wizard", &spellfinder.SearchOptions{Sort: "level"})
package spellfinder

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/BubbleCoding/spellfinder/internal/db/sqlite"
	"github.com/BubbleCoding/spellfinder/internal/domain/search/filter"
	"github.com/BubbleCoding/spellfinder/internal/domain/search/order"
	"github.com/BubbleCoding/spellfinder/internal/domain/search/query"
	"github.com/BubbleCoding/spellfinder/internal/domain/search/request"
	"github.com/BubbleCoding/spellfinder/internal/domain/spell"
	facetrepo "github.com/BubbleCoding/spellfinder/internal/repository/facet"
	searchrepo "github.com/BubbleCoding/spellfinder/internal/repository/search"
	facetuc "github.com/BubbleCoding/spellfinder/internal/usecase/facet"
	searchuc "github.com/BubbleCoding/spellfinder/internal/usecase/search"
)

const defaultReadinessTimeout = 5 * time.Second

// Spell is one enriched search record.
type Spell = spell.Spell

// ClassLevel is one class membership of a Spell.
type ClassLevel = spell.ClassLevel

// Filters lists the known option values of every facet.
type Filters = facetuc.Metadata

// Client is the spellfinder entry point. It is safe for concurrent use.
type Client struct {
	store     *sqlite.Store
	searchSvc *searchuc.Service
	facetSvc  *facetuc.Service
	limits    request.Limits
}

// Open opens the corpus database at path read-only and verifies its schema.
func Open(ctx context.Context, path string, opts ...Option) (*Client, error) {
	if path == "" {
		return nil, errors.New("spellfinder: database path required")
	}
	cfg := &clientConfig{limits: request.DefaultLimits}
	for _, o := range opts {
		o(cfg)
	}

	store, err := sqlite.NewStore(ctx, sqlite.Config{
		Path:            path,
		MaxOpenConns:    cfg.maxOpenConns,
		BusyTimeout:     cfg.busyTimeout,
		EnrichBatchSize: cfg.enrichBatchSize,
	})
	if err != nil {
		return nil, fmt.Errorf("spellfinder: open store: %w", err)
	}

	if err := store.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("spellfinder: database not ready: %w", err)
	}

	return &Client{
		store:     store,
		searchSvc: searchuc.New(searchrepo.New(store), searchuc.WithTimeout(cfg.searchTimeout)),
		facetSvc:  facetuc.New(facetrepo.New(store)),
		limits:    cfg.limits,
	}, nil
}

// Close releases all resources.
func (c *Client) Close() error {
	if c.store == nil {
		return nil
	}
	if err := c.store.Close(); err != nil {
		return fmt.Errorf("close: %w", err)
	}
	return nil
}

// Ping checks database connectivity.
func (c *Client) Ping(ctx context.Context) error {
	if err := c.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// SearchOptions configures a search. The zero value returns the first page
// of the default size in default order.
type SearchOptions struct {
	// Facets maps a facet name (class, level, school, descriptor, ...) to its
	// selected values. Values of one facet are OR-ed.
	Facets map[string][]string
	// Sort is one of name, name_desc, level, level_desc, school, school_desc.
	Sort string
	// Page is 1-based.
	Page int
	// PerPage is clamped to the configured maximum.
	PerPage int
	// All returns every match on a single page.
	All bool
}

// Page is one page of search results.
type Page struct {
	Records []Spell
	Total   int
	Page    int
	PerPage int
	Pages   int
}

// Search runs an advanced query (free text, field:value clauses, AND/OR).
func (c *Client) Search(ctx context.Context, q string, opts *SearchOptions) (*Page, error) {
	if opts == nil {
		opts = &SearchOptions{}
	}

	facets, err := toFacets(opts.Facets)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	if opts.Sort != "" && !order.Key(opts.Sort).IsValid() {
		return nil, fmt.Errorf("search: unknown sort %q", opts.Sort)
	}

	size := opts.PerPage
	if size == 0 {
		size = c.limits.DefaultPageSize
	}
	if size == 0 {
		size = request.DefaultPageSize
	}
	if opts.All {
		size = request.SizeAll
	}
	req := request.New(q, facets, order.Key(opts.Sort), request.NewPage(opts.Page, size, c.limits))

	res, err := c.searchSvc.Search(ctx, &req)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	return &Page{
		Records: res.Records(),
		Total:   res.Total(),
		Page:    res.Number(),
		PerPage: res.PerPage(),
		Pages:   res.Pages(),
	}, nil
}

// Filters lists every known facet option.
func (c *Client) Filters(ctx context.Context) (*Filters, error) {
	m, err := c.facetSvc.Metadata(ctx)
	if err != nil {
		return nil, fmt.Errorf("filters: %w", err)
	}
	return m, nil
}

func toFacets(in map[string][]string) (filter.Facets, error) {
	if len(in) == 0 {
		return nil, nil
	}
	out := make(filter.Facets, len(in))
	for name, vals := range in {
		f := query.Field(name)
		if !f.IsValid() {
			return nil, fmt.Errorf("unknown facet %q", name)
		}
		out[f] = vals
	}
	return out, nil
}
