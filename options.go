package spellfinder

import (
	"time"

	"github.com/BubbleCoding/spellfinder/internal/domain/search/request"
)

type clientConfig struct {
	maxOpenConns    int
	busyTimeout     time.Duration
	enrichBatchSize int
	searchTimeout   time.Duration
	limits          request.Limits
}

// Option configures a Client.
type Option func(*clientConfig)

// WithMaxOpenConns bounds the connection pool.
func WithMaxOpenConns(n int) Option {
	return func(c *clientConfig) { c.maxOpenConns = n }
}

// WithBusyTimeout sets how long a query waits on a locked database file.
func WithBusyTimeout(d time.Duration) Option {
	return func(c *clientConfig) { c.busyTimeout = d }
}

// WithEnrichBatchSize caps the record ids bound into one association query.
func WithEnrichBatchSize(n int) Option {
	return func(c *clientConfig) { c.enrichBatchSize = n }
}

// WithSearchTimeout bounds every search. Zero means no bound.
func WithSearchTimeout(d time.Duration) Option {
	return func(c *clientConfig) { c.searchTimeout = d }
}

// WithPageLimits sets the default and maximum page size.
func WithPageLimits(defaultSize, maxSize int) Option {
	return func(c *clientConfig) {
		c.limits = request.Limits{DefaultPageSize: defaultSize, MaxPageSize: maxSize}
	}
}
