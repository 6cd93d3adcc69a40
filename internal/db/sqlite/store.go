// Package sqlite implements db.Store over a read-only SQLite corpus with an
// FTS5 text index.
package sqlite

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	// registers the "sqlite" driver
	_ "modernc.org/sqlite"

	"github.com/BubbleCoding/spellfinder/internal/db"
	"github.com/BubbleCoding/spellfinder/internal/domain"
)

// Compile-time check: Store implements db.Store.
var _ db.Store = (*Store)(nil)

// Defaults applied when Config leaves a field zero.
const (
	DefaultMaxOpenConns  = 8
	DefaultBusyTimeout   = 5 * time.Second
	DefaultEnrichBatch   = 500
	driverName           = "sqlite"
	readyPollingInterval = 100 * time.Millisecond
)

// RequiredTables must exist for the store to open.
var RequiredTables = []string{"spells", "spell_classes", "spell_categories", "spells_fts"}

// Config holds connection parameters for a SQLite store.
type Config struct {
	Path         string
	MaxOpenConns int
	BusyTimeout  time.Duration
	// EnrichBatchSize caps the identifiers bound into one association query.
	EnrichBatchSize int
}

func (c *Config) applyDefaults() {
	if c.MaxOpenConns <= 0 {
		c.MaxOpenConns = DefaultMaxOpenConns
	}
	if c.BusyTimeout <= 0 {
		c.BusyTimeout = DefaultBusyTimeout
	}
	if c.EnrichBatchSize <= 0 {
		c.EnrichBatchSize = DefaultEnrichBatch
	}
}

// Store implements db.Store. The underlying pool is shared across requests;
// each request checks out its own connection through Session.
type Store struct {
	db        *sqlx.DB
	batchSize int
}

// NewStore opens path read-only and verifies the schema.
func NewStore(ctx context.Context, cfg Config) (*Store, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("path is required")
	}
	cfg.applyDefaults()

	if _, err := os.Stat(cfg.Path); err != nil {
		return nil, &db.Error{Op: db.OpConn, Err: fmt.Errorf("%w: %w", domain.ErrStorageUnavailable, err)}
	}

	conn, err := sqlx.Open(driverName, dsn(cfg))
	if err != nil {
		return nil, &db.Error{Op: db.OpConn, Err: err}
	}
	conn.SetMaxOpenConns(cfg.MaxOpenConns)
	conn.SetMaxIdleConns(cfg.MaxOpenConns)
	conn.SetConnMaxLifetime(0)

	s := &Store{db: conn, batchSize: cfg.EnrichBatchSize}
	if err := s.CheckSchema(ctx); err != nil {
		_ = conn.Close()
		return nil, err
	}
	return s, nil
}

// dsn builds a read-only URI. Pragmas are applied per pooled connection.
func dsn(cfg Config) string {
	return fmt.Sprintf("file:%s?mode=ro&_pragma=busy_timeout(%d)&_pragma=query_only(1)",
		cfg.Path, cfg.BusyTimeout.Milliseconds())
}

// CheckSchema verifies that every required table exists.
func (s *Store) CheckSchema(ctx context.Context) error {
	var present []string
	query, args, err := sqlx.In(`SELECT name FROM sqlite_master WHERE type = 'table' AND name IN (?)`, RequiredTables)
	if err != nil {
		return &db.Error{Op: db.OpSchema, Err: err}
	}
	if err := s.db.SelectContext(ctx, &present, query, args...); err != nil {
		return &db.Error{Op: db.OpSchema, Err: fmt.Errorf("%w: %w", domain.ErrStorageUnavailable, err)}
	}

	have := make(map[string]bool, len(present))
	for _, name := range present {
		have[name] = true
	}
	var missing []string
	for _, name := range RequiredTables {
		if !have[name] {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return &db.Error{
			Op:  db.OpSchema,
			Err: fmt.Errorf("%w: missing tables %s", domain.ErrSchemaMismatch, strings.Join(missing, ", ")),
		}
	}
	return nil
}

// Ping checks connectivity.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return &db.Error{Op: db.OpPing, Err: err}
	}
	return nil
}

// Close shuts down the pool.
func (s *Store) Close() error {
	return s.db.Close()
}

// WaitForReady polls Ping until the store responds or timeout expires.
func (s *Store) WaitForReady(ctx context.Context, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := s.Ping(ctx); err == nil {
		return nil
	}

	ticker := time.NewTicker(readyPollingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("timeout waiting for database: %w", ctx.Err())
		case <-ticker.C:
			if err := s.Ping(ctx); err == nil {
				return nil
			}
		}
	}
}

// Session checks out one connection for the caller's request.
func (s *Store) Session(ctx context.Context) (db.Session, error) {
	conn, err := s.db.Connx(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, &db.Error{Op: db.OpConn, Err: err}
		}
		return nil, &db.Error{Op: db.OpConn, Err: fmt.Errorf("%w: %w", domain.ErrStorageUnavailable, err)}
	}
	return &session{conn: conn, batchSize: s.batchSize}, nil
}
