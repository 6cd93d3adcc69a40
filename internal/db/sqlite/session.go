package sqlite

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/BubbleCoding/spellfinder/internal/db"
	"github.com/BubbleCoding/spellfinder/internal/domain"
)

var _ db.Session = (*session)(nil)

// session pins one pooled connection. Not safe for concurrent use.
type session struct {
	conn      *sqlx.Conn
	batchSize int
}

// Close returns the connection to the pool.
func (s *session) Close() error {
	return s.conn.Close()
}

// Count returns the number of distinct records matching q.
func (s *session) Count(ctx context.Context, q *db.SearchQuery) (int, error) {
	var r renderer
	tail, err := r.fromWhere(&q.Filters)
	if err != nil {
		return 0, &db.Error{Op: db.OpCount, Err: err}
	}

	var total int
	if err := s.conn.GetContext(ctx, &total, "SELECT COUNT(DISTINCT s.id)"+tail, r.args...); err != nil {
		return 0, &db.Error{Op: db.OpCount, Err: classify(err, q.Filters.HasText())}
	}
	return total, nil
}

// Select returns the requested page of records matching q.
func (s *session) Select(ctx context.Context, q *db.SearchQuery) ([]db.SpellRow, error) {
	var r renderer
	tail, err := r.fromWhere(&q.Filters)
	if err != nil {
		return nil, &db.Error{Op: db.OpSelect, Err: err}
	}

	var b strings.Builder
	b.WriteString("SELECT ")
	b.WriteString(selectList)
	b.WriteString(tail)
	if q.Filters.NeedsAssociationJoin() {
		b.WriteString(" GROUP BY s.id")
	}
	b.WriteString(orderBy(q.Order, q.Filters.HasText()))
	if q.Limit > 0 {
		b.WriteString(" LIMIT " + r.bind(q.Limit) + " OFFSET " + r.bind(q.Offset))
	}

	var rows []db.SpellRow
	if err := s.conn.SelectContext(ctx, &rows, b.String(), r.args...); err != nil {
		return nil, &db.Error{Op: db.OpSelect, Err: classify(err, q.Filters.HasText())}
	}
	return rows, nil
}

// ClassLevels loads class memberships for ids, ordered by class name.
func (s *session) ClassLevels(ctx context.Context, spellIDs []int64) ([]db.ClassLevelRow, error) {
	var out []db.ClassLevelRow
	err := s.batched(spellIDs, func(batch []int64) error {
		query, args, err := sqlx.In(
			`SELECT spell_id, class_name, level FROM spell_classes
			 WHERE spell_id IN (?) ORDER BY spell_id, class_name, level`, batch)
		if err != nil {
			return err
		}
		var rows []db.ClassLevelRow
		if err := s.conn.SelectContext(ctx, &rows, query, args...); err != nil {
			return err
		}
		out = append(out, rows...)
		return nil
	})
	if err != nil {
		return nil, &db.Error{Op: db.OpClasses, Err: err}
	}
	return out, nil
}

// Categories loads stored category assignments for ids.
func (s *session) Categories(ctx context.Context, spellIDs []int64) ([]db.CategoryRow, error) {
	var out []db.CategoryRow
	err := s.batched(spellIDs, func(batch []int64) error {
		query, args, err := sqlx.In(
			`SELECT spell_id, category FROM spell_categories
			 WHERE spell_id IN (?) ORDER BY spell_id, category`, batch)
		if err != nil {
			return err
		}
		var rows []db.CategoryRow
		if err := s.conn.SelectContext(ctx, &rows, query, args...); err != nil {
			return err
		}
		out = append(out, rows...)
		return nil
	})
	if err != nil {
		return nil, &db.Error{Op: db.OpCategories, Err: err}
	}
	return out, nil
}

// batched calls fn with consecutive chunks of ids so no single statement
// exceeds the bound-parameter limit.
func (s *session) batched(ids []int64, fn func([]int64) error) error {
	size := s.batchSize
	if size <= 0 {
		size = DefaultEnrichBatch
	}
	for start := 0; start < len(ids); start += size {
		end := min(start+size, len(ids))
		if err := fn(ids[start:end]); err != nil {
			return err
		}
	}
	return nil
}

// DistinctClasses lists every class name that has at least one spell.
func (s *session) DistinctClasses(ctx context.Context) ([]string, error) {
	var out []string
	if err := s.conn.SelectContext(ctx, &out,
		`SELECT DISTINCT class_name FROM spell_classes ORDER BY class_name`); err != nil {
		return nil, &db.Error{Op: db.OpDistinct, Err: err}
	}
	return out, nil
}

// DistinctCategories lists every stored category label.
func (s *session) DistinctCategories(ctx context.Context) ([]string, error) {
	var out []string
	if err := s.conn.SelectContext(ctx, &out,
		`SELECT DISTINCT category FROM spell_categories ORDER BY category`); err != nil {
		return nil, &db.Error{Op: db.OpDistinct, Err: err}
	}
	return out, nil
}

// Distinct lists the non-empty values of attr in ascending order.
func (s *session) Distinct(ctx context.Context, attr db.Attribute) ([]string, error) {
	if !attr.IsValid() {
		return nil, &db.Error{Op: db.OpDistinct, Err: fmt.Errorf("unknown attribute %q", attr)}
	}
	col := `"` + string(attr) + `"`
	query := `SELECT DISTINCT ` + col + ` FROM spells
		WHERE ` + col + ` IS NOT NULL AND ` + col + ` != '' ORDER BY ` + col
	var out []string
	if err := s.conn.SelectContext(ctx, &out, query); err != nil {
		return nil, &db.Error{Op: db.OpDistinct, Err: err}
	}
	return out, nil
}

// ByFrequency lists the non-empty values of attr, most common first.
func (s *session) ByFrequency(ctx context.Context, attr db.Attribute) ([]string, error) {
	if !attr.IsValid() {
		return nil, &db.Error{Op: db.OpDistinct, Err: fmt.Errorf("unknown attribute %q", attr)}
	}
	col := `"` + string(attr) + `"`
	query := `SELECT ` + col + ` FROM spells
		WHERE ` + col + ` IS NOT NULL AND ` + col + ` != ''
		GROUP BY ` + col + ` ORDER BY COUNT(*) DESC, ` + col
	var out []string
	if err := s.conn.SelectContext(ctx, &out, query); err != nil {
		return nil, &db.Error{Op: db.OpDistinct, Err: err}
	}
	return out, nil
}

// classify maps text engine rejections of a user query to ErrInvalidQuery.
func classify(err error, hasText bool) error {
	if !hasText {
		return err
	}
	msg := err.Error()
	if strings.Contains(msg, "fts5") || strings.Contains(msg, "no such column") ||
		strings.Contains(msg, "syntax error") || strings.Contains(msg, "unterminated string") {
		return fmt.Errorf("%w: %w", domain.ErrInvalidQuery, err)
	}
	return err
}
