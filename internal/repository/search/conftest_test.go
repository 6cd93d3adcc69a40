package search

import (
	"context"
	"testing"

	"github.com/BubbleCoding/spellfinder/internal/db"
)

// mockSession implements db.Session for tests.
type mockSession struct {
	countFn      func(ctx context.Context, q *db.SearchQuery) (int, error)
	selectFn     func(ctx context.Context, q *db.SearchQuery) ([]db.SpellRow, error)
	classesFn    func(ctx context.Context, ids []int64) ([]db.ClassLevelRow, error)
	categoriesFn func(ctx context.Context, ids []int64) ([]db.CategoryRow, error)
	closed       int
}

func (m *mockSession) Count(ctx context.Context, q *db.SearchQuery) (int, error) {
	if m.countFn != nil {
		return m.countFn(ctx, q)
	}
	return 0, nil
}

func (m *mockSession) Select(ctx context.Context, q *db.SearchQuery) ([]db.SpellRow, error) {
	if m.selectFn != nil {
		return m.selectFn(ctx, q)
	}
	return nil, nil
}

func (m *mockSession) ClassLevels(ctx context.Context, ids []int64) ([]db.ClassLevelRow, error) {
	if m.classesFn != nil {
		return m.classesFn(ctx, ids)
	}
	return nil, nil
}

func (m *mockSession) Categories(ctx context.Context, ids []int64) ([]db.CategoryRow, error) {
	if m.categoriesFn != nil {
		return m.categoriesFn(ctx, ids)
	}
	return nil, nil
}

func (m *mockSession) DistinctClasses(context.Context) ([]string, error)    { return nil, nil }
func (m *mockSession) DistinctCategories(context.Context) ([]string, error) { return nil, nil }
func (m *mockSession) Distinct(context.Context, db.Attribute) ([]string, error) {
	return nil, nil
}
func (m *mockSession) ByFrequency(context.Context, db.Attribute) ([]string, error) {
	return nil, nil
}

func (m *mockSession) Close() error {
	m.closed++
	return nil
}

// mockStore hands out the same session every time.
type mockStore struct {
	sess      *mockSession
	sessionFn func(ctx context.Context) (db.Session, error)
}

func (m *mockStore) Session(ctx context.Context) (db.Session, error) {
	if m.sessionFn != nil {
		return m.sessionFn(ctx)
	}
	return m.sess, nil
}

func newTestRepo(t *testing.T) (*Repo, *mockSession, *mockStore) {
	t.Helper()
	sess := &mockSession{}
	ms := &mockStore{sess: sess}
	return New(ms), sess, ms
}
