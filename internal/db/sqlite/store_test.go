package sqlite

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BubbleCoding/spellfinder/internal/db"
	"github.com/BubbleCoding/spellfinder/internal/domain"
	"github.com/BubbleCoding/spellfinder/internal/domain/search/filter"
	"github.com/BubbleCoding/spellfinder/internal/domain/search/order"
	"github.com/BubbleCoding/spellfinder/internal/domain/search/query"
)

//go:embed testdata/schema.sql
var fixtureSchema string

// writeFixture creates a seeded database file and returns its path.
func writeFixture(t *testing.T, schema string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "spells.db")
	raw, err := sql.Open(driverName, path)
	require.NoError(t, err)
	_, err = raw.Exec(schema)
	require.NoError(t, err)
	require.NoError(t, raw.Close())
	return path
}

func newTestStore(t *testing.T, batch int) *Store {
	t.Helper()
	path := writeFixture(t, fixtureSchema)
	s, err := NewStore(context.Background(), Config{Path: path, EnrichBatchSize: batch})
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func newSession(t *testing.T, s *Store) db.Session {
	t.Helper()
	sess, err := s.Session(context.Background())
	require.NoError(t, err)
	t.Cleanup(func() { _ = sess.Close() })
	return sess
}

func names(rows []db.SpellRow) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.Name
	}
	return out
}

func search(t *testing.T, sess db.Session, q *db.SearchQuery) (int, []string) {
	t.Helper()
	ctx := context.Background()
	total, err := sess.Count(ctx, q)
	require.NoError(t, err)
	rows, err := sess.Select(ctx, q)
	require.NoError(t, err)
	return total, names(rows)
}

func TestNewStore_MissingFile(t *testing.T) {
	_, err := NewStore(context.Background(), Config{Path: filepath.Join(t.TempDir(), "nope.db")})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrStorageUnavailable))
}

func TestNewStore_SchemaMismatch(t *testing.T) {
	path := writeFixture(t, `CREATE TABLE spells (id INTEGER PRIMARY KEY, name TEXT);`)
	_, err := NewStore(context.Background(), Config{Path: path})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrSchemaMismatch))
	assert.Contains(t, err.Error(), "spells_fts")

	var dbErr *db.Error
	require.True(t, errors.As(err, &dbErr))
	assert.Equal(t, db.OpSchema, dbErr.Op)
}

func TestStore_PingAndReady(t *testing.T) {
	s := newTestStore(t, 0)
	require.NoError(t, s.Ping(context.Background()))
	require.NoError(t, s.WaitForReady(context.Background(), time.Second))
	require.NoError(t, s.CheckSchema(context.Background()))
}

func TestSession_NoFilters(t *testing.T) {
	sess := newSession(t, newTestStore(t, 0))
	total, got := search(t, sess, &db.SearchQuery{Order: order.Name})
	assert.Equal(t, 8, total)
	assert.Equal(t, []string{
		"Cone of Cold", "Cure Light Wounds", "Detect Magic", "Fireball",
		"Ghost Sound", "Magic Missile", "Shield of Faith", "Silent Image",
	}, got)
}

func TestSession_Filters(t *testing.T) {
	sess := newSession(t, newTestStore(t, 0))

	tests := []struct {
		name    string
		clauses []query.Clause
		facets  filter.Facets
		want    []string
	}{
		{
			name:   "class and level facets share one membership",
			facets: filter.Facets{query.FieldClass: {"Wizard"}, query.FieldLevel: {"3"}},
			want:   []string{"Fireball"},
		},
		{
			name:   "class facet with level one",
			facets: filter.Facets{query.FieldClass: {"wizard"}, query.FieldLevel: {"1"}},
			want:   []string{"Magic Missile", "Silent Image"},
		},
		{
			name: "query AND needs both classes",
			clauses: []query.Clause{
				{Field: query.FieldClass, Value: "wizard", Op: query.OpOr},
				{Field: query.FieldClass, Value: "cleric", Op: query.OpAnd},
			},
			want: []string{"Detect Magic"},
		},
		{
			name:    "level range from query",
			clauses: []query.Clause{{Field: query.FieldLevel, Value: "4-6", Op: query.OpOr}},
			want:    []string{"Cone of Cold"},
		},
		{
			name:   "component exclusion",
			facets: filter.Facets{query.FieldComponents: {"M"}},
			want:   []string{"Cure Light Wounds", "Detect Magic", "Magic Missile", "Silent Image"},
		},
		{
			name:   "descriptor facets or",
			facets: filter.Facets{query.FieldDescriptor: {"Fire", "Cold"}},
			want:   []string{"Cone of Cold", "Fireball"},
		},
		{
			name:   "grouped substring option",
			facets: filter.Facets{query.FieldDuration: {"Concentration"}},
			want:   []string{"Detect Magic", "Silent Image"},
		},
		{
			name:   "category association",
			facets: filter.Facets{query.FieldCategory: {"protection"}},
			want:   []string{"Shield of Faith"},
		},
		{
			name:   "exact school and source",
			facets: filter.Facets{query.FieldSchool: {"ILLUSION"}, query.FieldSource: {"advanced player's guide"}},
			want:   []string{"Ghost Sound", "Silent Image"},
		},
		{
			name:   "identifier set",
			facets: filter.Facets{query.FieldID: {"2", "4"}},
			want:   []string{"Detect Magic", "Magic Missile"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set := filter.Compile(tt.clauses, tt.facets)
			total, got := search(t, sess, &db.SearchQuery{Filters: set, Order: order.Name})
			assert.Equal(t, tt.want, got)
			assert.Equal(t, len(tt.want), total)
		})
	}
}

func TestSession_FullText(t *testing.T) {
	sess := newSession(t, newTestStore(t, 0))

	var set filter.Set
	set.AddText("cone*")
	total, got := search(t, sess, &db.SearchQuery{Filters: set, Order: order.Relevance})
	assert.Equal(t, 2, total)
	assert.ElementsMatch(t, []string{"Cone of Cold", "Detect Magic"}, got)

	set = filter.Set{}
	set.AddText("fire*")
	total, got = search(t, sess, &db.SearchQuery{Filters: set, Order: order.Relevance})
	assert.Equal(t, 1, total)
	assert.Equal(t, []string{"Fireball"}, got)
}

func TestSession_InvalidFullText(t *testing.T) {
	sess := newSession(t, newTestStore(t, 0))

	var set filter.Set
	set.AddText("fire AND")
	_, err := sess.Count(context.Background(), &db.SearchQuery{Filters: set})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidQuery))

	var dbErr *db.Error
	require.True(t, errors.As(err, &dbErr))
	assert.Equal(t, db.OpCount, dbErr.Op)
}

func TestSession_DistinctAcrossPages(t *testing.T) {
	sess := newSession(t, newTestStore(t, 0))
	set := filter.Compile(nil, filter.Facets{query.FieldClass: {"sorcerer", "wizard"}})

	total, all := search(t, sess, &db.SearchQuery{Filters: set, Order: order.Level})
	require.Equal(t, 6, total)
	require.Len(t, all, 6)

	seen := make(map[string]bool)
	for offset := 0; offset < total; offset += 4 {
		_, page := search(t, sess, &db.SearchQuery{Filters: set, Order: order.Level, Limit: 4, Offset: offset})
		for _, n := range page {
			assert.False(t, seen[n], "duplicate %s", n)
			seen[n] = true
		}
	}
	assert.Len(t, seen, total)
}

func TestSession_Orderings(t *testing.T) {
	sess := newSession(t, newTestStore(t, 0))

	tests := []struct {
		key   order.Key
		first []string
	}{
		{order.Level, []string{"Detect Magic", "Ghost Sound", "Cure Light Wounds"}},
		{order.LevelDesc, []string{"Cone of Cold", "Fireball", "Cure Light Wounds"}},
		{order.NameDesc, []string{"Silent Image", "Shield of Faith", "Magic Missile"}},
		{order.School, []string{"Shield of Faith", "Cure Light Wounds", "Detect Magic"}},
		{order.SchoolDesc, []string{"Ghost Sound", "Silent Image", "Cone of Cold"}},
	}
	for _, tt := range tests {
		t.Run(string(tt.key), func(t *testing.T) {
			_, got := search(t, sess, &db.SearchQuery{Order: tt.key, Limit: 3})
			assert.Equal(t, tt.first, got)
		})
	}
}

func TestSession_RowColumns(t *testing.T) {
	sess := newSession(t, newTestStore(t, 0))
	set := filter.Compile(nil, filter.Facets{query.FieldID: {"1"}})
	rows, err := sess.Select(context.Background(), &db.SearchQuery{Filters: set})
	require.NoError(t, err)
	require.Len(t, rows, 1)

	r := rows[0]
	assert.Equal(t, int64(1), r.ID)
	assert.Equal(t, "evocation", r.School)
	assert.Equal(t, "fire", r.DescriptorFlags)
	assert.True(t, r.Verbal)
	assert.True(t, r.Material)
	assert.False(t, r.Focus)
	assert.False(t, r.Mythic)
	assert.Equal(t, "", r.MythicText)
}

func TestSession_ClassLevelsBatched(t *testing.T) {
	sess := newSession(t, newTestStore(t, 2))
	rows, err := sess.ClassLevels(context.Background(), []int64{1, 2, 3})
	require.NoError(t, err)
	require.Len(t, rows, 10)
	assert.Equal(t, db.ClassLevelRow{SpellID: 1, ClassName: "magus", Level: 3}, rows[0])
	assert.Equal(t, int64(3), rows[len(rows)-1].SpellID)
}

func TestSession_Categories(t *testing.T) {
	sess := newSession(t, newTestStore(t, 0))
	rows, err := sess.Categories(context.Background(), []int64{6, 3})
	require.NoError(t, err)
	assert.Equal(t, []db.CategoryRow{
		{SpellID: 6, Category: "Buff"},
		{SpellID: 6, Category: "Protection"},
	}, rows)

	rows, err = sess.Categories(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestSession_Projections(t *testing.T) {
	sess := newSession(t, newTestStore(t, 0))
	ctx := context.Background()

	schools, err := sess.Distinct(ctx, db.AttrSchool)
	require.NoError(t, err)
	assert.Equal(t, []string{"abjuration", "conjuration", "divination", "evocation", "illusion"}, schools)

	subschools, err := sess.Distinct(ctx, db.AttrSubschool)
	require.NoError(t, err)
	assert.Equal(t, []string{"figment", "healing"}, subschools)

	sources, err := sess.ByFrequency(ctx, db.AttrSource)
	require.NoError(t, err)
	assert.Equal(t, []string{"PFRPG Core", "Advanced Player's Guide"}, sources)

	classes, err := sess.DistinctClasses(ctx)
	require.NoError(t, err)
	assert.Contains(t, classes, "witch")

	cats, err := sess.DistinctCategories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Buff", "Damage", "Protection", "Utility"}, cats)

	_, err = sess.Distinct(ctx, db.Attribute("name; DROP TABLE spells"))
	require.Error(t, err)
}
