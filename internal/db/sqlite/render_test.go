package sqlite

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BubbleCoding/spellfinder/internal/domain/search/filter"
	"github.com/BubbleCoding/spellfinder/internal/domain/search/order"
	"github.com/BubbleCoding/spellfinder/internal/domain/search/query"
)

func TestRenderer_AssociationOrIsOneSubquery(t *testing.T) {
	set := filter.Compile([]query.Clause{
		{Field: query.FieldClass, Value: "wizard", Op: query.OpOr},
		{Field: query.FieldClass, Value: "paladin", Op: query.OpOr},
	}, nil)

	var r renderer
	sql, err := r.fromWhere(&set)
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(sql, "EXISTS"))
	assert.Contains(t, sql, `LOWER(sc."class_name") IN (?, ?)`)
	assert.Equal(t, []any{"wizard", "paladin"}, r.args)
}

func TestRenderer_AssociationAndIsOneSubqueryPerValue(t *testing.T) {
	set := filter.Compile([]query.Clause{
		{Field: query.FieldClass, Value: "wizard", Op: query.OpOr},
		{Field: query.FieldClass, Value: "paladin", Op: query.OpAnd},
	}, nil)

	var r renderer
	sql, err := r.fromWhere(&set)
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(sql, "EXISTS"))
}

func TestRenderer_ValuesAreBound(t *testing.T) {
	set := filter.Compile(nil, filter.Facets{
		query.FieldSchool: {"evocation' OR 1=1 --"},
	})

	var r renderer
	sql, err := r.fromWhere(&set)
	require.NoError(t, err)
	assert.NotContains(t, sql, "1=1")
	assert.Equal(t, []any{"evocation' or 1=1 --"}, r.args)
}

func TestRenderer_Joins(t *testing.T) {
	set := filter.Compile(nil, filter.Facets{query.FieldLevel: {"2"}})
	set.AddText("fire*")

	var r renderer
	sql, err := r.fromWhere(&set)
	require.NoError(t, err)
	assert.Contains(t, sql, "JOIN spells_fts ON spells_fts.rowid = s.id")
	assert.Contains(t, sql, "JOIN spell_classes sc_filter ON sc_filter.spell_id = s.id")
	assert.Contains(t, sql, "spells_fts MATCH ?")
	assert.NotContains(t, sql, "fire*")
}

func TestRenderer_EmptySetHasNoWhere(t *testing.T) {
	var set filter.Set
	var r renderer
	sql, err := r.fromWhere(&set)
	require.NoError(t, err)
	assert.Equal(t, " FROM spells s", sql)
	assert.Empty(t, r.args)
}

func TestRenderer_RejectsUnsafeColumn(t *testing.T) {
	var set filter.Set
	set.Add(filter.Flag{Col: filter.SpellColumn("fire; DROP TABLE spells"), Set: true})

	var r renderer
	_, err := r.fromWhere(&set)
	require.Error(t, err)
}

func TestRenderer_LikeEscapesWildcards(t *testing.T) {
	var set filter.Set
	set.Add(filter.Like{Col: filter.SpellColumn("area"), Substr: "50%_off"})

	var r renderer
	_, err := r.fromWhere(&set)
	require.NoError(t, err)
	assert.Equal(t, []any{`%50\%\_off%`}, r.args)
}

func TestOrderBy(t *testing.T) {
	tests := []struct {
		key     order.Key
		hasText bool
		want    string
	}{
		{order.Name, false, " ORDER BY s.name, s.id"},
		{order.Relevance, true, " ORDER BY spells_fts.rank, s.id"},
		{order.Relevance, false, " ORDER BY s.name, s.id"},
		{order.SchoolDesc, true, " ORDER BY s.school DESC, s.name, s.id"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, orderBy(tt.key, tt.hasText), "key %q", tt.key)
	}
}
