package facet

import (
	"context"
	"errors"
	"testing"

	"github.com/BubbleCoding/spellfinder/internal/domain/search/query"
)

// --- Mocks ---

type mockRepo struct {
	classesFn    func(ctx context.Context) ([]string, error)
	categoriesFn func(ctx context.Context) ([]string, error)
	values       []string
	err          error
}

func (m *mockRepo) Classes(ctx context.Context) ([]string, error) {
	if m.classesFn != nil {
		return m.classesFn(ctx)
	}
	return []string{"cleric", "wizard"}, nil
}

func (m *mockRepo) Categories(ctx context.Context) ([]string, error) {
	if m.categoriesFn != nil {
		return m.categoriesFn(ctx)
	}
	return []string{"Damage", "Other"}, nil
}

func (m *mockRepo) Schools(context.Context) ([]string, error)    { return m.values, m.err }
func (m *mockRepo) Subschools(context.Context) ([]string, error) { return m.values, m.err }
func (m *mockRepo) Sources(context.Context) ([]string, error)    { return m.values, m.err }
func (m *mockRepo) Effects(context.Context) ([]string, error)    { return m.values, m.err }
func (m *mockRepo) Targets(context.Context) ([]string, error)    { return m.values, m.err }

// --- Tests ---

func TestMetadata_StaticAndObserved(t *testing.T) {
	svc := New(&mockRepo{values: []string{"evocation"}})

	m, err := svc.Metadata(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(m.Classes) != 2 || m.Classes[1] != "wizard" {
		t.Errorf("Classes = %v", m.Classes)
	}
	if len(m.Schools) != 1 || len(m.Effects) != 1 || len(m.Targets) != 1 {
		t.Errorf("projections not applied: %+v", m)
	}
	if len(m.Levels) != MaxLevel+1 || m.Levels[0] != 0 || m.Levels[MaxLevel] != MaxLevel {
		t.Errorf("Levels = %v", m.Levels)
	}
	if len(m.Descriptors) != 25 {
		t.Errorf("Descriptors = %d labels, want 25", len(m.Descriptors))
	}
	if len(m.Components) == 0 || len(m.Sorts) == 0 {
		t.Error("expected component and sort vocabularies")
	}
	st := m.Grouped[query.FieldSavingThrow]
	if len(st) == 0 || st[0] != "Will" {
		t.Errorf("Grouped[saving_throw] = %v", st)
	}
	for _, f := range []query.Field{
		query.FieldCastingTime, query.FieldRange, query.FieldDuration,
		query.FieldArea, query.FieldSpellResistance,
	} {
		if len(m.Grouped[f]) == 0 {
			t.Errorf("Grouped[%s] is empty", f)
		}
	}
}

func TestMetadata_CategoriesMergeFallbacks(t *testing.T) {
	svc := New(&mockRepo{})

	m, err := svc.Metadata(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if m.Categories[0] != "Damage" || m.Categories[1] != "Other" {
		t.Errorf("stored categories must come first: %v", m.Categories)
	}
	seen := map[string]int{}
	for _, c := range m.Categories {
		seen[c]++
	}
	if seen["Other"] != 1 {
		t.Errorf("Other listed %d times", seen["Other"])
	}
	for _, want := range []string{"Divination", "Healing", "Summoning"} {
		if seen[want] != 1 {
			t.Errorf("missing fallback label %q in %v", want, m.Categories)
		}
	}
}

func TestMetadata_ProjectionFailure(t *testing.T) {
	boom := errors.New("disk")
	svc := New(&mockRepo{
		classesFn: func(context.Context) ([]string, error) { return nil, boom },
	})

	m, err := svc.Metadata(context.Background())
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want boom", err)
	}
	if m != nil {
		t.Error("expected nil metadata on failure")
	}
}

func TestMetadata_CancelsSiblings(t *testing.T) {
	boom := errors.New("disk")
	svc := New(&mockRepo{
		classesFn: func(context.Context) ([]string, error) { return nil, boom },
		categoriesFn: func(ctx context.Context) ([]string, error) {
			<-ctx.Done()
			return nil, ctx.Err()
		},
	})

	if _, err := svc.Metadata(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("err = %v, want boom", err)
	}
}
