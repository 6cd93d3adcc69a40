// Package facet projects the distinct values observed in storage for the
// filter metadata listing.
package facet

import (
	"context"
	"fmt"

	"github.com/BubbleCoding/spellfinder/internal/db"
)

// store is the consumer interface for facet projections (ISP).
type store interface {
	Session(ctx context.Context) (db.Session, error)
}

// Repo implements usecase/facet.Repository.
//
// Every method opens its own session, so methods may be called concurrently;
// the pool bounds how many run at once.
type Repo struct {
	store store
}

// New creates a facet repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// Classes lists class names that have at least one spell.
func (r *Repo) Classes(ctx context.Context) ([]string, error) {
	return r.project(ctx, "classes", func(a db.AttributeReader) ([]string, error) {
		return a.DistinctClasses(ctx)
	})
}

// Categories lists stored category labels.
func (r *Repo) Categories(ctx context.Context) ([]string, error) {
	return r.project(ctx, "categories", func(a db.AttributeReader) ([]string, error) {
		return a.DistinctCategories(ctx)
	})
}

// Schools lists distinct schools.
func (r *Repo) Schools(ctx context.Context) ([]string, error) {
	return r.distinct(ctx, db.AttrSchool)
}

// Subschools lists distinct subschools.
func (r *Repo) Subschools(ctx context.Context) ([]string, error) {
	return r.distinct(ctx, db.AttrSubschool)
}

// Sources lists distinct source books.
func (r *Repo) Sources(ctx context.Context) ([]string, error) {
	return r.distinct(ctx, db.AttrSource)
}

// Effects lists effect texts, most common first.
func (r *Repo) Effects(ctx context.Context) ([]string, error) {
	return r.frequent(ctx, db.AttrEffect)
}

// Targets lists target texts, most common first.
func (r *Repo) Targets(ctx context.Context) ([]string, error) {
	return r.frequent(ctx, db.AttrTargets)
}

func (r *Repo) distinct(ctx context.Context, attr db.Attribute) ([]string, error) {
	return r.project(ctx, string(attr), func(a db.AttributeReader) ([]string, error) {
		return a.Distinct(ctx, attr)
	})
}

func (r *Repo) frequent(ctx context.Context, attr db.Attribute) ([]string, error) {
	return r.project(ctx, string(attr), func(a db.AttributeReader) ([]string, error) {
		return a.ByFrequency(ctx, attr)
	})
}

// project runs fn on a fresh session and never returns a nil slice on success.
func (r *Repo) project(ctx context.Context, name string, fn func(db.AttributeReader) ([]string, error)) ([]string, error) {
	sess, err := r.store.Session(ctx)
	if err != nil {
		return nil, fmt.Errorf("open session: %w", err)
	}
	defer sess.Close()

	values, err := fn(sess)
	if err != nil {
		return nil, fmt.Errorf("project %s: %w", name, err)
	}
	if values == nil {
		values = []string{}
	}
	return values, nil
}
