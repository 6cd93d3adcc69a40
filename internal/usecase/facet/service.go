// Package facet assembles the option values callers use to build filter UIs.
package facet

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/BubbleCoding/spellfinder/internal/domain/search/filter"
	"github.com/BubbleCoding/spellfinder/internal/domain/search/order"
	"github.com/BubbleCoding/spellfinder/internal/domain/search/query"
	"github.com/BubbleCoding/spellfinder/internal/domain/spell"
	"github.com/BubbleCoding/spellfinder/internal/logger"
)

// MaxLevel is the highest spell level listed.
const MaxLevel = 9

// Metadata lists every known option per facet.
type Metadata struct {
	Classes     []string
	Schools     []string
	Subschools  []string
	Sources     []string
	Categories  []string
	Descriptors []string
	Components  []string
	Levels      []int
	Sorts       []order.Key
	// Grouped holds the option labels of each substring field.
	Grouped map[query.Field][]string
	Effects []string
	Targets []string
}

// Service builds Metadata from static vocabularies and storage projections.
type Service struct {
	repo Repository
}

// New creates a facet service.
func New(repo Repository) *Service {
	return &Service{repo: repo}
}

// Metadata runs the storage projections concurrently and merges them with
// the compiled-in vocabularies. The first projection failure cancels the rest.
func (s *Service) Metadata(ctx context.Context) (*Metadata, error) {
	start := time.Now()
	m := staticMetadata()

	var stored []string
	g, gctx := errgroup.WithContext(ctx)
	project := func(dst *[]string, fn func(context.Context) ([]string, error)) {
		g.Go(func() error {
			values, err := fn(gctx)
			if err != nil {
				return err
			}
			*dst = values
			return nil
		})
	}
	project(&m.Classes, s.repo.Classes)
	project(&stored, s.repo.Categories)
	project(&m.Schools, s.repo.Schools)
	project(&m.Subschools, s.repo.Subschools)
	project(&m.Sources, s.repo.Sources)
	project(&m.Effects, s.repo.Effects)
	project(&m.Targets, s.repo.Targets)

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("facet metadata: %w", err)
	}
	m.Categories = mergeCategories(stored)

	logger.FromContext(ctx).Debug("Facet metadata built",
		zap.Int("classes", len(m.Classes)),
		zap.Int("categories", len(m.Categories)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return m, nil
}

func staticMetadata() *Metadata {
	levels := make([]int, 0, MaxLevel+1)
	for l := 0; l <= MaxLevel; l++ {
		levels = append(levels, l)
	}
	grouped := make(map[query.Field][]string, len(filter.SubstringFields))
	for _, sf := range filter.SubstringFields {
		grouped[sf.Field] = sf.Labels()
	}
	return &Metadata{
		Descriptors: spell.DescriptorLabels(),
		Components:  spell.ComponentLabels(),
		Levels:      levels,
		Sorts:       append([]order.Key(nil), order.Keys...),
		Grouped:     grouped,
	}
}

// mergeCategories appends the fallback labels to the stored ones, skipping
// duplicates and keeping first-seen order.
func mergeCategories(stored []string) []string {
	out := make([]string, 0, len(stored)+len(spell.FallbackLabels()))
	seen := make(map[string]struct{}, cap(out))
	for _, list := range [][]string{stored, spell.FallbackLabels()} {
		for _, c := range list {
			if _, ok := seen[c]; ok {
				continue
			}
			seen[c] = struct{}{}
			out = append(out, c)
		}
	}
	return out
}
