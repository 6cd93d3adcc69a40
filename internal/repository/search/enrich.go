package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/BubbleCoding/spellfinder/internal/db"
	"github.com/BubbleCoding/spellfinder/internal/domain/spell"
)

var descriptorLabels = func() map[string]string {
	m := make(map[string]string, len(spell.DescriptorFlags))
	for _, f := range spell.DescriptorFlags {
		m[f.Column] = f.Label
	}
	return m
}()

// enrich converts rows and attaches associations in one batched query per
// association table. Row order is preserved.
func enrich(ctx context.Context, sess db.AssociationReader, rows []db.SpellRow) ([]spell.Spell, error) {
	records := make([]spell.Spell, len(rows))
	ids := make([]int64, len(rows))
	index := make(map[int64]int, len(rows))
	for i := range rows {
		records[i] = toSpell(&rows[i])
		ids[i] = rows[i].ID
		index[rows[i].ID] = i
	}
	if len(ids) == 0 {
		return records, nil
	}

	classes, err := sess.ClassLevels(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load class levels: %w", err)
	}
	for _, c := range classes {
		if i, ok := index[c.SpellID]; ok {
			records[i].Classes = append(records[i].Classes, spell.ClassLevel{ClassName: c.ClassName, Level: c.Level})
		}
	}

	cats, err := sess.Categories(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load categories: %w", err)
	}
	stored := make(map[int64][]string, len(ids))
	for _, c := range cats {
		stored[c.SpellID] = append(stored[c.SpellID], c.Category)
	}

	for i := range records {
		if records[i].Classes == nil {
			records[i].Classes = []spell.ClassLevel{}
		}
		records[i].ResolveCategories(stored[records[i].ID])
	}
	return records, nil
}

func toSpell(r *db.SpellRow) spell.Spell {
	return spell.Spell{
		ID:               r.ID,
		Name:             r.Name,
		School:           r.School,
		Subschool:        r.Subschool,
		Descriptor:       r.Descriptor,
		SpellLevel:       r.SpellLevel,
		CastingTime:      r.CastingTime,
		Components:       r.Components,
		CostlyComponents: r.CostlyComponents,
		Range:            r.Range,
		Area:             r.Area,
		Effect:           r.Effect,
		Targets:          r.Targets,
		Duration:         r.Duration,
		Dismissible:      r.Dismissible,
		Shapeable:        r.Shapeable,
		SavingThrow:      r.SavingThrow,
		SpellResistance:  r.SpellResistance,
		Description:      r.Description,
		ShortDescription: r.ShortDescription,
		Source:           r.Source,
		Verbal:           r.Verbal,
		Somatic:          r.Somatic,
		Material:         r.Material,
		Focus:            r.Focus,
		DivineFocus:      r.DivineFocus,
		Mythic:           r.Mythic,
		MythicText:       r.MythicText,
		Linktext:         r.Linktext,
		Descriptors:      descriptors(r.DescriptorFlags),
	}
}

// descriptors maps the comma-separated flag columns to display labels.
func descriptors(flags string) []string {
	out := []string{}
	for _, col := range strings.Split(flags, ",") {
		if label, ok := descriptorLabels[strings.TrimSpace(col)]; ok {
			out = append(out, label)
		}
	}
	return out
}
