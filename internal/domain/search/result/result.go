// Package result holds a page of enriched search hits.
package result

import (
	"github.com/BubbleCoding/spellfinder/internal/domain/search/request"
	"github.com/BubbleCoding/spellfinder/internal/domain/spell"
)

// Page is one page of matching records with pagination metadata.
type Page struct {
	records []spell.Spell
	total   int
	page    int
	perPage int
	pages   int
}

// New computes pagination metadata for records selected by p out of total.
// An "all" selection reports the total as the page size and a single page.
func New(records []spell.Spell, total int, p request.Page) Page {
	if records == nil {
		records = []spell.Spell{}
	}
	if p.All() {
		return Page{records: records, total: total, page: 1, perPage: total, pages: 1}
	}
	size := p.Size()
	pages := 0
	if size > 0 {
		pages = (total + size - 1) / size
	}
	return Page{records: records, total: total, page: p.Number(), perPage: size, pages: pages}
}

// Records returns the records of this page in order.
func (p *Page) Records() []spell.Spell { return p.records }

// Total returns the number of matching records across all pages.
func (p *Page) Total() int { return p.total }

// Number returns the 1-based page number.
func (p *Page) Number() int { return p.page }

// PerPage returns the effective page size.
func (p *Page) PerPage() int { return p.perPage }

// Pages returns the number of pages.
func (p *Page) Pages() int { return p.pages }
