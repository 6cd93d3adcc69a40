// Package request holds validated search parameters.
package request

import (
	"strconv"
	"strings"

	"github.com/BubbleCoding/spellfinder/internal/domain/search/filter"
	"github.com/BubbleCoding/spellfinder/internal/domain/search/order"
)

// Paging limits.
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
	// PerPageAll requests the whole result set on one page.
	PerPageAll = "all"
	// SizeAll is the numeric form of PerPageAll.
	SizeAll = -1
)

// Limits bound the page size.
type Limits struct {
	DefaultPageSize int
	MaxPageSize     int
}

// DefaultLimits are used when no configuration overrides them.
var DefaultLimits = Limits{DefaultPageSize: DefaultPageSize, MaxPageSize: MaxPageSize}

func (l Limits) normalized() Limits {
	if l.MaxPageSize <= 0 {
		l.MaxPageSize = MaxPageSize
	}
	if l.DefaultPageSize <= 0 {
		l.DefaultPageSize = DefaultPageSize
	}
	if l.DefaultPageSize > l.MaxPageSize {
		l.DefaultPageSize = l.MaxPageSize
	}
	return l
}

// Page is a validated page selection. Out-of-range input is clamped, never rejected.
type Page struct {
	number int
	size   int
	all    bool
}

// NewPage clamps number to >= 1 and size to [1, max]. size == SizeAll selects
// every record and forces number to 1.
func NewPage(number, size int, lim Limits) Page {
	if size == SizeAll {
		return Page{number: 1, all: true}
	}
	lim = lim.normalized()
	if number < 1 {
		number = 1
	}
	if size < 1 {
		size = 1
	}
	if size > lim.MaxPageSize {
		size = lim.MaxPageSize
	}
	return Page{number: number, size: size}
}

// ParsePage parses raw query-string values. Missing or unparsable values fall
// back to page 1 and the default size.
func ParsePage(rawPage, rawPerPage string, lim Limits) Page {
	lim = lim.normalized()

	number, err := strconv.Atoi(strings.TrimSpace(rawPage))
	if err != nil {
		number = 1
	}

	rawPerPage = strings.TrimSpace(rawPerPage)
	if strings.EqualFold(rawPerPage, PerPageAll) {
		return NewPage(number, SizeAll, lim)
	}
	size, err := strconv.Atoi(rawPerPage)
	if err != nil {
		size = lim.DefaultPageSize
	}
	if size == SizeAll {
		size = 1
	}
	return NewPage(number, size, lim)
}

// Number returns the 1-based page number.
func (p Page) Number() int { return p.number }

// Size returns the page size, or 0 when every record is requested.
func (p Page) Size() int { return p.size }

// All reports whether the whole result set was requested.
func (p Page) All() bool { return p.all }

// Offset returns the number of records to skip.
func (p Page) Offset() int {
	if p.all {
		return 0
	}
	return (p.number - 1) * p.size
}

// Request is a validated search request.
type Request struct {
	query  string
	facets filter.Facets
	sort   order.Key
	page   Page
}

// New builds a request. Unknown sort keys are treated as absent.
func New(query string, facets filter.Facets, sort order.Key, page Page) Request {
	if !sort.IsValid() {
		sort = ""
	}
	if page.number == 0 && !page.all {
		page = NewPage(1, DefaultPageSize, DefaultLimits)
	}
	return Request{
		query:  strings.TrimSpace(query),
		facets: facets,
		sort:   sort,
		page:   page,
	}
}

// Query returns the raw advanced query string.
func (r *Request) Query() string { return r.query }

// Facets returns the structured selections.
func (r *Request) Facets() filter.Facets { return r.facets }

// Sort returns the explicit sort key, empty when none was given.
func (r *Request) Sort() order.Key { return r.sort }

// Page returns the page selection.
func (r *Request) Page() Page { return r.page }
