package chi

import (
	"fmt"
	"net/url"

	"github.com/oapi-codegen/runtime"

	"github.com/BubbleCoding/spellfinder/internal/domain/search/filter"
	"github.com/BubbleCoding/spellfinder/internal/domain/search/order"
	"github.com/BubbleCoding/spellfinder/internal/domain/search/query"
	"github.com/BubbleCoding/spellfinder/internal/domain/search/request"
)

// SearchParams are the raw query parameters of GET /api/spells.
type SearchParams struct {
	Q       string
	Sort    string
	Page    string
	PerPage string
	Facets  filter.Facets
}

// bindSearchParams reads every known parameter from values. Facet parameters
// repeat (?class=wizard&class=cleric); parameter names equal the field names.
func bindSearchParams(values url.Values) (SearchParams, error) {
	var p SearchParams
	singles := []struct {
		name string
		dest *string
	}{
		{"q", &p.Q},
		{"sort", &p.Sort},
		{"page", &p.Page},
		{"per_page", &p.PerPage},
	}
	for _, s := range singles {
		if err := runtime.BindQueryParameter("form", true, false, s.name, firstOnly(values, s.name), s.dest); err != nil {
			return SearchParams{}, fmt.Errorf("invalid format for parameter %s: %w", s.name, err)
		}
	}

	for _, f := range query.Fields {
		var vals []string
		if err := runtime.BindQueryParameter("form", true, false, string(f), values, &vals); err != nil {
			return SearchParams{}, fmt.Errorf("invalid format for parameter %s: %w", f, err)
		}
		if len(vals) > 0 {
			if p.Facets == nil {
				p.Facets = make(filter.Facets)
			}
			p.Facets[f] = vals
		}
	}
	return p, nil
}

// firstOnly keeps the first occurrence of a repeated single-value parameter.
func firstOnly(values url.Values, name string) url.Values {
	vals, ok := values[name]
	if !ok || len(vals) <= 1 {
		return values
	}
	return url.Values{name: vals[:1]}
}

// toRequest validates the raw parameters into a search request. Out-of-range
// paging is clamped and unknown sorts are ignored.
func (p SearchParams) toRequest(lim request.Limits) request.Request {
	page := request.ParsePage(p.Page, p.PerPage, lim)
	return request.New(p.Q, p.Facets, order.Key(p.Sort), page)
}
