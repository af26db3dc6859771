// Package catalog is the storefront view of products: filtering, media
// carousels, the cached product listing and seed data.
package catalog

import (
	"net/url"
	"strings"

	"shopzone.GO/model/entity"
)

// CategoryAll disables the category filter.
const CategoryAll = "All"

const (
	ParamSearch   = "search"
	ParamCategory = "category"
)

// FilterState is the shop filter, round-tripped through the URL query.
type FilterState struct {
	Search   string `json:"search"`
	Category string `json:"category"`
}

func DefaultFilter() FilterState {
	return FilterState{Category: CategoryAll}
}

// FilterStateFromQuery reads search and category; absent values give
// the default filter.
func FilterStateFromQuery(q url.Values) FilterState {
	f := DefaultFilter()
	f.Search = q.Get(ParamSearch)
	if c := q.Get(ParamCategory); c != "" {
		f.Category = c
	}
	return f
}

// Query writes f into a copy of base. Default values delete their param,
// other params are kept.
func (f FilterState) Query(base url.Values) url.Values {
	q := url.Values{}
	for k, v := range base {
		q[k] = append([]string(nil), v...)
	}
	if f.Search != "" {
		q.Set(ParamSearch, f.Search)
	} else {
		q.Del(ParamSearch)
	}
	if f.Category != "" && f.Category != CategoryAll {
		q.Set(ParamCategory, f.Category)
	} else {
		q.Del(ParamCategory)
	}
	return q
}

// Matches reports whether p passes the filter.
func (f FilterState) Matches(p entity.Product) bool {
	if f.Category != "" && f.Category != CategoryAll && p.Category != f.Category {
		return false
	}
	if f.Search == "" {
		return true
	}
	return strings.Contains(strings.ToLower(p.Name), strings.ToLower(f.Search))
}

// Result is a filtered product list. Empty is set when nothing matched.
type Result struct {
	Products []entity.Product `json:"products"`
	Empty    bool             `json:"empty"`
}

// Filter keeps the products matching f, preserving order.
func Filter(products []entity.Product, f FilterState) Result {
	out := make([]entity.Product, 0, len(products))
	for _, p := range products {
		if f.Matches(p) {
			out = append(out, p)
		}
	}
	return Result{Products: out, Empty: len(out) == 0}
}

// Categories returns the filterable categories, without CategoryAll.
func Categories() []string {
	return append([]string(nil), entity.Categories...)
}

func IsCategory(name string) bool {
	return entity.IsCategory(name)
}
