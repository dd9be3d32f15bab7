package catalog

import (
	"fmt"
	"sort"
	"strings"
)

// SortField selects the ordering used by FilterAndSort.
type SortField string

// Sort fields.
const (
	SortByCode        SortField = "code"
	SortByDescription SortField = "description"
	SortByCreatedAt   SortField = "created_at"
)

// ListOptions configures FilterAndSort
type ListOptions struct {
	Filter     string
	Keyword    string
	SortBy     SortField
	Descending bool
}

// ParseSortField validates a sort field name. Empty means SortByCode.
func ParseSortField(s string) (SortField, error) {
	switch SortField(strings.ToLower(strings.TrimSpace(s))) {
	case "", SortByCode:
		return SortByCode, nil
	case SortByDescription:
		return SortByDescription, nil
	case SortByCreatedAt, "createdat":
		return SortByCreatedAt, nil
	default:
		return "", fmt.Errorf("unknown sort field %q (expected code, description or created_at)", s)
	}
}

// FilterAndSort narrows products with a case-insensitive substring filter over code,
// description and keyword text, optionally to an exact keyword, then sorts them.
func FilterAndSort(products []Product, opts ListOptions) []Product {
	filter := strings.ToLower(strings.TrimSpace(opts.Filter))

	var tagged map[string]bool
	if strings.TrimSpace(opts.Keyword) != "" {
		idx := NewIndex()
		idx.Build(products)
		tagged = make(map[string]bool)
		for _, p := range idx.GetByKeyword(opts.Keyword) {
			tagged[p.Code] = true
		}
	}

	out := make([]Product, 0, len(products))
	for _, p := range products {
		if filter != "" && !matchesFilter(p, filter) {
			continue
		}
		if tagged != nil && !tagged[p.Code] {
			continue
		}
		out = append(out, p)
	}

	sortBy := opts.SortBy
	if sortBy == "" {
		sortBy = SortByCode
	}

	sort.SliceStable(out, func(i, j int) bool {
		var less, greater bool
		switch sortBy {
		case SortByCreatedAt:
			less = out[i].CreatedAt.Before(out[j].CreatedAt)
			greater = out[i].CreatedAt.After(out[j].CreatedAt)
		case SortByDescription:
			a, b := strings.ToLower(out[i].Description), strings.ToLower(out[j].Description)
			less, greater = a < b, a > b
		default:
			a, b := strings.ToLower(out[i].Code), strings.ToLower(out[j].Code)
			less, greater = a < b, a > b
		}
		if opts.Descending {
			return greater
		}
		return less
	})

	return out
}

func matchesFilter(p Product, filter string) bool {
	if strings.Contains(strings.ToLower(p.Code), filter) ||
		strings.Contains(strings.ToLower(p.Description), filter) {
		return true
	}
	for _, k := range p.Keywords {
		if strings.Contains(strings.ToLower(k.Text), filter) {
			return true
		}
	}
	return false
}
