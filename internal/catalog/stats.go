package catalog

import (
	"sort"
)

// Stats summarizes the catalog for the dashboard view.
type Stats struct {
	TotalProducts  int            `json:"total_products"`
	UniqueKeywords int            `json:"unique_keywords"`
	TotalKeywords  int            `json:"total_keywords"`
	TopKeywords    []KeywordCount `json:"top_keywords"`
	MostRecent     []Product      `json:"most_recent"`
	MostKeywords   []Product      `json:"most_keywords"`
}

// KeywordCount is a keyword and the number of products carrying it.
type KeywordCount struct {
	Keyword string `json:"keyword"`
	Count   int    `json:"count"`
}

const (
	topKeywordsLimit  = 5
	mostRecentLimit   = 3
	mostKeywordsLimit = 3
)

// ComputeStats derives dashboard statistics from a product snapshot.
func ComputeStats(products []Product) Stats {
	stats := Stats{
		TotalProducts: len(products),
		TopKeywords:   []KeywordCount{},
		MostRecent:    []Product{},
		MostKeywords:  []Product{},
	}
	if len(products) == 0 {
		return stats
	}

	idx := NewIndex()
	idx.Build(products)
	products = idx.GetAll()

	counts := idx.KeywordCounts()
	stats.TotalProducts = idx.Count()
	stats.UniqueKeywords = len(counts)
	for _, p := range products {
		stats.TotalKeywords += len(p.Keywords)
	}

	top := make([]KeywordCount, 0, len(counts))
	for kw, n := range counts {
		top = append(top, KeywordCount{Keyword: kw, Count: n})
	}
	sort.Slice(top, func(i, j int) bool {
		if top[i].Count != top[j].Count {
			return top[i].Count > top[j].Count
		}
		return top[i].Keyword < top[j].Keyword
	})
	stats.TopKeywords = truncate(top, topKeywordsLimit)

	byKeywords := append([]Product(nil), products...)
	sort.SliceStable(byKeywords, func(i, j int) bool {
		return len(byKeywords[i].Keywords) > len(byKeywords[j].Keywords)
	})
	stats.MostKeywords = truncate(byKeywords, mostKeywordsLimit)

	var dated []Product
	for _, p := range products {
		if !p.CreatedAt.IsZero() {
			dated = append(dated, p)
		}
	}
	if len(dated) > 0 {
		sort.SliceStable(dated, func(i, j int) bool {
			return dated[i].CreatedAt.After(dated[j].CreatedAt)
		})
		stats.MostRecent = truncate(dated, mostRecentLimit)
	} else {
		// Without timestamps, insertion order is the best recency signal.
		for i := len(products) - 1; i >= 0 && len(stats.MostRecent) < mostRecentLimit; i-- {
			stats.MostRecent = append(stats.MostRecent, products[i])
		}
	}

	return stats
}

func truncate[T any](items []T, n int) []T {
	if len(items) > n {
		return items[:n]
	}
	return items
}
