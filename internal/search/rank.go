// Package search ranks catalog products against a free-text query.
package search

import (
	"context"
	"errors"
	"math"
	"sort"
	"strings"

	"github.com/mark-chris/prodcat/internal/catalog"
	"github.com/mark-chris/prodcat/internal/textnorm"
)

// DefaultThreshold is the minimum similarity a product needs to be returned.
const DefaultThreshold = 0.2

// Per-token scores.
const (
	exactScore   = 1.0
	partialScore = 0.5
)

// ErrInvalidThreshold is returned for thresholds outside [0, 1].
var ErrInvalidThreshold = errors.New("threshold must be between 0 and 1")

// Source provides the product snapshot to search.
type Source interface {
	List(ctx context.Context) ([]catalog.Product, error)
}

// Options configures Search.
type Options struct {
	Query     string
	Threshold float64
	// Limit caps the number of results; 0 means unlimited.
	Limit int
}

// Result is a ranked product.
type Result struct {
	Product    catalog.Product `json:"product"`
	Similarity float64         `json:"similarity"`
	Relevance  int             `json:"relevance"`
}

// Search ranks the products from src. Errors from src are returned as-is.
func Search(ctx context.Context, src Source, opts Options) ([]Result, error) {
	if opts.Threshold < 0 || opts.Threshold > 1 || math.IsNaN(opts.Threshold) {
		return nil, ErrInvalidThreshold
	}

	products, err := src.List(ctx)
	if err != nil {
		return nil, err
	}

	results := Rank(opts.Query, products, opts.Threshold)
	if opts.Limit > 0 && len(results) > opts.Limit {
		results = results[:opts.Limit]
	}
	return results, nil
}

// Rank scores every product against query and returns those with
// similarity >= threshold, most similar first. Ties keep catalog order.
// A query with no usable tokens matches nothing.
func Rank(query string, products []catalog.Product, threshold float64) []Result {
	queryTokens := textnorm.Normalize(query)
	if len(queryTokens) == 0 {
		return []Result{}
	}

	results := make([]Result, 0, len(products))
	for _, p := range products {
		sim := Similarity(queryTokens, productTokens(p))
		if sim < threshold {
			continue
		}
		results = append(results, Result{
			Product:    p,
			Similarity: sim,
			Relevance:  int(math.Round(sim * 100)),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Similarity > results[j].Similarity
	})
	return results
}

// Similarity is the mean per-token score of queryTokens against productTokens:
// 1 for an exact match, 0.5 when one token contains the other, 0 otherwise.
func Similarity(queryTokens, productTokens []string) float64 {
	if len(queryTokens) == 0 {
		return 0
	}

	exact := make(map[string]struct{}, len(productTokens))
	for _, t := range productTokens {
		exact[t] = struct{}{}
	}

	var score float64
	for _, q := range queryTokens {
		if _, ok := exact[q]; ok {
			score += exactScore
			continue
		}
		for _, p := range productTokens {
			if strings.Contains(p, q) || strings.Contains(q, p) {
				score += partialScore
				break
			}
		}
	}
	return score / float64(len(queryTokens))
}

// productTokens is the normalized description followed by each keyword's tokens.
func productTokens(p catalog.Product) []string {
	tokens := textnorm.Normalize(p.Description)
	for _, k := range p.Keywords {
		tokens = append(tokens, textnorm.Normalize(k.Text)...)
	}
	return tokens
}
