package catalog

import (
	"strings"
	"sync"
)

// Index provides fast lookups over a product snapshot
type Index struct {
	products  []Product
	byCode    map[string]*Product
	byKeyword map[string][]*Product
	mu        sync.RWMutex
}

// NewIndex creates a new empty index
func NewIndex() *Index {
	return &Index{
		products:  make([]Product, 0),
		byCode:    make(map[string]*Product),
		byKeyword: make(map[string][]*Product),
	}
}

// Build creates the index from a slice of products
func (idx *Index) Build(products []Product) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	idx.products = products
	idx.byCode = make(map[string]*Product)
	idx.byKeyword = make(map[string][]*Product)

	for i := range idx.products {
		p := &idx.products[i]
		idx.byCode[p.Code] = p

		seen := make(map[string]bool)
		for _, kw := range p.Keywords {
			kwLower := strings.ToLower(strings.TrimSpace(kw.Text))
			if kwLower == "" || seen[kwLower] {
				continue
			}
			seen[kwLower] = true
			idx.byKeyword[kwLower] = append(idx.byKeyword[kwLower], p)
		}
	}
}

// GetByCode returns a product by its code
func (idx *Index) GetByCode(code string) *Product {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.byCode[code]
}

// GetByKeyword returns all products tagged with keyword
func (idx *Index) GetByKeyword(keyword string) []*Product {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.byKeyword[strings.ToLower(strings.TrimSpace(keyword))]
}

// KeywordCounts returns how many products carry each keyword
func (idx *Index) KeywordCounts() map[string]int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	counts := make(map[string]int, len(idx.byKeyword))
	for kw, products := range idx.byKeyword {
		counts[kw] = len(products)
	}
	return counts
}

// GetAll returns all indexed products
func (idx *Index) GetAll() []Product {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.products
}

// Count returns the number of indexed products
func (idx *Index) Count() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.products)
}
