package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/mark-chris/prodcat/internal/storage"
)

// Storage keys.
const (
	ProductsKey  = "products"
	FavoritesKey = "favorites"
	TagsKey      = "tags"
)

// Sentinel errors for catalog operations.
var (
	ErrNotFound      = errors.New("product not found")
	ErrDuplicateCode = errors.New("a product with this code already exists")
	ErrCodeImmutable = errors.New("product code cannot be changed")
)

// Catalog manages products persisted in a key-value store.
// Every operation reads the current collection from the store, so several
// processes sharing a store always see each other's writes.
type Catalog struct {
	store  storage.Store
	logger *zap.Logger
	now    func() time.Time
	mu     sync.Mutex
}

// Option configures a Catalog.
type Option func(*Catalog)

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(c *Catalog) { c.now = now }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *Catalog) {
		if l != nil {
			c.logger = l
		}
	}
}

// New creates a catalog backed by store.
func New(store storage.Store, opts ...Option) *Catalog {
	c := &Catalog{
		store:  store,
		logger: zap.NewNop(),
		now:    func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// List returns a snapshot of every product, in insertion order.
func (c *Catalog) List(ctx context.Context) ([]Product, error) {
	var products []Product
	if err := c.load(ctx, ProductsKey, &products); err != nil {
		return nil, err
	}
	if products == nil {
		products = []Product{}
	}
	return products, nil
}

// Get returns the product with the given code.
func (c *Catalog) Get(ctx context.Context, code string) (Product, error) {
	products, err := c.List(ctx)
	if err != nil {
		return Product{}, err
	}
	if i := indexOf(products, code); i >= 0 {
		return products[i], nil
	}
	return Product{}, fmt.Errorf("%w: %s", ErrNotFound, code)
}

// Add validates p, stamps CreatedAt, normalizes keywords and appends it.
func (c *Catalog) Add(ctx context.Context, p Product) (Product, error) {
	if err := Validate(p).Err(); err != nil {
		return Product{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	products, err := c.List(ctx)
	if err != nil {
		return Product{}, err
	}
	if indexOf(products, p.Code) >= 0 {
		return Product{}, fmt.Errorf("%w: %s", ErrDuplicateCode, p.Code)
	}

	p.CreatedAt = c.now()
	p.UpdatedAt = nil
	p.Keywords = normalizeKeywords(p.Keywords)

	products = append(products, p)
	if err := c.save(ctx, ProductsKey, products); err != nil {
		return Product{}, err
	}

	c.logger.Info("product added", zap.String("code", p.Code), zap.Int("keywords", len(p.Keywords)))
	return p, nil
}

// Update replaces the editable fields of the product identified by code.
// changes must be a complete, valid product; an empty changes.Code means "same code".
// CreatedAt is preserved and the current image is kept when changes carries none.
func (c *Catalog) Update(ctx context.Context, code string, changes Product) (Product, error) {
	if changes.Code == "" {
		changes.Code = code
	}
	if changes.Code != code {
		return Product{}, fmt.Errorf("%w: %s -> %s", ErrCodeImmutable, code, changes.Code)
	}
	if err := Validate(changes).Err(); err != nil {
		return Product{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	products, err := c.List(ctx)
	if err != nil {
		return Product{}, err
	}
	i := indexOf(products, code)
	if i < 0 {
		return Product{}, fmt.Errorf("%w: %s", ErrNotFound, code)
	}

	current := products[i]
	updated := c.now()
	next := Product{
		Code:        current.Code,
		Description: changes.Description,
		Keywords:    normalizeKeywords(changes.Keywords),
		Image:       changes.Image,
		CreatedAt:   current.CreatedAt,
		UpdatedAt:   &updated,
	}
	if next.Image == "" {
		next.Image = current.Image
	}

	products[i] = next
	if err := c.save(ctx, ProductsKey, products); err != nil {
		return Product{}, err
	}

	c.logger.Info("product updated", zap.String("code", code))
	return next, nil
}

// Delete removes the product and drops it from favorites.
func (c *Catalog) Delete(ctx context.Context, code string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	products, err := c.List(ctx)
	if err != nil {
		return err
	}
	i := indexOf(products, code)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, code)
	}

	products = append(products[:i], products[i+1:]...)
	if err := c.save(ctx, ProductsKey, products); err != nil {
		return err
	}

	favorites, err := c.favoriteCodes(ctx)
	if err != nil {
		return err
	}
	if j := indexOfString(favorites, code); j >= 0 {
		favorites = append(favorites[:j], favorites[j+1:]...)
		if err := c.save(ctx, FavoritesKey, favorites); err != nil {
			return err
		}
	}

	c.logger.Info("product deleted", zap.String("code", code))
	return nil
}

// load decodes the JSON document stored at key into v. A missing key leaves v untouched.
func (c *Catalog) load(ctx context.Context, key string, v interface{}) error {
	data, err := c.store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, storage.ErrKeyNotFound) {
			return nil
		}
		return err
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return nil
}

func (c *Catalog) save(ctx context.Context, key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	if err := c.store.Set(ctx, key, data); err != nil {
		return fmt.Errorf("failed to save %s: %w", key, err)
	}
	return nil
}

func indexOf(products []Product, code string) int {
	for i, p := range products {
		if p.Code == code {
			return i
		}
	}
	return -1
}

func indexOfString(values []string, v string) int {
	for i, s := range values {
		if s == v {
			return i
		}
	}
	return -1
}
