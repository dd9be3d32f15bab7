package catalog

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// ToggleFavorite marks or unmarks a product as favorite and reports the new state.
func (c *Catalog) ToggleFavorite(ctx context.Context, code string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	products, err := c.List(ctx)
	if err != nil {
		return false, err
	}
	if indexOf(products, code) < 0 {
		return false, fmt.Errorf("%w: %s", ErrNotFound, code)
	}

	favorites, err := c.favoriteCodes(ctx)
	if err != nil {
		return false, err
	}

	favorite := true
	if i := indexOfString(favorites, code); i >= 0 {
		favorites = append(favorites[:i], favorites[i+1:]...)
		favorite = false
	} else {
		favorites = append(favorites, code)
	}

	if err := c.save(ctx, FavoritesKey, favorites); err != nil {
		return false, err
	}

	c.logger.Debug("favorite toggled", zap.String("code", code), zap.Bool("favorite", favorite))
	return favorite, nil
}

// IsFavorite reports whether code is marked as favorite.
func (c *Catalog) IsFavorite(ctx context.Context, code string) (bool, error) {
	favorites, err := c.favoriteCodes(ctx)
	if err != nil {
		return false, err
	}
	return indexOfString(favorites, code) >= 0, nil
}

// Favorites returns the favorite products in the order they were marked.
// Codes whose product no longer exists are skipped.
func (c *Catalog) Favorites(ctx context.Context) ([]Product, error) {
	favorites, err := c.favoriteCodes(ctx)
	if err != nil {
		return nil, err
	}
	products, err := c.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]Product, 0, len(favorites))
	for _, code := range favorites {
		if i := indexOf(products, code); i >= 0 {
			out = append(out, products[i])
		}
	}
	return out, nil
}

func (c *Catalog) favoriteCodes(ctx context.Context) ([]string, error) {
	var codes []string
	if err := c.load(ctx, FavoritesKey, &codes); err != nil {
		return nil, err
	}
	return codes, nil
}
