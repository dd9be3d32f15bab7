package catalog_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mark-chris/prodcat/internal/catalog"
	"github.com/mark-chris/prodcat/internal/storage"
)

var fixedNow = time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)

func newCatalog(t *testing.T) (*catalog.Catalog, *time.Time) {
	t.Helper()
	now := fixedNow
	c := catalog.New(storage.NewMemoryStore(), catalog.WithClock(func() time.Time { return now }))
	return c, &now
}

func plafon() catalog.Product {
	return catalog.Product{
		Code:        "A1",
		Description: "Plafon de embutir LED 12W branco",
		Keywords:    catalog.Tags(" Plafon ", "LED"),
	}
}

func TestCatalog_AddStampsAndNormalizes(t *testing.T) {
	c, _ := newCatalog(t)
	ctx := context.Background()

	added, err := c.Add(ctx, plafon())
	require.NoError(t, err)
	assert.Equal(t, fixedNow, added.CreatedAt)
	assert.Nil(t, added.UpdatedAt)
	assert.Equal(t, []string{"plafon", "led"}, added.KeywordTexts())

	got, err := c.Get(ctx, "A1")
	require.NoError(t, err)
	assert.Equal(t, added.KeywordTexts(), got.KeywordTexts())
	assert.True(t, got.CreatedAt.Equal(fixedNow))
}

func TestCatalog_AddRejectsDuplicateCode(t *testing.T) {
	c, _ := newCatalog(t)
	ctx := context.Background()

	_, err := c.Add(ctx, plafon())
	require.NoError(t, err)

	_, err = c.Add(ctx, plafon())
	assert.ErrorIs(t, err, catalog.ErrDuplicateCode)
}

func TestCatalog_AddRejectsInvalidProduct(t *testing.T) {
	c, _ := newCatalog(t)

	_, err := c.Add(context.Background(), catalog.Product{Code: "X"})
	assert.ErrorIs(t, err, catalog.ErrInvalidProduct)

	products, err := c.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestCatalog_UpdateKeepsCreatedAtAndImage(t *testing.T) {
	c, now := newCatalog(t)
	ctx := context.Background()

	p := plafon()
	p.Image = "aGVsbG8="
	_, err := c.Add(ctx, p)
	require.NoError(t, err)

	*now = fixedNow.Add(time.Hour)
	updated, err := c.Update(ctx, "A1", catalog.Product{
		Description: "Plafon de sobrepor LED 18W preto",
		Keywords:    catalog.Tags("Plafon", "Sobrepor"),
	})
	require.NoError(t, err)

	assert.Equal(t, "A1", updated.Code)
	assert.Equal(t, "Plafon de sobrepor LED 18W preto", updated.Description)
	assert.Equal(t, []string{"plafon", "sobrepor"}, updated.KeywordTexts())
	assert.Equal(t, "aGVsbG8=", updated.Image)
	assert.True(t, updated.CreatedAt.Equal(fixedNow))
	require.NotNil(t, updated.UpdatedAt)
	assert.True(t, updated.UpdatedAt.Equal(fixedNow.Add(time.Hour)))
}

func TestCatalog_UpdateErrors(t *testing.T) {
	c, _ := newCatalog(t)
	ctx := context.Background()
	_, err := c.Add(ctx, plafon())
	require.NoError(t, err)

	_, err = c.Update(ctx, "A1", catalog.Product{Code: "B2", Description: "x", Keywords: catalog.Tags("x")})
	assert.ErrorIs(t, err, catalog.ErrCodeImmutable)

	_, err = c.Update(ctx, "Z9", catalog.Product{Description: "x", Keywords: catalog.Tags("x")})
	assert.ErrorIs(t, err, catalog.ErrNotFound)

	_, err = c.Update(ctx, "A1", catalog.Product{Description: "x"})
	assert.ErrorIs(t, err, catalog.ErrInvalidProduct)
}

func TestCatalog_DeleteRemovesFavorite(t *testing.T) {
	c, _ := newCatalog(t)
	ctx := context.Background()
	_, err := c.Add(ctx, plafon())
	require.NoError(t, err)

	fav, err := c.ToggleFavorite(ctx, "A1")
	require.NoError(t, err)
	assert.True(t, fav)

	require.NoError(t, c.Delete(ctx, "A1"))

	_, err = c.Get(ctx, "A1")
	assert.ErrorIs(t, err, catalog.ErrNotFound)

	isFav, err := c.IsFavorite(ctx, "A1")
	require.NoError(t, err)
	assert.False(t, isFav)

	assert.ErrorIs(t, c.Delete(ctx, "A1"), catalog.ErrNotFound)
}

func TestCatalog_ListPreservesInsertionOrder(t *testing.T) {
	c, _ := newCatalog(t)
	ctx := context.Background()

	for _, code := range []string{"C3", "A1", "B2"} {
		_, err := c.Add(ctx, catalog.Product{Code: code, Description: "Spot " + code, Keywords: catalog.Tags("spot")})
		require.NoError(t, err)
	}

	products, err := c.List(ctx)
	require.NoError(t, err)
	require.Len(t, products, 3)
	assert.Equal(t, "C3", products[0].Code)
	assert.Equal(t, "A1", products[1].Code)
	assert.Equal(t, "B2", products[2].Code)
}

func TestCatalog_Favorites(t *testing.T) {
	c, _ := newCatalog(t)
	ctx := context.Background()
	_, err := c.Add(ctx, plafon())
	require.NoError(t, err)
	_, err = c.Add(ctx, catalog.Product{Code: "B2", Description: "Pendente decorativo dourado", Keywords: catalog.Tags("pendente")})
	require.NoError(t, err)

	_, err = c.ToggleFavorite(ctx, "B2")
	require.NoError(t, err)
	_, err = c.ToggleFavorite(ctx, "A1")
	require.NoError(t, err)

	favorites, err := c.Favorites(ctx)
	require.NoError(t, err)
	require.Len(t, favorites, 2)
	assert.Equal(t, "B2", favorites[0].Code)

	fav, err := c.ToggleFavorite(ctx, "B2")
	require.NoError(t, err)
	assert.False(t, fav)

	_, err = c.ToggleFavorite(ctx, "nope")
	assert.ErrorIs(t, err, catalog.ErrNotFound)
}

func TestCatalog_Tags(t *testing.T) {
	c, _ := newCatalog(t)
	ctx := context.Background()

	require.NoError(t, c.AddTag(ctx, catalog.TagDefinition{Text: "LED", Color: "yellow"}))
	assert.ErrorIs(t, c.AddTag(ctx, catalog.TagDefinition{Text: "led", Color: "blue"}), catalog.ErrTagExists)
	assert.ErrorIs(t, c.AddTag(ctx, catalog.TagDefinition{Text: "x"}), catalog.ErrInvalidTag)

	tag, err := c.GetTag(ctx, "Led")
	require.NoError(t, err)
	assert.Equal(t, "yellow", tag.Color)

	require.NoError(t, c.AddTag(ctx, catalog.TagDefinition{Text: "plafon", Color: "red"}))
	assert.ErrorIs(t, c.UpdateTag(ctx, "led", catalog.TagDefinition{Text: "PLAFON", Color: "x"}), catalog.ErrTagExists)
	require.NoError(t, c.UpdateTag(ctx, "led", catalog.TagDefinition{Text: "led", Color: "orange"}))

	tags, err := c.Tags(ctx)
	require.NoError(t, err)
	colored := catalog.ApplyTagColors(catalog.Tags("led", "spot"), tags)
	assert.Equal(t, "orange", colored[0].Color)
	assert.Equal(t, "", colored[1].Color)

	require.NoError(t, c.DeleteTag(ctx, "LED"))
	_, err = c.GetTag(ctx, "led")
	assert.ErrorIs(t, err, catalog.ErrTagNotFound)
	assert.ErrorIs(t, c.DeleteTag(ctx, "led"), catalog.ErrTagNotFound)
}

type failingStore struct {
	storage.Store
	err error
}

func (f failingStore) Get(context.Context, string) ([]byte, error) {
	return nil, f.err
}

func TestCatalog_ListPropagatesStoreErrors(t *testing.T) {
	boom := errors.New("disk on fire")
	c := catalog.New(failingStore{Store: storage.NewMemoryStore(), err: boom})

	_, err := c.List(context.Background())
	assert.Same(t, boom, err)
}

func TestCatalog_ListRejectsCorruptDocument(t *testing.T) {
	store := storage.NewMemoryStore()
	require.NoError(t, store.Set(context.Background(), catalog.ProductsKey, []byte(`{not json`)))

	_, err := catalog.New(store).List(context.Background())
	assert.Error(t, err)
}
