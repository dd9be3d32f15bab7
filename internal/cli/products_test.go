package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mark-chris/prodcat/internal/catalog"
	"github.com/mark-chris/prodcat/internal/cli/testutil"
)

func decodeProduct(t *testing.T, out string) productDetail {
	t.Helper()
	var d productDetail
	require.NoError(t, json.Unmarshal([]byte(out), &d), out)
	return d
}

func TestAddThenGet(t *testing.T) {
	isolate(t)
	fixture := testutil.SetupTestCatalog(t)

	out := executeOK(t, fixture.DataDir, "add",
		"--code", "D4",
		"--description", "Spot de trilho preto",
		"--keywords", "spot, trilho")
	added := decodeProduct(t, out)
	assert.Equal(t, "D4", added.Code)
	assert.False(t, added.CreatedAt.IsZero())

	got := decodeProduct(t, executeOK(t, fixture.DataDir, "get", "D4"))
	assert.Equal(t, "Spot de trilho preto", got.Description)
	assert.Equal(t, []string{"spot", "trilho"}, got.KeywordTexts())
	assert.False(t, got.Favorite)
}

func TestAdd_DuplicateCode(t *testing.T) {
	_, dataDir := seeded(t)

	_, err := execute(t, "add", "--code", "A1", "--description", "x", "--keywords", "y", "--data", dataDir)
	require.Error(t, err)
	assert.ErrorIs(t, err, catalog.ErrDuplicateCode)
}

func TestAdd_MissingKeywords(t *testing.T) {
	isolate(t)
	fixture := testutil.SetupTestCatalog(t)

	_, err := execute(t, "add", "--code", "E5", "--description", "Luminária", "--data", fixture.DataDir)
	require.Error(t, err)
	assert.ErrorIs(t, err, catalog.ErrInvalidProduct)
}

func TestAdd_SuggestKeywords(t *testing.T) {
	isolate(t)
	fixture := testutil.SetupTestCatalog(t)

	out := executeOK(t, fixture.DataDir, "add",
		"--code", "F6",
		"--description", "Plafon LED 12W Branco de Alumínio 30cm",
		"--suggest")

	added := decodeProduct(t, out)
	assert.Equal(t, []string{"12w", "plafon", "led", "aluminio", "branco", "30cm"}, added.KeywordTexts())
}

func TestAdd_TagColors(t *testing.T) {
	isolate(t)
	fixture := testutil.SetupTestCatalog(t)

	executeOK(t, fixture.DataDir, "tags", "add", "led", "--color", "#ffcc00")

	out := executeOK(t, fixture.DataDir, "add",
		"--code", "G7",
		"--description", "Fita LED",
		"--keywords", "LED, fita",
		"--tag-color", "fita=#00ff00")

	added := decodeProduct(t, out)
	require.Len(t, added.Keywords, 2)
	assert.Equal(t, "#ffcc00", added.Keywords[0].Color)
	assert.Equal(t, "#00ff00", added.Keywords[1].Color)

	_, err := execute(t, "add", "--code", "H8", "--description", "x", "--keywords", "y",
		"--tag-color", "nocolor", "--data", fixture.DataDir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected text=color")
}

func TestAdd_Image(t *testing.T) {
	isolate(t)
	fixture := testutil.SetupTestCatalog(t)

	img := filepath.Join(t.TempDir(), "pixel.png")
	png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")
	require.NoError(t, os.WriteFile(img, png, 0o600))

	out := executeOK(t, fixture.DataDir, "add",
		"--code", "I9", "--description", "Com imagem", "--keywords", "foto", "--image", img)

	added := decodeProduct(t, out)
	assert.True(t, strings.HasPrefix(added.Image, "data:image/png;base64,"))
	raw, err := catalog.DecodeImage(added.Image)
	require.NoError(t, err)
	assert.Equal(t, png, raw)
}

func TestUpdate_KeepsUnchangedFields(t *testing.T) {
	_, dataDir := seeded(t)

	out := executeOK(t, dataDir, "update", "A1", "--description", "Plafon de embutir LED 18W branco")
	updated := decodeProduct(t, out)

	assert.Equal(t, "Plafon de embutir LED 18W branco", updated.Description)
	assert.Equal(t, []string{"plafon", "led"}, updated.KeywordTexts())
	require.NotNil(t, updated.UpdatedAt)

	out = executeOK(t, dataDir, "update", "A1", "--keywords", "plafon, 18w")
	updated = decodeProduct(t, out)
	assert.Equal(t, "Plafon de embutir LED 18W branco", updated.Description)
	assert.Equal(t, []string{"plafon", "18w"}, updated.KeywordTexts())
}

func TestUpdate_NotFound(t *testing.T) {
	_, dataDir := seeded(t)

	_, err := execute(t, "update", "ZZ", "--description", "x", "--data", dataDir)
	require.Error(t, err)
	assert.Equal(t, "product not found: ZZ", err.Error())
}

func TestDelete(t *testing.T) {
	_, dataDir := seeded(t)

	executeOK(t, dataDir, "favorite", "toggle", "B2")
	out := executeOK(t, dataDir, "delete", "B2", "-f", "text")
	assert.Contains(t, out, "Deleted B2")

	_, err := execute(t, "get", "B2", "--data", dataDir)
	require.Error(t, err)
	assert.Equal(t, "product not found: B2", err.Error())

	out = executeOK(t, dataDir, "favorite", "list")
	assert.JSONEq(t, `[]`, out)

	_, err = execute(t, "delete", "B2", "--data", dataDir)
	require.Error(t, err)
}

func TestList_FilterAndSort(t *testing.T) {
	_, dataDir := seeded(t)

	var products []catalog.Product
	out := executeOK(t, dataDir, "list", "--sort", "description")
	require.NoError(t, json.Unmarshal([]byte(out), &products))
	require.Len(t, products, 3)
	assert.Equal(t, []string{"C3", "B2", "A1"}, codes(products))

	out = executeOK(t, dataDir, "list", "--filter", "LED")
	require.NoError(t, json.Unmarshal([]byte(out), &products))
	assert.Equal(t, []string{"A1"}, codes(products))

	out = executeOK(t, dataDir, "list", "--desc")
	require.NoError(t, json.Unmarshal([]byte(out), &products))
	assert.Equal(t, []string{"C3", "B2", "A1"}, codes(products))

	_, err := execute(t, "list", "--sort", "price", "--data", dataDir)
	require.Error(t, err)
}

func TestList_TextOutput(t *testing.T) {
	_, dataDir := seeded(t)

	out := executeOK(t, dataDir, "list", "-f", "text")
	assert.Contains(t, out, "Found 3 product(s)")
	assert.Contains(t, out, "[plafon, led]")

	out = executeOK(t, dataDir, "list", "--filter", "ventilador", "-f", "text")
	assert.Contains(t, out, "No products found")
}

func TestGet_TextOutput(t *testing.T) {
	_, dataDir := seeded(t)

	executeOK(t, dataDir, "favorite", "toggle", "A1")
	out := executeOK(t, dataDir, "get", "A1", "--verbose")

	assert.Contains(t, out, "A1 *")
	assert.Contains(t, out, "Description: Plafon de embutir LED 12W branco")
	assert.Contains(t, out, "Keywords:    plafon, led")
}

func codes(products []catalog.Product) []string {
	out := make([]string, 0, len(products))
	for _, p := range products {
		out = append(out, p.Code)
	}
	return out
}
