package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mark-chris/prodcat/internal/catalog"
	"github.com/mark-chris/prodcat/internal/keywords"
	"github.com/mark-chris/prodcat/internal/storage"
)

func newTestServer(t *testing.T) (*httptest.Server, *catalog.Catalog) {
	t.Helper()

	fixed := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	cat := catalog.New(storage.NewMemoryStore(), catalog.WithClock(func() time.Time { return fixed }))
	ctx := context.Background()
	for _, p := range []catalog.Product{
		{Code: "A1", Description: "Plafon de embutir LED 12W branco", Keywords: catalog.Tags("plafon", "led")},
		{Code: "B2", Description: "Pendente decorativo dourado", Keywords: catalog.Tags("pendente")},
	} {
		_, err := cat.Add(ctx, p)
		require.NoError(t, err)
	}

	srv := NewServer(cat, keywords.New(keywords.DefaultVocabulary()), Options{Threshold: 0.2}, nil)
	ts := httptest.NewServer(srv.Routes())
	t.Cleanup(ts.Close)
	return ts, cat
}

func doJSON(t *testing.T, method, url string, body any) (*http.Response, map[string]any) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var decoded map[string]any
	if resp.StatusCode != http.StatusNoContent {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	}
	return resp, decoded
}

func errorCode(body map[string]any) string {
	e, _ := body["error"].(map[string]any)
	code, _ := e["code"].(string)
	return code
}

func TestHealthz(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, body := doJSON(t, http.MethodGet, ts.URL+"/healthz", nil)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", body["status"])
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
}

func TestSearch_EndToEnd(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, body := doJSON(t, http.MethodGet, ts.URL+"/search?q=plafon+led", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	assert.EqualValues(t, 1, body["count"])
	results := body["results"].([]any)
	first := results[0].(map[string]any)
	assert.EqualValues(t, 100, first["relevance"])
	assert.Equal(t, "A1", first["product"].(map[string]any)["code"])
}

func TestSearch_BadParams(t *testing.T) {
	ts, _ := newTestServer(t)

	for _, query := range []string{"threshold=2", "threshold=abc", "limit=-1"} {
		resp, body := doJSON(t, http.MethodGet, ts.URL+"/search?q=plafon&"+query, nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, query)
		assert.Equal(t, codeBadRequest, errorCode(body), query)
	}
}

func TestSearch_EmptyQuery(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, body := doJSON(t, http.MethodGet, ts.URL+"/search?q=", nil)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 0, body["count"])
	assert.Empty(t, body["results"])
}

func TestProducts_CRUD(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, body := doJSON(t, http.MethodPost, ts.URL+"/products", map[string]any{
		"code":        "C3",
		"description": "Spot direcionável",
		"keywords":    []any{" Spot ", map[string]string{"text": "Trilho", "color": "#333"}},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, []any{"spot", map[string]any{"text": "trilho", "color": "#333"}}, body["keywords"])
	assert.Equal(t, "2026-05-01T12:00:00Z", body["created_at"])

	resp, body = doJSON(t, http.MethodGet, ts.URL+"/products/C3", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Spot direcionável", body["description"])

	resp, body = doJSON(t, http.MethodPut, ts.URL+"/products/C3", map[string]any{
		"description": "Spot de trilho",
		"keywords":    []string{"spot"},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Spot de trilho", body["description"])
	assert.NotNil(t, body["updated_at"])

	resp, body = doJSON(t, http.MethodGet, ts.URL+"/products?sort=code&desc=true", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	products := body["products"].([]any)
	require.Len(t, products, 3)
	assert.Equal(t, "C3", products[0].(map[string]any)["code"])

	resp, _ = doJSON(t, http.MethodDelete, ts.URL+"/products/C3", nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, body = doJSON(t, http.MethodGet, ts.URL+"/products/C3", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, codeNotFound, errorCode(body))
}

func TestProducts_Errors(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, body := doJSON(t, http.MethodPost, ts.URL+"/products", map[string]any{
		"code": "A1", "description": "dup", "keywords": []string{"x"},
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, codeConflict, errorCode(body))

	resp, body = doJSON(t, http.MethodPost, ts.URL+"/products", map[string]any{"code": "Z9"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, codeValidationFailed, errorCode(body))
	issues := body["error"].(map[string]any)["issues"].([]any)
	assert.Len(t, issues, 2)

	resp, body = doJSON(t, http.MethodPut, ts.URL+"/products/A1", map[string]any{
		"code": "A2", "description": "x", "keywords": []string{"x"},
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, codeBadRequest, errorCode(body))

	resp, _ = doJSON(t, http.MethodDelete, ts.URL+"/products/nope", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, body = doJSON(t, http.MethodGet, ts.URL+"/products?sort=price", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, codeBadRequest, errorCode(body))
}

func TestProducts_MalformedBody(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, err := http.Post(ts.URL+"/products", "application/json", strings.NewReader("{not json"))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestKeywords(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, body := doJSON(t, http.MethodPost, ts.URL+"/keywords", map[string]any{
		"text": "Plafon LED 12W Branco de Alumínio 30cm", "max_results": 3,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "domain", body["strategy"])
	assert.Equal(t, []any{"12w", "plafon", "led"}, body["keywords"])

	resp, body = doJSON(t, http.MethodPost, ts.URL+"/keywords", map[string]any{"text": "\xff"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, []any{}, body["keywords"])

	resp, body = doJSON(t, http.MethodPost, ts.URL+"/keywords", map[string]any{"text": "x", "strategy": "tfidf"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, codeBadRequest, errorCode(body))
}

func TestFavoritesAndTags(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, body := doJSON(t, http.MethodPost, ts.URL+"/products/B2/favorite", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["favorite"])

	_, body = doJSON(t, http.MethodGet, ts.URL+"/favorites", nil)
	favs := body["products"].([]any)
	require.Len(t, favs, 1)
	assert.Equal(t, "B2", favs[0].(map[string]any)["code"])

	resp, _ = doJSON(t, http.MethodPost, ts.URL+"/products/nope/favorite", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = doJSON(t, http.MethodPost, ts.URL+"/tags", map[string]string{"text": "LED", "color": "blue"})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, body = doJSON(t, http.MethodPost, ts.URL+"/tags", map[string]string{"text": "led", "color": "red"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, codeConflict, errorCode(body))

	resp, body = doJSON(t, http.MethodPost, ts.URL+"/tags", map[string]string{"text": "x"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	_, body = doJSON(t, http.MethodGet, ts.URL+"/tags", nil)
	assert.Len(t, body["tags"], 1)
}

func TestStats(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, body := doJSON(t, http.MethodGet, ts.URL+"/stats", nil)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 2, body["total_products"])
	assert.EqualValues(t, 3, body["unique_keywords"])
}

func TestMetricsEndpoint(t *testing.T) {
	ts, _ := newTestServer(t)
	doJSON(t, http.MethodGet, ts.URL+"/search?q=plafon", nil)

	resp, err := http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()

	var buf bytes.Buffer
	_, err = buf.ReadFrom(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, buf.String(), "prodcat_search_requests_total")
	assert.Contains(t, buf.String(), "prodcat_http_requests_total")
}
