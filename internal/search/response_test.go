package search

import (
	"strings"
	"testing"
	"time"

	"github.com/mark-chris/prodcat/internal/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildAgentResponse_UnderLimit(t *testing.T) {
	results := Rank("plafon led", scenarioProducts(), 0)

	resp := BuildResponse("plafon led", results, VerbosityAgent, nil)

	assert.Equal(t, 2, resp.ResultCount)
	assert.Equal(t, 2, resp.ResultsIncluded)
	assert.False(t, resp.TokenLimitReached)
	assert.Greater(t, resp.TokenCount, 0)
	assert.LessOrEqual(t, resp.TokenCount, tokenLimit)
	require.Len(t, resp.Results, 2)
	assert.Equal(t, "A1", resp.Results[0].Code)
	assert.Equal(t, []string{"plafon", "led"}, resp.Results[0].Keywords)
	assert.Empty(t, resp.VerboseResults)
}

func TestBuildAgentResponse_ExceedsLimit(t *testing.T) {
	long := strings.Repeat("Plafon de embutir com acabamento em microtextura e difusor leitoso. ", 12)

	var results []Result
	for i := 0; i < 6; i++ {
		results = append(results, Result{
			Product:    catalog.Product{Code: string(rune('A'+i)) + "1", Description: long},
			Similarity: 1,
			Relevance:  100,
		})
	}

	resp := BuildResponse("plafon", results, VerbosityAgent, nil)

	assert.Equal(t, 6, resp.ResultCount)
	assert.Less(t, resp.ResultsIncluded, 6)
	assert.True(t, resp.TokenLimitReached)
	assert.Len(t, resp.Results, resp.ResultsIncluded)
}

func TestBuildAgentResponse_SingleResultTooLarge(t *testing.T) {
	huge := strings.Repeat("Luminária pendente de vidro soprado artesanal. ", 200)
	results := []Result{
		{Product: catalog.Product{Code: "A1", Description: huge}, Similarity: 1, Relevance: 100},
		{Product: catalog.Product{Code: "B2", Description: "Spot"}, Similarity: 1, Relevance: 100},
	}

	resp := BuildResponse("pendente", results, VerbosityAgent, nil)

	assert.Equal(t, 1, resp.ResultsIncluded)
	assert.True(t, resp.TokenLimitReached)
	assert.Greater(t, resp.TokenCount, tokenLimit)
}

func TestBuildAgentResponse_Empty(t *testing.T) {
	resp := BuildResponse("nada", []Result{}, VerbosityAgent, nil)

	assert.Equal(t, 0, resp.ResultCount)
	assert.Equal(t, 0, resp.ResultsIncluded)
	assert.False(t, resp.TokenLimitReached)
}

func TestBuildVerboseResponse(t *testing.T) {
	created := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	products := scenarioProducts()
	products[0].CreatedAt = created
	products[0].Image = "aGVsbG8="

	resp := BuildResponse("plafon", Rank("plafon", products, DefaultThreshold), VerbosityHuman, nil)

	require.Len(t, resp.VerboseResults, 1)
	v := resp.VerboseResults[0]
	assert.Equal(t, "A1", v.Code)
	assert.True(t, v.HasImage)
	assert.Equal(t, created, v.CreatedAt)
	assert.Equal(t, 1.0, v.Similarity)
	assert.Equal(t, 1, resp.ResultsIncluded)
	assert.Empty(t, resp.Results)
	assert.Zero(t, resp.TokenCount)
}

func TestBuildResponse_EmptyMessage(t *testing.T) {
	for _, v := range []Verbosity{VerbosityAgent, VerbosityHuman} {
		resp := BuildResponse("xyz", nil, v, nil)
		assert.NotEmpty(t, resp.Message, v)
	}

	resp := BuildResponse("plafon", Rank("plafon", scenarioProducts(), DefaultThreshold), VerbosityAgent, nil)
	assert.Empty(t, resp.Message)
}
