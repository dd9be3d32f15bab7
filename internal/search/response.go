package search

import (
	"encoding/json"
	"time"

	"github.com/mark-chris/prodcat/internal/catalog"
	"go.uber.org/zap"
)

// tokenLimit is the maximum token count for agent-mode responses.
const tokenLimit = 500

// Verbosity selects the response shape.
type Verbosity string

// Verbosity levels.
const (
	VerbosityAgent Verbosity = "agent"
	VerbosityHuman Verbosity = "human"
)

// Response is a rendered search result set.
type Response struct {
	Query             string                `json:"query"`
	ResultCount       int                   `json:"result_count"`
	ResultsIncluded   int                   `json:"results_included"`
	TokenCount        int                   `json:"token_count,omitempty"`
	TokenLimitReached bool                  `json:"token_limit_reached,omitempty"`
	Message           string                `json:"message,omitempty"`
	Results           []ResultOutput        `json:"results,omitempty"`
	VerboseResults    []ResultOutputVerbose `json:"verbose_results,omitempty"`
}

// ResultOutput is the compact, agent-facing form of a result
type ResultOutput struct {
	Code        string   `json:"code"`
	Description string   `json:"description"`
	Relevance   int      `json:"relevance"`
	Keywords    []string `json:"keywords"`
}

// ResultOutputVerbose is the human-facing detailed output
type ResultOutputVerbose struct {
	Code        string               `json:"code"`
	Description string               `json:"description"`
	Keywords    []catalog.KeywordTag `json:"keywords"`
	HasImage    bool                 `json:"has_image"`
	Similarity  float64              `json:"similarity"`
	Relevance   int                  `json:"relevance"`
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   *time.Time           `json:"updated_at,omitempty"`
}

// BuildResponse renders results for the given verbosity. Agent responses are
// cut off once the token budget is spent; the first result is always kept.
func BuildResponse(query string, results []Result, verbosity Verbosity, logger *zap.Logger) Response {
	var resp Response
	if verbosity == VerbosityHuman {
		resp = buildVerboseResponse(query, results)
	} else {
		resp = buildAgentResponse(query, results, logger)
	}
	if resp.ResultCount == 0 {
		resp.Message = emptyMessage
	}
	return resp
}

const emptyMessage = "No products match the query. Try fewer or shorter words, or lower the threshold."

// buildAgentResponse builds a token-limited response for agent consumption
func buildAgentResponse(query string, results []Result, logger *zap.Logger) Response {
	counter, err := sharedTokenCounter()
	if err != nil && logger != nil {
		logger.Warn("token counter initialization failed, using approximation", zap.Error(err))
	}

	resp := Response{
		Query:       query,
		ResultCount: len(results),
		Results:     make([]ResultOutput, 0, len(results)),
	}

	totalTokens := 0
	for _, r := range results {
		output := ResultOutput{
			Code:        r.Product.Code,
			Description: r.Product.Description,
			Relevance:   r.Relevance,
			Keywords:    r.Product.KeywordTexts(),
		}

		outputJSON, _ := json.Marshal(output)
		tokens := counter.CountTokens(string(outputJSON))

		if len(resp.Results) > 0 && totalTokens+tokens > tokenLimit {
			resp.TokenLimitReached = true
			break
		}

		resp.Results = append(resp.Results, output)
		totalTokens += tokens

		// A single oversized first result is still returned.
		if len(resp.Results) == 1 && totalTokens > tokenLimit {
			resp.TokenLimitReached = true
			break
		}
	}

	resp.ResultsIncluded = len(resp.Results)
	resp.TokenCount = totalTokens
	return resp
}

// buildVerboseResponse builds a comprehensive response for human consumption
func buildVerboseResponse(query string, results []Result) Response {
	resp := Response{
		Query:          query,
		ResultCount:    len(results),
		VerboseResults: make([]ResultOutputVerbose, 0, len(results)),
	}

	for _, r := range results {
		resp.VerboseResults = append(resp.VerboseResults, ResultOutputVerbose{
			Code:        r.Product.Code,
			Description: r.Product.Description,
			Keywords:    r.Product.Keywords,
			HasImage:    r.Product.Image != "",
			Similarity:  r.Similarity,
			Relevance:   r.Relevance,
			CreatedAt:   r.Product.CreatedAt,
			UpdatedAt:   r.Product.UpdatedAt,
		})
	}

	resp.ResultsIncluded = len(resp.VerboseResults)
	return resp
}
