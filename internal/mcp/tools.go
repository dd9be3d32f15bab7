package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mark-chris/prodcat/internal/metrics"
	"github.com/mark-chris/prodcat/internal/search"
)

// Tool names.
const (
	toolSearch   = "catalog_search"
	toolKeywords = "catalog_keywords"
)

// toolsCallParams represents the tools/call request parameters
type toolsCallParams struct {
	Name      string                 `json:"name"`
	Arguments map[string]interface{} `json:"arguments"`
}

// searchToolDefinition returns the MCP tool definition for catalog_search
func searchToolDefinition() map[string]interface{} {
	return map[string]interface{}{
		"name":        toolSearch,
		"description": "Search the product catalog by free text. Products are ranked by token similarity against their description and keywords; accents and case are ignored.",
		"inputSchema": map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"query": map[string]interface{}{
					"type":        "string",
					"minLength":   1,
					"description": "Free-text query (e.g., 'plafon led branco')",
				},
				"threshold": map[string]interface{}{
					"type":        "number",
					"minimum":     0,
					"maximum":     1,
					"description": "Minimum similarity in [0, 1] (default 0.2)",
				},
				"limit": map[string]interface{}{
					"type":        "integer",
					"minimum":     0,
					"description": "Maximum number of results, 0 for no limit",
				},
				"verbosity": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"agent", "human"},
					"default":     "agent",
					"description": "Output format: 'agent' for concise, 'human' for detailed",
				},
			},
			"required":             []string{"query"},
			"additionalProperties": false,
		},
	}
}

// keywordsToolDefinition returns the MCP tool definition for catalog_keywords
func keywordsToolDefinition() map[string]interface{} {
	return map[string]interface{}{
		"name":        toolKeywords,
		"description": "Suggest keywords for a product description: technical specs (12W, 220V, 30cm), product types, materials and finishes, ranked by importance.",
		"inputSchema": map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"text": map[string]interface{}{
					"type":        "string",
					"minLength":   1,
					"description": "Product description to extract keywords from",
				},
				"strategy": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"domain", "generic"},
					"default":     "domain",
					"description": "'domain' ranks lighting vocabulary and specs, 'generic' keeps content words",
				},
				"max_results": map[string]interface{}{
					"type":        "integer",
					"minimum":     1,
					"description": "Maximum number of keywords (default 12 for domain, 8 for generic)",
				},
			},
			"required":             []string{"text"},
			"additionalProperties": false,
		},
	}
}

// ToolDefinitions returns every tool the server exposes
func (s *Server) ToolDefinitions() []interface{} {
	return []interface{}{searchToolDefinition(), keywordsToolDefinition()}
}

// handleToolsList handles the tools/list request
func handleToolsList(s *Server, _ json.RawMessage) (interface{}, error) {
	if s.getState() != stateInitialized {
		return nil, invalidRequest("server not initialized")
	}
	return map[string]interface{}{"tools": s.ToolDefinitions()}, nil
}

// handleToolsCall handles the tools/call request
func handleToolsCall(ctx context.Context, s *Server, params json.RawMessage) (interface{}, error) {
	if s.getState() != stateInitialized {
		return nil, invalidRequest("server not initialized")
	}

	var p toolsCallParams
	if err := json.Unmarshal(params, &p); err != nil {
		return nil, invalidParams("invalid tools/call params: %v", err)
	}

	// Unknown tools are protocol errors; bad arguments are tool execution errors.
	if err := validateToolName(p.Name); err != nil {
		return nil, err
	}

	switch p.Name {
	case toolSearch:
		return s.callSearch(ctx, p.Arguments), nil
	default:
		return s.callKeywords(p.Arguments), nil
	}
}

func (s *Server) callSearch(ctx context.Context, args map[string]interface{}) interface{} {
	if err := validateNoUnknownParams(args, []string{"query", "threshold", "limit", "verbosity"}); err != nil {
		return createToolExecutionErrorResult(err.Error())
	}

	query, err := requiredString(args, "query")
	if err != nil {
		return createToolExecutionErrorResult(err.Error())
	}
	threshold, err := validateThreshold(args, s.opts.Threshold)
	if err != nil {
		return createToolExecutionErrorResult(err.Error())
	}
	limit, err := optionalInt(args, "limit", s.opts.Limit, 0)
	if err != nil {
		return createToolExecutionErrorResult(err.Error())
	}
	verbosity, err := validateVerbosity(args)
	if err != nil {
		return createToolExecutionErrorResult(err.Error())
	}

	start := time.Now()
	results, err := search.Search(ctx, s.source, search.Options{Query: query, Threshold: threshold, Limit: limit})
	metrics.ObserveSearch("mcp", time.Since(start), len(results), err)
	if err != nil {
		return createToolExecutionErrorResult(fmt.Sprintf("Search failed: %v", err))
	}

	resp := search.BuildResponse(query, results, verbosity, s.logger)
	data, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return createToolExecutionErrorResult(fmt.Sprintf("failed to marshal result: %v", err))
	}
	return createToolResult(string(data))
}

func (s *Server) callKeywords(args map[string]interface{}) interface{} {
	if err := validateNoUnknownParams(args, []string{"text", "strategy", "max_results"}); err != nil {
		return createToolExecutionErrorResult(err.Error())
	}

	text, err := requiredString(args, "text")
	if err != nil {
		return createToolExecutionErrorResult(err.Error())
	}
	strategy, err := validateStrategy(args, s.opts.Strategy)
	if err != nil {
		return createToolExecutionErrorResult(err.Error())
	}
	max, err := optionalInt(args, "max_results", s.opts.MaxKeywords, 1)
	if err != nil {
		return createToolExecutionErrorResult(err.Error())
	}

	suggested := s.extractor.Suggest(strategy, text, max)
	metrics.ObserveKeywords(string(strategy), len(suggested))

	data, err := json.MarshalIndent(map[string]interface{}{
		"strategy": strategy,
		"keywords": suggested,
	}, "", "  ")
	if err != nil {
		return createToolExecutionErrorResult(fmt.Sprintf("failed to marshal result: %v", err))
	}
	return createToolResult(string(data))
}

// createToolResult wraps text in the MCP tool call result format
func createToolResult(text string) interface{} {
	return map[string]interface{}{
		"content": []interface{}{
			map[string]interface{}{
				"type": "text",
				"text": text,
			},
		},
		"isError": false,
	}
}

// createToolExecutionErrorResult creates a tool execution error result
func createToolExecutionErrorResult(message string) interface{} {
	return map[string]interface{}{
		"content": []interface{}{
			map[string]interface{}{
				"type": "text",
				"text": message,
			},
		},
		"isError": true,
	}
}

