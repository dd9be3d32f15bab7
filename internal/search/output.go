package search

import (
	"encoding/json"
	"fmt"
	"strings"
)

// OutputFormat specifies the output format
type OutputFormat string

// Output format constants.
const (
	FormatJSON OutputFormat = "json"
	FormatText OutputFormat = "text"
)

// FormatOutput formats a search response for display
func FormatOutput(resp Response, format OutputFormat) (string, error) {
	switch format {
	case FormatText:
		return formatText(resp), nil
	default:
		return formatJSON(resp)
	}
}

func formatJSON(resp Response) (string, error) {
	data, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return string(data), nil
}

func formatText(resp Response) string {
	var sb strings.Builder

	if resp.ResultCount == 0 {
		sb.WriteString(fmt.Sprintf("No products match %q.\n", resp.Query))
		sb.WriteString("Try fewer or shorter words, or lower the threshold.\n")
		return sb.String()
	}

	sb.WriteString(fmt.Sprintf("Found %d matching product(s) for %q\n", resp.ResultCount, resp.Query))
	sb.WriteString(strings.Repeat("=", 50) + "\n\n")

	for i, r := range resp.Results {
		sb.WriteString(fmt.Sprintf("[%d] %s (relevance: %d%%)\n", i+1, r.Code, r.Relevance))
		sb.WriteString(fmt.Sprintf("    %s\n", r.Description))
		if len(r.Keywords) > 0 {
			sb.WriteString(fmt.Sprintf("    Keywords: %s\n", strings.Join(r.Keywords, ", ")))
		}
		sb.WriteString("\n")
	}

	for i, r := range resp.VerboseResults {
		sb.WriteString(fmt.Sprintf("[%d] %s (relevance: %d%%, similarity: %.2f)\n", i+1, r.Code, r.Relevance, r.Similarity))
		sb.WriteString(strings.Repeat("-", 40) + "\n")
		sb.WriteString(fmt.Sprintf("Description: %s\n", r.Description))
		if len(r.Keywords) > 0 {
			texts := make([]string, 0, len(r.Keywords))
			for _, k := range r.Keywords {
				texts = append(texts, k.Text)
			}
			sb.WriteString(fmt.Sprintf("Keywords:    %s\n", strings.Join(texts, ", ")))
		}
		if !r.CreatedAt.IsZero() {
			sb.WriteString(fmt.Sprintf("Created:     %s\n", r.CreatedAt.Format("2006-01-02 15:04")))
		}
		if r.UpdatedAt != nil {
			sb.WriteString(fmt.Sprintf("Updated:     %s\n", r.UpdatedAt.Format("2006-01-02 15:04")))
		}
		sb.WriteString("\n")
	}

	if resp.TokenLimitReached {
		sb.WriteString(fmt.Sprintf("(%d of %d results shown, token budget reached)\n", resp.ResultsIncluded, resp.ResultCount))
	}

	return sb.String()
}
