package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark-chris/prodcat/internal/catalog"
	"github.com/mark-chris/prodcat/internal/search"
)

const timeLayout = "2006-01-02 15:04"

// productDetail is a product as shown by get.
type productDetail struct {
	catalog.Product
	Favorite bool `json:"favorite"`
}

// printJSON writes v as indented JSON to stdout
func printJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

// formatProductDetail renders a single product
func formatProductDetail(d productDetail, format search.OutputFormat) (string, error) {
	if format != search.FormatText {
		data, err := json.MarshalIndent(d, "", "  ")
		if err != nil {
			return "", fmt.Errorf("failed to marshal JSON: %w", err)
		}
		return string(data), nil
	}

	var sb strings.Builder
	star := ""
	if d.Favorite {
		star = " *"
	}
	sb.WriteString(fmt.Sprintf("%s%s\n", d.Code, star))
	sb.WriteString(strings.Repeat("-", 40) + "\n")
	sb.WriteString(fmt.Sprintf("Description: %s\n", d.Description))
	sb.WriteString(fmt.Sprintf("Keywords:    %s\n", keywordList(d.Keywords, true)))
	if d.Image != "" {
		size := "invalid"
		if raw, err := catalog.DecodeImage(d.Image); err == nil {
			size = fmt.Sprintf("%d bytes", len(raw))
		}
		sb.WriteString(fmt.Sprintf("Image:       %s\n", size))
	}
	if !d.CreatedAt.IsZero() {
		sb.WriteString(fmt.Sprintf("Created:     %s\n", d.CreatedAt.Format(timeLayout)))
	}
	if d.UpdatedAt != nil {
		sb.WriteString(fmt.Sprintf("Updated:     %s\n", d.UpdatedAt.Format(timeLayout)))
	}
	return sb.String(), nil
}

// printProductList writes products as JSON or as one line per product
func printProductList(products []catalog.Product, empty string) error {
	if getFormat() != search.FormatText {
		return printJSON(products)
	}

	if len(products) == 0 {
		fmt.Println(empty)
		return nil
	}

	fmt.Printf("Found %d product(s):\n\n", len(products))
	for _, p := range products {
		if verbose {
			fmt.Printf("%s\n", p.Code)
			fmt.Printf("  Description: %s\n", p.Description)
			fmt.Printf("  Keywords:    %s\n", keywordList(p.Keywords, true))
			if !p.CreatedAt.IsZero() {
				fmt.Printf("  Created:     %s\n", p.CreatedAt.Format(timeLayout))
			}
			fmt.Println()
		} else {
			fmt.Printf("%-12s  %-30s  %s\n", p.Code, "["+keywordList(p.Keywords, false)+"]", p.Description)
		}
	}
	return nil
}

// keywordList joins tag texts, optionally with their colors
func keywordList(tags []catalog.KeywordTag, withColor bool) string {
	parts := make([]string, 0, len(tags))
	for _, t := range tags {
		if withColor && t.Color != "" {
			parts = append(parts, fmt.Sprintf("%s (%s)", t.Text, t.Color))
			continue
		}
		parts = append(parts, t.Text)
	}
	return strings.Join(parts, ", ")
}

// formatStats renders dashboard statistics as text
func formatStats(s catalog.Stats) string {
	var sb strings.Builder
	sb.WriteString("Catalog statistics\n")
	sb.WriteString(strings.Repeat("=", 50) + "\n")
	sb.WriteString(fmt.Sprintf("Products:        %d\n", s.TotalProducts))
	sb.WriteString(fmt.Sprintf("Unique keywords: %d\n", s.UniqueKeywords))
	sb.WriteString(fmt.Sprintf("Keyword uses:    %d\n", s.TotalKeywords))

	if len(s.TopKeywords) > 0 {
		sb.WriteString("\nTop keywords:\n")
		for _, k := range s.TopKeywords {
			sb.WriteString(fmt.Sprintf("  %-20s %d\n", k.Keyword, k.Count))
		}
	}
	if len(s.MostRecent) > 0 {
		sb.WriteString("\nMost recent:\n")
		for _, p := range s.MostRecent {
			sb.WriteString(fmt.Sprintf("  %-12s %s\n", p.Code, p.Description))
		}
	}
	if len(s.MostKeywords) > 0 {
		sb.WriteString("\nMost keywords:\n")
		for _, p := range s.MostKeywords {
			sb.WriteString(fmt.Sprintf("  %-12s %d keyword(s)\n", p.Code, len(p.Keywords)))
		}
	}
	return sb.String()
}
