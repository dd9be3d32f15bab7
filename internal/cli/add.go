package cli

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mark-chris/prodcat/internal/catalog"
	"github.com/mark-chris/prodcat/internal/keywords"
)

var (
	addCode        string
	addDescription string
	addKeywords    string
	addTagColors   []string
	addImage       string
	addSuggest     bool
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a product to the catalog",
	Long: `Add a product. Codes are unique; at least one keyword is required.

Keywords take their color from the tag registry unless --tag-color sets one.
With --suggest, keywords are extracted from the description when --keywords
is empty.

Examples:
  prodcat add --code A1 --description "Plafon de embutir LED 12W branco" --keywords "plafon, led"
  prodcat add --code B2 --description "Pendente dourado 30cm" --suggest
  prodcat add --code C3 --description "Arandela" --keywords arandela --image ./c3.png`,
	RunE: runAdd,
}

func init() {
	addCmd.Flags().StringVar(&addCode, "code", "", "Unique product code (required)")
	addCmd.Flags().StringVar(&addDescription, "description", "", "Product description (required)")
	addCmd.Flags().StringVar(&addKeywords, "keywords", "", "Comma separated keywords (e.g., 'plafon, led')")
	addCmd.Flags().StringArrayVar(&addTagColors, "tag-color", nil, "Keyword color as text=color, repeatable")
	addCmd.Flags().StringVar(&addImage, "image", "", "Path to an image file")
	addCmd.Flags().BoolVar(&addSuggest, "suggest", false, "Suggest keywords from the description when none are given")
	_ = addCmd.MarkFlagRequired("code")
	_ = addCmd.MarkFlagRequired("description")
}

func runAdd(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)

	tags := catalog.ParseTags(addKeywords)
	if len(tags) == 0 && addSuggest {
		strategy, err := keywords.ParseStrategy(cfg.Keywords.Strategy)
		if err != nil {
			return err
		}
		tags = catalog.Tags(extractor.Suggest(strategy, addDescription, cfg.Keywords.MaxResults)...)
	}

	tags, err := colorTags(ctx, tags, addTagColors)
	if err != nil {
		return err
	}

	p := catalog.Product{
		Code:        addCode,
		Description: addDescription,
		Keywords:    tags,
	}
	if addImage != "" {
		if p.Image, err = readImage(addImage); err != nil {
			return err
		}
	}

	added, err := cat.Add(ctx, p)
	if err != nil {
		return err
	}

	return printMutation("Added", added)
}

// colorTags applies registry colors, then explicit text=color overrides
func colorTags(ctx context.Context, tags []catalog.KeywordTag, overrides []string) ([]catalog.KeywordTag, error) {
	registry, err := cat.Tags(ctx)
	if err != nil {
		return nil, err
	}

	colors := make(map[string]string, len(overrides))
	for _, o := range overrides {
		text, color, ok := strings.Cut(o, "=")
		text, color = strings.TrimSpace(text), strings.TrimSpace(color)
		if !ok || text == "" || color == "" {
			return nil, fmt.Errorf("invalid --tag-color %q (expected text=color)", o)
		}
		colors[strings.ToLower(text)] = color
	}

	for i, t := range tags {
		if color, ok := colors[strings.ToLower(t.Text)]; ok {
			tags[i].Color = color
		}
	}
	return catalog.ApplyTagColors(tags, registry), nil
}

// readImage loads an image file as a base64 data URL
func readImage(path string) (string, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return "", fmt.Errorf("failed to read image: %w", err)
	}
	mime, _, _ := strings.Cut(http.DetectContentType(data), ";")
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

// printMutation reports a created or updated product
func printMutation(verb string, p catalog.Product) error {
	if outputFormat == "text" || verbose {
		fmt.Printf("%s %s\n", verb, p.Code)
		return nil
	}
	return printJSON(p)
}
