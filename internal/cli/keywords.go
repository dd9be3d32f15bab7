package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mark-chris/prodcat/internal/keywords"
	"github.com/mark-chris/prodcat/internal/metrics"
	"github.com/mark-chris/prodcat/internal/search"
)

var (
	keywordsStrategy string
	keywordsMax      int
)

var keywordsCmd = &cobra.Command{
	Use:   "keywords <text...>",
	Short: "Suggest keywords for a product description",
	Long: `Suggest keywords for a description.

The domain strategy keeps technical specs (12W, 220V, 30cm) and lighting
vocabulary ranked by importance; the generic strategy keeps content words.
Extraction never fails: problems yield an empty list.

Examples:
  prodcat keywords "Plafon LED 12W Branco de Alumínio 30cm"
  prodcat keywords --strategy generic --max 5 "Plafon de embutir com 2 lâmpadas"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runKeywords,
}

func init() {
	keywordsCmd.Flags().StringVar(&keywordsStrategy, "strategy", "",
		"Extraction strategy: domain or generic (default: keywords.strategy from config)")
	keywordsCmd.Flags().IntVar(&keywordsMax, "max", 0,
		"Maximum number of keywords (default: 12 for domain, 8 for generic)")
}

func runKeywords(cmd *cobra.Command, args []string) error {
	name := cfg.Keywords.Strategy
	if keywordsStrategy != "" {
		name = keywordsStrategy
	}
	strategy, err := keywords.ParseStrategy(name)
	if err != nil {
		return err
	}
	max := cfg.Keywords.MaxResults
	if keywordsMax > 0 {
		max = keywordsMax
	}

	suggested := extractor.Suggest(strategy, strings.Join(args, " "), max)
	metrics.ObserveKeywords(string(strategy), len(suggested))

	if getFormat() != search.FormatText {
		return printJSON(map[string]interface{}{
			"strategy": strategy,
			"keywords": suggested,
		})
	}

	if len(suggested) == 0 {
		fmt.Println("No keywords found. Try a longer description with specs or product types.")
		return nil
	}
	fmt.Printf("Suggested keywords (%s):\n", strategy)
	for i, k := range suggested {
		fmt.Printf("  %2d. %s\n", i+1, k)
	}
	return nil
}
