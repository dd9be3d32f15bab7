package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mark-chris/prodcat/internal/catalog"
	"github.com/mark-chris/prodcat/internal/search"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show catalog statistics",
	Long: `Show dashboard statistics: product and keyword counts, the most used
keywords, the most recent products and the products with the most keywords.`,
	Args: cobra.NoArgs,
	RunE: runStats,
}

func runStats(cmd *cobra.Command, args []string) error {
	products, err := cat.List(commandContext(cmd))
	if err != nil {
		return err
	}

	stats := catalog.ComputeStats(products)
	if getFormat() == search.FormatText {
		fmt.Print(formatStats(stats))
		return nil
	}
	return printJSON(stats)
}
