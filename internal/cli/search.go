package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/mark-chris/prodcat/internal/metrics"
	"github.com/mark-chris/prodcat/internal/search"
)

var (
	searchThreshold float64
	searchLimit     int
)

var searchCmd = &cobra.Command{
	Use:   "search <query...>",
	Short: "Search products by similarity",
	Long: `Rank products by token similarity between the query and each product's
description and keywords. Accents, case and punctuation are ignored.

Returns a compact response optimized for agents by default.
Use --verbose for human-readable detailed output.

Examples:
  # Search with the configured threshold
  prodcat search plafon led

  # Stricter matching, at most 5 results
  prodcat search "pendente dourado" --threshold 0.5 --limit 5`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().Float64Var(&searchThreshold, "threshold", 0.2,
		"Minimum similarity in [0, 1] (default: search.threshold from config)")
	searchCmd.Flags().IntVar(&searchLimit, "limit", 0,
		"Maximum number of results, 0 for no limit (default: search.limit from config)")
}

func runSearch(cmd *cobra.Command, args []string) error {
	opts := search.Options{
		Query:     strings.Join(args, " "),
		Threshold: cfg.SearchThreshold(),
		Limit:     cfg.Search.Limit,
	}
	if cmd.Flags().Changed("threshold") {
		opts.Threshold = searchThreshold
	}
	if cmd.Flags().Changed("limit") {
		opts.Limit = searchLimit
	}

	start := time.Now()
	results, err := search.Search(commandContext(cmd), cat, opts)
	metrics.ObserveSearch("cli", time.Since(start), len(results), err)
	if err != nil {
		return err
	}

	verbosity := search.VerbosityAgent
	if verbose {
		verbosity = search.VerbosityHuman
	}
	resp := search.BuildResponse(opts.Query, results, verbosity, zlog)

	output, err := search.FormatOutput(resp, getFormat())
	if err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}

	fmt.Println(output)
	return nil
}
