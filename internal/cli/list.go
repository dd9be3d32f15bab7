package cli

import (
	"github.com/spf13/cobra"

	"github.com/mark-chris/prodcat/internal/catalog"
)

var (
	listFilter  string
	listKeyword string
	listSort    string
	listDesc    bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List catalog products",
	Long: `List products, optionally filtered and sorted.

The filter is a case-insensitive substring matched against code,
description and keywords.

Examples:
  # List all products
  prodcat list

  # Newest first
  prodcat list --sort created_at --desc

  # Products mentioning "led", as text
  prodcat list --filter led -f text`,
	RunE: runList,
}

func init() {
	listCmd.Flags().StringVar(&listFilter, "filter", "",
		"Substring to match in code, description or keywords")
	listCmd.Flags().StringVar(&listKeyword, "keyword", "",
		"Only products tagged with this keyword")
	listCmd.Flags().StringVar(&listSort, "sort", "code",
		"Sort field: code, description or created_at")
	listCmd.Flags().BoolVar(&listDesc, "desc", false,
		"Sort in descending order")
}

func runList(cmd *cobra.Command, args []string) error {
	sortBy, err := catalog.ParseSortField(listSort)
	if err != nil {
		return err
	}

	products, err := cat.List(commandContext(cmd))
	if err != nil {
		return err
	}

	products = catalog.FilterAndSort(products, catalog.ListOptions{
		Filter:     listFilter,
		Keyword:    listKeyword,
		SortBy:     sortBy,
		Descending: listDesc,
	})

	return printProductList(products, "No products found")
}
