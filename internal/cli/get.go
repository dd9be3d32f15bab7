package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var getCmd = &cobra.Command{
	Use:   "get <code>",
	Short: "Get a specific product by code",
	Long: `Retrieve detailed information about a product.

Examples:
  # Get product details (JSON)
  prodcat get A1

  # Get product details (human-readable)
  prodcat get A1 --verbose`,
	Args: cobra.ExactArgs(1),
	RunE: runGet,
}

func runGet(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)
	code := args[0]

	p, err := cat.Get(ctx, code)
	if err != nil {
		return notFound(err, "product", code)
	}
	favorite, err := cat.IsFavorite(ctx, code)
	if err != nil {
		return err
	}

	output, err := formatProductDetail(productDetail{Product: p, Favorite: favorite}, getFormat())
	if err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}

	fmt.Println(output)
	return nil
}
