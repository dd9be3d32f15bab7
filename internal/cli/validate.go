package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mark-chris/prodcat/internal/catalog"
)

// errValidationFailed makes validate exit non-zero after printing its report
var errValidationFailed = errors.New("validation failed")

var validateCmd = &cobra.Command{
	Use:   "validate [code]",
	Short: "Validate stored products",
	Long: `Validate stored products: required fields, keywords and image encoding.

Exits with status 1 when any product has errors.

Examples:
  # Validate every product
  prodcat validate

  # Validate a specific product
  prodcat validate A1`,
	Args: cobra.MaximumNArgs(1),
	RunE: runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)

	var products []catalog.Product
	if len(args) > 0 {
		p, err := cat.Get(ctx, args[0])
		if err != nil {
			return notFound(err, "product", args[0])
		}
		products = []catalog.Product{p}
	} else {
		all, err := cat.List(ctx)
		if err != nil {
			return err
		}
		products = all
	}

	if len(products) == 0 {
		fmt.Println("No products found to validate")
		return nil
	}

	results := catalog.ValidateAll(products)

	hasErrors := false
	totalErrors := 0
	totalWarnings := 0

	for _, result := range results {
		totalErrors += len(result.Errors)
		totalWarnings += len(result.Warnings)

		if !result.IsValid {
			hasErrors = true
		}

		if len(result.Errors) > 0 || len(result.Warnings) > 0 || verbose {
			status := "✓"
			if !result.IsValid {
				status = "✗"
			}
			fmt.Printf("%s %s\n", status, result.Code)

			for _, issue := range result.Errors {
				fmt.Printf("  ERROR: %s - %s\n", issue.Field, issue.Message)
			}
			for _, issue := range result.Warnings {
				fmt.Printf("  WARN:  %s - %s\n", issue.Field, issue.Message)
			}
			if len(result.Errors) > 0 || len(result.Warnings) > 0 {
				fmt.Println()
			}
		}
	}

	fmt.Printf("\nValidated %d product(s): %d error(s), %d warning(s)\n",
		len(results), totalErrors, totalWarnings)

	if hasErrors {
		return errValidationFailed
	}
	return nil
}
