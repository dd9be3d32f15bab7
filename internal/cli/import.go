package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mark-chris/prodcat/internal/catalog"
)

var importCmd = &cobra.Command{
	Use:   "import <path>",
	Short: "Import products from seed YAML files",
	Long: `Import products from a YAML file or from every YAML file under a directory.

A file holds a single "product" entry, a "products" list, or both.
Products whose code already exists are skipped.

Examples:
  prodcat import ./seed
  prodcat import ./seed/lighting.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

// importSummary reports the outcome of an import
type importSummary struct {
	Imported []string `json:"imported"`
	Skipped  []string `json:"skipped"`
}

func runImport(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)
	path := args[0]

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}

	var products []catalog.Product
	if info.IsDir() {
		products, err = catalog.NewLoader(path).LoadAll()
	} else {
		products, err = catalog.NewLoader(filepath.Dir(path)).LoadFile(path)
	}
	if err != nil {
		return err
	}

	existing, err := cat.List(ctx)
	if err != nil {
		return err
	}
	idx := catalog.NewIndex()
	idx.Build(existing)

	summary := importSummary{Imported: []string{}, Skipped: []string{}}
	for _, p := range products {
		if idx.GetByCode(p.Code) != nil {
			summary.Skipped = append(summary.Skipped, p.Code)
			continue
		}
		if _, err := cat.Add(ctx, p); err != nil {
			if errors.Is(err, catalog.ErrDuplicateCode) {
				zlog.Info("skipping existing product", zap.String("code", p.Code))
				summary.Skipped = append(summary.Skipped, p.Code)
				continue
			}
			return fmt.Errorf("failed to import %q: %w", p.Code, err)
		}
		summary.Imported = append(summary.Imported, p.Code)
	}

	if outputFormat == "text" || verbose {
		fmt.Printf("Imported %d product(s), skipped %d existing\n", len(summary.Imported), len(summary.Skipped))
		return nil
	}
	return printJSON(summary)
}
