package cli

import (
	"github.com/spf13/cobra"

	"github.com/mark-chris/prodcat/internal/catalog"
)

var (
	updateDescription string
	updateKeywords    string
	updateTagColors   []string
	updateImage       string
)

var updateCmd = &cobra.Command{
	Use:   "update <code>",
	Short: "Update a product",
	Long: `Update the description, keywords or image of a product.
Fields whose flag is not given keep their current value. The code cannot change.

Examples:
  prodcat update A1 --description "Plafon de embutir LED 18W branco"
  prodcat update A1 --keywords "plafon, led, 18w" --tag-color led=#ffcc00`,
	Args: cobra.ExactArgs(1),
	RunE: runUpdate,
}

func init() {
	updateCmd.Flags().StringVar(&updateDescription, "description", "", "New description")
	updateCmd.Flags().StringVar(&updateKeywords, "keywords", "", "New comma separated keywords")
	updateCmd.Flags().StringArrayVar(&updateTagColors, "tag-color", nil, "Keyword color as text=color, repeatable")
	updateCmd.Flags().StringVar(&updateImage, "image", "", "Path to a new image file")
}

func runUpdate(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)
	code := args[0]

	current, err := cat.Get(ctx, code)
	if err != nil {
		return notFound(err, "product", code)
	}

	changes := catalog.Product{
		Code:        current.Code,
		Description: current.Description,
		Keywords:    current.Keywords,
	}
	if cmd.Flags().Changed("description") {
		changes.Description = updateDescription
	}
	if cmd.Flags().Changed("keywords") {
		changes.Keywords = catalog.ParseTags(updateKeywords)
	}
	if cmd.Flags().Changed("keywords") || len(updateTagColors) > 0 {
		if changes.Keywords, err = colorTags(ctx, changes.Keywords, updateTagColors); err != nil {
			return err
		}
	}
	if updateImage != "" {
		if changes.Image, err = readImage(updateImage); err != nil {
			return err
		}
	}

	updated, err := cat.Update(ctx, code, changes)
	if err != nil {
		return err
	}

	return printMutation("Updated", updated)
}
