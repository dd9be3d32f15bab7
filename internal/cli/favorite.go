package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var favoriteCmd = &cobra.Command{
	Use:   "favorite",
	Short: "Manage favorite products",
}

var favoriteToggleCmd = &cobra.Command{
	Use:   "toggle <code>",
	Short: "Mark or unmark a product as favorite",
	Args:  cobra.ExactArgs(1),
	RunE:  runFavoriteToggle,
}

var favoriteListCmd = &cobra.Command{
	Use:   "list",
	Short: "List favorite products in the order they were marked",
	Args:  cobra.NoArgs,
	RunE:  runFavoriteList,
}

func init() {
	favoriteCmd.AddCommand(favoriteToggleCmd)
	favoriteCmd.AddCommand(favoriteListCmd)
}

func runFavoriteToggle(cmd *cobra.Command, args []string) error {
	code := args[0]
	favorite, err := cat.ToggleFavorite(commandContext(cmd), code)
	if err != nil {
		return notFound(err, "product", code)
	}

	if outputFormat == "text" || verbose {
		if favorite {
			fmt.Printf("%s added to favorites\n", code)
		} else {
			fmt.Printf("%s removed from favorites\n", code)
		}
		return nil
	}
	return printJSON(map[string]interface{}{"code": code, "favorite": favorite})
}

func runFavoriteList(cmd *cobra.Command, args []string) error {
	products, err := cat.Favorites(commandContext(cmd))
	if err != nil {
		return err
	}
	return printProductList(products, "No favorite products")
}
