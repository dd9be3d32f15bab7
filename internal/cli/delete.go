package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <code>",
	Short: "Delete a product",
	Long: `Delete a product. It is also removed from favorites.

Examples:
  prodcat delete A1`,
	Args: cobra.ExactArgs(1),
	RunE: runDelete,
}

func runDelete(cmd *cobra.Command, args []string) error {
	code := args[0]
	if err := cat.Delete(commandContext(cmd), code); err != nil {
		return notFound(err, "product", code)
	}

	if outputFormat == "text" || verbose {
		fmt.Printf("Deleted %s\n", code)
		return nil
	}
	return printJSON(map[string]string{"deleted": code})
}
