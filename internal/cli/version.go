package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mark-chris/prodcat/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("prodcat version %s\n", version.Version)
		if verbose {
			fmt.Printf("  Git commit: %s\n", version.GitCommit)
			fmt.Printf("  Build date: %s\n", version.BuildDate)
		}
	},
}
