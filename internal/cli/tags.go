package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mark-chris/prodcat/internal/catalog"
	"github.com/mark-chris/prodcat/internal/search"
)

var (
	tagColor   string
	tagNewText string
)

var tagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "Manage the tag color registry",
	Long: `Manage the global tag registry. Each tag gives a keyword its display
color; tag text is unique ignoring case.

Examples:
  prodcat tags add led --color "#ffcc00"
  prodcat tags update led --text LED --color "#ffaa00"
  prodcat tags delete led
  prodcat tags list`,
}

var tagsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered tags",
	Args:  cobra.NoArgs,
	RunE:  runTagsList,
}

var tagsAddCmd = &cobra.Command{
	Use:   "add <text>",
	Short: "Register a tag",
	Args:  cobra.ExactArgs(1),
	RunE:  runTagsAdd,
}

var tagsUpdateCmd = &cobra.Command{
	Use:   "update <text>",
	Short: "Rename or recolor a tag",
	Args:  cobra.ExactArgs(1),
	RunE:  runTagsUpdate,
}

var tagsDeleteCmd = &cobra.Command{
	Use:   "delete <text>",
	Short: "Remove a tag from the registry",
	Args:  cobra.ExactArgs(1),
	RunE:  runTagsDelete,
}

func init() {
	tagsAddCmd.Flags().StringVar(&tagColor, "color", "", "Display color (required)")
	_ = tagsAddCmd.MarkFlagRequired("color")

	tagsUpdateCmd.Flags().StringVar(&tagNewText, "text", "", "New tag text (default: unchanged)")
	tagsUpdateCmd.Flags().StringVar(&tagColor, "color", "", "New display color (default: unchanged)")

	tagsCmd.AddCommand(tagsListCmd)
	tagsCmd.AddCommand(tagsAddCmd)
	tagsCmd.AddCommand(tagsUpdateCmd)
	tagsCmd.AddCommand(tagsDeleteCmd)
}

func runTagsList(cmd *cobra.Command, args []string) error {
	tags, err := cat.Tags(commandContext(cmd))
	if err != nil {
		return err
	}

	if getFormat() != search.FormatText {
		return printJSON(tags)
	}
	if len(tags) == 0 {
		fmt.Println("No tags registered")
		return nil
	}
	for _, t := range tags {
		fmt.Printf("%-20s %s\n", t.Text, t.Color)
	}
	return nil
}

func runTagsAdd(cmd *cobra.Command, args []string) error {
	tag := catalog.TagDefinition{Text: args[0], Color: tagColor}
	if err := cat.AddTag(commandContext(cmd), tag); err != nil {
		return err
	}
	return printTagResult("Registered", tag)
}

func runTagsUpdate(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)

	current, err := cat.GetTag(ctx, args[0])
	if err != nil {
		return notFound(err, "tag", args[0])
	}

	next := current
	if tagNewText != "" {
		next.Text = tagNewText
	}
	if tagColor != "" {
		next.Color = tagColor
	}
	if err := cat.UpdateTag(ctx, current.Text, next); err != nil {
		return err
	}
	return printTagResult("Updated", next)
}

func runTagsDelete(cmd *cobra.Command, args []string) error {
	if err := cat.DeleteTag(commandContext(cmd), args[0]); err != nil {
		return notFound(err, "tag", args[0])
	}
	if outputFormat == "text" || verbose {
		fmt.Printf("Deleted tag %s\n", args[0])
		return nil
	}
	return printJSON(map[string]string{"deleted": args[0]})
}

func printTagResult(verb string, tag catalog.TagDefinition) error {
	if outputFormat == "text" || verbose {
		fmt.Printf("%s tag %s (%s)\n", verb, tag.Text, tag.Color)
		return nil
	}
	return printJSON(tag)
}
