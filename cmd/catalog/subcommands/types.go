package subcommands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leefowlercu/icns-extractor/internal/catalog"
	"github.com/leefowlercu/icns-extractor/internal/tui/styles"
)

// TypesCmd prints the catalog item types with their item counts.
var TypesCmd = &cobra.Command{
	Use:   "types",
	Short: "List catalog item types",
	Long: "List catalog item types.\n\n" +
		"Shows every type accepted by 'catalog list --type' in display order, " +
		"with the number of built-in items in each.",
	Example: `  # Show item types
  icns-extractor catalog types`,
	Args:    cobra.NoArgs,
	PreRunE: validateTypes,
	RunE:    runTypes,
}

func validateTypes(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	return nil
}

func runTypes(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	cat := catalog.New()

	fmt.Fprintln(out, styles.Title.Render("Item types"))
	for _, typ := range catalog.AllItemTypes() {
		count := len(cat.OfType(typ))
		fmt.Fprintf(out, "  %-10s %-10s %s\n", typ.String(), typ.Title(),
			styles.MutedText.Render(fmt.Sprintf("%d items", count)))
	}
	return nil
}
