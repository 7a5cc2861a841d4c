// Package catalog provides the catalog parent command and subcommands.
package catalog

import (
	"github.com/spf13/cobra"

	"github.com/leefowlercu/icns-extractor/cmd/catalog/subcommands"
)

// CatalogCmd is the parent command for browsing the built-in icon catalog.
var CatalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect the built-in icon catalog",
	Long: "Inspect the built-in icon catalog.\n\n" +
		"The catalog lists system icons by content type, four-character code or path, " +
		"grouped by type. Any listed title can be passed to 'export --item'.",
}

func init() {
	CatalogCmd.AddCommand(subcommands.ListCmd)
	CatalogCmd.AddCommand(subcommands.TypesCmd)
}
