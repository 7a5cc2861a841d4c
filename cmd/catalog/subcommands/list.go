package subcommands

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/leefowlercu/icns-extractor/internal/catalog"
	"github.com/leefowlercu/icns-extractor/internal/tui/styles"
)

// Flag variables for the list command.
var (
	listType   string
	listSearch string
	listJSON   bool
)

// listEntry is the JSON form of a catalog item.
type listEntry struct {
	Title   string `json:"title"`
	Type    string `json:"type"`
	RefKind string `json:"ref_kind"`
	Ref     string `json:"ref"`
}

// ListCmd prints catalog items grouped by type.
var ListCmd = &cobra.Command{
	Use:   "list",
	Short: "List catalog items grouped by type",
	Long: "List catalog items grouped by type.\n\n" +
		"Use --type to show a single group and --search to filter titles by a " +
		"case-insensitive substring.",
	Example: `  # List every catalog item
  icns-extractor catalog list

  # List only folder icons
  icns-extractor catalog list --type folders

  # Find items mentioning "disk"
  icns-extractor catalog list --search disk`,
	Args:    cobra.NoArgs,
	PreRunE: validateList,
	RunE:    runList,
}

func init() {
	ListCmd.Flags().StringVarP(&listType, "type", "t", "", "Show only items of this type")
	ListCmd.Flags().StringVarP(&listSearch, "search", "s", "", "Filter titles by substring")
	ListCmd.Flags().BoolVar(&listJSON, "json", false, "Print items as JSON")
}

func validateList(cmd *cobra.Command, args []string) error {
	if listType != "" {
		if _, err := catalog.ParseItemType(listType); err != nil {
			return fmt.Errorf("invalid --type; %w; run 'icns-extractor catalog types' for valid types", err)
		}
	}

	// All validation passed - errors after this are runtime errors
	cmd.SilenceUsage = true
	return nil
}

func runList(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	items := filterItems(catalog.New())

	if listJSON {
		return writeJSON(out, items)
	}

	if len(items) == 0 {
		fmt.Fprintln(out, "No catalog items match.")
		return nil
	}

	for i, section := range catalog.GroupSections(items) {
		if i > 0 {
			fmt.Fprintln(out)
		}
		fmt.Fprintln(out, styles.SectionHeader.Render(fmt.Sprintf("%s (%d)", section.Type.Title(), len(section.Items))))
		for _, item := range section.Items {
			fmt.Fprintf(out, "  %-32s %s\n", item.Title, styles.MutedText.Render(item.Ref.String()))
		}
	}
	return nil
}

// filterItems applies --type and --search.
func filterItems(cat *catalog.Catalog) []catalog.Item {
	items := cat.Search(listSearch)
	if listType == "" {
		return items
	}

	typ, _ := catalog.ParseItemType(listType)
	filtered := items[:0]
	for _, item := range items {
		if item.Type == typ {
			filtered = append(filtered, item)
		}
	}
	return filtered
}

func writeJSON(out io.Writer, items []catalog.Item) error {
	entries := make([]listEntry, 0, len(items))
	for _, section := range catalog.GroupSections(items) {
		for _, item := range section.Items {
			entries = append(entries, listEntry{
				Title:   item.Title,
				Type:    item.Type.String(),
				RefKind: item.Ref.Kind.String(),
				Ref:     item.Ref.Value,
			})
		}
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(entries); err != nil {
		return fmt.Errorf("failed to encode catalog; %w", err)
	}
	return nil
}
