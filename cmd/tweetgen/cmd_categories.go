package main

import (
	"fmt"
	"strings"

	"tweetgen/internal/catalog"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
)

var plainFlag bool

// categoriesCmd lists the catalog
var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List the tweet categories",
	RunE: func(cmd *cobra.Command, args []string) error {
		md := categoriesMarkdown(cat)
		if plainFlag {
			fmt.Fprint(cmd.OutOrStdout(), md)
			return nil
		}

		style := glamour.WithAutoStyle()
		if !cfg.IsDarkTheme() {
			style = glamour.WithStylePath("light")
		}
		renderer, err := glamour.NewTermRenderer(style, glamour.WithWordWrap(80))
		if err != nil {
			return fmt.Errorf("failed to create renderer: %w", err)
		}
		out, err := renderer.Render(md)
		if err != nil {
			// Fall back to the raw markdown
			out = md
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	},
}

func init() {
	categoriesCmd.Flags().BoolVar(&plainFlag, "plain", false, "Print raw markdown")
}

func categoriesMarkdown(c *catalog.Catalog) string {
	var sb strings.Builder
	sb.WriteString("# Categories\n\n")
	sb.WriteString("| ID | Name | Tweets |\n")
	sb.WriteString("|----|------|--------|\n")
	for _, cat := range c.List() {
		fmt.Fprintf(&sb, "| `%s` | %s | %d |\n", cat.ID, escapeCell(cat.DisplayName), len(cat.Candidates))
	}
	return sb.String()
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
