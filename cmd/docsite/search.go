package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/dgallion1/docsite/internal/search"
	"github.com/dgallion1/docsite/internal/site"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Rank documents against a fuzzy query",
	Long: `Search runs the same fuzzy index the server uses. Every query word must
match a title or body, tolerating small typos. With no usable words the
first documents are listed instead.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")
		query := strings.Join(args, " ")
		results := current.Search(query)
		if asJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(results)
		}
		writeResults(cmd.OutOrStdout(), current.Snapshot(), results)
		return nil
	},
}

func init() {
	searchCmd.Flags().Bool("json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func writeResults(w io.Writer, snap *site.Snapshot, results []search.Result) {
	if len(results) == 0 {
		fmt.Fprintln(w, "no matches")
		return
	}
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"#", "Score", "Section", "Document", "Snippet"})
	for i, r := range results {
		t.AppendRow(table.Row{
			i + 1,
			fmt.Sprintf("%.2f", r.Score),
			r.SectionTitle,
			r.DocTitle,
			snap.Snippet(r.Entry, 60),
		})
	}
	t.Render()
}
