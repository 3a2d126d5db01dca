package main

import (
	"fmt"
	"strings"

	"github.com/dgallion1/docsite/internal/doctree"
	"github.com/spf13/cobra"
	"github.com/xlab/treeprint"
)

var showCmd = &cobra.Command{
	Use:   "show <section> [doc]",
	Short: "Print one document",
	Long: `Show prints a document as sanitized HTML. Without a doc slug the
section's landing document is shown.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, _ := cmd.Flags().GetBool("raw")
		outline, _ := cmd.Flags().GetBool("outline")

		sectionSlug := args[0]
		sec, ok := current.Section(sectionSlug)
		if !ok {
			return fmt.Errorf("no section %s", sectionSlug)
		}
		var docSlug string
		if len(args) == 2 {
			docSlug = args[1]
		} else {
			landing, ok := sec.Landing()
			if !ok {
				return fmt.Errorf("section %s has no README; name a document", sectionSlug)
			}
			docSlug = landing.Slug
		}

		page, ok, err := current.Page(sectionSlug, docSlug)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("no document %s/%s", sectionSlug, docSlug)
		}

		out := cmd.OutOrStdout()
		switch {
		case outline:
			fmt.Fprint(out, renderOutline(page.Document.Title, page.Outline))
		case raw:
			fmt.Fprint(out, page.Document.Content)
		default:
			fmt.Fprint(out, page.HTML)
		}
		return nil
	},
}

func init() {
	showCmd.Flags().Bool("raw", false, "print the markdown source")
	showCmd.Flags().Bool("outline", false, "print the heading outline")
	rootCmd.AddCommand(showCmd)
}

func renderOutline(title string, o *doctree.Outline) string {
	tree := treeprint.NewWithRoot(title)
	// branches[d] is the parent for headings at depth d.
	branches := []treeprint.Tree{tree}
	o.Walk(func(h *doctree.Heading, depth int) {
		label := fmt.Sprintf("%s #%s", h.Title, h.Anchor)
		var node treeprint.Tree
		if len(h.Children) == 0 {
			node = branches[depth].AddNode(label)
		} else {
			node = branches[depth].AddBranch(label)
		}
		branches = append(branches[:depth+1], node)
	})
	return strings.TrimRight(tree.String(), "\n") + "\n"
}
