package main

import (
	"fmt"

	"github.com/dgallion1/docsite/internal/doctree"
	"github.com/spf13/cobra"
	"github.com/xlab/treeprint"
)

var treeCmd = &cobra.Command{
	Use:   "tree",
	Short: "Print sections and documents in display order",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		files, _ := cmd.Flags().GetBool("files")
		fmt.Fprint(cmd.OutOrStdout(), renderTree(current.Snapshot().Sections, files))
		return nil
	},
}

func init() {
	treeCmd.Flags().Bool("files", false, "show source file names")
	rootCmd.AddCommand(treeCmd)
}

func renderTree(sections []doctree.Section, files bool) string {
	docs := 0
	for _, sec := range sections {
		docs += len(sec.Docs)
	}
	tree := treeprint.NewWithRoot(fmt.Sprintf("%d sections, %d documents", len(sections), docs))
	for _, sec := range sections {
		branch := tree.AddMetaBranch(sec.Slug, sec.Title)
		for _, d := range sec.Docs {
			label := d.Title
			if files {
				label = fmt.Sprintf("%s (%s)", d.Title, d.FileName)
			}
			branch.AddMetaNode(d.Slug, label)
		}
	}
	return tree.String()
}
