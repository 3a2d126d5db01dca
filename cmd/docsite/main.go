// Package main is the docsite CLI for inspecting a content tree without
// running the server.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/dgallion1/docsite/internal/config"
	"github.com/dgallion1/docsite/internal/content"
	"github.com/dgallion1/docsite/internal/markdown"
	"github.com/dgallion1/docsite/internal/site"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// current is the site loaded by the root command before any subcommand runs.
var current *site.Site

var rootCmd = &cobra.Command{
	Use:   "docsite",
	Short: "Inspect a documentation content tree",
	Long: `docsite loads a content tree of section directories holding markdown
documents, the same way the server does, and prints its structure, search
results or individual documents.

Settings come from the environment (and a .env file) like the server's;
--root overrides CONTENT_ROOT.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()
		if root, _ := cmd.Flags().GetString("root"); root != "" {
			cfg.ContentRoot = root
		}
		verbose, _ := cmd.Flags().GetBool("verbose")

		level := slog.LevelWarn
		if verbose {
			level = slog.LevelDebug
		}
		log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

		opts := []content.Option{content.WithSectionOrder(cfg.SectionOrder)}
		if cfg.SkipUnreadable {
			opts = append(opts, content.WithSkipUnreadable(log))
		}
		loader := content.NewLoader(afero.NewOsFs(), cfg.ContentRoot, opts...)
		renderer := markdown.NewRenderer(markdown.WithCodeStyle(cfg.CodeStyle))

		current = site.New(loader, renderer, cfg.Search(), log)
		if _, err := current.Load(cmd.Context()); err != nil {
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String("root", "", "content root directory (default: $CONTENT_ROOT or content/sections)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "log loader activity to stderr")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
