package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
)

// newDocsCmd renders reference pages for the command tree that owns it.
func newDocsCmd() *cobra.Command {
	var markdown bool
	cmd := &cobra.Command{
		Use:    "gen-docs [DIR]",
		Short:  "Write the homeward(1) man page, or markdown with --markdown",
		Hidden: true,
		Args:   cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "docs"
			if len(args) == 1 {
				dir = args[0]
			}
			return writeDocs(cmd.Root(), dir, markdown)
		},
	}
	cmd.Flags().BoolVar(&markdown, "markdown", false, "write markdown instead of man pages")
	return cmd
}

func writeDocs(root *cobra.Command, dir string, markdown bool) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create docs dir: %w", err)
	}
	root.DisableAutoGenTag = true

	if markdown {
		return doc.GenMarkdownTree(root, dir)
	}
	return doc.GenManTree(root, &doc.GenManHeader{
		Title:   "HOMEWARD",
		Section: "1",
		Source:  "homeward " + version,
		Manual:  "Restoring home folders from backups",
	}, dir)
}
