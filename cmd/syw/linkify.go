package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fyrsmithlabs/showyourwork/internal/reference"
)

func newLinkifyCmd(_ *app) *cobra.Command {
	return &cobra.Command{
		Use:   "linkify [file|-]",
		Short: "Wrap file references in command links",
		Long: `Rewrite a document so every file reference becomes a clickable
command link carrying its path, line, and column.

Examples:
  syw linkify plan.md > plan.html
  echo "see src/app.ts:12" | syw linkify`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readInput(cmd, inputPath(args))
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), reference.Linkify(text))
			return err
		},
	}
}
