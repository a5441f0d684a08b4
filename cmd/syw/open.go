package main

import (
	"github.com/spf13/cobra"

	"github.com/fyrsmithlabs/showyourwork/internal/bundle"
)

func newOpenCmd(a *app) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "open <uri>",
		Short: "Handle a show-your-work open link",
		Long: `Resolve a link of the form
vscode://nstrayer.show-your-work/open?gist=<id|url> and render the gist.

Register syw as the handler for such links to open them from a browser.

Example:
  syw open 'vscode://nstrayer.show-your-work/open?gist=abc123'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkOutput(output); err != nil {
				return err
			}
			id, err := bundle.ParseOpenURI(args[0])
			if err != nil {
				return err
			}
			resolver, err := a.resolver()
			if err != nil {
				return err
			}
			b, err := resolver.Fetch(cmd.Context(), id)
			if err != nil {
				return err
			}
			return a.writeBundle(cmd.OutOrStdout(), b, output)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", outputTerminal, "output format: terminal, json, yaml, html")
	return cmd
}
