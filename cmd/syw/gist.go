package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/fyrsmithlabs/showyourwork/internal/bundle"
	"github.com/fyrsmithlabs/showyourwork/internal/viewer"
)

const (
	outputTerminal = "terminal"
	outputJSON     = "json"
	outputYAML     = "yaml"
	outputHTML     = "html"
)

func newGistCmd(a *app) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "gist <id|url>",
		Short: "Fetch and render a show-your-work gist",
		Long: `Fetch a gist by ID or URL and render it.

The gh CLI is tried first; when it is missing, unauthenticated, or fails,
the public GitHub REST API is used instead.

Examples:
  syw gist abc123def456
  syw gist https://gist.github.com/someone/abc123def456 --output json
  syw gist abc123 --output html > context.html`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkOutput(output); err != nil {
				return err
			}
			resolver, err := a.resolver()
			if err != nil {
				return err
			}
			b, err := resolver.Fetch(cmd.Context(), bundle.NormalizeID(args[0]))
			if err != nil {
				return err
			}
			return a.writeBundle(cmd.OutOrStdout(), b, output)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", outputTerminal, "output format: terminal, json, yaml, html")
	return cmd
}

// checkOutput rejects unknown --output values before anything is fetched.
func checkOutput(output string) error {
	switch output {
	case outputTerminal, outputJSON, outputYAML, outputHTML:
		return nil
	}
	return fmt.Errorf("unknown output format %q (want terminal, json, yaml, or html)", output)
}

func (a *app) writeBundle(w io.Writer, b *bundle.Bundle, output string) error {
	switch output {
	case outputTerminal:
		out, err := viewer.RenderTerminal(b, viewer.TerminalOptions{
			Style:    a.cfg.Viewer.Style,
			WordWrap: a.cfg.Viewer.WordWrap,
		})
		if err != nil {
			return err
		}
		_, err = fmt.Fprint(w, out)
		return err
	case outputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(b)
	case outputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(b); err != nil {
			return err
		}
		return enc.Close()
	case outputHTML:
		page, err := viewer.NewHTMLRenderer("").Render(b)
		if err != nil {
			return err
		}
		_, err = fmt.Fprint(w, page)
		return err
	default:
		return checkOutput(output)
	}
}
