package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/fyrsmithlabs/showyourwork/internal/bundle"
	"github.com/fyrsmithlabs/showyourwork/internal/pullrequest"
)

// maxConcurrentFetches bounds bundle fetches for one PR.
const maxConcurrentFetches = 4

func newPRCmd(a *app) *cobra.Command {
	var (
		list   bool
		output string
	)
	cmd := &cobra.Command{
		Use:   "pr [number|url]",
		Short: "Open the show-your-work gists linked from a pull request",
		Long: `Read a pull request description and render every show-your-work gist
it links to. Without an argument, the pull request of the current branch
is used.

Examples:
  syw pr
  syw pr 42
  syw pr https://github.com/owner/repo/pull/42 --list`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkOutput(output); err != nil {
				return err
			}
			ctx := cmd.Context()
			lookup, err := a.lookup()
			if err != nil {
				return err
			}

			var in pullrequest.Input
			if len(args) == 1 {
				in, err = pullrequest.ParseInput(args[0])
				if err != nil {
					return err
				}
			} else {
				pr, err := lookup.Current(ctx)
				if err != nil {
					return err
				}
				in = pullrequest.Input{Number: pr.Number}
				a.logger.Info(ctx, "using current branch pull request",
					zap.Int("number", pr.Number), zap.String("title", pr.Title))
			}

			body, err := lookup.Body(ctx, in)
			if err != nil {
				return fmt.Errorf("failed to fetch PR %s: %w", in, err)
			}

			out := cmd.OutOrStdout()
			links := pullrequest.ExtractLinks(body)
			if len(links) == 0 {
				fmt.Fprintln(out, "No Show Your Work links found in this PR description.")
				return nil
			}
			if list {
				for _, link := range links {
					fmt.Fprintln(out, link)
				}
				return nil
			}

			bundles, err := a.fetchLinked(cmd, links)
			if err != nil {
				return err
			}
			for _, b := range bundles {
				if err := a.writeBundle(out, b, output); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&list, "list", false, "print the links without fetching them")
	cmd.Flags().StringVarP(&output, "output", "o", outputTerminal, "output format: terminal, json, yaml, html")
	return cmd
}

// fetchLinked resolves the gists behind links concurrently. Results keep
// link order; bundles that fail are logged and skipped unless all fail.
func (a *app) fetchLinked(cmd *cobra.Command, links []string) ([]*bundle.Bundle, error) {
	ctx := cmd.Context()
	resolver, err := a.resolver()
	if err != nil {
		return nil, err
	}

	results := make([]*bundle.Bundle, len(links))
	errs := make([]error, len(links))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentFetches)
	for i, link := range links {
		id, ok := pullrequest.GistIDFromLink(link)
		if !ok {
			errs[i] = fmt.Errorf("no gist in link %s", link)
			continue
		}
		g.Go(func() error {
			b, err := resolver.Fetch(gctx, id)
			if err != nil {
				errs[i] = err
				return nil
			}
			results[i] = b
			return nil
		})
	}
	_ = g.Wait()

	bundles := make([]*bundle.Bundle, 0, len(links))
	for i, b := range results {
		if b != nil {
			bundles = append(bundles, b)
			continue
		}
		a.logger.Warn(ctx, "skipping linked gist", zap.String("link", links[i]), zap.Error(errs[i]))
	}
	if len(bundles) == 0 {
		return nil, errors.Join(errs...)
	}
	return bundles, nil
}
