package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fyrsmithlabs/showyourwork/internal/reference"
)

func newRefsCmd(a *app) *cobra.Command {
	var (
		asJSON bool
		watch  bool
	)
	cmd := &cobra.Command{
		Use:   "refs [file|-]",
		Short: "List file references found in text",
		Long: `List the file references in a document.

Both colon notation (src/app.ts:12, src/app.ts:12:4) and markdown links
([app](src/app.ts#L12)) are recognized. Reads stdin when no file or "-"
is given.

Examples:
  syw refs plan.md
  gh gist view abc123 | syw refs --json
  syw refs --watch plan.md`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := inputPath(args)
			if watch && path == "-" {
				return fmt.Errorf("--watch needs a file argument")
			}
			scan := func() error {
				text, err := readInput(cmd, path)
				if err != nil {
					return err
				}
				return printReferences(cmd.OutOrStdout(), reference.Extract(text), asJSON)
			}
			if err := scan(); err != nil {
				return err
			}
			if !watch {
				return nil
			}
			return a.watchFile(cmd, path, scan)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print references as JSON")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "re-scan the file whenever it changes")
	return cmd
}

func printReferences(w io.Writer, refs []reference.Reference, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(refs)
	}
	for _, ref := range refs {
		switch {
		case ref.HasColumn():
			fmt.Fprintf(w, "%s\t%d\t%d\t%s\n", ref.Path, ref.Line, ref.Column, ref.Original)
		case ref.Line > 0:
			fmt.Fprintf(w, "%s\t%d\t\t%s\n", ref.Path, ref.Line, ref.Original)
		default:
			fmt.Fprintf(w, "%s\t\t\t%s\n", ref.Path, ref.Original)
		}
	}
	return nil
}

// watchFile calls fn after every write to path until the command context
// is cancelled. The parent directory is watched so editors that replace
// the file on save are still followed.
func (a *app) watchFile(cmd *cobra.Command, path string, fn func() error) error {
	ctx := cmd.Context()
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", path, err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if ev.Name != abs || !(ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create)) {
				continue
			}
			if err := fn(); err != nil {
				a.logger.Warn(ctx, "rescan failed", zap.String("file", path), zap.Error(err))
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			a.logger.Warn(ctx, "watch error", zap.Error(err))
		}
	}
}

func inputPath(args []string) string {
	if len(args) == 0 {
		return "-"
	}
	return args[0]
}

func readInput(cmd *cobra.Command, path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(data), nil
}
