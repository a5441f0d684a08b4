package main

import (
	"context"
	"errors"
	"fmt"
	nethttp "net/http"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	apphttp "github.com/fyrsmithlabs/showyourwork/internal/http"
	"github.com/fyrsmithlabs/showyourwork/internal/viewer"
)

func newServeCmd(a *app) *cobra.Command {
	var (
		host   string
		port   int
		editor string
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the local browser viewer",
		Long: `Serve rendered gists on a local port. Open
http://localhost:7373/open?gist=<id> in a browser; clicking a file
reference opens it in --editor at the referenced line.

Examples:
  syw serve
  syw serve --port 8080 --editor "code --goto"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if cmd.Flags().Changed("host") {
				a.cfg.Server.Host = host
			}
			if cmd.Flags().Changed("port") {
				a.cfg.Server.Port = port
			}

			resolver, err := a.resolver()
			if err != nil {
				return err
			}

			var opts []apphttp.Option
			if fields := strings.Fields(editor); len(fields) > 0 {
				opts = append(opts, apphttp.WithOpener(viewer.CommandOpener{Command: fields}))
			}

			server, err := apphttp.NewServer(resolver, a.logger.Named("http"), &apphttp.Config{
				Host:           a.cfg.Server.Host,
				Port:           a.cfg.Server.Port,
				WorkspaceRoots: a.workspaceRoots(),
			}, opts...)
			if err != nil {
				return err
			}

			errCh := make(chan error, 1)
			go func() {
				errCh <- server.Start()
			}()
			fmt.Fprintf(cmd.OutOrStdout(), "Viewer listening on http://%s\n", server.Addr())

			select {
			case err := <-errCh:
				if errors.Is(err, nethttp.ErrServerClosed) {
					return nil
				}
				return fmt.Errorf("http server: %w", err)
			case <-ctx.Done():
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout.Duration())
			defer cancel()
			if err := server.Shutdown(shutdownCtx); err != nil {
				a.logger.Error(shutdownCtx, "http server shutdown failed", zap.Error(err))
				return err
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&host, "host", "", "listen host (default from config)")
	cmd.Flags().IntVar(&port, "port", 0, "listen port (default from config)")
	cmd.Flags().StringVar(&editor, "editor", "", `command that opens a file reference, e.g. "code --goto"`)
	return cmd
}
