// Package main implements syw, the show-your-work command line tool.
//
// syw finds file references in text, resolves the gists that carry agent
// planning context, and renders them in the terminal or a local browser
// viewer.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/fyrsmithlabs/showyourwork/internal/ghcli"
)

var (
	// Set via -ldflags at build time.
	version   = "dev"
	gitCommit = "unknown"
	buildDate = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if hint := ghcli.Guidance(err); hint != "" {
			fmt.Fprintln(os.Stderr, hint)
		}
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	return newRootCmdFor(&app{})
}

func newRootCmdFor(a *app) *cobra.Command {

	root := &cobra.Command{
		Use:   "syw",
		Short: "Show your work: navigable context for pull requests",
		Long: `syw renders the planning context an agent publishes as a GitHub gist,
turning file references such as src/auth/login.ts:45 or
[login](src/auth/login.ts#L45) into links you can follow.

Configuration is read from ~/.config/showyourwork/config.yaml and SYW_*
environment variables (SYW_SERVER_HTTP_PORT, SYW_GITHUB_CLI_PATH, ...).`,
		Version:           version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(*cobra.Command, []string) { a.close() },
	}

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (default ~/.config/showyourwork/config.yaml)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level: trace, debug, info, warn, error")
	root.PersistentFlags().StringVar(&a.workdir, "workdir", "", "directory gh runs in and references resolve against (default current directory)")

	root.AddCommand(
		newRefsCmd(a),
		newLinkifyCmd(a),
		newGistCmd(a),
		newOpenCmd(a),
		newPRCmd(a),
		newServeCmd(a),
		newInstallCommandCmd(a),
		newPromptCmd(),
		newVersionCmd(),
	)
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		// Version output must not depend on a readable config file.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "syw by Fyrsmith Labs\n")
			fmt.Fprintf(out, "Version:    %s\n", version)
			fmt.Fprintf(out, "Commit:     %s\n", gitCommit)
			fmt.Fprintf(out, "Build Date: %s\n", buildDate)
		},
	}
}
