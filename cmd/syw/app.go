package main

import (
	"context"
	"fmt"
	"os"

	"github.com/google/go-github/v57/github"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fyrsmithlabs/showyourwork/internal/bundle"
	"github.com/fyrsmithlabs/showyourwork/internal/config"
	"github.com/fyrsmithlabs/showyourwork/internal/ghcli"
	"github.com/fyrsmithlabs/showyourwork/internal/githubapi"
	"github.com/fyrsmithlabs/showyourwork/internal/logging"
	"github.com/fyrsmithlabs/showyourwork/internal/pullrequest"
	"github.com/fyrsmithlabs/showyourwork/internal/telemetry"
)

// app carries what every subcommand shares: flags, configuration, the
// logger, and the GitHub collaborators.
type app struct {
	configPath string
	logLevel   string
	workdir    string

	cfg    *config.Config
	logger *logging.Logger
	tel    *telemetry.Telemetry

	// runner overrides the gh executable runner (tests).
	runner  ghcli.Runner
	api     *github.Client
	telOpts []telemetry.Option
}

// setup loads configuration and builds the logger and telemetry.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.LoadWithFile(a.configPath)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Logging.Level = a.logLevel
	}
	if a.workdir != "" {
		cfg.GitHub.Workdir = a.workdir
	}
	a.cfg = cfg

	tel, err := telemetry.New(cmd.Context(), telemetry.FromConfig(cfg.Telemetry, version), a.telOpts...)
	if err != nil {
		return err
	}
	a.tel = tel

	logCfg := logging.NewDefaultConfig()
	level, err := logging.LevelFromString(cfg.Logging.Level)
	if err != nil {
		return err
	}
	logCfg.Level = level
	logCfg.Format = cfg.Logging.Format
	logCfg.Output.Writer = cmd.ErrOrStderr()
	logCfg.Output.OTEL = cfg.Telemetry.Enabled

	logger, err := logging.NewLogger(logCfg, tel.LoggerProvider())
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	a.logger = logger

	if h := tel.Health(); h.Degraded {
		logger.Warn(cmd.Context(), "telemetry degraded", zap.String("error", h.Error))
	}
	return nil
}

func (a *app) close() {
	if a.logger != nil {
		_ = a.logger.Sync()
	}
	if a.tel != nil {
		_ = a.tel.Shutdown(context.Background())
	}
}

// dir is where gh runs and references resolve.
func (a *app) dir() string {
	if a.cfg != nil && a.cfg.GitHub.Workdir != "" {
		return a.cfg.GitHub.Workdir
	}
	wd, err := os.Getwd()
	if err != nil {
		return "."
	}
	return wd
}

func (a *app) ghRunner() ghcli.Runner {
	if a.runner != nil {
		return a.runner
	}
	return ghcli.NewExecRunner(a.cfg.GitHub.CLIPath, a.cfg.GitHub.CLITimeout.Duration())
}

func (a *app) githubClient() (*github.Client, error) {
	if a.api != nil {
		return a.api, nil
	}
	client, err := githubapi.NewClient(githubapi.ClientConfig{
		BaseURL: a.cfg.GitHub.APIBaseURL,
		Timeout: a.cfg.GitHub.APITimeout.Duration(),
	})
	if err != nil {
		return nil, err
	}
	a.api = client
	return client, nil
}

// resolver builds the gh-then-REST bundle resolver.
func (a *app) resolver() (*bundle.Resolver, error) {
	client, err := a.githubClient()
	if err != nil {
		return nil, err
	}
	return bundle.NewResolver(
		bundle.NewCLIChannel(a.ghRunner(), a.dir()),
		bundle.NewAPIChannel(client, a.cfg.GitHub.APIRatePerMinute),
		bundle.WithLogger(a.logger.Named("bundle")),
		bundle.WithTracer(a.tel.Tracer(bundle.InstrumentationName)),
		bundle.WithMetrics(bundle.NewMetrics()),
	), nil
}

func (a *app) lookup() (*pullrequest.Lookup, error) {
	client, err := a.githubClient()
	if err != nil {
		return nil, err
	}
	return pullrequest.NewLookup(a.ghRunner(), a.dir(), client, a.logger.Named("pullrequest")), nil
}

// workspaceRoots are the directories references resolve against.
func (a *app) workspaceRoots() []string {
	if len(a.cfg.Viewer.WorkspaceRoots) > 0 {
		return a.cfg.Viewer.WorkspaceRoots
	}
	return []string{a.dir()}
}
