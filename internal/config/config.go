// Package config provides configuration loading for showyourwork.
//
// Values come from built-in defaults, then an optional YAML file, then
// SYW_* environment variables. See LoadWithFile.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"time"
)

// Config holds the complete showyourwork configuration.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	GitHub    GitHubConfig    `koanf:"github"`
	Viewer    ViewerConfig    `koanf:"viewer"`
	Logging   LoggingConfig   `koanf:"logging"`
	Telemetry TelemetryConfig `koanf:"telemetry"`
}

// ServerConfig holds HTTP viewer server configuration.
type ServerConfig struct {
	Host            string   `koanf:"http_host"`
	Port            int      `koanf:"http_port"`
	ShutdownTimeout Duration `koanf:"shutdown_timeout"`
}

// GitHubConfig configures both bundle fetch channels and the PR lookup.
type GitHubConfig struct {
	// CLIPath is the gh executable. Empty means "gh" on $PATH.
	CLIPath    string   `koanf:"cli_path"`
	CLITimeout Duration `koanf:"cli_timeout"`

	// Workdir is where gh runs, so it can detect the current repository.
	// Empty means the process working directory.
	Workdir string `koanf:"workdir"`

	APIBaseURL       string   `koanf:"api_base_url"`
	APITimeout       Duration `koanf:"api_timeout"`
	APIRatePerMinute int      `koanf:"api_rate_per_minute"`
}

// ViewerConfig controls rendering and file-reference navigation.
type ViewerConfig struct {
	WorkspaceRoots []string `koanf:"workspace_roots"`
	WordWrap       int      `koanf:"word_wrap"`
	Style          string   `koanf:"style"`
}

// LoggingConfig is the subset of logging settings exposed to users.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// TelemetryConfig holds OpenTelemetry tracing configuration.
type TelemetryConfig struct {
	Enabled     bool    `koanf:"enabled"`
	Endpoint    string  `koanf:"endpoint"`
	ServiceName string  `koanf:"service_name"`
	Insecure    bool    `koanf:"insecure"`
	SampleRate  float64 `koanf:"sample_rate"`
}

// DefaultAPIBaseURL is the public GitHub REST endpoint.
const DefaultAPIBaseURL = "https://api.github.com/"

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "localhost",
			Port:            7373,
			ShutdownTimeout: Duration(10 * time.Second),
		},
		GitHub: GitHubConfig{
			CLIPath:          "gh",
			CLITimeout:       Duration(30 * time.Second),
			APIBaseURL:       DefaultAPIBaseURL,
			APITimeout:       Duration(30 * time.Second),
			APIRatePerMinute: 60,
		},
		Viewer: ViewerConfig{
			WordWrap: 100,
			Style:    "auto",
		},
		Logging: LoggingConfig{
			Level:  "warn",
			Format: "console",
		},
		Telemetry: TelemetryConfig{
			Enabled:     false,
			Endpoint:    "localhost:4318",
			ServiceName: "showyourwork",
			Insecure:    true,
			SampleRate:  1.0,
		},
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d (must be 1-65535)", c.Server.Port)
	}
	if c.Server.ShutdownTimeout.Duration() <= 0 {
		return errors.New("shutdown timeout must be positive")
	}

	u, err := url.Parse(c.GitHub.APIBaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid github api_base_url: %q", c.GitHub.APIBaseURL)
	}
	if c.GitHub.APIRatePerMinute < 0 {
		return fmt.Errorf("github api_rate_per_minute must be >= 0, got %d", c.GitHub.APIRatePerMinute)
	}

	if c.Viewer.WordWrap < 0 {
		return fmt.Errorf("viewer word_wrap must be >= 0, got %d", c.Viewer.WordWrap)
	}

	if c.Logging.Format != "json" && c.Logging.Format != "console" {
		return fmt.Errorf("logging format must be 'json' or 'console', got %q", c.Logging.Format)
	}

	if c.Telemetry.Enabled {
		if c.Telemetry.Endpoint == "" {
			return errors.New("telemetry endpoint is required when telemetry is enabled")
		}
		if c.Telemetry.ServiceName == "" {
			return errors.New("telemetry service_name is required when telemetry is enabled")
		}
	}
	if c.Telemetry.SampleRate < 0 || c.Telemetry.SampleRate > 1 {
		return fmt.Errorf("telemetry sample_rate must be between 0 and 1, got %f", c.Telemetry.SampleRate)
	}

	return nil
}
