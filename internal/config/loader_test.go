package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestHome points HOME at a temp dir and returns the config dir
// inside it.
func setupTestHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	dir := filepath.Join(home, ".config", "showyourwork")
	require.NoError(t, os.MkdirAll(dir, 0700))
	return dir
}

func writeConfig(t *testing.T, dir, content string, perm os.FileMode) string {
	t.Helper()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), perm))
	require.NoError(t, os.Chmod(path, perm))
	return path
}

func TestLoadWithFile_Defaults(t *testing.T) {
	setupTestHome(t)

	cfg, err := LoadWithFile("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadWithFile_ValidYAML(t *testing.T) {
	dir := setupTestHome(t)
	path := writeConfig(t, dir, `server:
  http_port: 8181
github:
  cli_path: /usr/local/bin/gh
  api_base_url: https://ghe.example.com/api/v3/
  api_timeout: 5s
viewer:
  workspace_roots:
    - /src/app
    - /src/lib
logging:
  level: debug
  format: json
`, 0600)

	cfg, err := LoadWithFile(path)
	require.NoError(t, err)

	assert.Equal(t, 8181, cfg.Server.Port)
	assert.Equal(t, "localhost", cfg.Server.Host, "unset keys keep defaults")
	assert.Equal(t, "/usr/local/bin/gh", cfg.GitHub.CLIPath)
	assert.Equal(t, "https://ghe.example.com/api/v3/", cfg.GitHub.APIBaseURL)
	assert.Equal(t, 5*time.Second, cfg.GitHub.APITimeout.Duration())
	assert.Equal(t, []string{"/src/app", "/src/lib"}, cfg.Viewer.WorkspaceRoots)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoadWithFile_EnvOverrides(t *testing.T) {
	dir := setupTestHome(t)
	path := writeConfig(t, dir, "server:\n  http_port: 8181\n", 0600)

	t.Setenv("SYW_SERVER_HTTP_PORT", "9191")
	t.Setenv("SYW_GITHUB_CLI_TIMEOUT", "2s")
	t.Setenv("SYW_GITHUB_API_RATE_PER_MINUTE", "5")

	cfg, err := LoadWithFile(path)
	require.NoError(t, err)
	assert.Equal(t, 9191, cfg.Server.Port)
	assert.Equal(t, 2*time.Second, cfg.GitHub.CLITimeout.Duration())
	assert.Equal(t, 5, cfg.GitHub.APIRatePerMinute)
}

func TestLoadWithFile_Rejections(t *testing.T) {
	t.Run("outside allowed directories", func(t *testing.T) {
		setupTestHome(t)
		other := filepath.Join(t.TempDir(), "config.yaml")
		_, err := LoadWithFile(other)
		assert.ErrorContains(t, err, "config path validation failed")
	})

	t.Run("insecure permissions", func(t *testing.T) {
		if runtime.GOOS == "windows" {
			t.Skip("permission model differs")
		}
		dir := setupTestHome(t)
		path := writeConfig(t, dir, "server:\n  http_port: 8181\n", 0644)
		_, err := LoadWithFile(path)
		assert.ErrorContains(t, err, "insecure config file permissions")
	})

	t.Run("invalid values", func(t *testing.T) {
		dir := setupTestHome(t)
		path := writeConfig(t, dir, "server:\n  http_port: 70000\n", 0600)
		_, err := LoadWithFile(path)
		assert.ErrorContains(t, err, "invalid server port")
	})

	t.Run("malformed yaml", func(t *testing.T) {
		dir := setupTestHome(t)
		path := writeConfig(t, dir, "server: [\n", 0600)
		_, err := LoadWithFile(path)
		assert.ErrorContains(t, err, "failed to load config file")
	})
}

func TestEnvKey(t *testing.T) {
	assert.Equal(t, "server.http_port", envKey("SYW_SERVER_HTTP_PORT"))
	assert.Equal(t, "github.api_base_url", envKey("SYW_GITHUB_API_BASE_URL"))
	assert.Equal(t, "debug", envKey("SYW_DEBUG"))
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults", func(*Config) {}, ""},
		{"port zero", func(c *Config) { c.Server.Port = 0 }, "invalid server port"},
		{"shutdown timeout", func(c *Config) { c.Server.ShutdownTimeout = 0 }, "shutdown timeout"},
		{"api url", func(c *Config) { c.GitHub.APIBaseURL = "not a url" }, "api_base_url"},
		{"negative rate", func(c *Config) { c.GitHub.APIRatePerMinute = -1 }, "api_rate_per_minute"},
		{"log format", func(c *Config) { c.Logging.Format = "xml" }, "logging format"},
		{"telemetry endpoint", func(c *Config) { c.Telemetry.Enabled = true; c.Telemetry.Endpoint = "" }, "endpoint is required"},
		{"sample rate", func(c *Config) { c.Telemetry.SampleRate = 2 }, "sample_rate"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestDuration_UnmarshalText(t *testing.T) {
	tests := []struct {
		input   string
		want    time.Duration
		wantErr bool
	}{
		{input: "1m30s", want: 90 * time.Second},
		{input: "30", want: 30 * time.Second},
		{input: " 2.5 ", want: 2500 * time.Millisecond},
		{input: "0", want: 0},
		{input: "-1s", wantErr: true},
		{input: "-5", wantErr: true},
		{input: "soon", wantErr: true},
		{input: "NaN", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			var d Duration
			err := d.UnmarshalText([]byte(tt.input))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, d.Duration())
		})
	}

	text, err := Duration(90 * time.Second).MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "1m30s", string(text))
}
