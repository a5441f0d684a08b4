package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	otellog "go.opentelemetry.io/otel/log"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/fyrsmithlabs/showyourwork/internal/config"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"disabled skips checks", func(c *Config) { c.Endpoint = "" }, ""},
		{"enabled local", func(c *Config) { c.Enabled = true }, ""},
		{"enabled with scheme", func(c *Config) { c.Enabled = true; c.Endpoint = "http://127.0.0.1:4318" }, ""},
		{"ipv6 loopback", func(c *Config) { c.Enabled = true; c.Endpoint = "[::1]:4318" }, ""},
		{"missing endpoint", func(c *Config) { c.Enabled = true; c.Endpoint = "" }, "endpoint is required"},
		{"missing service", func(c *Config) { c.Enabled = true; c.ServiceName = "" }, "service_name is required"},
		{"insecure remote", func(c *Config) { c.Enabled = true; c.Endpoint = "otel.example.com:4318" }, "insecure connections"},
		{"secure remote", func(c *Config) { c.Enabled = true; c.Endpoint = "otel.example.com:4318"; c.Insecure = false }, ""},
		{"sample rate", func(c *Config) { c.Enabled = true; c.SampleRate = 1.5 }, "sample_rate"},
		{"shutdown timeout", func(c *Config) { c.Enabled = true; c.ShutdownTimeout = 0 }, "shutdown timeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewDefaultConfig()
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

func TestFromConfig(t *testing.T) {
	c := config.Default().Telemetry
	c.Enabled = true
	c.SampleRate = 0.5

	cfg := FromConfig(c, "v1.2.3")
	assert.True(t, cfg.Enabled)
	assert.Equal(t, "localhost:4318", cfg.Endpoint)
	assert.Equal(t, "showyourwork", cfg.ServiceName)
	assert.Equal(t, "v1.2.3", cfg.ServiceVersion)
	assert.Equal(t, 0.5, cfg.SampleRate)

	assert.Equal(t, "dev", FromConfig(c, "").ServiceVersion)
}

func TestNew_Disabled(t *testing.T) {
	tel, err := New(context.Background(), NewDefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, HealthStatus{}, tel.Health())
	assert.NotNil(t, tel.Tracer("x"))
	assert.NoError(t, tel.Shutdown(context.Background()))
}

func TestNew_InvalidConfig(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Enabled = true
	cfg.Endpoint = ""
	_, err := New(context.Background(), cfg)
	assert.Error(t, err)
}

func TestNew_WithExporter(t *testing.T) {
	exp := tracetest.NewInMemoryExporter()
	cfg := NewDefaultConfig()
	cfg.Enabled = true

	tel, err := New(context.Background(), cfg, WithTraceExporter(exp), WithLogExporter(&LogRecorder{}))
	require.NoError(t, err)
	assert.Equal(t, HealthStatus{Enabled: true}, tel.Health())

	_, span := tel.Tracer("test").Start(context.Background(), "test-span")
	span.End()
	require.NoError(t, tel.ForceFlush(context.Background()))

	spans := exp.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, "test-span", spans[0].Name)

	found := false
	for _, attr := range spans[0].Resource.Attributes() {
		if string(attr.Key) == "service.name" {
			assert.Equal(t, "showyourwork", attr.Value.AsString())
			found = true
		}
	}
	assert.True(t, found, "service.name attribute not found")
	assert.NoError(t, tel.Shutdown(context.Background()))
}

func TestNew_LoggerProvider(t *testing.T) {
	tel, err := New(context.Background(), NewDefaultConfig())
	require.NoError(t, err)
	assert.Nil(t, tel.LoggerProvider(), "disabled telemetry has no log provider")

	logs := &LogRecorder{}
	cfg := NewDefaultConfig()
	cfg.Enabled = true
	tel, err = New(context.Background(), cfg,
		WithTraceExporter(tracetest.NewInMemoryExporter()),
		WithLogExporter(logs))
	require.NoError(t, err)
	require.NotNil(t, tel.LoggerProvider())

	var rec otellog.Record
	rec.SetBody(otellog.StringValue("hello"))
	rec.SetSeverity(otellog.SeverityWarn)
	rec.AddAttributes(otellog.String("bundle_id", "abc123"))
	tel.LoggerProvider().Logger("test").Emit(context.Background(), rec)

	require.NoError(t, tel.ForceFlush(context.Background()))
	entry, ok := logs.Find("hello")
	require.True(t, ok, "record not exported: %+v", logs.Entries())
	assert.Equal(t, otellog.SeverityWarn, entry.Severity)
	assert.Equal(t, "abc123", entry.Attrs["bundle_id"])

	assert.NoError(t, tel.Shutdown(context.Background()))
}

func TestTestTelemetry(t *testing.T) {
	tt := NewTestTelemetry()
	_, span := tt.Tracer("test").Start(context.Background(), "op")
	span.End()

	assert.NotNil(t, tt.Span("op"))
	assert.Nil(t, tt.Span("missing"))

	var rec otellog.Record
	rec.SetBody(otellog.StringValue("logged"))
	tt.LoggerProvider().Logger("test").Emit(context.Background(), rec)
	_, ok := tt.Logs.Find("logged")
	assert.True(t, ok)
}

func TestStripScheme(t *testing.T) {
	assert.Equal(t, "host:4318", stripScheme("https://host:4318"))
	assert.Equal(t, "host:4318", stripScheme("http://host:4318"))
	assert.Equal(t, "host:4318", stripScheme("host:4318"))
}
