package telemetry

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel/log"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	"go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

// TestTelemetry records spans and log records in memory. Both are
// processed synchronously, so no flush is needed before reading them.
type TestTelemetry struct {
	*Telemetry
	Spans *tracetest.SpanRecorder
	Logs  *LogRecorder
}

// NewTestTelemetry creates telemetry backed by in-memory recorders. It does
// not touch the global providers.
func NewTestTelemetry() *TestTelemetry {
	cfg := NewDefaultConfig()
	cfg.Enabled = true

	spans := tracetest.NewSpanRecorder()
	logs := &LogRecorder{}

	return &TestTelemetry{
		Telemetry: &Telemetry{
			config:         cfg,
			tracerProvider: trace.NewTracerProvider(trace.WithSpanProcessor(spans)),
			loggerProvider: sdklog.NewLoggerProvider(sdklog.WithProcessor(sdklog.NewSimpleProcessor(logs))),
		},
		Spans: spans,
		Logs:  logs,
	}
}

// Span returns the first ended span called name, or nil.
func (t *TestTelemetry) Span(name string) trace.ReadOnlySpan {
	for _, span := range t.Spans.Ended() {
		if span.Name() == name {
			return span
		}
	}
	return nil
}

// LogEntry is a copy of one exported log record.
type LogEntry struct {
	Body     string
	Severity log.Severity
	Attrs    map[string]string
}

// LogRecorder is an sdklog.Exporter that keeps records in memory.
type LogRecorder struct {
	mu      sync.Mutex
	entries []LogEntry
}

// Export implements sdklog.Exporter. Records are copied because the
// processor reuses them after the call.
func (r *LogRecorder) Export(_ context.Context, records []sdklog.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rec := range records {
		entry := LogEntry{
			Body:     rec.Body().AsString(),
			Severity: rec.Severity(),
			Attrs:    make(map[string]string, rec.AttributesLen()),
		}
		rec.WalkAttributes(func(kv log.KeyValue) bool {
			entry.Attrs[kv.Key] = kv.Value.String()
			return true
		})
		r.entries = append(r.entries, entry)
	}
	return nil
}

// Shutdown implements sdklog.Exporter.
func (r *LogRecorder) Shutdown(context.Context) error { return nil }

// ForceFlush implements sdklog.Exporter.
func (r *LogRecorder) ForceFlush(context.Context) error { return nil }

// Entries returns the records exported so far.
func (r *LogRecorder) Entries() []LogEntry {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]LogEntry(nil), r.entries...)
}

// Find returns the first record whose body is msg.
func (r *LogRecorder) Find(msg string) (LogEntry, bool) {
	for _, e := range r.Entries() {
		if e.Body == msg {
			return e, true
		}
	}
	return LogEntry{}, false
}
