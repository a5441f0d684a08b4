package logging

import (
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// TestLogger is a Logger that keeps every entry, at every level, in memory.
type TestLogger struct {
	*Logger
	observed *observer.ObservedLogs
}

// NewTestLogger creates a TestLogger.
func NewTestLogger() *TestLogger {
	core, observed := observer.New(TraceLevel)
	return &TestLogger{
		Logger:   &Logger{zap: zap.New(core), config: NewDefaultConfig()},
		observed: observed,
	}
}

// All returns the entries logged so far.
func (t *TestLogger) All() []observer.LoggedEntry {
	return t.observed.All()
}

// AssertLogged fails tb unless an entry at level has a message containing
// msg.
func (t *TestLogger) AssertLogged(tb testing.TB, level zapcore.Level, msg string) {
	tb.Helper()
	if _, ok := t.find(level, msg); !ok {
		tb.Errorf("no %s entry containing %q in %v", level, msg, t.messages())
	}
}

// AssertField fails tb unless an entry with message msg carries key=want.
// Fields are compared in their encoded form, so context fields and
// zap.Any values can be checked alike.
func (t *TestLogger) AssertField(tb testing.TB, msg, key string, want interface{}) {
	tb.Helper()
	for _, entry := range t.observed.All() {
		if entry.Message != msg {
			continue
		}
		if got, ok := entry.ContextMap()[key]; ok && got == want {
			return
		}
	}
	tb.Errorf("no %q entry with %s=%v", msg, key, want)
}

func (t *TestLogger) find(level zapcore.Level, msg string) (observer.LoggedEntry, bool) {
	for _, entry := range t.observed.All() {
		if entry.Level == level && strings.Contains(entry.Message, msg) {
			return entry, true
		}
	}
	return observer.LoggedEntry{}, false
}

func (t *TestLogger) messages() []string {
	all := t.observed.All()
	out := make([]string, len(all))
	for i, entry := range all {
		out[i] = entry.Level.String() + ": " + entry.Message
	}
	return out
}
