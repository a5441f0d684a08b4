package logging

import (
	"go.uber.org/zap/zapcore"
)

// newSampledCore samples entries below Error per message and tick. Errors
// always pass.
func newSampledCore(core zapcore.Core, cfg SamplingConfig) zapcore.Core {
	if !cfg.Enabled {
		return core
	}

	errs := gatedCore{Core: core, allow: func(l zapcore.Level) bool { return l >= zapcore.ErrorLevel }}
	rest := gatedCore{Core: core, allow: func(l zapcore.Level) bool { return l < zapcore.ErrorLevel }}

	return zapcore.NewTee(
		errs,
		zapcore.NewSamplerWithOptions(rest, cfg.Tick.Duration(), cfg.Initial, cfg.Thereafter),
	)
}

// gatedCore passes only the levels allow accepts to the wrapped core.
type gatedCore struct {
	zapcore.Core
	allow func(zapcore.Level) bool
}

func (c gatedCore) Enabled(l zapcore.Level) bool {
	return c.allow(l) && c.Core.Enabled(l)
}

func (c gatedCore) Check(e zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if !c.allow(e.Level) {
		return ce
	}
	return c.Core.Check(e, ce)
}

func (c gatedCore) With(fields []zapcore.Field) zapcore.Core {
	return gatedCore{Core: c.Core.With(fields), allow: c.allow}
}
