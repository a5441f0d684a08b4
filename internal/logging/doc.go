// Package logging wraps Zap with context-aware methods for showyourwork.
//
// # Overview
//
//   - Custom Trace level (-2, below Debug)
//   - Console output on stderr (stdout stays free for command output)
//     plus an optional OpenTelemetry bridge
//   - Automatic context fields (trace_id, request.id, bundle.id, fetch.id)
//   - Field-name and pattern redaction for tokens that leak through gh output
//   - Level-aware sampling (errors never sampled)
//
// # Usage
//
//	cfg := logging.NewDefaultConfig()
//	logger, err := logging.NewLogger(cfg, nil)
//	if err != nil {
//	    return err
//	}
//	defer logger.Sync()
//
//	ctx = logging.WithBundleID(ctx, "abc123")
//	logger.Info(ctx, "bundle fetched", zap.String("channel", "cli"))
//
// # Testing
//
//	tl := logging.NewTestLogger()
//	tl.Info(ctx, "test message", zap.String("key", "value"))
//	tl.AssertLogged(t, zapcore.InfoLevel, "test message")
package logging
