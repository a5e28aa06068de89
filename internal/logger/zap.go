package logger

import (
	"fmt"

	"go.uber.org/zap"
)

// ZapLogger adapts a zap sugared logger to Logger and exposes the
// structured Debugw for callers that want key/value fields.
type ZapLogger struct {
	sugar *zap.SugaredLogger
}

// NewDiagnostics returns the logger used for --verbose output. When verbose
// is false the returned logger drops everything.
func NewDiagnostics(verbose bool) (*ZapLogger, error) {
	if !verbose {
		return &ZapLogger{sugar: zap.NewNop().Sugar()}, nil
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.OutputPaths = []string{"stderr"}
	cfg.DisableStacktrace = true
	l, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build diagnostics logger: %w", err)
	}
	return &ZapLogger{sugar: l.Sugar()}, nil
}

// NewZapLogger wraps an existing zap logger.
func NewZapLogger(l *zap.Logger) *ZapLogger {
	return &ZapLogger{sugar: l.Sugar()}
}

func (l *ZapLogger) Logf(format string, args ...interface{}) { l.sugar.Debugf(format, args...) }
func (l *ZapLogger) Log(msg string)                          { l.sugar.Debug(msg) }

// Debugw logs a message with key/value pairs.
func (l *ZapLogger) Debugw(msg string, keysAndValues ...interface{}) {
	l.sugar.Debugw(msg, keysAndValues...)
}

func (l *ZapLogger) Sync() error { return l.sugar.Sync() }

// Fields is implemented by loggers that accept key/value pairs.
type Fields interface {
	Debugw(msg string, keysAndValues ...interface{})
}

// With logs msg through Debugw when l supports fields and falls back to
// Logf otherwise.
func With(l Logger, msg string, keysAndValues ...interface{}) {
	if f, ok := l.(Fields); ok {
		f.Debugw(msg, keysAndValues...)
		return
	}
	var b []byte
	b = append(b, msg...)
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		b = fmt.Appendf(b, " %v=%v", keysAndValues[i], keysAndValues[i+1])
	}
	l.Log(string(b))
}
