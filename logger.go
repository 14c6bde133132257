package gobtc

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sirupsen/logrus"
	"go.uber.org/zap"
)

// errorLogKey is the field name used when attaching errors to log entries.
const errorLogKey = "error"

// Logger is the logging surface the client writes to. Adapters for logrus,
// zap and the standard library's slog ship with the package. The default is
// NullLogger, so the library stays silent unless a logger is supplied.
type Logger interface {
	Debug(args ...any)
	Info(args ...any)
	Warn(args ...any)
	Error(args ...any)

	WithFields(fields map[string]any) Logger
	WithContext(ctx context.Context) Logger
	WithErr(err error) Logger
}

// NullLogger discards everything.
type NullLogger struct{}

// NewNullLogger creates a logger that does nothing.
func NewNullLogger() Logger {
	return &NullLogger{}
}

func (l *NullLogger) Debug(args ...any) {}
func (l *NullLogger) Info(args ...any)  {}
func (l *NullLogger) Warn(args ...any)  {}
func (l *NullLogger) Error(args ...any) {}

func (l *NullLogger) WithFields(fields map[string]any) Logger { return l }
func (l *NullLogger) WithContext(ctx context.Context) Logger  { return l }
func (l *NullLogger) WithErr(err error) Logger                { return l }

// LogrusLogger implements Logger using sirupsen/logrus.
type LogrusLogger struct {
	entry *logrus.Entry
}

// NewLogrusLogger wraps a logrus.Logger. A nil logger falls back to the
// logrus standard logger.
func NewLogrusLogger(logger *logrus.Logger) Logger {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &LogrusLogger{entry: logrus.NewEntry(logger)}
}

func (l *LogrusLogger) Debug(args ...any) { l.entry.Debug(args...) }
func (l *LogrusLogger) Info(args ...any)  { l.entry.Info(args...) }
func (l *LogrusLogger) Warn(args ...any)  { l.entry.Warn(args...) }
func (l *LogrusLogger) Error(args ...any) { l.entry.Error(args...) }

// WithFields returns a logger that includes the given fields on every entry.
func (l *LogrusLogger) WithFields(fields map[string]any) Logger {
	return &LogrusLogger{entry: l.entry.WithFields(logrus.Fields(fields))}
}

// WithContext returns a logger bound to the given context.
func (l *LogrusLogger) WithContext(ctx context.Context) Logger {
	return &LogrusLogger{entry: l.entry.WithContext(ctx)}
}

// WithErr returns a logger that includes the error on every entry.
func (l *LogrusLogger) WithErr(err error) Logger {
	return &LogrusLogger{entry: l.entry.WithError(err)}
}

// ZapLogger implements Logger using uber-go/zap.
type ZapLogger struct {
	sugar *zap.SugaredLogger
}

// NewZapLogger wraps a zap.Logger. A nil logger falls back to zap's
// production configuration.
func NewZapLogger(logger *zap.Logger) Logger {
	if logger == nil {
		logger, _ = zap.NewProduction()
	}
	return &ZapLogger{sugar: logger.Sugar()}
}

func (l *ZapLogger) Debug(args ...any) { l.sugar.Debug(args...) }
func (l *ZapLogger) Info(args ...any)  { l.sugar.Info(args...) }
func (l *ZapLogger) Warn(args ...any)  { l.sugar.Warn(args...) }
func (l *ZapLogger) Error(args ...any) { l.sugar.Error(args...) }

// WithFields returns a logger that includes the given fields on every entry.
func (l *ZapLogger) WithFields(fields map[string]any) Logger {
	kv := make([]any, 0, len(fields)*2)
	for k, v := range fields {
		kv = append(kv, k, v)
	}
	return &ZapLogger{sugar: l.sugar.With(kv...)}
}

// WithContext is a no-op for ZapLogger.
func (l *ZapLogger) WithContext(ctx context.Context) Logger {
	return l
}

// WithErr returns a logger that includes the error on every entry.
func (l *ZapLogger) WithErr(err error) Logger {
	return &ZapLogger{sugar: l.sugar.With(errorLogKey, err)}
}

// SlogLogger implements Logger using the standard library's slog package.
type SlogLogger struct {
	logger *slog.Logger
}

// NewSlogLogger wraps a slog.Logger. A nil logger falls back to
// slog.Default.
func NewSlogLogger(logger *slog.Logger) Logger {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogLogger{logger: logger}
}

func (l *SlogLogger) Debug(args ...any) { l.logger.Debug(fmt.Sprint(args...)) }
func (l *SlogLogger) Info(args ...any)  { l.logger.Info(fmt.Sprint(args...)) }
func (l *SlogLogger) Warn(args ...any)  { l.logger.Warn(fmt.Sprint(args...)) }
func (l *SlogLogger) Error(args ...any) { l.logger.Error(fmt.Sprint(args...)) }

// WithFields returns a logger that includes the given fields on every entry.
func (l *SlogLogger) WithFields(fields map[string]any) Logger {
	attrs := make([]any, 0, len(fields))
	for k, v := range fields {
		attrs = append(attrs, slog.Any(k, v))
	}
	return &SlogLogger{logger: l.logger.With(attrs...)}
}

// WithContext is a no-op for SlogLogger.
func (l *SlogLogger) WithContext(ctx context.Context) Logger {
	return l
}

// WithErr returns a logger that includes the error on every entry.
func (l *SlogLogger) WithErr(err error) Logger {
	return &SlogLogger{logger: l.logger.With(slog.Any(errorLogKey, err))}
}
