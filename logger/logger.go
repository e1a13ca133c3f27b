package logger

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/trace"
)

// Standard field key constants for structured logging.
const (
	FieldTraceID  = "trace_id"
	FieldSpanID   = "span_id"
	FieldError    = "error"
	FieldDuration = "duration_ms"
)

// Logger wraps zerolog.Logger behind a key-value API. The variadic arguments
// of the level methods are alternating key-value pairs; non-string keys and a
// trailing value without a key are dropped.
type Logger struct {
	zl zerolog.Logger
}

// New creates a logger from configuration.
func New(cfg *Config) *Logger {
	return NewWithWriter(cfg, outputWriter(cfg.Output))
}

// NewWithWriter creates a logger that writes to w instead of the configured
// output stream.
func NewWithWriter(cfg *Config, w io.Writer) *Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}

	var zl zerolog.Logger
	if isConsole(cfg.Format) {
		zl = zerolog.New(consoleWriter(cfg, w))
	} else {
		zl = zerolog.New(w)
	}
	zl = zl.Level(level)

	if cfg.Timestamp {
		zl = zl.With().Timestamp().Logger()
	}
	if cfg.Caller {
		zl = zl.With().Caller().Logger()
	}

	return &Logger{zl: zl}
}

// NewDefault creates a console logger at info level.
func NewDefault() *Logger {
	cfg := &Config{}
	cfg.ApplyDefaults()
	return New(cfg)
}

// NewFromEnv creates a logger configured from LOG_* environment variables.
func NewFromEnv() *Logger {
	cfg := &Config{
		Level:     getEnvOrDefault("LOG_LEVEL", "info"),
		Format:    getEnvOrDefault("LOG_FORMAT", "console"),
		Output:    getEnvOrDefault("LOG_OUTPUT", "stdout"),
		NoColor:   getEnvOrDefault("LOG_NO_COLOR", "false") == "true",
		Timestamp: getEnvOrDefault("LOG_TIMESTAMP", "true") == "true",
	}
	return New(cfg)
}

// With returns a logger with fields preattached to every entry.
func (l *Logger) With(keysAndValues ...any) *Logger {
	zc := l.zl.With()
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		if k, ok := keysAndValues[i].(string); ok {
			zc = zc.Interface(k, keysAndValues[i+1])
		}
	}
	return &Logger{zl: zc.Logger()}
}

// WithContext returns a logger carrying the active span's trace and span IDs.
// Without a valid span in ctx it returns the receiver unchanged.
func (l *Logger) WithContext(ctx context.Context) *Logger {
	sc := trace.SpanContextFromContext(ctx)
	if !sc.IsValid() {
		return l
	}
	return &Logger{zl: l.zl.With().
		Str(FieldTraceID, sc.TraceID().String()).
		Str(FieldSpanID, sc.SpanID().String()).
		Logger()}
}

// WithError returns a logger with an error field preattached.
func (l *Logger) WithError(err error) *Logger {
	return &Logger{zl: l.zl.With().Err(err).Logger()}
}

// GetLogger returns the underlying zerolog.Logger.
func (l *Logger) GetLogger() zerolog.Logger {
	return l.zl
}

// Debug logs a debug message.
func (l *Logger) Debug(msg string, keysAndValues ...any) {
	l.log(l.zl.Debug(), msg, keysAndValues)
}

// Info logs an info message.
func (l *Logger) Info(msg string, keysAndValues ...any) {
	l.log(l.zl.Info(), msg, keysAndValues)
}

// Warn logs a warning message.
func (l *Logger) Warn(msg string, keysAndValues ...any) {
	l.log(l.zl.Warn(), msg, keysAndValues)
}

// Error logs an error message.
func (l *Logger) Error(msg string, keysAndValues ...any) {
	l.log(l.zl.Error(), msg, keysAndValues)
}

// Fatal logs a fatal message and exits.
func (l *Logger) Fatal(msg string, keysAndValues ...any) {
	l.log(l.zl.Fatal(), msg, keysAndValues)
}

func (l *Logger) log(event *zerolog.Event, msg string, kvs []any) {
	for i := 0; i+1 < len(kvs); i += 2 {
		if k, ok := kvs[i].(string); ok {
			event = event.Interface(k, kvs[i+1])
		}
	}
	event.Msg(msg)
}

// --- Default logger ---

var defaultLogger *Logger

// SetDefault sets the package-level default logger.
func SetDefault(l *Logger) { defaultLogger = l }

// Default returns the package-level default logger, creating a console one on
// first use.
func Default() *Logger {
	if defaultLogger == nil {
		defaultLogger = NewDefault()
	}
	return defaultLogger
}

// Package-level convenience functions delegate to the default logger.

func Debug(msg string, keysAndValues ...any) { Default().Debug(msg, keysAndValues...) }
func Info(msg string, keysAndValues ...any)  { Default().Info(msg, keysAndValues...) }
func Warn(msg string, keysAndValues ...any)  { Default().Warn(msg, keysAndValues...) }
func Error(msg string, keysAndValues ...any) { Default().Error(msg, keysAndValues...) }

// --- internal helpers ---

func isConsole(format string) bool {
	f := strings.ToLower(format)
	return f == "console" || f == FormatPretty
}

func outputWriter(output string) *os.File {
	switch strings.ToLower(output) {
	case "stderr":
		return os.Stderr
	default:
		return os.Stdout
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

func consoleWriter(cfg *Config, w io.Writer) zerolog.ConsoleWriter {
	return zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: "15:04:05",
		NoColor:    cfg.NoColor,
		FormatLevel: func(i interface{}) string {
			lvl := strings.ToUpper(fmt.Sprintf("%s", i))
			if !cfg.NoColor {
				switch lvl {
				case "DEBUG":
					return "\033[36m[DBG]\033[0m"
				case "INFO":
					return "\033[32m[INF]\033[0m"
				case "WARN":
					return "\033[33m[WRN]\033[0m"
				case "ERROR":
					return "\033[31m[ERR]\033[0m"
				case "FATAL":
					return "\033[35m[FTL]\033[0m"
				}
				return fmt.Sprintf("[%s]", lvl)
			}
			switch lvl {
			case "DEBUG":
				return "[DBG]"
			case "INFO":
				return "[INF]"
			case "WARN":
				return "[WRN]"
			case "ERROR":
				return "[ERR]"
			case "FATAL":
				return "[FTL]"
			}
			return fmt.Sprintf("[%s]", lvl)
		},
		FormatMessage: func(i interface{}) string {
			if i == nil {
				return ""
			}
			return fmt.Sprintf("%s", i)
		},
		FormatFieldName: func(i interface{}) string {
			return fmt.Sprintf("%s:", i)
		},
		FormatFieldValue: func(i interface{}) string {
			if i == nil {
				return ""
			}
			return fmt.Sprintf("%s", i)
		},
	}
}
