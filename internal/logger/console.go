package logger

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/joefancyai/localizedKWvolume/internal/models"
)

// ConsoleLogger implements Service with zerolog, for deployments without a
// DATABASE_URL (the single-operator case).
type ConsoleLogger struct {
	logger zerolog.Logger
}

// NewConsoleLogger creates a zerolog-backed logger writing to stderr
func NewConsoleLogger() Service {
	return NewConsoleLoggerWithOutput(os.Stderr)
}

// NewConsoleLoggerWithOutput creates a console logger writing to the given writer
func NewConsoleLoggerWithOutput(out io.Writer) Service {
	logger := zerolog.New(zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: time.RFC3339,
	}).With().Timestamp().Logger()

	return &ConsoleLogger{logger: logger}
}

// LogInfo logs an informational message
func (l *ConsoleLogger) LogInfo(ctx context.Context, operation, message string, metadata map[string]interface{}) {
	l.event(l.logger.Info(), ctx, operation, "", metadata).Msg(message)
}

// LogSuccess logs a successful operation
func (l *ConsoleLogger) LogSuccess(ctx context.Context, operation, targetName, message string, metadata map[string]interface{}) {
	l.event(l.logger.Info(), ctx, operation, targetName, metadata).Msg(message)
}

// LogError logs an error with its severity
func (l *ConsoleLogger) LogError(ctx context.Context, operation, targetName, message string, err error, severity models.LogSeverity, metadata map[string]interface{}) {
	l.event(l.logger.Error().Err(err).Str("severity", string(severity)), ctx, operation, targetName, metadata).Msg(message)
}

// event attaches the shared fields carried by every entry
func (l *ConsoleLogger) event(e *zerolog.Event, ctx context.Context, operation, targetName string, metadata map[string]interface{}) *zerolog.Event {
	logEvent := GetLogEvent(ctx)

	e = e.Str("operation", operation).Str("process_id", logEvent.ProcessID)
	if targetName != "" {
		e = e.Str("target", targetName)
	}
	if logEvent.ClientIP != "" {
		e = e.Str("client_ip", logEvent.ClientIP)
	}
	if len(metadata) > 0 {
		e = e.Fields(metadata)
	}

	return e
}

// Close is a no-op for the console logger
func (l *ConsoleLogger) Close() error {
	return nil
}
