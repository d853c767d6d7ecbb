package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/Graylog2/go-gelf/gelf"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

// NewZerolog builds the zerolog logger used by the database and influx
// managers. Output goes to console and, when provided, a log file; when
// graylog.enabled is set, records are also shipped to the configured GELF
// endpoint.
func NewZerolog(file io.Writer) zerolog.Logger {
	var lvl zerolog.Level
	switch strings.ToUpper(viper.GetString("logLevel")) {
	case "DEBUG":
		lvl = zerolog.DebugLevel
	case "INFO":
		lvl = zerolog.InfoLevel
	case "WARN":
		lvl = zerolog.WarnLevel
	case "ERROR":
		lvl = zerolog.ErrorLevel
	case "TRACE":
		lvl = zerolog.TraceLevel
	default:
		lvl = zerolog.InfoLevel
	}

	zerolog.TimestampFunc = func() time.Time {
		return time.Now().UTC()
	}

	writers := []io.Writer{
		zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: time.RFC3339,
		},
	}
	if file != nil {
		writers = append(writers, zerolog.ConsoleWriter{
			Out:        file,
			TimeFormat: time.RFC3339,
			NoColor:    true,
		})
	}
	if viper.GetBool("graylog.enabled") {
		if gw, err := gelf.NewWriter(viper.GetString("graylog.address")); err == nil {
			writers = append(writers, gw)
		}
	}

	return zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(lvl).
		With().Timestamp().Logger()
}

// NewDispatchLogger adapts a zerolog.Logger to the dispatch.Logger
// interface.
func NewDispatchLogger(logger zerolog.Logger) *DispatchLogger {
	return &DispatchLogger{logger: logger}
}

// DispatchLogger bridges zerolog into the event dispatcher.
type DispatchLogger struct {
	logger zerolog.Logger
}

// Debug logs a debug message with optional key-value pairs.
func (l *DispatchLogger) Debug(msg string, keysAndValues ...any) {
	l.logger.Debug().Fields(toFields(keysAndValues)).Msg(msg)
}

// Info logs an info message with optional key-value pairs.
func (l *DispatchLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Info().Fields(toFields(keysAndValues)).Msg(msg)
}

// Error logs an error message with optional key-value pairs.
func (l *DispatchLogger) Error(msg string, keysAndValues ...any) {
	l.logger.Error().Fields(toFields(keysAndValues)).Msg(msg)
}

// toFields converts key-value pairs to a map for zerolog.
func toFields(keysAndValues []any) map[string]any {
	fields := make(map[string]any, len(keysAndValues)/2)
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		if key, ok := keysAndValues[i].(string); ok {
			fields[key] = keysAndValues[i+1]
		}
	}
	return fields
}
