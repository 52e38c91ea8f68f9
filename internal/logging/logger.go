package logging

import (
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var logger *zap.Logger

const (
	// LogLevelEnvVar controls logging verbosity.
	// When unset or empty, logging is silent (no zap output).
	// Valid values: "debug", "info", "warn", "error"
	LogLevelEnvVar = "WORDLEBUDDY_LOG_LEVEL"

	// LogFileEnvVar names the file log output is appended to.
	// The TUI owns the terminal, so interactive sessions must log to a file.
	LogFileEnvVar = "WORDLEBUDDY_LOG_FILE"

	// Stderr selects standard error as the output
	Stderr = "stderr"

	maxBodyLog = 256
)

// Initialize creates a new logger with the specified level writing to output.
// If level is empty, it checks WORDLEBUDDY_LOG_LEVEL. If output is empty, it
// checks WORDLEBUDDY_LOG_FILE and then falls back to stderr.
// If no level is set anywhere, logging is disabled (silent mode).
func Initialize(level, output string) error {
	if level == "" {
		level = os.Getenv(LogLevelEnvVar)
	}

	if level == "" {
		logger = zap.NewNop()
		return nil
	}

	if output == "" {
		output = os.Getenv(LogFileEnvVar)
	}
	if output == "" {
		output = Stderr
	}

	config := zap.Config{
		Level:            zap.NewAtomicLevelAt(ParseLevel(level)),
		Development:      false,
		Encoding:         "console",
		EncoderConfig:    zap.NewDevelopmentEncoderConfig(),
		OutputPaths:      []string{output},
		ErrorOutputPaths: []string{Stderr},
	}

	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.EncoderConfig.EncodeCaller = zapcore.ShortCallerEncoder
	if output == Stderr {
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		config.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	}

	var err error
	logger, err = config.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	return nil
}

// InitializeFromEnv initializes the logger from WORDLEBUDDY_LOG_LEVEL and
// WORDLEBUDDY_LOG_FILE.
func InitializeFromEnv() error {
	return Initialize("", "")
}

// ParseLevel maps a level name to a zap level. Unknown names map to info.
func ParseLevel(level string) zapcore.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zapcore.DebugLevel
	case "info":
		return zapcore.InfoLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// GetLogger returns the global logger instance
func GetLogger() *zap.Logger {
	if logger == nil {
		// Silent until initialized
		logger = zap.NewNop()
	}
	return logger
}

// SetLogger replaces the global logger and returns the previous one
func SetLogger(l *zap.Logger) *zap.Logger {
	prev := GetLogger()
	logger = l
	return prev
}

// Info logs an info message
func Info(msg string, fields ...zap.Field) {
	GetLogger().Info(msg, fields...)
}

// Debug logs a debug message
func Debug(msg string, fields ...zap.Field) {
	GetLogger().Debug(msg, fields...)
}

// Warn logs a warning message
func Warn(msg string, fields ...zap.Field) {
	GetLogger().Warn(msg, fields...)
}

// Error logs an error message
func Error(msg string, fields ...zap.Field) {
	GetLogger().Error(msg, fields...)
}

// Fatal logs a fatal message and exits
func Fatal(msg string, fields ...zap.Field) {
	GetLogger().Fatal(msg, fields...)
}

// LogSolverRequest logs an outgoing solver call
func LogSolverRequest(method, endpoint string, attempt int) {
	Debug("Solver request",
		zap.String("method", method),
		zap.String("endpoint", endpoint),
		zap.Int("attempt", attempt),
	)
}

// LogSolverResponse logs a solver reply
func LogSolverResponse(endpoint string, statusCode int, elapsed time.Duration, body []byte) {
	fields := []zap.Field{
		zap.String("endpoint", endpoint),
		zap.Int("status_code", statusCode),
		zap.Duration("elapsed", elapsed),
		zap.Int("length", len(body)),
	}

	if GetLogger().Core().Enabled(zapcore.DebugLevel) {
		fields = append(fields, zap.String("body", printable(body)))
	}

	Info("Solver response", fields...)
}

// LogGuess logs the outcome of a row submission
func LogGuess(row int, word string, accepted bool) {
	Info("Guess submitted",
		zap.Int("row", row),
		zap.String("word", word),
		zap.Bool("accepted", accepted),
	)
}

// LogAnalysis logs a live analysis result
func LogAnalysis(seq uint64, remaining int, err error) {
	if err != nil {
		Warn("Live analysis failed",
			zap.Uint64("seq", seq),
			zap.Error(err),
		)
		return
	}
	Debug("Live analysis",
		zap.Uint64("seq", seq),
		zap.Int("possible_words_left", remaining),
	)
}

func printable(data []byte) string {
	if len(data) == 0 {
		return ""
	}
	truncated := false
	if len(data) > maxBodyLog {
		data = data[:maxBodyLog]
		truncated = true
	}

	result := make([]byte, len(data))
	for i, b := range data {
		if b >= 32 && b <= 126 {
			result[i] = b
		} else {
			result[i] = '.'
		}
	}
	if truncated {
		return string(result) + "..."
	}
	return string(result)
}

// Sync flushes any buffered log entries
func Sync() {
	if logger != nil {
		_ = logger.Sync()
	}
}
