// Package utils holds process-wide helpers, currently the structured logger.
package utils

import (
	"os"
	"strings"

	chlog "github.com/charmbracelet/log"
)

// Logger is the application-wide structured logger.
var Logger *chlog.Logger

// LogLevelEnv names the environment variable read by InitLogger.
const LogLevelEnv = "KAFKA_ADMIN_LOG_LEVEL"

// InitLogger initializes the global logger with level from KAFKA_ADMIN_LOG_LEVEL.
// Valid levels: debug, info, warn, error. Subsequent calls are no-ops.
func InitLogger() {
	if Logger != nil {
		return
	}
	l := chlog.New(os.Stdout)
	l.SetTimeFormat("2006-01-02 15:04:05.000")
	l.SetReportTimestamp(true)
	l.SetLevel(parseLevel(os.Getenv(LogLevelEnv), chlog.InfoLevel))
	Logger = l
}

// SetLogLevel changes the level at runtime; unknown levels are ignored.
func SetLogLevel(level string) {
	if Logger == nil {
		InitLogger()
	}
	Logger.SetLevel(parseLevel(level, Logger.GetLevel()))
}

func parseLevel(s string, fallback chlog.Level) chlog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return chlog.DebugLevel
	case "info":
		return chlog.InfoLevel
	case "warn":
		return chlog.WarnLevel
	case "error":
		return chlog.ErrorLevel
	}
	return fallback
}
