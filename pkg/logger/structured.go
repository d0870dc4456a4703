package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const serviceName = "arena-backend"

var zlog = newLogger(os.Stdout)

func newLogger(w io.Writer) zerolog.Logger {
	return zerolog.New(w).With().Timestamp().Str("service", serviceName).Logger()
}

// InitStructured configures the global logger for env. Local environments get console
// output at debug level; everything else gets JSON at info. LOG_LEVEL overrides the level.
func InitStructured(env string) {
	zerolog.TimeFieldFormat = time.RFC3339

	level := zerolog.InfoLevel
	var w io.Writer = os.Stdout
	switch strings.ToLower(env) {
	case "development", "dev", "local":
		level = zerolog.DebugLevel
		w = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	}
	zerolog.SetGlobalLevel(ParseLevel(os.Getenv("LOG_LEVEL"), level))
	zlog = newLogger(w)
}

// ParseLevel returns the named level, or fallback when name is empty or unknown
func ParseLevel(name string, fallback zerolog.Level) zerolog.Level {
	if name == "" {
		return fallback
	}
	level, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(name)))
	if err != nil {
		return fallback
	}
	return level
}

// SetOutput redirects the global logger. Tests use it to capture or silence output.
func SetOutput(w io.Writer) {
	zlog = newLogger(w)
}

// GetLogger returns the global zerolog logger
func GetLogger() *zerolog.Logger {
	return &zlog
}

// ForRequest returns a logger tagged with the request and acting user; empty values are omitted
func ForRequest(requestID, userID string) zerolog.Logger {
	ctx := zlog.With()
	if requestID != "" {
		ctx = ctx.Str("request_id", requestID)
	}
	if userID != "" {
		ctx = ctx.Str("user_id", userID)
	}
	return ctx.Logger()
}
