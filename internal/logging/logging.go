package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// logger fields
const (
	SERVICE    = "svc"
	REQUEST_ID = "request_id"
	USER_ID    = "user_id"
	OP         = "op"
)

const serviceName = "healthcheck-api"

func init() {
	zerolog.TimeFieldFormat = time.RFC3339Nano
}

// New returns the root application logger. Development builds get a human readable
// console writer; every other environment logs JSON to stdout.
func New(level string, env string) zerolog.Logger {
	var out io.Writer = os.Stdout
	if env == "development" {
		out = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	}
	return NewWithWriter(out, level)
}

func NewWithWriter(out io.Writer, level string) zerolog.Logger {
	return zerolog.New(out).
		Level(ParseLevel(level)).
		With().
		Timestamp().
		Str(SERVICE, serviceName).
		Logger()
}

// ParseLevel maps LOG_LEVEL values onto zerolog levels. Unknown values fall back to info.
func ParseLevel(level string) zerolog.Level {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "DEBUG":
		return zerolog.DebugLevel
	case "INFO", "":
		return zerolog.InfoLevel
	case "WARN", "WARNING":
		return zerolog.WarnLevel
	case "ERROR":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
