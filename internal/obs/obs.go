// Package obs provides the process-wide structured logger.
//
// Level is controlled by INSTRBENCH_LOG_LEVEL (debug, info, warn, error;
// default info), read once at process start. Format is controlled by
// INSTRBENCH_LOG_FORMAT (console or json; default console).
package obs

import (
	"os"
	"strings"

	"github.com/rs/zerolog"
)

var logger = newLogger()

func newLogger() zerolog.Logger {
	raw := strings.ToLower(os.Getenv("INSTRBENCH_LOG_LEVEL"))

	level := zerolog.InfoLevel
	if raw != "" {
		parsed, err := zerolog.ParseLevel(raw)
		if err != nil {
			level = zerolog.InfoLevel
		} else {
			level = parsed
		}
	}

	var w = os.Stderr
	if strings.EqualFold(os.Getenv("INSTRBENCH_LOG_FORMAT"), "json") {
		return zerolog.New(w).Level(level).With().Timestamp().Logger()
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05"}).
		Level(level).With().Timestamp().Logger()
}

// L returns the process-wide logger.
func L() *zerolog.Logger {
	return &logger
}

// Fatal logs msg at Fatal level with err and the given fields, then exits
// the process with a non-zero status. Used for the core's unrecoverable
// system errors (mmap/mprotect/sysconf failure).
func Fatal(msg string, err error, fields map[string]any) {
	ev := logger.Fatal().Err(err)
	for k, v := range fields {
		ev = ev.Interface(k, v)
	}
	ev.Msg(msg)
}
