package config

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// NewLogger builds the process logger: timestamped, prefixed, at the level named by
// GALACTIC_LOG_LEVEL (debug, info, warn, error; default info).
func NewLogger(w io.Writer, prefix string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
		Prefix:          prefix,
	})
	level, err := log.ParseLevel(GetEnv("GALACTIC_LOG_LEVEL", "info"))
	if err != nil {
		logger.Warn("unknown log level, using info", "err", err)
		level = log.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}
