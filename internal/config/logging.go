package config

import (
	"io"
	"log/slog"
	"os"
	"strings"

	slogmulti "github.com/samber/slog-multi"
)

// SetupLogger returns the process logger: text on stderr, plus JSON lines in
// logFile when one is configured. The cleanup function closes the file.
func SetupLogger(logFile string, level slog.Level) (*slog.Logger, func() error) {
	return setupLogger(os.Stderr, logFile, level)
}

func setupLogger(stderr io.Writer, logFile string, level slog.Level) (*slog.Logger, func() error) {
	noop := func() error { return nil }
	if logFile == "" {
		return NewLogger(stderr, nil, level), noop
	}

	file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		logger := NewLogger(stderr, nil, level)
		logger.Warn("log file unavailable, logging to stderr only", "log_file", logFile, "error", err)
		return logger, noop
	}
	return NewLogger(stderr, file, level).With("log_file", logFile), file.Close
}

// NewLogger fans records out to a text handler on stderr and, if file is not
// nil, a JSON handler on file. Every record carries app=nftgen.
func NewLogger(stderr, file io.Writer, level slog.Level) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	handlers := []slog.Handler{slog.NewTextHandler(stderr, opts)}
	if file != nil {
		handlers = append(handlers, slog.NewJSONHandler(file, opts))
	}
	return slog.New(slogmulti.Fanout(handlers...)).With("app", "nftgen")
}

// ParseLogLevel maps NFTGEN_LOG_LEVEL to a slog level. Unknown names mean info.
func ParseLogLevel(s string) slog.Level {
	var lvl slog.Level
	if strings.EqualFold(s, "warning") {
		return slog.LevelWarn
	}
	if err := lvl.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}
