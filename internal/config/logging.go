package config

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// InitLogging points the global zerolog logger at w and applies LOG_LEVEL
// (default "info"). LOG_FORMAT=console switches to human-readable output.
func InitLogging(w io.Writer) {
	if lvl, err := zerolog.ParseLevel(GetEnv("LOG_LEVEL", "info")); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	if GetEnv("LOG_FORMAT", "json") == "console" {
		w = zerolog.ConsoleWriter{Out: w}
	}
	log.Logger = zerolog.New(w).With().Timestamp().Logger()
}

// LogFile opens the file named by SNAKE_LOG_FILE for appending. Without it
// logs are discarded: the local game owns the terminal.
func LogFile() (io.WriteCloser, error) {
	path := GetEnv("SNAKE_LOG_FILE", "")
	if path == "" {
		return nopCloser{io.Discard}, nil
	}
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }
