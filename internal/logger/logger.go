package logger

import (
	"os"

	"github.com/rs/zerolog"
)

// New builds the process logger. The level string comes from
// configuration; anything unparseable falls back to info.
func New(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(os.Stdout).With().Timestamp().Logger().Level(lvl)
}
