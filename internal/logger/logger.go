package logger

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// New erstellt den Logger des Servers. Mit ENV=development wird lesbar auf
// die Konsole geschrieben, sonst JSON nach stderr.
func New(level string) zerolog.Logger {
	return NewWithWriter(os.Stderr, level, os.Getenv("ENV") == "development")
}

// NewWithWriter ist New mit frei wählbarer Ausgabe
func NewWithWriter(w io.Writer, level string, console bool) zerolog.Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	if console {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05"}
	}
	logger := zerolog.New(w).With().Timestamp().Logger()

	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	return logger.Level(lvl)
}
