package utils

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// InitLogger routes logs to ~/.vidgrab/vidgrab.log so they never mix
// with progress output. With debug enabled, logs also mirror to stderr
// and the level drops to debug.
func InitLogger(debug bool) {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	var writers []io.Writer
	if f := openLogFile(); f != nil {
		writers = append(writers, f)
	}
	if debug {
		writers = append(writers, zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.DateTime,
		})
	}
	if len(writers) == 0 {
		log.Logger = zerolog.Nop()
		return
	}
	log.Logger = zerolog.New(io.MultiWriter(writers...)).With().Timestamp().Logger()
}

// openLogFile returns nil when the log file cannot be prepared; logging
// is best-effort and never blocks a download.
func openLogFile() io.Writer {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil
	}
	dir := filepath.Join(home, ".vidgrab")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil
	}
	f, err := os.OpenFile(filepath.Join(dir, "vidgrab.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil
	}
	return f
}

func GetLogger(component string) zerolog.Logger {
	return log.With().Str("component", component).Logger()
}
