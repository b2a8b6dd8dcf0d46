package main

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/vincent-heng/goblin-clicker/config"
)

// setupLogger configures the global logger. The terminal mode owns the screen,
// logs go to a file there.
func setupLogger(conf config.Config) (io.Closer, error) {
	level, err := zerolog.ParseLevel(conf.LogLevel)
	if err != nil || conf.LogLevel == "" {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if conf.Mode == config.ModeTerminal {
		file, err := os.OpenFile(conf.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			log.Logger = zerolog.Nop()
			return nil, err
		}
		log.Logger = zerolog.New(file).With().Timestamp().Logger()
		return file, nil
	}

	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()
	return nil, nil
}
