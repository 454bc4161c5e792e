package log

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New returns the process logger. Production emits raw JSON for the log
// shipper; anything else gets the console writer.
func New(environment string) zerolog.Logger {
	var logger zerolog.Logger
	if environment == "production" {
		logger = zerolog.New(os.Stdout)
	} else {
		logger = zerolog.New(zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: time.RFC3339,
		})
	}

	if environment == "production" {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	return logger.With().
		Timestamp().
		Str("service", "chantierpro-api").
		Str("env", environment).
		Logger()
}
