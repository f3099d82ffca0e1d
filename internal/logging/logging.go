// Package logging sets up the structured debug log. The TUI owns the
// terminal, so debug output always goes to a file.
package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
)

// DebugLogPath is the fixed path for debug logs.
const DebugLogPath = "divan-debug.log"

var logger = zerolog.Nop()

// Init configures the debug logger. When debug is disabled every log call is
// a no-op. The returned closer flushes and closes the log file.
func Init(debug bool) (io.Closer, error) {
	if !debug {
		logger = zerolog.Nop()
		return io.NopCloser(nil), nil
	}

	f, err := os.Create(DebugLogPath)
	if err != nil {
		return nil, fmt.Errorf("creating debug log: %w", err)
	}

	logger = zerolog.New(f).With().Timestamp().Logger().Level(zerolog.DebugLevel)
	logger.Debug().Msg("debug log started")
	return f, nil
}

// L returns the active logger.
func L() *zerolog.Logger {
	return &logger
}
