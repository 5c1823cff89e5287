package pebble

import (
	"os"

	"github.com/cockroachdb/pebble"

	"github.com/ioremap/wpmigrate/internal/logger"
)

// pebbleLogger routes Pebble's internal logging through the
// application logger so it honours --verbose.
type pebbleLogger struct{}

var _ pebble.Logger = pebbleLogger{}

func (pebbleLogger) Infof(format string, args ...any) {
	logger.Debug("pebble: "+format, args...)
}

func (pebbleLogger) Errorf(format string, args ...any) {
	logger.Error("pebble: "+format, args...)
}

func (pebbleLogger) Fatalf(format string, args ...any) {
	logger.Error("pebble: "+format, args...)
	os.Exit(1)
}
