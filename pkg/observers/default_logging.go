package observers

import (
	"os"

	"github.com/rs/zerolog"
)

// NewDefaultLoggingObserver creates a logging observer writing JSON lines to
// stdout, phase changes at Info
func NewDefaultLoggingObserver() *LoggingObserver {
	logger := zerolog.New(os.Stdout).With().
		Timestamp().
		Str("component", "trafficlight").
		Logger()
	return NewLoggingObserver(logger, zerolog.InfoLevel)
}
