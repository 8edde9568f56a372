// Package observers provides observers for monitoring traffic lights
package observers

import (
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/anggasct/trafficlight"
)

// LoggingObserver writes every light event to a zerolog logger
type LoggingObserver struct {
	mutex  sync.RWMutex
	logger zerolog.Logger
	level  zerolog.Level
}

// NewLoggingObserver creates a logging observer. Phase changes are logged at
// level, lifecycle events at Info and errors at Error.
func NewLoggingObserver(logger zerolog.Logger, level zerolog.Level) *LoggingObserver {
	return &LoggingObserver{
		logger: logger,
		level:  level,
	}
}

// SetLevel changes the level phase changes are logged at
func (o *LoggingObserver) SetLevel(level zerolog.Level) {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	o.level = level
}

func (o *LoggingObserver) snapshot() (zerolog.Logger, zerolog.Level) {
	o.mutex.RLock()
	defer o.mutex.RUnlock()
	return o.logger, o.level
}

// OnPhaseChange logs the toggle
func (o *LoggingObserver) OnPhaseChange(change trafficlight.PhaseChange) {
	logger, level := o.snapshot()
	logger.WithLevel(level).
		Str("light_id", change.LightID.String()).
		Str("event_id", change.ID.String()).
		Str("from", change.From.String()).
		Str("to", change.To.String()).
		Uint64("seq", change.Sequence).
		Dur("interval", change.Interval).
		Time("at", change.Timestamp).
		Msg("phase changed")
}

// OnSimulationStarted logs loop start
func (o *LoggingObserver) OnSimulationStarted(lightID uuid.UUID) {
	logger, _ := o.snapshot()
	logger.Info().Str("light_id", lightID.String()).Msg("simulation started")
}

// OnSimulationStopped logs loop exit
func (o *LoggingObserver) OnSimulationStopped(lightID uuid.UUID) {
	logger, _ := o.snapshot()
	logger.Info().Str("light_id", lightID.String()).Msg("simulation stopped")
}

// OnError logs errors
func (o *LoggingObserver) OnError(lightID uuid.UUID, err error) {
	logger, _ := o.snapshot()
	logger.Error().Err(err).Str("light_id", lightID.String()).Msg("traffic light error")
}
