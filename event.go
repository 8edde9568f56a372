package trafficlight

import (
	"time"

	"github.com/google/uuid"
)

// PhaseChange records one toggle published by a light's cycling loop
type PhaseChange struct {
	ID        uuid.UUID
	LightID   uuid.UUID
	From      Phase
	To        Phase
	Sequence  uint64
	Interval  time.Duration
	Timestamp time.Time
}

// NewPhaseChange creates a phase change event for the given light
func NewPhaseChange(lightID uuid.UUID, from Phase, sequence uint64, interval time.Duration, at time.Time) PhaseChange {
	return PhaseChange{
		ID:        uuid.New(),
		LightID:   lightID,
		From:      from,
		To:        from.Toggle(),
		Sequence:  sequence,
		Interval:  interval,
		Timestamp: at,
	}
}

// TurnedGreen reports whether the change switched the light to Green
func (c PhaseChange) TurnedGreen() bool {
	return c.To == Green
}
