package observers

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/anggasct/trafficlight"
)

// ValidationObserver checks that a light's published changes obey the
// toggle contract: strict alternation starting from RED, gap-free sequence
// numbers and intervals inside the configured range.
type ValidationObserver struct {
	trafficlight.BaseObserver

	minInterval time.Duration
	maxInterval time.Duration
	// slack added to maxInterval to absorb poll granularity
	tolerance time.Duration

	last       map[uuid.UUID]trafficlight.PhaseChange
	violations []string
	mutex      sync.RWMutex
}

// NewValidationObserver creates a validator for lights configured with the
// given interval range
func NewValidationObserver(minInterval, maxInterval, tolerance time.Duration) *ValidationObserver {
	return &ValidationObserver{
		minInterval: minInterval,
		maxInterval: maxInterval,
		tolerance:   tolerance,
		last:        make(map[uuid.UUID]trafficlight.PhaseChange),
		violations:  make([]string, 0),
	}
}

// addViolation must be called with o.mutex held
func (o *ValidationObserver) addViolation(format string, args ...any) {
	o.violations = append(o.violations, fmt.Sprintf(format, args...))
}

// OnPhaseChange validates a toggle against the previous one of the same light
func (o *ValidationObserver) OnPhaseChange(change trafficlight.PhaseChange) {
	o.mutex.Lock()
	defer o.mutex.Unlock()

	if change.To != change.From.Toggle() {
		o.addViolation("change %d: %s -> %s is not a toggle", change.Sequence, change.From, change.To)
	}

	if change.Interval < o.minInterval || change.Interval > o.maxInterval+o.tolerance {
		o.addViolation("change %d: interval %s outside [%s, %s]", change.Sequence, change.Interval, o.minInterval, o.maxInterval)
	}

	previous, seen := o.last[change.LightID]
	switch {
	case !seen:
		if change.From != trafficlight.Red {
			o.addViolation("change %d: first change starts from %s, expected RED", change.Sequence, change.From)
		}
		if change.Sequence != 1 {
			o.addViolation("change %d: first change has sequence %d, expected 1", change.Sequence, change.Sequence)
		}
	default:
		if change.Sequence != previous.Sequence+1 {
			o.addViolation("change %d: follows %d", change.Sequence, previous.Sequence)
		}
		if change.From != previous.To {
			o.addViolation("change %d: starts from %s but light showed %s", change.Sequence, change.From, previous.To)
		}
	}

	o.last[change.LightID] = change
}

// OnError records errors reported by the light as violations
func (o *ValidationObserver) OnError(lightID uuid.UUID, err error) {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	o.addViolation("light %s: %v", lightID, err)
}

// IsValid returns true if no violations were recorded
func (o *ValidationObserver) IsValid() bool {
	o.mutex.RLock()
	defer o.mutex.RUnlock()
	return len(o.violations) == 0
}

// GetViolations returns all recorded violations
func (o *ValidationObserver) GetViolations() []string {
	o.mutex.RLock()
	defer o.mutex.RUnlock()

	result := make([]string, len(o.violations))
	copy(result, o.violations)
	return result
}

// Reset clears all recorded changes and violations
func (o *ValidationObserver) Reset() {
	o.mutex.Lock()
	defer o.mutex.Unlock()

	o.last = make(map[uuid.UUID]trafficlight.PhaseChange)
	o.violations = make([]string, 0)
}
