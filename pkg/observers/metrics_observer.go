package observers

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/anggasct/trafficlight"
)

// MetricsObserver collects metrics about phase cycling
type MetricsObserver struct {
	toggleCounts  map[trafficlight.Phase]int
	phaseTime     map[trafficlight.Phase]time.Duration
	lastInterval  time.Duration
	minInterval   time.Duration
	maxInterval   time.Duration
	totalInterval time.Duration
	toggles       int
	errorCount    int
	running       int
	mutex         sync.RWMutex
}

// NewMetricsObserver creates a new metrics observer
func NewMetricsObserver() *MetricsObserver {
	return &MetricsObserver{
		toggleCounts: make(map[trafficlight.Phase]int),
		phaseTime:    make(map[trafficlight.Phase]time.Duration),
	}
}

// OnPhaseChange records toggle metrics. The interval that elapsed is time
// spent in change.From.
func (o *MetricsObserver) OnPhaseChange(change trafficlight.PhaseChange) {
	o.mutex.Lock()
	defer o.mutex.Unlock()

	o.toggleCounts[change.To]++
	o.phaseTime[change.From] += change.Interval

	o.toggles++
	o.totalInterval += change.Interval
	o.lastInterval = change.Interval
	if o.toggles == 1 || change.Interval < o.minInterval {
		o.minInterval = change.Interval
	}
	if change.Interval > o.maxInterval {
		o.maxInterval = change.Interval
	}
}

// OnSimulationStarted counts running lights
func (o *MetricsObserver) OnSimulationStarted(lightID uuid.UUID) {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	o.running++
}

// OnSimulationStopped counts running lights
func (o *MetricsObserver) OnSimulationStopped(lightID uuid.UUID) {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	o.running--
}

// OnError records error metrics
func (o *MetricsObserver) OnError(lightID uuid.UUID, err error) {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	o.errorCount++
}

// GetToggleCounts returns how many times each phase was switched to
func (o *MetricsObserver) GetToggleCounts() map[trafficlight.Phase]int {
	o.mutex.RLock()
	defer o.mutex.RUnlock()

	result := make(map[trafficlight.Phase]int)
	for phase, count := range o.toggleCounts {
		result[phase] = count
	}
	return result
}

// GetPhaseTimeSpent returns the completed time spent in each phase
func (o *MetricsObserver) GetPhaseTimeSpent() map[trafficlight.Phase]time.Duration {
	o.mutex.RLock()
	defer o.mutex.RUnlock()

	result := make(map[trafficlight.Phase]time.Duration)
	for phase, d := range o.phaseTime {
		result[phase] = d
	}
	return result
}

// IntervalStats summarises observed intervals
type IntervalStats struct {
	Count int
	Last  time.Duration
	Min   time.Duration
	Max   time.Duration
	Mean  time.Duration
}

// GetIntervalStats returns statistics of the intervals between toggles
func (o *MetricsObserver) GetIntervalStats() IntervalStats {
	o.mutex.RLock()
	defer o.mutex.RUnlock()

	stats := IntervalStats{
		Count: o.toggles,
		Last:  o.lastInterval,
		Min:   o.minInterval,
		Max:   o.maxInterval,
	}
	if o.toggles > 0 {
		stats.Mean = o.totalInterval / time.Duration(o.toggles)
	}
	return stats
}

// GetRunningCount returns the number of lights currently simulating
func (o *MetricsObserver) GetRunningCount() int {
	o.mutex.RLock()
	defer o.mutex.RUnlock()
	return o.running
}

// GetErrorCount returns the number of errors
func (o *MetricsObserver) GetErrorCount() int {
	o.mutex.RLock()
	defer o.mutex.RUnlock()
	return o.errorCount
}

// Reset resets all metrics except the running count
func (o *MetricsObserver) Reset() {
	o.mutex.Lock()
	defer o.mutex.Unlock()

	o.toggleCounts = make(map[trafficlight.Phase]int)
	o.phaseTime = make(map[trafficlight.Phase]time.Duration)
	o.lastInterval = 0
	o.minInterval = 0
	o.maxInterval = 0
	o.totalInterval = 0
	o.toggles = 0
	o.errorCount = 0
}
