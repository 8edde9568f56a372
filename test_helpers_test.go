package trafficlight

import (
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
)

// TestObserver is a mock observer for testing that captures all observer events
type TestObserver struct {
	mutex   sync.RWMutex
	Changes []PhaseChange
	Started []uuid.UUID
	Stopped []uuid.UUID
	Errors  []error
}

// NewTestObserver creates a new test observer
func NewTestObserver() *TestObserver {
	return &TestObserver{
		Changes: make([]PhaseChange, 0),
		Started: make([]uuid.UUID, 0),
		Stopped: make([]uuid.UUID, 0),
		Errors:  make([]error, 0),
	}
}

func (o *TestObserver) OnPhaseChange(change PhaseChange) {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	o.Changes = append(o.Changes, change)
}

func (o *TestObserver) OnSimulationStarted(lightID uuid.UUID) {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	o.Started = append(o.Started, lightID)
}

func (o *TestObserver) OnSimulationStopped(lightID uuid.UUID) {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	o.Stopped = append(o.Stopped, lightID)
}

func (o *TestObserver) OnError(lightID uuid.UUID, err error) {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	o.Errors = append(o.Errors, err)
}

func (o *TestObserver) ChangeCount() int {
	o.mutex.RLock()
	defer o.mutex.RUnlock()
	return len(o.Changes)
}

func (o *TestObserver) StartedCount() int {
	o.mutex.RLock()
	defer o.mutex.RUnlock()
	return len(o.Started)
}

func (o *TestObserver) StoppedCount() int {
	o.mutex.RLock()
	defer o.mutex.RUnlock()
	return len(o.Stopped)
}

func (o *TestObserver) ErrorCount() int {
	o.mutex.RLock()
	defer o.mutex.RUnlock()
	return len(o.Errors)
}

func (o *TestObserver) SnapshotChanges() []PhaseChange {
	o.mutex.RLock()
	defer o.mutex.RUnlock()
	result := make([]PhaseChange, len(o.Changes))
	copy(result, o.Changes)
	return result
}

// panickingObserver panics on every phase change and records the errors it
// is told about
type panickingObserver struct{ *TestObserver }

func (o *panickingObserver) OnPhaseChange(change PhaseChange) {
	panic("observer exploded")
}

const (
	fastMin = 50 * time.Millisecond
	fastMax = 80 * time.Millisecond
)

// newFastLight creates a light cycling every few tens of milliseconds and
// stops it when the test ends.
func newFastLight(t *testing.T, opts ...Option) *TrafficLight {
	t.Helper()

	all := append([]Option{
		WithInterval(fastMin, fastMax),
		WithPollInterval(time.Millisecond),
	}, opts...)

	light, err := New(all...)
	if err != nil {
		t.Fatalf("Expected no error creating light, got: %v", err)
	}
	t.Cleanup(func() { _ = light.Stop() })
	return light
}

// AssertPhase checks the light's current phase
func AssertPhase(t *testing.T, light *TrafficLight, expected Phase) {
	t.Helper()
	if actual := light.CurrentPhase(); actual != expected {
		t.Errorf("Expected phase %s, got %s", expected, actual)
	}
}

// waitFor runs fn in a goroutine and fails the test if it does not return
// within timeout.
func waitFor(t *testing.T, timeout time.Duration, fn func()) time.Duration {
	t.Helper()

	start := time.Now()
	done := make(chan struct{})
	go func() {
		fn()
		close(done)
	}()

	select {
	case <-done:
		return time.Since(start)
	case <-time.After(timeout):
		t.Fatalf("operation did not return within %s", timeout)
		return 0
	}
}
