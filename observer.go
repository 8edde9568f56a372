package trafficlight

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// Observer represents an entity that observes a light's phase changes
type Observer interface {
	// OnPhaseChange is called from the cycling loop after each toggle
	OnPhaseChange(change PhaseChange)
}

// ExtendedObserver provides additional optional observation methods
type ExtendedObserver interface {
	Observer

	// OnSimulationStarted is called when the cycling loop starts
	OnSimulationStarted(lightID uuid.UUID)

	// OnSimulationStopped is called when the cycling loop exits
	OnSimulationStopped(lightID uuid.UUID)

	// OnError is called when an observer panics or the loop fails
	OnError(lightID uuid.UUID, err error)
}

// BaseObserver provides a default implementation with no-op methods
type BaseObserver struct{}

// OnPhaseChange implements the required Observer method
func (o *BaseObserver) OnPhaseChange(change PhaseChange) {}

// OnSimulationStarted implements the optional ExtendedObserver method
func (o *BaseObserver) OnSimulationStarted(lightID uuid.UUID) {}

// OnSimulationStopped implements the optional ExtendedObserver method
func (o *BaseObserver) OnSimulationStopped(lightID uuid.UUID) {}

// OnError implements the optional ExtendedObserver method
func (o *BaseObserver) OnError(lightID uuid.UUID, err error) {}

// ObserverManager manages a collection of observers
type ObserverManager struct {
	mutex     sync.RWMutex
	observers []Observer
}

// NewObserverManager creates a new observer manager
func NewObserverManager() *ObserverManager {
	return &ObserverManager{
		observers: make([]Observer, 0),
	}
}

// AddObserver adds an observer to the manager
func (om *ObserverManager) AddObserver(observer Observer) {
	om.mutex.Lock()
	defer om.mutex.Unlock()
	om.observers = append(om.observers, observer)
}

// RemoveObserver removes an observer from the manager
func (om *ObserverManager) RemoveObserver(observer Observer) {
	om.mutex.Lock()
	defer om.mutex.Unlock()

	for i, obs := range om.observers {
		if obs == observer {
			om.observers = append(om.observers[:i], om.observers[i+1:]...)
			break
		}
	}
}

// Count returns the number of registered observers
func (om *ObserverManager) Count() int {
	om.mutex.RLock()
	defer om.mutex.RUnlock()
	return len(om.observers)
}

func (om *ObserverManager) snapshot() []Observer {
	om.mutex.RLock()
	defer om.mutex.RUnlock()

	observers := make([]Observer, len(om.observers))
	copy(observers, om.observers)
	return observers
}

// NotifyPhaseChange notifies all observers of a toggle. A panicking observer
// is reported through OnError and does not affect the others.
func (om *ObserverManager) NotifyPhaseChange(change PhaseChange) {
	for _, observer := range om.snapshot() {
		func() {
			defer func() {
				if r := recover(); r != nil {
					if extObs, ok := observer.(ExtendedObserver); ok {
						func() {
							defer func() { recover() }()
							extObs.OnError(change.LightID, fmt.Errorf("observer panic in OnPhaseChange: %v", r))
						}()
					}
				}
			}()
			observer.OnPhaseChange(change)
		}()
	}
}

// NotifySimulationStarted notifies all observers that the loop has started
func (om *ObserverManager) NotifySimulationStarted(lightID uuid.UUID) {
	for _, observer := range om.snapshot() {
		if extObs, ok := observer.(ExtendedObserver); ok {
			extObs.OnSimulationStarted(lightID)
		}
	}
}

// NotifySimulationStopped notifies all observers that the loop has exited
func (om *ObserverManager) NotifySimulationStopped(lightID uuid.UUID) {
	for _, observer := range om.snapshot() {
		if extObs, ok := observer.(ExtendedObserver); ok {
			extObs.OnSimulationStopped(lightID)
		}
	}
}

// NotifyError notifies all observers of errors
func (om *ObserverManager) NotifyError(lightID uuid.UUID, err error) {
	for _, observer := range om.snapshot() {
		if extObs, ok := observer.(ExtendedObserver); ok {
			extObs.OnError(lightID, err)
		}
	}
}
