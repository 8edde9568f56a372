package trafficlight

import (
	"errors"
	"fmt"
)

// ErrorCode represents specific error conditions of a traffic light
type ErrorCode int

const (
	// No error occurred
	ErrCodeNone ErrorCode = iota
	// Simulate was called on a light that is already cycling
	ErrCodeAlreadySimulating
	// Stop was called on a light that never started cycling
	ErrCodeNotSimulating
	// The light has been stopped and cannot be used again
	ErrCodeStopped
	// A phase name or value is not RED or GREEN
	ErrCodeInvalidPhase
	// Options are inconsistent
	ErrCodeInvalidConfiguration
	// The background runner refused to start the cycling loop
	ErrCodeRunnerFailed
)

// LightError represents misuse of the traffic light lifecycle
type LightError struct {
	Code      ErrorCode
	Operation string
	Message   string
}

func (e *LightError) Error() string {
	return fmt.Sprintf("traffic light error during %s: %s", e.Operation, e.Message)
}

// Is matches any LightError with the same code, so sentinel values work with
// errors.Is regardless of the operation that produced them.
func (e *LightError) Is(target error) bool {
	other, ok := target.(*LightError)
	if !ok {
		return false
	}
	return e.Code == other.Code
}

// NewLightError creates a new light error
func NewLightError(code ErrorCode, operation string, message string) *LightError {
	return &LightError{
		Code:      code,
		Operation: operation,
		Message:   message,
	}
}

var (
	// ErrAlreadySimulating is returned by Simulate when the loop is running
	ErrAlreadySimulating = NewLightError(ErrCodeAlreadySimulating, "Simulate", "light is already simulating")

	// ErrNotSimulating is returned by Stop on a light that was never started
	ErrNotSimulating = NewLightError(ErrCodeNotSimulating, "Stop", "light is not simulating")

	// ErrStopped is returned once a light has been stopped
	ErrStopped = NewLightError(ErrCodeStopped, "Simulate", "light is stopped")
)

// PhaseError is returned for phase names or values that do not exist
type PhaseError struct {
	Value string
}

func (e *PhaseError) Error() string {
	return fmt.Sprintf("invalid phase '%s': must be RED or GREEN", e.Value)
}

// NewPhaseError creates a new invalid phase error
func NewPhaseError(value string) *PhaseError {
	return &PhaseError{Value: value}
}

// ConfigurationError represents invalid light options
type ConfigurationError struct {
	Option string
	Issue  string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error in %s: %s", e.Option, e.Issue)
}

// NewConfigurationError creates a new configuration error
func NewConfigurationError(option, issue string) *ConfigurationError {
	return &ConfigurationError{
		Option: option,
		Issue:  issue,
	}
}

// RunnerError wraps a failure to start the background loop
type RunnerError struct {
	LightID     string
	OriginalErr error
}

func (e *RunnerError) Error() string {
	return fmt.Sprintf("light '%s' could not start cycling: %v", e.LightID, e.OriginalErr)
}

func (e *RunnerError) Unwrap() error {
	return e.OriginalErr
}

// IsLightError checks if an error is a LightError
func IsLightError(err error) bool {
	var target *LightError
	return errors.As(err, &target)
}

// IsPhaseError checks if an error is a PhaseError
func IsPhaseError(err error) bool {
	var target *PhaseError
	return errors.As(err, &target)
}

// IsConfigurationError checks if an error is a ConfigurationError
func IsConfigurationError(err error) bool {
	var target *ConfigurationError
	return errors.As(err, &target)
}

// GetErrorCode returns the error code for known error types
func GetErrorCode(err error) ErrorCode {
	var (
		lightErr  *LightError
		phaseErr  *PhaseError
		configErr *ConfigurationError
		runnerErr *RunnerError
	)
	switch {
	case err == nil:
		return ErrCodeNone
	case errors.As(err, &lightErr):
		return lightErr.Code
	case errors.As(err, &phaseErr):
		return ErrCodeInvalidPhase
	case errors.As(err, &configErr):
		return ErrCodeInvalidConfiguration
	case errors.As(err, &runnerErr):
		return ErrCodeRunnerFailed
	default:
		return ErrCodeNone
	}
}
