package trafficlight

import "strings"

// Phase is the signal shown by a traffic light
type Phase uint32

const (
	// Red is the initial phase of every light
	Red Phase = iota
	// Green lets waiting traffic through
	Green
)

// String returns the phase name
func (p Phase) String() string {
	switch p {
	case Red:
		return "RED"
	case Green:
		return "GREEN"
	default:
		return "UNKNOWN"
	}
}

// Toggle returns the opposite phase
func (p Phase) Toggle() Phase {
	if p == Green {
		return Red
	}
	return Green
}

// IsValid reports whether p is one of the two defined phases
func (p Phase) IsValid() bool {
	return p == Red || p == Green
}

// ParsePhase converts a phase name, in any letter case, to a Phase
func ParsePhase(name string) (Phase, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "RED":
		return Red, nil
	case "GREEN":
		return Green, nil
	default:
		return Red, NewPhaseError(name)
	}
}

// MarshalText implements encoding.TextMarshaler
func (p Phase) MarshalText() ([]byte, error) {
	if !p.IsValid() {
		return nil, NewPhaseError(p.String())
	}
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (p *Phase) UnmarshalText(text []byte) error {
	parsed, err := ParsePhase(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
