package model

import "fmt"

// Severity labels a rule as a deterministic violation or a reviewer hint.
// It is set in configuration and copied onto every finding of the rule.
type Severity int

const (
	SeverityHard     Severity = 0
	SeverityAdvisory Severity = 1
)

// SeverityName returns the configuration label for a severity.
func SeverityName(s Severity) string {
	switch s {
	case SeverityHard:
		return "hard"
	case SeverityAdvisory:
		return "advisory"
	default:
		return "unknown"
	}
}

// SeverityFromName maps a configuration label to its Severity.
// Returns -1 for unknown names.
func SeverityFromName(name string) Severity {
	switch name {
	case "hard":
		return SeverityHard
	case "advisory":
		return SeverityAdvisory
	default:
		return -1
	}
}

// String implements fmt.Stringer.
func (s Severity) String() string {
	return SeverityName(s)
}

// MarshalText encodes the severity by name.
func (s Severity) MarshalText() ([]byte, error) {
	if s != SeverityHard && s != SeverityAdvisory {
		return nil, fmt.Errorf("invalid severity %d", int(s))
	}
	return []byte(SeverityName(s)), nil
}

// UnmarshalText decodes a severity name.
func (s *Severity) UnmarshalText(text []byte) error {
	parsed := SeverityFromName(string(text))
	if parsed < 0 {
		return fmt.Errorf("unknown severity %q (want hard or advisory)", string(text))
	}
	*s = parsed
	return nil
}
