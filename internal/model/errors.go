package model

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration matches every *ConfigError.
	ErrConfiguration = errors.New("configuration error")
	// ErrInvalidInput matches every *InputError.
	ErrInvalidInput = errors.New("invalid input")
)

// ConfigError reports malformed or contradictory rule configuration.
type ConfigError struct {
	RuleSet string
	Field   string
	Reason  string
}

func (e *ConfigError) Error() string {
	switch {
	case e.RuleSet != "" && e.Field != "":
		return fmt.Sprintf("%s: %s: %s", e.RuleSet, e.Field, e.Reason)
	case e.RuleSet != "":
		return fmt.Sprintf("%s: %s", e.RuleSet, e.Reason)
	default:
		return e.Reason
	}
}

// Is lets errors.Is match ErrConfiguration.
func (e *ConfigError) Is(target error) bool {
	return target == ErrConfiguration
}

// InputError reports a structurally invalid corpus or a violated
// precondition of a computation.
type InputError struct {
	Reason string
}

func (e *InputError) Error() string {
	return "invalid input: " + e.Reason
}

// Is lets errors.Is match ErrInvalidInput.
func (e *InputError) Is(target error) bool {
	return target == ErrInvalidInput
}
