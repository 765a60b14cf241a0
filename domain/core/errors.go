package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Structural input errors - surfaced to the caller, fatal for that call
	ErrInsufficientData   = errors.New("insufficient data for aggregation")
	ErrInsufficientGroups = errors.New("insufficient groups for analysis of variance")
	ErrEmptyBatch         = errors.New("no experiment results to compare")

	// Validation errors
	ErrInvalidConfig = errors.New("invalid experiment configuration")

	// Numeric errors - absorbed into absent result fields rather than
	// propagated past the fitting routine that produced them
	ErrNumericFit = errors.New("numeric fit failure")

	// Collaborator errors
	ErrSimulationFailed = errors.New("simulation run failed")
)

// Error constructors with context
func NewConfigError(field string, reason string) error {
	return fmt.Errorf("%w: %s %s", ErrInvalidConfig, field, reason)
}

func NewSimulationError(experiment string, err error) error {
	return fmt.Errorf("%w: experiment %q: %v", ErrSimulationFailed, experiment, err)
}

// Error checking helpers
func IsDataError(err error) bool {
	return errors.Is(err, ErrInsufficientData) ||
		errors.Is(err, ErrInsufficientGroups) ||
		errors.Is(err, ErrEmptyBatch)
}

func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidConfig)
}
