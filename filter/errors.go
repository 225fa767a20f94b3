package filter

import (
	"fmt"
)

// Error types for filter operations
type (
	// CompilationError indicates a filter expression could not be compiled
	CompilationError struct {
		Expression string
		Reason     string
		Err        error
	}

	// EvaluationError indicates a filter could not be evaluated against an entity
	EvaluationError struct {
		Expression string
		Subject    string
		Err        error
	}

	// UnknownPresetError is returned when a named filter is not registered
	UnknownPresetError struct {
		Name string
	}

	// UnavailableHelperError is returned when an expression calls an entity helper
	// the subject does not provide, such as byUser on a book
	UnavailableHelperError struct {
		Name string
	}
)

func (e *CompilationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("compilation error in '%s': %s: %v", e.Expression, e.Reason, e.Err)
	}
	return fmt.Sprintf("compilation error in '%s': %s", e.Expression, e.Reason)
}

func (e *CompilationError) Unwrap() error {
	return e.Err
}

func (e *EvaluationError) Error() string {
	return fmt.Sprintf("evaluation error for filter '%s' on '%s': %v", e.Expression, e.Subject, e.Err)
}

func (e *EvaluationError) Unwrap() error {
	return e.Err
}

func (e *UnknownPresetError) Error() string {
	return fmt.Sprintf("filter preset '%s' not found", e.Name)
}

func (e *UnavailableHelperError) Error() string {
	return fmt.Sprintf("helper '%s' is not available for this subject", e.Name)
}
