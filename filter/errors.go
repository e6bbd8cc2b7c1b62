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

	// EvaluationError indicates a filter could not be evaluated against a movie
	EvaluationError struct {
		Expression string
		MovieID    int
		Err        error
	}

	// PresetNotFoundError indicates a named preset is not configured
	PresetNotFoundError struct {
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
	return fmt.Sprintf("evaluation error for filter '%s' on movie %d: %v", e.Expression, e.MovieID, e.Err)
}

func (e *EvaluationError) Unwrap() error {
	return e.Err
}

func (e *PresetNotFoundError) Error() string {
	return fmt.Sprintf("preset '%s' not found in config", e.Name)
}
