package granitectl

import (
	"fmt"
	"strings"
	"time"
)

// NotFoundError reports that a required file — the engine binary or a
// database file — does not exist.
type NotFoundError struct {
	Msg string
}

func (e *NotFoundError) Error() string { return e.Msg }

// notFoundAt builds a NotFoundError for a missing engine binary, with
// remediation text naming the resolution source.
func notFoundAt(loc Location) *NotFoundError {
	switch loc.Provenance {
	case ProvenanceEnvOverride:
		return &NotFoundError{Msg: fmt.Sprintf(
			"granitectl not found at %s (set via %s); fix or unset the variable", loc.Path, EnvPathOverride)}
	case ProvenanceBuildLayout:
		return &NotFoundError{Msg: fmt.Sprintf(
			"granitectl not found at %s; set %s to the engine binary", loc.Path, EnvPathOverride)}
	default:
		return &NotFoundError{Msg: fmt.Sprintf(
			"granitectl not found on PATH; install it or set %s", EnvPathOverride)}
	}
}

// ValidationError reports invalid request input, rejected before any
// invocation is attempted.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// ExecutionError reports a spawn or wait failure that is not an absence.
type ExecutionError struct {
	Err error
}

func (e *ExecutionError) Error() string { return fmt.Sprintf("failed to run granitectl: %v", e.Err) }
func (e *ExecutionError) Unwrap() error { return e.Err }

// TimeoutError reports that an invocation exceeded the fixed budget and the
// engine process was killed. Output captured up to that point is discarded:
// partial output cannot be told apart from a complete result.
type TimeoutError struct {
	Budget time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("granitectl timed out after %s", e.Budget)
}

// ExitError reports that the engine ran but exited with a failure status. It
// carries the engine's stderr verbatim when there was any.
type ExitError struct {
	Stderr string
}

func (e *ExitError) Error() string {
	if s := strings.TrimSpace(e.Stderr); s != "" {
		return s
	}
	return "granitectl returned an error"
}

// ParseError reports engine output that matched neither the modern JSON shape
// nor the expected legacy text shape.
type ParseError struct {
	Msg string
}

func (e *ParseError) Error() string { return e.Msg }

func parseErrorf(format string, args ...any) *ParseError {
	return &ParseError{Msg: fmt.Sprintf(format, args...)}
}
