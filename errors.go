package html2pdf

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Sentinel errors for conversion preconditions and outcomes.
var (
	ErrMissingHTML          = errors.New("HTML content is required when reading from stdin")
	ErrEmptySource          = errors.New("document source cannot be empty")
	ErrRendererNotInstalled = errors.New("renderer not installed")
	ErrInvalidTimeout       = errors.New("timeout cannot be negative")

	// Process outcome errors, wrapped by ProcessError.
	ErrRendererFailed = errors.New("renderer failed")
	ErrOutputNotFound = errors.New("output file not found")

	// ErrDelivery wraps failures of the caller's Writer or Callback.
	ErrDelivery = errors.New("PDF delivery failed")
)

// ConfigError reports a precondition that failed before any process was
// started. Err is one of the sentinels above, possibly wrapped.
type ConfigError struct {
	Err error
}

func (e *ConfigError) Error() string {
	return "conversion config: " + e.Err.Error()
}

func (e *ConfigError) Unwrap() error { return e.Err }

// TimeoutError reports a renderer that did not exit in time, or whose
// caller gave up first. The renderer has been killed when this is returned.
type TimeoutError struct {
	Source  string
	Timeout time.Duration
	Err     error // context.DeadlineExceeded or context.Canceled
}

func (e *TimeoutError) Error() string {
	if e.Canceled() {
		return fmt.Sprintf("conversion of %q canceled", e.Source)
	}
	return fmt.Sprintf("conversion of %q timed out after %s", e.Source, e.Timeout)
}

func (e *TimeoutError) Unwrap() error { return e.Err }

// Canceled reports whether the caller's context was canceled, as opposed to
// the conversion deadline expiring.
func (e *TimeoutError) Canceled() bool {
	return errors.Is(e.Err, context.Canceled)
}

// ProcessError reports a renderer that exited without producing output.
type ProcessError struct {
	Source   string
	ExitCode int
	Output   string // captured stderr, or "exit code N" when not captured
	Err      error  // ErrRendererFailed or ErrOutputNotFound
}

func (e *ProcessError) Error() string {
	if e.Output == "" {
		return fmt.Sprintf("converting %q: %v", e.Source, e.Err)
	}
	return fmt.Sprintf("converting %q: %v: %s", e.Source, e.Err, e.Output)
}

func (e *ProcessError) Unwrap() error { return e.Err }
