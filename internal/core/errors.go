package core

import "fmt"

// ValidationError indicates bad input shape or length. Maps to HTTP 400;
// the message is safe to show to the caller.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

func NewValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// UpstreamError indicates that an inference provider was unreachable, timed
// out, or returned a non-success status. Status is the provider's HTTP status
// code, or 0 when the request never completed. The message never carries
// provider response bodies or credentials.
type UpstreamError struct {
	Status  int
	Timeout bool
	Reason  string
}

func (e *UpstreamError) Error() string {
	if e.Reason != "" {
		return e.Reason
	}
	if e.Timeout {
		return "inference provider timed out"
	}
	if e.Status != 0 {
		return fmt.Sprintf("inference provider returned status %d", e.Status)
	}
	return "inference provider unreachable"
}

// ExtractionError indicates that the provider returned content that cannot
// be coerced into the expected translation shape. The offending raw text is
// kept internal and never echoed back to the caller.
type ExtractionError struct {
	Reason string
	Err    error
}

func (e *ExtractionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("extract translation: %s: %v", e.Reason, e.Err)
	}
	return "extract translation: " + e.Reason
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}
