// Package validation sanitizes caller-supplied inputs before any pipeline
// work runs: blog URLs are screened against SSRF targets and free-text
// fields are length-capped.
package validation

import "fmt"

// Error represents a general validation error
type Error struct {
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("validation error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// URLError indicates a blog URL failed the SSRF screen
type URLError struct {
	URL     string
	Message string
}

func (e *URLError) Error() string {
	return fmt.Sprintf("invalid blog URL %q: %s", e.URL, e.Message)
}

// LengthError indicates an input exceeded its cap
type LengthError struct {
	Field string
	Max   int
	Got   int
}

func (e *LengthError) Error() string {
	return fmt.Sprintf("%s exceeds maximum length: %d > %d", e.Field, e.Got, e.Max)
}
