package agents

import (
	"fmt"
	"time"
)

// Error tags a provider failure with the agent that raised it.
type Error struct {
	Agent string
	Cause error
}

func (e *Error) Error() string {
	return fmt.Sprintf("agent %q: %v", e.Agent, e.Cause)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// TimeoutError indicates an agent call exceeded its ceiling and was
// abandoned.
type TimeoutError struct {
	Agent   string
	Timeout time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("agent %q timed out after %s", e.Agent, e.Timeout)
}

// Text returns the message a caller should surface for an agent failure:
// the root cause for tagged errors, the full text otherwise.
func Text(err error) string {
	if err == nil {
		return ""
	}
	if tagged, ok := err.(*Error); ok && tagged.Cause != nil {
		return tagged.Cause.Error()
	}
	return err.Error()
}
