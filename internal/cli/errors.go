package cli

import "fmt"

// UsageError reports a malformed invocation: an unknown command, an unknown
// flag, a bad value type, or a missing required flag. The process exits
// with code 2 and no handler is called.
type UsageError struct {
	Message string
}

// Error implements the error interface.
func (e *UsageError) Error() string {
	return e.Message
}

// HandlerError wraps a failure raised by a dispatched handler. The
// dispatcher performs no recovery; the error propagates to the process
// boundary unmodified apart from this wrapper.
type HandlerError struct {
	Command string
	Err     error
}

// Error implements the error interface.
func (e *HandlerError) Error() string {
	return fmt.Sprintf("command %q failed: %v", e.Command, e.Err)
}

// Unwrap exposes the handler's original error to errors.Is and errors.As.
func (e *HandlerError) Unwrap() error {
	return e.Err
}
