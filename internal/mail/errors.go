package mail

import "fmt"

// TransportError wraps any failure in the SMTP transaction: connect,
// negotiation, auth, or message submission. The dispatch engine treats all
// stages identically as a per-recipient failure.
type TransportError struct {
	Stage string
	Err   error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("smtp %s: %v", e.Stage, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

func transportErr(stage string, err error) *TransportError {
	return &TransportError{Stage: stage, Err: err}
}
