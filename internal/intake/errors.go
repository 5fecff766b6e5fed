package intake

import "fmt"

// AuxError marks a failure in a best-effort post-dispatch step. Callers
// log it and continue; it never blocks the status transition.
type AuxError struct {
	Step string
	Err  error
}

func (e *AuxError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Step, e.Err)
}

func (e *AuxError) Unwrap() error {
	return e.Err
}
