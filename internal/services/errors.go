package services

import "fmt"

// Error is the single failure type surfaced by the service layer. Callers
// only learn that Op failed; Err is kept for logging.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("note service: %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func wrap(op string, err error) error {
	return &Error{Op: op, Err: err}
}
