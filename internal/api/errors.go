package api

import "fmt"

// APIError is an application-level failure: the backend answered, but with a
// failure message instead of the expected success fields.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("backend error (status %d): %s", e.Status, e.Message)
	}
	return fmt.Sprintf("backend error (status %d)", e.Status)
}

// DecodeError is a response whose body did not match the expected shape.
// It is kept distinct from APIError so callers can tell a malformed backend
// apart from an unhappy one.
type DecodeError struct {
	Op   string
	Body []byte
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s response: %v", e.Op, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }
