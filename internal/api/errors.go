package api

import "fmt"

// RequestError wraps a transport-level failure (timeout, DNS, reset).
type RequestError struct {
	Op  string
	Err error
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("request %s failed: %v", e.Op, e.Err)
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// APIError is a non-2xx response from the platform backend. Message is
// taken from the JSON body when the backend provides one.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("backend returned %d: %s", e.Status, e.Message)
}

// ValidationError is a client-side precondition failure. It never
// reaches the network.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}
