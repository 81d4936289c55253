package api

import "fmt"

// NetworkError means the request never produced a server response: refused
// connection, DNS failure, timeout.
type NetworkError struct {
	Op  string
	URL string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// HTTPError means the server answered with a non-2xx status. Body is kept so
// callers can surface the server's message.
type HTTPError struct {
	Op     string
	URL    string
	Status int
	Body   []byte
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%s %s: status %d: %s", e.Op, e.URL, e.Status, string(e.Body))
}

// ValidationError is a client-side rejection before any request is issued.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
