package catalog

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// FetchError reports a transport failure or a non-2xx response
type FetchError struct {
	Op         string
	URL        string
	StatusCode int // 0 when no response was received
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: %s returned %d", e.Op, e.URL, e.StatusCode)
	}
	return fmt.Sprintf("%s: %s: %v", e.Op, e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Retryable reports whether repeating the request may succeed
func (e *FetchError) Retryable() bool {
	if e.StatusCode == 0 {
		return !errors.Is(e.Err, context.Canceled)
	}
	return e.StatusCode >= http.StatusInternalServerError || e.StatusCode == http.StatusTooManyRequests
}

// DecodeError reports a response body that could not be decoded
type DecodeError struct {
	Op  string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s: decoding response: %v", e.Op, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// APIError carries the "error" message the API puts in failed login,
// signup and rating responses
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}
