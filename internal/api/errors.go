package api

import (
	"errors"
	"fmt"
)

// HTTPError is returned for non-2xx responses.
type HTTPError struct {
	Status  int
	Message string
	// Body is the decoded response body (string, map, slice or nil).
	Body any
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

// UnknownError covers network failures, timeouts and malformed responses.
type UnknownError struct {
	Message string
	Err     error
}

func (e *UnknownError) Error() string {
	return e.Message
}

func (e *UnknownError) Unwrap() error { return e.Err }

// IsHTTP reports whether err is an *HTTPError and returns it.
func IsHTTP(err error) (*HTTPError, bool) {
	var he *HTTPError
	if errors.As(err, &he) {
		return he, true
	}
	return nil, false
}

// IsUnknown reports whether err is an *UnknownError.
func IsUnknown(err error) bool {
	var ue *UnknownError
	return errors.As(err, &ue)
}

// newHTTPError derives the message from a string body, a "detail" or
// "message" field, or the status code.
func newHTTPError(status int, body any) *HTTPError {
	msg := ""
	switch b := body.(type) {
	case string:
		msg = b
	case map[string]any:
		if d, ok := b["detail"].(string); ok {
			msg = d
		} else if m, ok := b["message"].(string); ok {
			msg = m
		}
	}
	if msg == "" {
		msg = fmt.Sprintf("request failed with status code %d", status)
	}
	return &HTTPError{Status: status, Message: msg, Body: body}
}

func unknown(msg string, err error) *UnknownError {
	if err != nil {
		msg = fmt.Sprintf("%s: %v", msg, err)
	}
	return &UnknownError{Message: msg, Err: err}
}
