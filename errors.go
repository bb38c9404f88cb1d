package waykit

import (
	"fmt"
	"strconv"
)

// MissingFieldError reports a required key absent from a response or
// request document.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing required field %q", e.Field)
}

// UnknownLaneIndicationError reports a lane indication token this library
// does not recognize, which usually means the service started emitting a
// new one.
type UnknownLaneIndicationError struct {
	Token string
}

func (e *UnknownLaneIndicationError) Error() string {
	return fmt.Sprintf("unrecognized lane indication %q", e.Token)
}

// APIError is a failure reported by the routing service. For non-200
// replies StatusCode carries the HTTP status; a 200 reply whose envelope
// code is not "Ok" produces an APIError with StatusCode 200.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	switch {
	case e.Message != "" && e.Code != "":
		return fmt.Sprintf("routing service: %s: %s", e.Code, e.Message)
	case e.Code != "":
		return "routing service: " + e.Code
	default:
		return "routing service: HTTP " + strconv.Itoa(e.StatusCode)
	}
}
