package match

import (
	"fmt"
	"net/http"
)

// ErrorKind classifies a failed submission.
type ErrorKind int

const (
	// Unreachable means the request never got an HTTP response.
	Unreachable ErrorKind = iota
	// Status means the service answered with a non-2xx status.
	Status
	// Malformed means the response body was not valid JSON.
	Malformed
	// TooLarge means the response body exceeded the size limit.
	TooLarge
)

func (k ErrorKind) String() string {
	switch k {
	case Unreachable:
		return "service unreachable"
	case Status:
		return "bad response status"
	case Malformed:
		return "malformed response"
	case TooLarge:
		return "response too large"
	default:
		return "unknown error"
	}
}

// SubmitError describes why a submission to the matching service failed.
type SubmitError struct {
	Kind       ErrorKind
	Endpoint   string
	StatusCode int
	Message    string
	Cause      error
}

func (e *SubmitError) Error() string {
	msg := e.Kind.String()
	if e.Kind == Status && e.StatusCode != 0 {
		msg = fmt.Sprintf("%s: HTTP %d %s", msg, e.StatusCode, http.StatusText(e.StatusCode))
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s (%s): %v", msg, e.Endpoint, e.Cause)
	}
	return fmt.Sprintf("%s (%s)", msg, e.Endpoint)
}

func (e *SubmitError) Unwrap() error {
	return e.Cause
}
