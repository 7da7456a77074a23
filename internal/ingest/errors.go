package ingest

import "fmt"

// NetworkError is returned when the request fails in transport or the API
// answers with a non-2xx status.
type NetworkError struct {
	URL        string
	StatusCode int    // zero when no response was received
	Body       string // truncated response body for non-2xx answers
	Err        error
}

func (e *NetworkError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fetch forecast: %v", e.Err)
	}
	return fmt.Sprintf("fetch forecast: status %d: %s", e.StatusCode, e.Body)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// MalformedResponseError is returned when the response body is not JSON or
// lacks the daily arrays.
type MalformedResponseError struct {
	Field  string
	Reason string
	Err    error
}

func (e *MalformedResponseError) Error() string {
	msg := "malformed response: "
	if e.Field != "" {
		msg += e.Field + " "
	}
	msg += e.Reason
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *MalformedResponseError) Unwrap() error {
	return e.Err
}
