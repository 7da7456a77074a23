package httputil

import (
	"net/http"
	"time"
)

// UserAgent identifies parisweather to upstream APIs.
const UserAgent = "parisweather/1.0"

// NewClient returns an HTTP client. A zero timeout leaves requests unbounded
// apart from context cancellation.
func NewClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
	}
}
