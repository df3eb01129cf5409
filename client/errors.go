package client

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/pkg/errors"
)

// ErrNoSchool is returned when a manager has no driving school yet.
var ErrNoSchool = errors.New("no driving school registered")

// APIError is a non-2xx response from the server, carrying the message the
// server chose to expose.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	return e.Detail
}

// IsNotFound reports whether err is an APIError with status 404.
func IsNotFound(err error) bool {
	apiErr, ok := err.(*APIError)
	return ok && apiErr.StatusCode == http.StatusNotFound
}

// decodeError surfaces the server's "detail" message, falling back to
// "error", then to a generic message.
func decodeError(res *http.Response, body []byte) *APIError {
	var payload struct {
		Detail json.RawMessage `json:"detail"`
		Error  string          `json:"error"`
	}
	apiErr := &APIError{StatusCode: res.StatusCode}

	if err := json.Unmarshal(body, &payload); err == nil {
		if len(payload.Detail) > 0 {
			var detail string
			if err := json.Unmarshal(payload.Detail, &detail); err == nil {
				apiErr.Detail = detail
			} else {
				// structured validation details
				apiErr.Detail = string(payload.Detail)
			}
		} else if payload.Error != "" {
			apiErr.Detail = payload.Error
		}
	}
	if apiErr.Detail == "" {
		apiErr.Detail = fmt.Sprintf("request failed with status %d", res.StatusCode)
	}
	return apiErr
}
