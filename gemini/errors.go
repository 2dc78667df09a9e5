package gemini

import (
	"errors"
	"fmt"
)

// ErrNoContent means the API answered successfully but carried no usable
// text, typically because a safety filter blocked the candidate.
var ErrNoContent = errors.New("no content extracted from response")

// APIError is a non-2xx answer from the API.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("gemini api error, status: %d, body: %s", e.StatusCode, e.Body)
}
