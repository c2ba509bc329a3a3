package client

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-resty/resty/v2"
)

// HTTPError is returned for any non-2xx controller response.
type HTTPError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *HTTPError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("controller returned %s", e.Status)
	}
	return fmt.Sprintf("controller returned %s: %s", e.Status, e.Body)
}

// IsStatus reports whether err wraps an HTTPError with the given status code.
func IsStatus(err error, code int) bool {
	var httpErr *HTTPError
	return errors.As(err, &httpErr) && httpErr.StatusCode == code
}

func checkResponse(resp *resty.Response, err error, action string) error {
	if err != nil {
		return fmt.Errorf("%s: %w", action, err)
	}
	if !resp.IsSuccess() {
		status := resp.Status()
		if status == "" {
			status = fmt.Sprintf("%d", resp.StatusCode())
		}
		return fmt.Errorf("%s: %w", action, &HTTPError{
			StatusCode: resp.StatusCode(),
			Status:     status,
			Body:       strings.TrimSpace(resp.String()),
		})
	}
	return nil
}
