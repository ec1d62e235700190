package httpx

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNetwork classifies calls that never produced a response: timeout,
	// DNS failure, refused connection.
	ErrNetwork = errors.New("network error")

	// ErrUnauthorized wraps every 401 so callers can detect the forced
	// sign-out without inspecting status codes.
	ErrUnauthorized = errors.New("unauthorized")
)

// APIError is any non-2xx response the backend returned.
type APIError struct {
	Status int
	Body   []byte
}

func (e *APIError) Error() string {
	return e.Message()
}

func (e *APIError) Unwrap() error {
	if e.Status == 401 {
		return ErrUnauthorized
	}
	return nil
}

// Message extracts a user-presentable message from the response body:
// a plain string body first, then the error/message/detail fields, then a
// synthesized server-error string.
func (e *APIError) Message() string {
	body := strings.TrimSpace(string(e.Body))
	if body != "" {
		var s string
		if err := json.Unmarshal([]byte(body), &s); err == nil && s != "" {
			return s
		}
		var fields map[string]json.RawMessage
		if err := json.Unmarshal([]byte(body), &fields); err == nil {
			for _, key := range []string{"error", "message", "detail"} {
				var v string
				if raw, ok := fields[key]; ok && json.Unmarshal(raw, &v) == nil && v != "" {
					return v
				}
			}
		} else if body[0] != '[' {
			// Non-JSON text body, e.g. a bare error line from a proxy.
			return body
		}
	}
	return fmt.Sprintf("Server error (%d)", e.Status)
}

// ExtractMessage maps any call error to the string shown to the user. Errors
// without a response collapse to the generic network message.
func ExtractMessage(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message()
	}
	return "Network error"
}
