package api

import (
	"encoding/json"
	"errors"
	"fmt"
)

// APIError is a non-2xx response from the SpaceTraders API.
//
// The API wraps failures as {"error": {"message", "code", "data"}}. The parsed
// fields are filled when the body has that shape; Body always holds the raw
// payload so nothing the server said is lost.
type APIError struct {
	Method     string
	Path       string
	StatusCode int
	Code       int
	Message    string
	Data       map[string]interface{}
	Body       string
}

type errorEnvelope struct {
	Error struct {
		Message string                 `json:"message"`
		Code    int                    `json:"code"`
		Data    map[string]interface{} `json:"data"`
	} `json:"error"`
}

func newAPIError(method, path string, statusCode int, body []byte) *APIError {
	apiErr := &APIError{
		Method:     method,
		Path:       path,
		StatusCode: statusCode,
		Body:       string(body),
	}

	var envelope errorEnvelope
	if err := json.Unmarshal(body, &envelope); err == nil {
		apiErr.Code = envelope.Error.Code
		apiErr.Message = envelope.Error.Message
		apiErr.Data = envelope.Error.Data
	}

	return apiErr
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("API error (status %d, code %d): %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("API error (status %d): %s", e.StatusCode, e.Body)
}

// Metadata returns the fields worth attaching to a log line
func (e *APIError) Metadata() map[string]interface{} {
	return map[string]interface{}{
		"status_code": e.StatusCode,
		"error_code":  e.Code,
		"error_body":  e.Body,
		"endpoint":    e.Method + " " + e.Path,
	}
}

// TransportError means the request never completed: DNS, connect, timeout,
// a truncated body, or a 2xx response that could not be decoded.
type TransportError struct {
	Method string
	Path   string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.Path, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// AsAPIError unwraps err looking for an *APIError
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// IsStatus reports whether err is an APIError with the given HTTP status
func IsStatus(err error, statusCode int) bool {
	apiErr, ok := AsAPIError(err)
	return ok && apiErr.StatusCode == statusCode
}
