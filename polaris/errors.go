package polaris

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// APIError is a non-2xx response from the Polaris API. Message carries the
// error message extracted from the response envelope when one was present.
type APIError struct {
	StatusCode int
	Message    string
	Body       []byte
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("polaris API error (HTTP %d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("polaris API error (HTTP %d)", e.StatusCode)
}

// NotFoundError reports a name or ID that the Polaris organization does not
// define. It covers both client-side lookups that return no match and HTTP
// 404 responses surfaced through IsNotFound.
type NotFoundError struct {
	What string
}

func (e *NotFoundError) Error() string {
	return e.What + " is not defined"
}

// IsNotFound reports whether err represents a missing table, project or other
// entity, either as a NotFoundError or as an HTTP 404 from the API.
func IsNotFound(err error) bool {
	var notFound *NotFoundError
	if errors.As(err, &notFound) {
		return true
	}
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// errorEnvelope covers the two error shapes Polaris responds with:
//
//	{ "code": 400, "message": "Unable to process JSON" }
//	{ "error": { "code": "AlreadyExists", "message": "A table ... exists" } }
type errorEnvelope struct {
	Message string `json:"message"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func extractErrorMessage(body []byte) string {
	var envelope errorEnvelope
	if err := decodeJSONWithNumber(body, &envelope); err != nil {
		return ""
	}
	if strings.TrimSpace(envelope.Message) != "" {
		return envelope.Message
	}
	if envelope.Error == nil {
		return ""
	}
	if strings.TrimSpace(envelope.Error.Message) != "" {
		return envelope.Error.Message
	}
	return strings.TrimSpace(envelope.Error.Code)
}

func newAPIError(statusCode int, body []byte) *APIError {
	message := extractErrorMessage(body)
	if message == "" && statusCode == http.StatusNotFound {
		message = "Not found"
	}
	return &APIError{
		StatusCode: statusCode,
		Message:    message,
		Body:       body,
	}
}
