package api

import (
	"encoding/json"
	"net/http"
)

// FieldError is one entry of a server-side validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// APIError represents a non-2xx response from the Sağlık Hep API.
// Error bodies carry a message field and, for validation failures, a
// per-field errors array.
type APIError struct {
	Status  int
	Message string
	Errors  []FieldError
}

func (e *APIError) Error() string {
	return e.Message
}

func decodeAPIError(resp *http.Response) error {
	var body struct {
		Message string       `json:"message"`
		Errors  []FieldError `json:"errors"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&body)
	msg := body.Message
	if msg == "" {
		msg = resp.Status
	}
	return &APIError{Status: resp.StatusCode, Message: msg, Errors: body.Errors}
}
