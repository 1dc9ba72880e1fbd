package airtable

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotConfigured — не задан AIRTABLE_API_KEY или AIRTABLE_BASE_ID.
	ErrNotConfigured = errors.New("airtable: api key or base id is not set")
	// ErrNoRecordCreated — провайдер ответил успешно, но не вернул созданную запись.
	ErrNoRecordCreated = errors.New("airtable: no record was created")
)

// APIError — ответ провайдера с кодом вне 2xx.
type APIError struct {
	StatusCode int
	Type       string
	Message    string
}

func (e *APIError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "airtable: status %d", e.StatusCode)
	if e.Type != "" {
		b.WriteString(" " + e.Type)
	}
	if e.Message != "" {
		b.WriteString(": " + e.Message)
	}
	return b.String()
}

// parseAPIError — разбирает тело ошибки в обеих формах:
// {"error":{"type":"…","message":"…"}} и {"error":"NOT_FOUND"}.
func parseAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{StatusCode: status}

	var envelope struct {
		Error json.RawMessage `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil || len(envelope.Error) == 0 {
		apiErr.Message = strings.TrimSpace(truncate(string(body), 256))
		return apiErr
	}

	var code string
	if err := json.Unmarshal(envelope.Error, &code); err == nil {
		apiErr.Type = code
		return apiErr
	}

	var detailed struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(envelope.Error, &detailed); err == nil {
		apiErr.Type = detailed.Type
		apiErr.Message = detailed.Message
	}
	return apiErr
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
