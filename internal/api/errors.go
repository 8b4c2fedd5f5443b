package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// HTTPError is an explicit server response with a failure status. Its
// absence on a failed call means the failure was transport-level (no
// response at all), which the session layer treats very differently:
// transport failures must never destroy the local identity.
type HTTPError struct {
	Status int
	Detail string
	Body   []byte
}

func (e *HTTPError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("http %d: %s", e.Status, e.Detail)
	}
	return fmt.Sprintf("http %d", e.Status)
}

// IsUnauthenticated reports an explicit credentials-rejected response.
func IsUnauthenticated(err error) bool {
	var he *HTTPError
	return errors.As(err, &he) && he.Status == http.StatusUnauthorized
}

// IsTransport reports a failure with no server response.
func IsTransport(err error) bool {
	if err == nil {
		return false
	}
	var he *HTTPError
	return !errors.As(err, &he)
}

// ErrorMessage extracts a human-readable message: the structured body's
// detail when present, else the raw error text.
func ErrorMessage(err error) string {
	var he *HTTPError
	if errors.As(err, &he) {
		if he.Detail != "" {
			return he.Detail
		}
		if len(he.Body) > 0 {
			return strings.TrimSpace(string(he.Body))
		}
	}
	return err.Error()
}

// extractDetail pulls the DRF-style "detail" field out of an error body.
// Bodies that are field-error maps get flattened to their first message.
func extractDetail(body []byte) string {
	var structured map[string]json.RawMessage
	if err := json.Unmarshal(body, &structured); err != nil {
		return ""
	}
	if raw, ok := structured["detail"]; ok {
		var detail string
		if json.Unmarshal(raw, &detail) == nil {
			return detail
		}
	}
	for field, raw := range structured {
		var msgs []string
		if json.Unmarshal(raw, &msgs) == nil && len(msgs) > 0 {
			return fmt.Sprintf("%s: %s", field, msgs[0])
		}
		var msg string
		if json.Unmarshal(raw, &msg) == nil && msg != "" {
			return fmt.Sprintf("%s: %s", field, msg)
		}
	}
	return ""
}
