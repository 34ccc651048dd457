package summary

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// HTTPTime renders as an RFC 7231 date, e.g. "Tue, 25 Jan 2011 18:44:36 GMT".
type HTTPTime struct {
	time.Time
}

// MarshalJSON implements json.Marshaler.
func (t HTTPTime) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.UTC().Format(http.TimeFormat))
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *HTTPTime) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		t.Time = time.Time{}
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("createdAt: %w", err)
	}
	parsed, err := http.ParseTime(s)
	if err != nil {
		return fmt.Errorf("createdAt: %w", err)
	}
	t.Time = parsed
	return nil
}
