package model

import (
	"bytes"
	"fmt"
	"time"
)

// zonelessLayout matches .NET DateTime values serialised without an offset,
// e.g. "2024-05-01T10:20:30.123". Up to seven fractional digits are accepted.
const zonelessLayout = "2006-01-02T15:04:05.9999999"

// Timestamp is a time.Time that also decodes zone-less timestamps, which
// are read as UTC. It encodes as RFC 3339.
type Timestamp struct {
	time.Time
}

// UnmarshalJSON accepts RFC 3339, zone-less ISO 8601 and null.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		t.Time = time.Time{}
		return nil
	}
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return fmt.Errorf("timestamp %s is not a JSON string", data)
	}

	raw := string(data[1 : len(data)-1])
	if raw == "" {
		t.Time = time.Time{}
		return nil
	}
	if parsed, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		t.Time = parsed
		return nil
	}
	parsed, err := time.ParseInLocation(zonelessLayout, raw, time.UTC)
	if err != nil {
		return fmt.Errorf("parsing timestamp %q: %w", raw, err)
	}
	t.Time = parsed
	return nil
}

// MarshalJSON writes RFC 3339 with nanosecond precision.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.Time.Format(time.RFC3339Nano) + `"`), nil
}
