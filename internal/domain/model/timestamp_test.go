package model_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/crmclient/internal/domain/model"
)

func TestTimestamp_Unmarshal(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want time.Time
	}{
		{name: "rfc3339 utc", in: `"2024-05-01T10:20:30Z"`, want: time.Date(2024, 5, 1, 10, 20, 30, 0, time.UTC)},
		{name: "rfc3339 offset", in: `"2024-05-01T12:20:30+02:00"`, want: time.Date(2024, 5, 1, 10, 20, 30, 0, time.UTC)},
		{name: "zoneless millis", in: `"2024-05-01T10:20:30.123"`, want: time.Date(2024, 5, 1, 10, 20, 30, 123000000, time.UTC)},
		{name: "zoneless ticks", in: `"2024-05-01T10:20:30.1234567"`, want: time.Date(2024, 5, 1, 10, 20, 30, 123456700, time.UTC)},
		{name: "zoneless seconds", in: `"2024-05-01T10:20:30"`, want: time.Date(2024, 5, 1, 10, 20, 30, 0, time.UTC)},
		{name: "null", in: `null`, want: time.Time{}},
		{name: "empty string", in: `""`, want: time.Time{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ts model.Timestamp
			require.NoError(t, json.Unmarshal([]byte(tt.in), &ts))
			assert.True(t, tt.want.Equal(ts.Time), "got %s", ts.Time)
		})
	}
}

func TestTimestamp_UnmarshalInvalid(t *testing.T) {
	for _, in := range []string{`"yesterday"`, `12345`, `"2024-13-01T00:00:00"`} {
		var ts model.Timestamp
		assert.Error(t, json.Unmarshal([]byte(in), &ts), in)
	}
}

func TestTimestamp_MarshalRFC3339(t *testing.T) {
	ts := model.Timestamp{Time: time.Date(2024, 5, 1, 10, 20, 30, 123000000, time.UTC)}

	out, err := json.Marshal(ts)

	require.NoError(t, err)
	assert.JSONEq(t, `"2024-05-01T10:20:30.123Z"`, string(out))
}

func TestUser_ZonelessCreatedAt(t *testing.T) {
	var u model.User
	require.NoError(t, json.Unmarshal([]byte(`{"id":1,"username":"u","createdAt":"2024-05-01T10:20:30.123"}`), &u))

	assert.Equal(t, 2024, u.CreatedAt.Year())
	assert.Equal(t, time.UTC, u.CreatedAt.Location())
}
