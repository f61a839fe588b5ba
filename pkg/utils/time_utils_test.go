package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDayCount(t *testing.T) {
	tests := []struct {
		start string
		end   string
		want  int
	}{
		{"2025-06-01", "2025-06-01", 1},
		{"2025-06-01", "2025-06-03", 3},
		{"2025-12-30", "2026-01-02", 4},
	}

	for _, tt := range tests {
		got, err := DayCount(tt.start, tt.end)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "%s..%s", tt.start, tt.end)
	}
}

func TestDayCountRejectsBadInput(t *testing.T) {
	_, err := DayCount("2025-06-03", "2025-06-01")
	assert.Error(t, err)

	_, err = DayCount("06/01/2025", "2025-06-03")
	assert.Error(t, err)

	_, err = DayCount("", "2025-06-03")
	assert.Error(t, err)
}

func TestFormatRFC3339JST(t *testing.T) {
	assert.Equal(t, "", FormatRFC3339JST(time.Time{}))

	ts, err := ParseDate("2025-06-01")
	require.NoError(t, err)
	assert.Equal(t, "2025-06-01T00:00:00+09:00", FormatRFC3339JST(ts))
}
