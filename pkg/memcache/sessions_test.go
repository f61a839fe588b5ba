package mem

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionsPutGetDelete(t *testing.T) {
	s := NewSessions()

	s.Put("a", "value", time.Minute)
	v, ok := s.Get("a")
	require.True(t, ok)
	assert.Equal(t, "value", v)
	assert.Equal(t, 1, s.Len())

	s.Delete("a")
	_, ok = s.Get("a")
	assert.False(t, ok)
	assert.Equal(t, 0, s.Len())
}

func TestSessionsExpiry(t *testing.T) {
	s := NewSessions()

	s.Put("a", 1, -time.Second)
	_, ok := s.Get("a")
	assert.False(t, ok)
	// expired entry is removed on read
	assert.Equal(t, 0, s.Len())
}

func TestSessionsMissing(t *testing.T) {
	s := NewSessions()
	_, ok := s.Get("nope")
	assert.False(t, ok)
}
