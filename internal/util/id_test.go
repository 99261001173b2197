package util

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIDFormat(t *testing.T) {
	id := NewID("BUY")
	parts := strings.SplitN(id, "-", 3)
	require.Len(t, parts, 3)
	assert.Equal(t, "BUY", parts[0])
	assert.Regexp(t, `^\d{13}$`, parts[1])
	assert.Regexp(t, `^[0-9a-f]{8}$`, parts[2])
}

func TestNewIDUnique(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 10000; i++ {
		id := NewID("CONTACT")
		_, dup := seen[id]
		require.False(t, dup, "duplicate id generated: %s", id)
		seen[id] = struct{}{}
	}
}

func TestNewTimestampID(t *testing.T) {
	id := NewTimestampID("NEWS")
	assert.Regexp(t, `^NEWS-\d{13}$`, id)
}
