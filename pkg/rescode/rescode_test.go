package rescode

import (
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_Format(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	code := Generate(now)

	parts := strings.Split(code, "-")
	require.Len(t, parts, 3)

	assert.Equal(t, "RES", parts[0])

	ts, err := strconv.ParseInt(parts[1], 36, 64)
	require.NoError(t, err)
	assert.Equal(t, now.UnixMilli(), ts)

	assert.Len(t, parts[2], 4)
	for _, c := range parts[2] {
		assert.Contains(t, suffixChars, string(c))
	}
}

func TestGenerate_SuffixVaries(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	seen := make(map[string]struct{})
	for i := 0; i < 50; i++ {
		seen[Generate(now)] = struct{}{}
	}

	// Одинаковый timestamp, но случайный суффикс должен давать разные коды
	assert.Greater(t, len(seen), 1)
}
