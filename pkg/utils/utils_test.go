package utils

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashString_FNV1a(t *testing.T) {
	assert.Equal(t, uint32(0x811c9dc5), HashString(""))
	assert.Equal(t, uint32(0xe40c292c), HashString("a"))
}

func TestPickFrom(t *testing.T) {
	items := []string{"temple", "market", "river"}
	assert.Equal(t, PickFrom(items, "2025-11-01-Bangkok-0-morning"), PickFrom(items, "2025-11-01-Bangkok-0-morning"))
	assert.Contains(t, items, PickFrom(items, "seed"))
	assert.Empty(t, PickFrom(nil, "seed"))
}

func TestCacheKey(t *testing.T) {
	a := CacheKey("narrative", "x", "y")
	assert.True(t, strings.HasPrefix(a, "narrative:"))
	assert.Len(t, a, len("narrative:")+24)
	assert.NotEqual(t, a, CacheKey("narrative", "xy"))
}

func TestISODates(t *testing.T) {
	d, err := ParseISODate(" 2025-10-28 ")
	require.NoError(t, err)
	assert.Equal(t, "2025-10-28", FormatISODate(d))
	assert.Equal(t, "2025-11-01", FormatISODate(AddDays(d, 4)))
	assert.Equal(t, "", FormatISODate(time.Time{}))

	_, err = ParseISODate("28/10/2025")
	assert.ErrorIs(t, err, ErrInvalidDate)

	ret := MustParseISODate("2025-11-17")
	assert.Equal(t, 21, DaysBetweenInclusive(d, ret))
	assert.Equal(t, 20, DaysBetween(d, ret))
	assert.Equal(t, 0, DaysBetweenInclusive(ret, d))
	assert.Equal(t, 0, DaysBetween(ret, d))
}
