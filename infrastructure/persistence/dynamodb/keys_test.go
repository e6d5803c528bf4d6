package dynamodb

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyEncoding(t *testing.T) {
	assert.Equal(t, "u#user-1", userKey("user-1"))
	assert.Equal(t, "b#book-1", bookKey("book-1"))
	assert.Equal(t, "t#trade-1", tradeKey("trade-1"))
	assert.Equal(t, "ow#user-1", deciderKey("user-1"))
	assert.Equal(t, "tr#user-1", requesterKey("user-1"))
	assert.Equal(t, "ti#book-1", tradeItemKey("book-1"))
}

func TestAcceptedTradeSortKey(t *testing.T) {
	acceptedAt := time.Date(2023, 4, 1, 10, 0, 0, 0, time.UTC)

	key := acceptedTradeSortKey(acceptedAt)

	assert.Equal(t, "t#accepted#2023-04-01T10:00:00.000Z", key)
}

func TestAcceptedTradeSortKeyOrdersLexicographically(t *testing.T) {
	earlier := time.Date(2023, 4, 1, 9, 59, 59, 999e6, time.UTC)
	later := time.Date(2023, 4, 1, 10, 0, 0, 0, time.UTC)

	assert.Less(t, acceptedTradeSortKey(earlier), acceptedTradeSortKey(later))
}

func TestTimestampRoundTrip(t *testing.T) {
	now := time.Date(2024, 11, 23, 8, 15, 42, 123e6, time.UTC)

	parsed, err := parseTimestamp(formatTimestamp(now))

	require.NoError(t, err)
	assert.True(t, parsed.Equal(now))
}

func TestParseTimestampEmpty(t *testing.T) {
	parsed, err := parseTimestamp("")

	require.NoError(t, err)
	assert.True(t, parsed.IsZero())
}
