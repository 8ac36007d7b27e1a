package common

import (
	"fmt"
	"math"
	"testing"
	"time"

	"lottery/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatBalance(t *testing.T) {
	tests := []struct {
		input    int64
		expected string
	}{
		{0, "0"},
		{999, "999"},
		{1_000, "1,000"},
		{1_800_000_000_000_000, "1,800,000,000,000,000"},
		{-12_345, "-12,345"},
		{math.MaxInt64, "9,223,372,036,854,775,807"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatBalance(tt.input))
		})
	}
}

func TestFormatHelpers(t *testing.T) {
	assert.Equal(t, "25%", FormatFeeRate(25))
	assert.Equal(t, "<@111111>", FormatUserMention(111111))
	assert.Equal(t, "<t:0:R>", FormatDiscordTimestamp(time.Unix(0, 0), "R"))
}

func TestParseUserID(t *testing.T) {
	id, err := ParseUserID("123456789012345678")
	require.NoError(t, err)
	assert.Equal(t, int64(123456789012345678), id)

	_, err = ParseUserID("not-a-snowflake")
	assert.Error(t, err)
}

func TestUserMessageForError(t *testing.T) {
	wrapped := fmt.Errorf("%w: game 99", service.ErrGameNotFound)
	assert.Equal(t, "That game doesn't exist.", UserMessageForError(wrapped))
	assert.Equal(t, "Only the lottery manager can do that.", UserMessageForError(service.ErrUnauthorized))
	assert.Equal(t, "Something went wrong. Please try again later.", UserMessageForError(fmt.Errorf("dial tcp: refused")))
}
