package common

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// FormatBalance formats an amount with thousand separators
func FormatBalance(balance int64) string {
	str := strconv.FormatInt(balance, 10)

	sign := ""
	if strings.HasPrefix(str, "-") {
		sign, str = "-", str[1:]
	}

	n := len(str)
	if n <= 3 {
		return sign + str
	}

	var result strings.Builder
	result.WriteString(sign)
	for i, digit := range str {
		if i > 0 && (n-i)%3 == 0 {
			result.WriteRune(',')
		}
		result.WriteRune(digit)
	}

	return result.String()
}

// FormatFeeRate renders a whole-number percentage
func FormatFeeRate(rate int64) string {
	return fmt.Sprintf("%d%%", rate)
}

// FormatUserMention renders a Discord user mention
func FormatUserMention(discordID int64) string {
	return fmt.Sprintf("<@%d>", discordID)
}

// FormatDiscordTimestamp formats a time as a Discord timestamp that displays in the user's local timezone.
// Format types: "t" short time, "d" short date, "f" short date/time, "R" relative time.
func FormatDiscordTimestamp(t time.Time, format string) string {
	return fmt.Sprintf("<t:%d:%s>", t.Unix(), format)
}

// ParseUserID converts a Discord user ID string to int64
func ParseUserID(userID string) (int64, error) {
	id, err := strconv.ParseInt(userID, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid Discord user ID %q: %w", userID, err)
	}
	return id, nil
}
