package models

import (
	"math"
	"time"
)

const (
	MinFeeRate     int64 = 5
	MaxFeeRate     int64 = 25
	DefaultFeeRate int64 = 10

	percentBase int64 = 100
)

// LedgerState holds the ledger-wide scalars. There is exactly one row.
type LedgerState struct {
	FeeRate        int64     `db:"fee_rate"`
	CollectedFees  int64     `db:"collected_fees"`
	TotalWithdrawn int64     `db:"total_withdrawn"`
	NextGameID     int64     `db:"next_game_id"`
	UpdatedAt      time.Time `db:"updated_at"`
}

// FeeWithdrawal records a transfer of collected fees to the manager
type FeeWithdrawal struct {
	ID               int64     `db:"id"`
	ManagerDiscordID int64     `db:"manager_discord_id"`
	Amount           int64     `db:"amount"`
	WithdrawnAt      time.Time `db:"withdrawn_at"`
}

// IsValidFeeRate reports whether rate lies within [MinFeeRate, MaxFeeRate]
func IsValidFeeRate(rate int64) bool {
	return rate >= MinFeeRate && rate <= MaxFeeRate
}

// SplitPayment divides a payment into the fee share and the prize share.
// The fee is amount*rate/100 truncated; the split avoids the amount*rate
// intermediate so it cannot overflow for any non-negative amount.
func SplitPayment(amount, rate int64) (feeShare, prizeShare int64) {
	feeShare = (amount/percentBase)*rate + (amount%percentBase)*rate/percentBase
	return feeShare, amount - feeShare
}

// AddChecked returns a+b, or false if the sum overflows int64
func AddChecked(a, b int64) (int64, bool) {
	if b > 0 && a > math.MaxInt64-b {
		return 0, false
	}
	if b < 0 && a < math.MinInt64-b {
		return 0, false
	}
	return a + b, true
}
