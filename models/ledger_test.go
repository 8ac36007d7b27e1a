package models

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitPayment(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		amount    int64
		rate      int64
		wantFee   int64
		wantPrize int64
	}{
		{
			name:      "default rate on 10^15",
			amount:    1_000_000_000_000_000,
			rate:      10,
			wantFee:   100_000_000_000_000,
			wantPrize: 900_000_000_000_000,
		},
		{
			name:      "truncates fee toward zero",
			amount:    99,
			rate:      10,
			wantFee:   9, // 9.9 truncated
			wantPrize: 90,
		},
		{
			name:      "amount below one percent unit",
			amount:    7,
			rate:      10,
			wantFee:   0,
			wantPrize: 7,
		},
		{
			name:      "max rate with remainder",
			amount:    1_234,
			rate:      25,
			wantFee:   308, // 308.5 truncated
			wantPrize: 926,
		},
		{
			name:      "min rate",
			amount:    1_000,
			rate:      5,
			wantFee:   50,
			wantPrize: 950,
		},
		{
			name:      "near int64 max does not overflow",
			amount:    math.MaxInt64,
			rate:      25,
			wantFee:   2_305_843_009_213_693_951,
			wantPrize: math.MaxInt64 - 2_305_843_009_213_693_951,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			fee, prize := SplitPayment(tt.amount, tt.rate)
			assert.Equal(t, tt.wantFee, fee)
			assert.Equal(t, tt.wantPrize, prize)
			assert.Equal(t, tt.amount, fee+prize)
		})
	}
}

func TestSplitPayment_PerEntryTruncation(t *testing.T) {
	t.Parallel()

	const price, rate, entries = int64(15), int64(10), 4

	var pool, fees int64
	for i := 0; i < entries; i++ {
		fee, prize := SplitPayment(price, rate)
		fees += fee
		pool += prize
	}

	// floor(15*10/100)=1 per entry, aggregate floor(60*10/100)=6
	assert.Equal(t, int64(4), fees)
	assert.Equal(t, int64(56), pool)
}

func TestIsValidFeeRate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		rate int64
		want bool
	}{
		{rate: 4, want: false},
		{rate: 5, want: true},
		{rate: 10, want: true},
		{rate: 25, want: true},
		{rate: 26, want: false},
		{rate: 0, want: false},
		{rate: -10, want: false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, IsValidFeeRate(tt.rate), "rate %d", tt.rate)
	}
}

func TestAddChecked(t *testing.T) {
	t.Parallel()

	sum, ok := AddChecked(40, 2)
	assert.True(t, ok)
	assert.Equal(t, int64(42), sum)

	_, ok = AddChecked(math.MaxInt64, 1)
	assert.False(t, ok)

	_, ok = AddChecked(math.MinInt64, -1)
	assert.False(t, ok)

	sum, ok = AddChecked(math.MaxInt64-5, 5)
	assert.True(t, ok)
	assert.Equal(t, int64(math.MaxInt64), sum)
}
