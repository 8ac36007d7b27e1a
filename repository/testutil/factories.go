package testutil

import (
	"time"

	"lottery/models"
)

// CreateTestGame creates an open game with no entries
func CreateTestGame(id, entrancePrice int64) *models.Game {
	return &models.Game{
		ID:            id,
		EntrancePrice: entrancePrice,
		Participants:  []int64{},
		CreatedAt:     time.Now(),
	}
}

// CreateTestEntry creates an entry paying price at the given fee rate
func CreateTestEntry(gameID, discordID, price, feeRate int64) *models.Entry {
	feeShare, prizeShare := models.SplitPayment(price, feeRate)
	return &models.Entry{
		GameID:     gameID,
		DiscordID:  discordID,
		Payment:    price,
		FeeRate:    feeRate,
		FeeShare:   feeShare,
		PrizeShare: prizeShare,
		EnteredAt:  time.Now(),
	}
}
