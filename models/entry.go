package models

import (
	"time"
)

// Entry represents one participant's paid admission into a game
type Entry struct {
	ID         int64     `db:"id"`
	GameID     int64     `db:"game_id"`
	DiscordID  int64     `db:"discord_id"`
	Payment    int64     `db:"payment"`
	FeeRate    int64     `db:"fee_rate"`
	FeeShare   int64     `db:"fee_share"`
	PrizeShare int64     `db:"prize_share"`
	EnteredAt  time.Time `db:"entered_at"`
}

// EntryReceipt is returned to the caller of a successful entry
type EntryReceipt struct {
	GameID           int64
	PrizePool        int64 // cumulative, after this entry
	ParticipantCount int
	FeeShare         int64
	PrizeShare       int64
}
