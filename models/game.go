package models

import (
	"time"
)

// Game represents one lottery round with a fixed entrance price
type Game struct {
	ID               int64      `db:"id"`
	EntrancePrice    int64      `db:"entrance_price"`
	Participants     []int64    `db:"participants"` // Discord IDs in admission order
	ParticipantCount int        `db:"participant_count"`
	PrizePool        int64      `db:"prize_pool"`
	Raffled          bool       `db:"raffled"`
	WinnerDiscordID  *int64     `db:"winner_discord_id"`
	CreatedAt        time.Time  `db:"created_at"`
	RaffledAt        *time.Time `db:"raffled_at"`
}

// IsOpen returns true if the game still admits entries
func (g *Game) IsOpen() bool {
	return !g.Raffled
}

// IsFull returns true if the game reached the given entrant cap
func (g *Game) IsFull(maxEntrants int) bool {
	return maxEntrants > 0 && g.ParticipantCount >= maxEntrants
}

// AcceptsPayment returns true if amount matches the entrance price exactly
func (g *Game) AcceptsPayment(amount int64) bool {
	return amount == g.EntrancePrice
}

// AddEntry appends a participant and grows the prize pool
func (g *Game) AddEntry(discordID int64, prizeShare int64) {
	g.Participants = append(g.Participants, discordID)
	g.ParticipantCount++
	g.PrizePool += prizeShare
}

// MarkRaffled closes the game for further entries
func (g *Game) MarkRaffled(at time.Time) {
	g.Raffled = true
	g.RaffledAt = &at
}

// SetWinner records the selected winner
func (g *Game) SetWinner(discordID int64) {
	g.WinnerDiscordID = &discordID
}

// HasWinner returns true if a winner was recorded at raffle time
func (g *Game) HasWinner() bool {
	return g.WinnerDiscordID != nil
}

// PartitionGames splits games by raffled flag, preserving order
func PartitionGames(games []*Game) (raffled, notRaffled []*Game) {
	raffled = make([]*Game, 0)
	notRaffled = make([]*Game, 0)
	for _, g := range games {
		if g.Raffled {
			raffled = append(raffled, g)
		} else {
			notRaffled = append(notRaffled, g)
		}
	}
	return raffled, notRaffled
}
