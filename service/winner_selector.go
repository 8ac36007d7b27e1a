package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"

	"lottery/models"
)

// RandomWinnerSelector picks a participant uniformly with crypto/rand.
// A participant who entered twice holds two tickets.
type RandomWinnerSelector struct{}

// NewRandomWinnerSelector creates a new winner selector
func NewRandomWinnerSelector() *RandomWinnerSelector {
	return &RandomWinnerSelector{}
}

func (s *RandomWinnerSelector) SelectWinner(ctx context.Context, game *models.Game) (int64, error) {
	if len(game.Participants) == 0 {
		return 0, fmt.Errorf("game %d has no participants", game.ID)
	}

	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(game.Participants))))
	if err != nil {
		return 0, fmt.Errorf("failed to generate random number: %w", err)
	}

	return game.Participants[n.Int64()], nil
}
