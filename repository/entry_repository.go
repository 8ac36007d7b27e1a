package repository

import (
	"context"
	"fmt"

	"lottery/database"
	"lottery/models"
)

// entryRepository implements the EntryRepository interface
type entryRepository struct {
	q Queryable
}

// NewEntryRepository creates a new entry repository
func NewEntryRepository(db *database.DB) *entryRepository {
	return &entryRepository{q: db.Pool}
}

// newEntryRepositoryWithTx creates a new entry repository with a transaction
func newEntryRepositoryWithTx(tx Queryable) *entryRepository {
	return &entryRepository{q: tx}
}

// Create records an admitted entry and fills in its ID
func (r *entryRepository) Create(ctx context.Context, entry *models.Entry) error {
	query := `
		INSERT INTO entries (game_id, discord_id, payment, fee_rate, fee_share, prize_share, entered_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, entered_at
	`

	err := r.q.QueryRow(ctx, query,
		entry.GameID,
		entry.DiscordID,
		entry.Payment,
		entry.FeeRate,
		entry.FeeShare,
		entry.PrizeShare,
		entry.EnteredAt,
	).Scan(&entry.ID, &entry.EnteredAt)
	if err != nil {
		return fmt.Errorf("failed to create entry for game %d: %w", entry.GameID, err)
	}

	return nil
}

// GetByGame returns a game's entries in admission order
func (r *entryRepository) GetByGame(ctx context.Context, gameID int64) ([]*models.Entry, error) {
	query := `
		SELECT id, game_id, discord_id, payment, fee_rate, fee_share, prize_share, entered_at
		FROM entries
		WHERE game_id = $1
		ORDER BY id
	`

	rows, err := r.q.Query(ctx, query, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to query entries of game %d: %w", gameID, err)
	}
	defer rows.Close()

	entries := make([]*models.Entry, 0)
	for rows.Next() {
		var entry models.Entry
		err := rows.Scan(
			&entry.ID,
			&entry.GameID,
			&entry.DiscordID,
			&entry.Payment,
			&entry.FeeRate,
			&entry.FeeShare,
			&entry.PrizeShare,
			&entry.EnteredAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		entries = append(entries, &entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating entries: %w", err)
	}

	return entries, nil
}
