package repository

import (
	"context"
	"fmt"

	"lottery/database"
	"lottery/models"

	"github.com/jackc/pgx/v5"
)

// gameRepository implements the GameRepository interface
type gameRepository struct {
	q Queryable
}

// NewGameRepository creates a new game repository
func NewGameRepository(db *database.DB) *gameRepository {
	return &gameRepository{q: db.Pool}
}

// newGameRepositoryWithTx creates a new game repository with a transaction
func newGameRepositoryWithTx(tx Queryable) *gameRepository {
	return &gameRepository{q: tx}
}

// Create inserts a game under its pre-allocated ID
func (r *gameRepository) Create(ctx context.Context, game *models.Game) error {
	query := `
		INSERT INTO games (id, entrance_price, prize_pool, participant_count, raffled, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`

	err := r.q.QueryRow(ctx, query,
		game.ID,
		game.EntrancePrice,
		game.PrizePool,
		game.ParticipantCount,
		game.Raffled,
		game.CreatedAt,
	).Scan(&game.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create game %d: %w", game.ID, err)
	}

	return nil
}

// GetByID retrieves a game and its participants
func (r *gameRepository) GetByID(ctx context.Context, id int64) (*models.Game, error) {
	return r.getByID(ctx, id, false)
}

// GetByIDForUpdate retrieves a game with a row lock
func (r *gameRepository) GetByIDForUpdate(ctx context.Context, id int64) (*models.Game, error) {
	return r.getByID(ctx, id, true)
}

func (r *gameRepository) getByID(ctx context.Context, id int64, forUpdate bool) (*models.Game, error) {
	query := `
		SELECT id, entrance_price, prize_pool, participant_count, raffled,
		       winner_discord_id, created_at, raffled_at
		FROM games
		WHERE id = $1
	`
	if forUpdate {
		query += " FOR UPDATE"
	}

	var game models.Game
	err := r.q.QueryRow(ctx, query, id).Scan(
		&game.ID,
		&game.EntrancePrice,
		&game.PrizePool,
		&game.ParticipantCount,
		&game.Raffled,
		&game.WinnerDiscordID,
		&game.CreatedAt,
		&game.RaffledAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get game %d: %w", id, err)
	}

	participants, err := r.getParticipants(ctx, id)
	if err != nil {
		return nil, err
	}
	game.Participants = participants

	return &game, nil
}

// getParticipants returns the Discord IDs of a game's entries in admission order
func (r *gameRepository) getParticipants(ctx context.Context, gameID int64) ([]int64, error) {
	query := `
		SELECT discord_id
		FROM entries
		WHERE game_id = $1
		ORDER BY id
	`

	rows, err := r.q.Query(ctx, query, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to query participants of game %d: %w", gameID, err)
	}
	defer rows.Close()

	participants := make([]int64, 0)
	for rows.Next() {
		var discordID int64
		if err := rows.Scan(&discordID); err != nil {
			return nil, fmt.Errorf("failed to scan participant: %w", err)
		}
		participants = append(participants, discordID)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating participants: %w", err)
	}

	return participants, nil
}

// Update persists the mutable fields of a game
func (r *gameRepository) Update(ctx context.Context, game *models.Game) error {
	query := `
		UPDATE games
		SET prize_pool = $2,
		    participant_count = $3,
		    raffled = $4,
		    winner_discord_id = $5,
		    raffled_at = $6
		WHERE id = $1
	`

	result, err := r.q.Exec(ctx, query,
		game.ID,
		game.PrizePool,
		game.ParticipantCount,
		game.Raffled,
		game.WinnerDiscordID,
		game.RaffledAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update game %d: %w", game.ID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("game %d not found", game.ID)
	}

	return nil
}

// GetAll returns games ordered by ID, filtered by raffled flag when non-nil
func (r *gameRepository) GetAll(ctx context.Context, raffled *bool) ([]*models.Game, error) {
	query := `
		SELECT g.id, g.entrance_price, g.prize_pool, g.participant_count, g.raffled,
		       g.winner_discord_id, g.created_at, g.raffled_at,
		       COALESCE(
		           (SELECT array_agg(e.discord_id ORDER BY e.id) FROM entries e WHERE e.game_id = g.id),
		           '{}'::BIGINT[]
		       ) AS participants
		FROM games g
		WHERE $1::BOOLEAN IS NULL OR g.raffled = $1
		ORDER BY g.id
	`

	rows, err := r.q.Query(ctx, query, raffled)
	if err != nil {
		return nil, fmt.Errorf("failed to query games: %w", err)
	}
	defer rows.Close()

	games := make([]*models.Game, 0)
	for rows.Next() {
		var game models.Game
		err := rows.Scan(
			&game.ID,
			&game.EntrancePrice,
			&game.PrizePool,
			&game.ParticipantCount,
			&game.Raffled,
			&game.WinnerDiscordID,
			&game.CreatedAt,
			&game.RaffledAt,
			&game.Participants,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan game: %w", err)
		}
		games = append(games, &game)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating games: %w", err)
	}

	return games, nil
}
