package repository

import (
	"context"
	"errors"
	"fmt"

	"lottery/database"
	"lottery/models"

	"github.com/jackc/pgx/v5"
)

// ErrLedgerNotInitialized is returned when the ledger_state row is missing
var ErrLedgerNotInitialized = errors.New("ledger state not initialized")

// ledgerStateRepository implements the LedgerStateRepository interface
type ledgerStateRepository struct {
	q Queryable
}

// NewLedgerStateRepository creates a new ledger state repository
func NewLedgerStateRepository(db *database.DB) *ledgerStateRepository {
	return &ledgerStateRepository{q: db.Pool}
}

// newLedgerStateRepositoryWithTx creates a new ledger state repository with a transaction
func newLedgerStateRepositoryWithTx(tx Queryable) *ledgerStateRepository {
	return &ledgerStateRepository{q: tx}
}

// Get reads the ledger state
func (r *ledgerStateRepository) Get(ctx context.Context) (*models.LedgerState, error) {
	return r.get(ctx, false)
}

// GetForUpdate reads the ledger state and locks the row
func (r *ledgerStateRepository) GetForUpdate(ctx context.Context) (*models.LedgerState, error) {
	return r.get(ctx, true)
}

func (r *ledgerStateRepository) get(ctx context.Context, forUpdate bool) (*models.LedgerState, error) {
	query := `
		SELECT fee_rate, collected_fees, total_withdrawn, next_game_id, updated_at
		FROM ledger_state
		WHERE id = 1
	`
	if forUpdate {
		query += " FOR UPDATE"
	}

	var state models.LedgerState
	err := r.q.QueryRow(ctx, query).Scan(
		&state.FeeRate,
		&state.CollectedFees,
		&state.TotalWithdrawn,
		&state.NextGameID,
		&state.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, ErrLedgerNotInitialized
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get ledger state: %w", err)
	}

	return &state, nil
}

// Update persists the ledger state
func (r *ledgerStateRepository) Update(ctx context.Context, state *models.LedgerState) error {
	query := `
		UPDATE ledger_state
		SET fee_rate = $1,
		    collected_fees = $2,
		    total_withdrawn = $3,
		    next_game_id = $4,
		    updated_at = NOW()
		WHERE id = 1
		RETURNING updated_at
	`

	err := r.q.QueryRow(ctx, query,
		state.FeeRate,
		state.CollectedFees,
		state.TotalWithdrawn,
		state.NextGameID,
	).Scan(&state.UpdatedAt)
	if err == pgx.ErrNoRows {
		return ErrLedgerNotInitialized
	}
	if err != nil {
		return fmt.Errorf("failed to update ledger state: %w", err)
	}

	return nil
}

// initialize inserts the ledger state row unless it already exists.
// Reports whether a row was inserted.
func (r *ledgerStateRepository) initialize(ctx context.Context, feeRate int64) (bool, error) {
	query := `
		INSERT INTO ledger_state (id, fee_rate, collected_fees, total_withdrawn, next_game_id)
		VALUES (1, $1, 0, 0, 1)
		ON CONFLICT (id) DO NOTHING
	`

	result, err := r.q.Exec(ctx, query, feeRate)
	if err != nil {
		return false, fmt.Errorf("failed to initialize ledger state: %w", err)
	}

	return result.RowsAffected() == 1, nil
}
