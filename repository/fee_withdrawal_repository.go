package repository

import (
	"context"
	"fmt"

	"lottery/database"
	"lottery/models"
)

// feeWithdrawalRepository implements the FeeWithdrawalRepository interface
type feeWithdrawalRepository struct {
	q Queryable
}

// NewFeeWithdrawalRepository creates a new fee withdrawal repository
func NewFeeWithdrawalRepository(db *database.DB) *feeWithdrawalRepository {
	return &feeWithdrawalRepository{q: db.Pool}
}

// newFeeWithdrawalRepositoryWithTx creates a new fee withdrawal repository with a transaction
func newFeeWithdrawalRepositoryWithTx(tx Queryable) *feeWithdrawalRepository {
	return &feeWithdrawalRepository{q: tx}
}

// Create records a withdrawal and fills in its ID
func (r *feeWithdrawalRepository) Create(ctx context.Context, withdrawal *models.FeeWithdrawal) error {
	query := `
		INSERT INTO fee_withdrawals (manager_discord_id, amount, withdrawn_at)
		VALUES ($1, $2, $3)
		RETURNING id, withdrawn_at
	`

	err := r.q.QueryRow(ctx, query,
		withdrawal.ManagerDiscordID,
		withdrawal.Amount,
		withdrawal.WithdrawnAt,
	).Scan(&withdrawal.ID, &withdrawal.WithdrawnAt)
	if err != nil {
		return fmt.Errorf("failed to create fee withdrawal: %w", err)
	}

	return nil
}

// GetRecent returns the latest withdrawals, newest first
func (r *feeWithdrawalRepository) GetRecent(ctx context.Context, limit int) ([]*models.FeeWithdrawal, error) {
	query := `
		SELECT id, manager_discord_id, amount, withdrawn_at
		FROM fee_withdrawals
		ORDER BY id DESC
		LIMIT $1
	`

	rows, err := r.q.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query fee withdrawals: %w", err)
	}
	defer rows.Close()

	withdrawals := make([]*models.FeeWithdrawal, 0)
	for rows.Next() {
		var w models.FeeWithdrawal
		if err := rows.Scan(&w.ID, &w.ManagerDiscordID, &w.Amount, &w.WithdrawnAt); err != nil {
			return nil, fmt.Errorf("failed to scan fee withdrawal: %w", err)
		}
		withdrawals = append(withdrawals, &w)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating fee withdrawals: %w", err)
	}

	return withdrawals, nil
}
