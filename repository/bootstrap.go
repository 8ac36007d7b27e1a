package repository

import (
	"context"
	"fmt"

	"lottery/database"
	"lottery/models"

	"github.com/jackc/pgx/v5"
	log "github.com/sirupsen/logrus"
)

// InitializeLedger creates the ledger state row with the given fee rate.
// An existing ledger is left untouched, so restarts never reset balances.
func InitializeLedger(ctx context.Context, db *database.DB, defaultFeeRate int64) error {
	if !models.IsValidFeeRate(defaultFeeRate) {
		return fmt.Errorf("default fee rate %d outside [%d, %d]", defaultFeeRate, models.MinFeeRate, models.MaxFeeRate)
	}

	return db.WithTransaction(ctx, func(tx pgx.Tx) error {
		created, err := newLedgerStateRepositoryWithTx(tx).initialize(ctx, defaultFeeRate)
		if err != nil {
			return err
		}

		if created {
			log.WithField("feeRate", defaultFeeRate).Info("Initialized ledger state")
		} else {
			log.Debug("Ledger state already initialized")
		}
		return nil
	})
}
