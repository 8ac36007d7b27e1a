package repository

import (
	"context"
	"fmt"
	"sync"

	"lottery/database"
	"lottery/events"
	"lottery/service"

	"github.com/jackc/pgx/v5"
)

// unitOfWork implements the UnitOfWork interface
type unitOfWork struct {
	db                *database.DB
	tx                pgx.Tx
	ctx               context.Context
	commitMu          *sync.Mutex
	transactionalBus  *events.TransactionalBus
	gameRepo          service.GameRepository
	entryRepo         service.EntryRepository
	ledgerStateRepo   service.LedgerStateRepository
	feeWithdrawalRepo service.FeeWithdrawalRepository
}

// NewUnitOfWorkFactory creates a new UnitOfWork factory
func NewUnitOfWorkFactory(db *database.DB, eventBus *events.Bus) service.UnitOfWorkFactory {
	return &unitOfWorkFactory{
		db:       db,
		eventBus: eventBus,
		commitMu: &sync.Mutex{},
	}
}

type unitOfWorkFactory struct {
	db       *database.DB
	eventBus *events.Bus
	commitMu *sync.Mutex
}

func (f *unitOfWorkFactory) Create() service.UnitOfWork {
	return &unitOfWork{
		db:               f.db,
		commitMu:         f.commitMu,
		transactionalBus: events.NewTransactionalBus(f.eventBus),
	}
}

// Begin starts a new transaction
func (u *unitOfWork) Begin(ctx context.Context) error {
	if u.tx != nil {
		return fmt.Errorf("transaction already started")
	}

	tx, err := u.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	u.tx = tx
	u.ctx = ctx

	u.gameRepo = newGameRepositoryWithTx(tx)
	u.entryRepo = newEntryRepositoryWithTx(tx)
	u.ledgerStateRepo = newLedgerStateRepositoryWithTx(tx)
	u.feeWithdrawalRepo = newFeeWithdrawalRepositoryWithTx(tx)

	return nil
}

// Commit commits the transaction and then releases pending events.
// Commit and flush happen under one lock shared by the factory, so events
// reach the bus in commit order.
func (u *unitOfWork) Commit() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to commit")
	}

	u.commitMu.Lock()
	defer u.commitMu.Unlock()

	if err := u.tx.Commit(u.ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	u.tx = nil

	if err := u.transactionalBus.Flush(u.ctx); err != nil {
		return fmt.Errorf("failed to flush events: %w", err)
	}

	return nil
}

// Rollback rolls back the transaction and drops pending events
func (u *unitOfWork) Rollback() error {
	if u.tx == nil {
		return nil // Already committed or never started
	}

	err := u.tx.Rollback(u.ctx)
	if err != nil && err != pgx.ErrTxClosed {
		return fmt.Errorf("failed to rollback transaction: %w", err)
	}

	u.tx = nil
	u.transactionalBus.Discard()

	return nil
}

// GameRepository returns the game repository for this unit of work
func (u *unitOfWork) GameRepository() service.GameRepository {
	if u.gameRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.gameRepo
}

// EntryRepository returns the entry repository for this unit of work
func (u *unitOfWork) EntryRepository() service.EntryRepository {
	if u.entryRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.entryRepo
}

// LedgerStateRepository returns the ledger state repository for this unit of work
func (u *unitOfWork) LedgerStateRepository() service.LedgerStateRepository {
	if u.ledgerStateRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.ledgerStateRepo
}

// FeeWithdrawalRepository returns the fee withdrawal repository for this unit of work
func (u *unitOfWork) FeeWithdrawalRepository() service.FeeWithdrawalRepository {
	if u.feeWithdrawalRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.feeWithdrawalRepo
}

// EventBus returns the transactional event bus for this unit of work
func (u *unitOfWork) EventBus() service.EventPublisher {
	return u.transactionalBus
}
