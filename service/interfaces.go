package service

import (
	"context"

	"lottery/events"
	"lottery/models"
)

// GameRepository defines the interface for game data access
type GameRepository interface {
	// Create inserts a game whose ID has already been allocated
	Create(ctx context.Context, game *models.Game) error

	// GetByID retrieves a game with its participants, nil if absent
	GetByID(ctx context.Context, id int64) (*models.Game, error)

	// GetByIDForUpdate retrieves a game and locks its row until the transaction ends
	GetByIDForUpdate(ctx context.Context, id int64) (*models.Game, error)

	// Update persists prize pool, participant count, raffle state and winner
	Update(ctx context.Context, game *models.Game) error

	// GetAll returns games in creation order, optionally filtered by raffled flag
	GetAll(ctx context.Context, raffled *bool) ([]*models.Game, error)
}

// EntryRepository defines the interface for entry data access
type EntryRepository interface {
	// Create records an admitted entry
	Create(ctx context.Context, entry *models.Entry) error

	// GetByGame returns a game's entries in admission order
	GetByGame(ctx context.Context, gameID int64) ([]*models.Entry, error)
}

// LedgerStateRepository defines the interface for the ledger-wide scalars
type LedgerStateRepository interface {
	// Get reads the ledger state without locking
	Get(ctx context.Context) (*models.LedgerState, error)

	// GetForUpdate reads the ledger state and locks it until the transaction ends.
	// Every mutating operation takes this lock first.
	GetForUpdate(ctx context.Context) (*models.LedgerState, error)

	// Update persists the ledger state
	Update(ctx context.Context, state *models.LedgerState) error
}

// FeeWithdrawalRepository defines the interface for fee withdrawal records
type FeeWithdrawalRepository interface {
	// Create records a withdrawal
	Create(ctx context.Context, withdrawal *models.FeeWithdrawal) error

	// GetRecent returns the latest withdrawals, newest first
	GetRecent(ctx context.Context, limit int) ([]*models.FeeWithdrawal, error)
}

// EventPublisher defines the interface for publishing events
type EventPublisher interface {
	Publish(event events.Event)
}

// WinnerSelector picks the winner of a game at raffle time.
// Implementations receive a game with at least one participant.
type WinnerSelector interface {
	SelectWinner(ctx context.Context, game *models.Game) (int64, error)
}

// LotteryService defines the lottery ledger operations.
// caller is the identity supplied by the transport.
type LotteryService interface {
	// AddGame opens a new game at a fixed entrance price (manager only)
	AddGame(ctx context.Context, caller int64, entrancePrice int64) (int64, error)

	// EnterGame admits caller into a game for exactly the entrance price
	EnterGame(ctx context.Context, caller int64, gameID int64, amount int64) (*models.EntryReceipt, error)

	// RaffleGame closes a game to further entries (manager only)
	RaffleGame(ctx context.Context, caller int64, gameID int64) (*models.Game, error)

	// GetGame returns a single game
	GetGame(ctx context.Context, gameID int64) (*models.Game, error)

	// GetAllGames returns every game in creation order
	GetAllGames(ctx context.Context) ([]*models.Game, error)

	// GetRaffledGames returns raffled games in creation order
	GetRaffledGames(ctx context.Context) ([]*models.Game, error)

	// GetNotRaffledGames returns open games in creation order
	GetNotRaffledGames(ctx context.Context) ([]*models.Game, error)

	// UpdateFeeRate replaces the fee rate applied to future entries (manager only)
	UpdateFeeRate(ctx context.Context, caller int64, newRate int64) error

	// GetFeeRate returns the current fee rate
	GetFeeRate(ctx context.Context) (int64, error)

	// GetCollectedFees returns the withdrawable fee balance (manager only)
	GetCollectedFees(ctx context.Context, caller int64) (int64, error)

	// WithdrawFees pays out the whole fee balance to the manager (manager only)
	WithdrawFees(ctx context.Context, caller int64) (*models.FeeWithdrawal, error)

	// GetManager returns the manager identity (manager only)
	GetManager(ctx context.Context, caller int64) (int64, error)
}

// UnitOfWork defines the interface for transactional repository operations
type UnitOfWork interface {
	// Begin starts a new transaction
	Begin(ctx context.Context) error

	// Commit commits the transaction and flushes pending events
	Commit() error

	// Rollback rolls back the transaction and discards pending events
	Rollback() error

	// Repository getters
	GameRepository() GameRepository
	EntryRepository() EntryRepository
	LedgerStateRepository() LedgerStateRepository
	FeeWithdrawalRepository() FeeWithdrawalRepository
	EventBus() EventPublisher
}

// UnitOfWorkFactory defines the interface for creating UnitOfWork instances
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}
