package service

import (
	"context"

	"lottery/events"
	"lottery/models"

	"github.com/stretchr/testify/mock"
)

// MockGameRepository is a mock implementation of GameRepository
type MockGameRepository struct {
	mock.Mock
}

func (m *MockGameRepository) Create(ctx context.Context, game *models.Game) error {
	args := m.Called(ctx, game)
	return args.Error(0)
}

func (m *MockGameRepository) GetByID(ctx context.Context, id int64) (*models.Game, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Game), args.Error(1)
}

func (m *MockGameRepository) GetByIDForUpdate(ctx context.Context, id int64) (*models.Game, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Game), args.Error(1)
}

func (m *MockGameRepository) Update(ctx context.Context, game *models.Game) error {
	args := m.Called(ctx, game)
	return args.Error(0)
}

func (m *MockGameRepository) GetAll(ctx context.Context, raffled *bool) ([]*models.Game, error) {
	args := m.Called(ctx, raffled)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Game), args.Error(1)
}

// MockEntryRepository is a mock implementation of EntryRepository
type MockEntryRepository struct {
	mock.Mock
}

func (m *MockEntryRepository) Create(ctx context.Context, entry *models.Entry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockEntryRepository) GetByGame(ctx context.Context, gameID int64) ([]*models.Entry, error) {
	args := m.Called(ctx, gameID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Entry), args.Error(1)
}

// MockLedgerStateRepository is a mock implementation of LedgerStateRepository
type MockLedgerStateRepository struct {
	mock.Mock
}

func (m *MockLedgerStateRepository) Get(ctx context.Context) (*models.LedgerState, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LedgerState), args.Error(1)
}

func (m *MockLedgerStateRepository) GetForUpdate(ctx context.Context) (*models.LedgerState, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LedgerState), args.Error(1)
}

func (m *MockLedgerStateRepository) Update(ctx context.Context, state *models.LedgerState) error {
	args := m.Called(ctx, state)
	return args.Error(0)
}

// MockFeeWithdrawalRepository is a mock implementation of FeeWithdrawalRepository
type MockFeeWithdrawalRepository struct {
	mock.Mock
}

func (m *MockFeeWithdrawalRepository) Create(ctx context.Context, withdrawal *models.FeeWithdrawal) error {
	args := m.Called(ctx, withdrawal)
	return args.Error(0)
}

func (m *MockFeeWithdrawalRepository) GetRecent(ctx context.Context, limit int) ([]*models.FeeWithdrawal, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.FeeWithdrawal), args.Error(1)
}

// MockEventPublisher is a mock implementation of EventPublisher for testing
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(event events.Event) {
	m.Called(event)
}

// MockWinnerSelector is a mock implementation of WinnerSelector
type MockWinnerSelector struct {
	mock.Mock
}

func (m *MockWinnerSelector) SelectWinner(ctx context.Context, game *models.Game) (int64, error) {
	args := m.Called(ctx, game)
	return args.Get(0).(int64), args.Error(1)
}

// MockUnitOfWork is a mock implementation of UnitOfWork.
// Repository getters return whatever was set with SetRepositories.
type MockUnitOfWork struct {
	mock.Mock

	gameRepo          GameRepository
	entryRepo         EntryRepository
	ledgerStateRepo   LedgerStateRepository
	feeWithdrawalRepo FeeWithdrawalRepository
	eventBus          EventPublisher
}

// SetRepositories wires the repositories handed out by the unit of work
func (m *MockUnitOfWork) SetRepositories(
	gameRepo GameRepository,
	entryRepo EntryRepository,
	ledgerStateRepo LedgerStateRepository,
	feeWithdrawalRepo FeeWithdrawalRepository,
	eventBus EventPublisher,
) {
	m.gameRepo = gameRepo
	m.entryRepo = entryRepo
	m.ledgerStateRepo = ledgerStateRepo
	m.feeWithdrawalRepo = feeWithdrawalRepo
	m.eventBus = eventBus
}

func (m *MockUnitOfWork) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUnitOfWork) Commit() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockUnitOfWork) Rollback() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockUnitOfWork) GameRepository() GameRepository {
	return m.gameRepo
}

func (m *MockUnitOfWork) EntryRepository() EntryRepository {
	return m.entryRepo
}

func (m *MockUnitOfWork) LedgerStateRepository() LedgerStateRepository {
	return m.ledgerStateRepo
}

func (m *MockUnitOfWork) FeeWithdrawalRepository() FeeWithdrawalRepository {
	return m.feeWithdrawalRepo
}

func (m *MockUnitOfWork) EventBus() EventPublisher {
	return m.eventBus
}

// MockUnitOfWorkFactory is a mock implementation of UnitOfWorkFactory
type MockUnitOfWorkFactory struct {
	mock.Mock
}

func (m *MockUnitOfWorkFactory) Create() UnitOfWork {
	args := m.Called()
	return args.Get(0).(UnitOfWork)
}
