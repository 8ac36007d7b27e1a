package service

import (
	"context"
	"fmt"
	"time"

	"lottery/events"
	"lottery/models"

	log "github.com/sirupsen/logrus"
)

// LotteryConfig holds the settings injected into the lottery service
type LotteryConfig struct {
	ManagerDiscordID   int64
	MaxEntrantsPerGame int
}

type lotteryService struct {
	uowFactory     UnitOfWorkFactory
	manager        int64
	maxEntrants    int
	winnerSelector WinnerSelector
	now            func() time.Time
}

// NewLotteryService creates a new lottery service.
// winnerSelector may be nil, in which case raffles record no winner.
func NewLotteryService(uowFactory UnitOfWorkFactory, cfg LotteryConfig, winnerSelector WinnerSelector) LotteryService {
	return &lotteryService{
		uowFactory:     uowFactory,
		manager:        cfg.ManagerDiscordID,
		maxEntrants:    cfg.MaxEntrantsPerGame,
		winnerSelector: winnerSelector,
		now:            time.Now,
	}
}

func (s *lotteryService) requireManager(caller int64) error {
	if caller != s.manager {
		return fmt.Errorf("%w: caller %d", ErrUnauthorized, caller)
	}
	return nil
}

func (s *lotteryService) AddGame(ctx context.Context, caller int64, entrancePrice int64) (int64, error) {
	if err := s.requireManager(caller); err != nil {
		return 0, err
	}
	if entrancePrice <= 0 {
		return 0, fmt.Errorf("%w: %d", ErrInvalidEntrancePrice, entrancePrice)
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback() // No-op if already committed

	state, err := uow.LedgerStateRepository().GetForUpdate(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to lock ledger state: %w", err)
	}

	game := &models.Game{
		ID:            state.NextGameID,
		EntrancePrice: entrancePrice,
		Participants:  []int64{},
		CreatedAt:     s.now(),
	}
	if err := uow.GameRepository().Create(ctx, game); err != nil {
		return 0, fmt.Errorf("failed to create game: %w", err)
	}

	state.NextGameID++
	if err := uow.LedgerStateRepository().Update(ctx, state); err != nil {
		return 0, fmt.Errorf("failed to update ledger state: %w", err)
	}

	uow.EventBus().Publish(events.GameCreatedEvent{
		GameID:        game.ID,
		EntrancePrice: entrancePrice,
	})

	if err := uow.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.WithFields(log.Fields{
		"gameID":        game.ID,
		"entrancePrice": entrancePrice,
	}).Info("Game created")

	return game.ID, nil
}

func (s *lotteryService) EnterGame(ctx context.Context, caller int64, gameID int64, amount int64) (*models.EntryReceipt, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	// The ledger lock orders this entry against every other mutation
	state, err := uow.LedgerStateRepository().GetForUpdate(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to lock ledger state: %w", err)
	}

	game, err := uow.GameRepository().GetByIDForUpdate(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}
	if game == nil {
		return nil, fmt.Errorf("%w: game %d", ErrGameNotFound, gameID)
	}
	if !game.IsOpen() {
		return nil, fmt.Errorf("%w: game %d", ErrGameAlreadyRaffled, gameID)
	}
	if !game.AcceptsPayment(amount) {
		return nil, fmt.Errorf("%w: sent %d, entrance price is %d", ErrInvalidPaymentAmount, amount, game.EntrancePrice)
	}
	if game.IsFull(s.maxEntrants) {
		return nil, fmt.Errorf("%w: game %d has %d entrants", ErrGameFull, gameID, game.ParticipantCount)
	}

	feeShare, prizeShare := models.SplitPayment(amount, state.FeeRate)

	if _, ok := models.AddChecked(game.PrizePool, prizeShare); !ok {
		return nil, fmt.Errorf("%w: prize pool of game %d", ErrAmountOverflow, gameID)
	}
	newFees, ok := models.AddChecked(state.CollectedFees, feeShare)
	if !ok {
		return nil, fmt.Errorf("%w: collected fees", ErrAmountOverflow)
	}

	entry := &models.Entry{
		GameID:     gameID,
		DiscordID:  caller,
		Payment:    amount,
		FeeRate:    state.FeeRate,
		FeeShare:   feeShare,
		PrizeShare: prizeShare,
		EnteredAt:  s.now(),
	}
	if err := uow.EntryRepository().Create(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to record entry: %w", err)
	}

	game.AddEntry(caller, prizeShare)
	if err := uow.GameRepository().Update(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to update game: %w", err)
	}

	state.CollectedFees = newFees
	if err := uow.LedgerStateRepository().Update(ctx, state); err != nil {
		return nil, fmt.Errorf("failed to update ledger state: %w", err)
	}

	uow.EventBus().Publish(events.EnteredGameEvent{
		GameID:           gameID,
		DiscordID:        caller,
		PrizePool:        game.PrizePool,
		ParticipantCount: game.ParticipantCount,
	})

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.WithFields(log.Fields{
		"gameID":           gameID,
		"discordID":        caller,
		"feeShare":         feeShare,
		"prizePool":        game.PrizePool,
		"participantCount": game.ParticipantCount,
	}).Info("Entry admitted")

	return &models.EntryReceipt{
		GameID:           gameID,
		PrizePool:        game.PrizePool,
		ParticipantCount: game.ParticipantCount,
		FeeShare:         feeShare,
		PrizeShare:       prizeShare,
	}, nil
}

func (s *lotteryService) RaffleGame(ctx context.Context, caller int64, gameID int64) (*models.Game, error) {
	if err := s.requireManager(caller); err != nil {
		return nil, err
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	if _, err := uow.LedgerStateRepository().GetForUpdate(ctx); err != nil {
		return nil, fmt.Errorf("failed to lock ledger state: %w", err)
	}

	game, err := uow.GameRepository().GetByIDForUpdate(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}
	if game == nil {
		return nil, fmt.Errorf("%w: game %d", ErrGameNotFound, gameID)
	}
	if !game.IsOpen() {
		return nil, fmt.Errorf("%w: game %d", ErrGameAlreadyRaffled, gameID)
	}

	if s.winnerSelector != nil && len(game.Participants) > 0 {
		winner, err := s.winnerSelector.SelectWinner(ctx, game)
		if err != nil {
			return nil, fmt.Errorf("failed to select winner: %w", err)
		}
		game.SetWinner(winner)
	}

	game.MarkRaffled(s.now())
	if err := uow.GameRepository().Update(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to update game: %w", err)
	}

	uow.EventBus().Publish(events.GameRaffledEvent{
		GameID:           game.ID,
		PrizePool:        game.PrizePool,
		ParticipantCount: game.ParticipantCount,
		WinnerDiscordID:  game.WinnerDiscordID,
	})

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.WithFields(log.Fields{
		"gameID":           game.ID,
		"prizePool":        game.PrizePool,
		"participantCount": game.ParticipantCount,
		"hasWinner":        game.HasWinner(),
	}).Info("Game raffled")

	return game, nil
}

func (s *lotteryService) GetGame(ctx context.Context, gameID int64) (*models.Game, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	game, err := uow.GameRepository().GetByID(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}
	if game == nil {
		return nil, fmt.Errorf("%w: game %d", ErrGameNotFound, gameID)
	}

	return game, nil
}

func (s *lotteryService) GetAllGames(ctx context.Context) ([]*models.Game, error) {
	return s.listGames(ctx, nil)
}

func (s *lotteryService) GetRaffledGames(ctx context.Context) ([]*models.Game, error) {
	raffled := true
	return s.listGames(ctx, &raffled)
}

func (s *lotteryService) GetNotRaffledGames(ctx context.Context) ([]*models.Game, error) {
	raffled := false
	return s.listGames(ctx, &raffled)
}

func (s *lotteryService) listGames(ctx context.Context, raffled *bool) ([]*models.Game, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	games, err := uow.GameRepository().GetAll(ctx, raffled)
	if err != nil {
		return nil, fmt.Errorf("failed to list games: %w", err)
	}
	if games == nil {
		games = []*models.Game{}
	}

	return games, nil
}

func (s *lotteryService) UpdateFeeRate(ctx context.Context, caller int64, newRate int64) error {
	if err := s.requireManager(caller); err != nil {
		return err
	}
	if !models.IsValidFeeRate(newRate) {
		return fmt.Errorf("%w: got %d", ErrInvalidFeeRate, newRate)
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	state, err := uow.LedgerStateRepository().GetForUpdate(ctx)
	if err != nil {
		return fmt.Errorf("failed to lock ledger state: %w", err)
	}

	oldRate := state.FeeRate
	state.FeeRate = newRate
	if err := uow.LedgerStateRepository().Update(ctx, state); err != nil {
		return fmt.Errorf("failed to update ledger state: %w", err)
	}

	uow.EventBus().Publish(events.LotteryFeeUpdatedEvent{
		OldRate:          oldRate,
		NewRate:          newRate,
		ManagerDiscordID: s.manager,
	})

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.WithFields(log.Fields{
		"oldRate": oldRate,
		"newRate": newRate,
	}).Info("Lottery fee rate updated")

	return nil
}

func (s *lotteryService) GetFeeRate(ctx context.Context) (int64, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	state, err := uow.LedgerStateRepository().Get(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to get ledger state: %w", err)
	}

	return state.FeeRate, nil
}

func (s *lotteryService) GetCollectedFees(ctx context.Context, caller int64) (int64, error) {
	if err := s.requireManager(caller); err != nil {
		return 0, err
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	state, err := uow.LedgerStateRepository().Get(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to get ledger state: %w", err)
	}

	return state.CollectedFees, nil
}

func (s *lotteryService) WithdrawFees(ctx context.Context, caller int64) (*models.FeeWithdrawal, error) {
	if err := s.requireManager(caller); err != nil {
		return nil, err
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	state, err := uow.LedgerStateRepository().GetForUpdate(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to lock ledger state: %w", err)
	}

	amount := state.CollectedFees
	totalWithdrawn, ok := models.AddChecked(state.TotalWithdrawn, amount)
	if !ok {
		return nil, fmt.Errorf("%w: total withdrawn", ErrAmountOverflow)
	}

	// A zero balance still produces a withdrawal record and event
	withdrawal := &models.FeeWithdrawal{
		ManagerDiscordID: s.manager,
		Amount:           amount,
		WithdrawnAt:      s.now(),
	}
	if err := uow.FeeWithdrawalRepository().Create(ctx, withdrawal); err != nil {
		return nil, fmt.Errorf("failed to record fee withdrawal: %w", err)
	}

	state.CollectedFees = 0
	state.TotalWithdrawn = totalWithdrawn
	if err := uow.LedgerStateRepository().Update(ctx, state); err != nil {
		return nil, fmt.Errorf("failed to update ledger state: %w", err)
	}

	uow.EventBus().Publish(events.FeesWithdrawnEvent{
		Amount:           amount,
		ManagerDiscordID: s.manager,
	})

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.WithFields(log.Fields{
		"amount":         amount,
		"totalWithdrawn": totalWithdrawn,
	}).Info("Collected fees withdrawn")

	return withdrawal, nil
}

func (s *lotteryService) GetManager(ctx context.Context, caller int64) (int64, error) {
	if err := s.requireManager(caller); err != nil {
		return 0, err
	}
	return s.manager, nil
}
