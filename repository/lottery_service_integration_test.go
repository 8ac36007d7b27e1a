package repository_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"lottery/events"
	"lottery/repository"
	"lottery/repository/testutil"
	"lottery/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	managerID = int64(999999)
	aliceID   = int64(111111)
	bobID     = int64(222222)
)

func setupLottery(t *testing.T, maxEntrants int) (service.LotteryService, *events.Bus) {
	t.Helper()

	testDB := testutil.SetupTestDatabase(t)
	require.NoError(t, repository.InitializeLedger(context.Background(), testDB.DB, 10))

	bus := events.NewBus()
	svc := service.NewLotteryService(
		repository.NewUnitOfWorkFactory(testDB.DB, bus),
		service.LotteryConfig{ManagerDiscordID: managerID, MaxEntrantsPerGame: maxEntrants},
		service.NewRandomWinnerSelector(),
	)
	return svc, bus
}

func collectEvents(bus *events.Bus) <-chan events.Event {
	ch := make(chan events.Event, 256)
	bus.SubscribeAll(func(ctx context.Context, e events.Event) {
		ch <- e
	})
	return ch
}

func TestLotteryService_Integration_FullRound(t *testing.T) {
	svc, bus := setupLottery(t, 0)
	ctx := context.Background()
	received := collectEvents(bus)

	const price = int64(1_000_000_000_000_000)

	gameID, err := svc.AddGame(ctx, managerID, price)
	require.NoError(t, err)
	assert.Equal(t, int64(1), gameID)

	_, err = svc.EnterGame(ctx, aliceID, gameID, price)
	require.NoError(t, err)
	receipt, err := svc.EnterGame(ctx, bobID, gameID, price)
	require.NoError(t, err)

	assert.Equal(t, int64(1_800_000_000_000_000), receipt.PrizePool)
	assert.Equal(t, 2, receipt.ParticipantCount)

	fees, err := svc.GetCollectedFees(ctx, managerID)
	require.NoError(t, err)
	assert.Equal(t, int64(200_000_000_000_000), fees)

	game, err := svc.RaffleGame(ctx, managerID, gameID)
	require.NoError(t, err)
	assert.True(t, game.Raffled)
	assert.Equal(t, []int64{aliceID, bobID}, game.Participants)
	require.NotNil(t, game.WinnerDiscordID)
	assert.Contains(t, []int64{aliceID, bobID}, *game.WinnerDiscordID)

	_, err = svc.RaffleGame(ctx, managerID, gameID)
	assert.ErrorIs(t, err, service.ErrGameAlreadyRaffled)

	_, err = svc.EnterGame(ctx, aliceID, gameID, price)
	assert.ErrorIs(t, err, service.ErrGameAlreadyRaffled)

	withdrawal, err := svc.WithdrawFees(ctx, managerID)
	require.NoError(t, err)
	assert.Equal(t, int64(200_000_000_000_000), withdrawal.Amount)

	fees, err = svc.GetCollectedFees(ctx, managerID)
	require.NoError(t, err)
	assert.Zero(t, fees)

	stored, err := svc.GetGame(ctx, gameID)
	require.NoError(t, err)
	assert.Equal(t, int64(1_800_000_000_000_000), stored.PrizePool, "pool is retained after raffle")

	want := []events.Event{
		events.GameCreatedEvent{GameID: gameID, EntrancePrice: price},
		events.EnteredGameEvent{GameID: gameID, DiscordID: aliceID, PrizePool: 900_000_000_000_000, ParticipantCount: 1},
		events.EnteredGameEvent{GameID: gameID, DiscordID: bobID, PrizePool: 1_800_000_000_000_000, ParticipantCount: 2},
		events.GameRaffledEvent{GameID: gameID, PrizePool: 1_800_000_000_000_000, ParticipantCount: 2, WinnerDiscordID: game.WinnerDiscordID},
		events.FeesWithdrawnEvent{Amount: 200_000_000_000_000, ManagerDiscordID: managerID},
	}
	var got []events.Event
	timeout := time.After(5 * time.Second)
	for len(got) < len(want) {
		select {
		case e := <-received:
			got = append(got, e)
		case <-timeout:
			t.Fatalf("timed out waiting for events, got %v", got)
		}
	}
	assert.Equal(t, want, got)

	select {
	case e := <-received:
		t.Fatalf("unexpected event from a rejected call: %s", e.Type())
	case <-time.After(200 * time.Millisecond):
	}
}

func TestLotteryService_Integration_FeeRateAppliesToLaterEntries(t *testing.T) {
	svc, _ := setupLottery(t, 0)
	ctx := context.Background()

	gameID, err := svc.AddGame(ctx, managerID, 1_000)
	require.NoError(t, err)

	r1, err := svc.EnterGame(ctx, aliceID, gameID, 1_000)
	require.NoError(t, err)
	assert.Equal(t, int64(100), r1.FeeShare)

	assert.ErrorIs(t, svc.UpdateFeeRate(ctx, managerID, 4), service.ErrInvalidFeeRate)
	assert.ErrorIs(t, svc.UpdateFeeRate(ctx, managerID, 26), service.ErrInvalidFeeRate)
	assert.ErrorIs(t, svc.UpdateFeeRate(ctx, aliceID, 20), service.ErrUnauthorized)
	require.NoError(t, svc.UpdateFeeRate(ctx, managerID, 25))

	rate, err := svc.GetFeeRate(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(25), rate)

	r2, err := svc.EnterGame(ctx, bobID, gameID, 1_000)
	require.NoError(t, err)
	assert.Equal(t, int64(250), r2.FeeShare)
	assert.Equal(t, int64(900+750), r2.PrizePool)

	fees, err := svc.GetCollectedFees(ctx, managerID)
	require.NoError(t, err)
	assert.Equal(t, int64(350), fees)
}

func TestLotteryService_Integration_RejectedCallsLeaveNoTrace(t *testing.T) {
	svc, _ := setupLottery(t, 1)
	ctx := context.Background()

	_, err := svc.AddGame(ctx, aliceID, 100)
	assert.ErrorIs(t, err, service.ErrUnauthorized)
	_, err = svc.AddGame(ctx, managerID, 0)
	assert.ErrorIs(t, err, service.ErrInvalidEntrancePrice)

	_, err = svc.EnterGame(ctx, aliceID, 99, 100)
	assert.ErrorIs(t, err, service.ErrGameNotFound)

	gameID, err := svc.AddGame(ctx, managerID, 100)
	require.NoError(t, err)
	assert.Equal(t, int64(1), gameID, "rejected creations do not consume ids")

	_, err = svc.EnterGame(ctx, aliceID, gameID, 99)
	assert.ErrorIs(t, err, service.ErrInvalidPaymentAmount)
	_, err = svc.EnterGame(ctx, aliceID, gameID, 100)
	require.NoError(t, err)
	_, err = svc.EnterGame(ctx, bobID, gameID, 100)
	assert.ErrorIs(t, err, service.ErrGameFull)

	game, err := svc.GetGame(ctx, gameID)
	require.NoError(t, err)
	assert.Equal(t, []int64{aliceID}, game.Participants)
	assert.Equal(t, int64(90), game.PrizePool)

	all, err := svc.GetAllGames(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestLotteryService_Integration_ConcurrentEntries(t *testing.T) {
	svc, bus := setupLottery(t, 0)
	ctx := context.Background()
	received := collectEvents(bus)

	const entrants = 20

	var createWG sync.WaitGroup
	ids := make(chan int64, 5)
	for i := 0; i < 5; i++ {
		createWG.Add(1)
		go func() {
			defer createWG.Done()
			id, err := svc.AddGame(ctx, managerID, 100)
			assert.NoError(t, err)
			ids <- id
		}()
	}
	createWG.Wait()
	close(ids)

	seen := map[int64]bool{}
	for id := range ids {
		seen[id] = true
	}
	assert.Len(t, seen, 5)
	for id := int64(1); id <= 5; id++ {
		assert.True(t, seen[id], "game id %d allocated", id)
	}

	var wg sync.WaitGroup
	for i := 0; i < entrants; i++ {
		wg.Add(1)
		go func(discordID int64) {
			defer wg.Done()
			_, err := svc.EnterGame(ctx, discordID, 1, 100)
			assert.NoError(t, err)
		}(int64(1000 + i))
	}
	wg.Wait()

	game, err := svc.GetGame(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, entrants, game.ParticipantCount)
	assert.Len(t, game.Participants, entrants)

	// Events follow commit order: game ids ascend, then entries replay the admission order
	var created []int64
	var entered []events.EnteredGameEvent
	timeout := time.After(5 * time.Second)
	for len(created)+len(entered) < 5+entrants {
		select {
		case e := <-received:
			switch ev := e.(type) {
			case events.GameCreatedEvent:
				require.Empty(t, entered, "game_created after an entry")
				created = append(created, ev.GameID)
			case events.EnteredGameEvent:
				entered = append(entered, ev)
			}
		case <-timeout:
			t.Fatalf("timed out waiting for events, got %d created and %d entered", len(created), len(entered))
		}
	}
	assert.Equal(t, []int64{1, 2, 3, 4, 5}, created)
	for i, ev := range entered {
		assert.Equal(t, i+1, ev.ParticipantCount)
		assert.Equal(t, int64((i+1)*90), ev.PrizePool)
		assert.Equal(t, game.Participants[i], ev.DiscordID)
	}
	assert.Equal(t, int64(entrants*90), game.PrizePool)

	fees, err := svc.GetCollectedFees(ctx, managerID)
	require.NoError(t, err)
	assert.Equal(t, int64(entrants*10), fees)

	open, err := svc.GetNotRaffledGames(ctx)
	require.NoError(t, err)
	assert.Len(t, open, 5)

	raffled, err := svc.GetRaffledGames(ctx)
	require.NoError(t, err)
	assert.Empty(t, raffled)
}
