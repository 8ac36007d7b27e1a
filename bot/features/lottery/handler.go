package lottery

import (
	"context"
	"fmt"

	"lottery/bot/common"
	"lottery/models"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// callerID returns the Discord ID of the member or user who invoked the interaction
func callerID(i *discordgo.InteractionCreate) (int64, error) {
	switch {
	case i.Member != nil && i.Member.User != nil:
		return common.ParseUserID(i.Member.User.ID)
	case i.User != nil:
		return common.ParseUserID(i.User.ID)
	default:
		return 0, fmt.Errorf("interaction has no user")
	}
}

func (f *Feature) resolveCaller(s *discordgo.Session, i *discordgo.InteractionCreate) (int64, bool) {
	caller, err := callerID(i)
	if err != nil {
		log.Errorf("Error resolving caller: %v", err)
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return 0, false
	}
	return caller, true
}

func (f *Feature) handleCreate(s *discordgo.Session, i *discordgo.InteractionCreate, options []*discordgo.ApplicationCommandInteractionDataOption) {
	caller, ok := f.resolveCaller(s, i)
	if !ok {
		return
	}

	price, err := amountOption(options, "price")
	if err != nil {
		common.RespondWithError(s, i, fmt.Sprintf("Invalid price: %v", err))
		return
	}

	gameID, err := f.lotteryService.AddGame(context.Background(), caller, price)
	if err != nil {
		common.HandleServiceError(s, i, err, "create")
		return
	}

	common.RespondWithSuccess(s, i, fmt.Sprintf("Created game **#%d** with entrance price **%s**.",
		gameID, common.FormatBalance(price)), false)
}

func (f *Feature) handleEnter(s *discordgo.Session, i *discordgo.InteractionCreate, options []*discordgo.ApplicationCommandInteractionDataOption) {
	caller, ok := f.resolveCaller(s, i)
	if !ok {
		return
	}

	gameID, err := intOption(options, "id")
	if err != nil {
		common.RespondWithError(s, i, "Please provide a game ID.")
		return
	}

	amount, err := amountOption(options, "amount")
	if err != nil {
		common.RespondWithError(s, i, fmt.Sprintf("Invalid amount: %v", err))
		return
	}

	receipt, err := f.lotteryService.EnterGame(context.Background(), caller, gameID, amount)
	if err != nil {
		common.HandleServiceError(s, i, err, "enter")
		return
	}

	if err := common.RespondWithEmbed(s, i, BuildEntryEmbed(receipt), false); err != nil {
		log.Errorf("Error responding to lottery enter command: %v", err)
	}
}

func (f *Feature) handleRaffle(s *discordgo.Session, i *discordgo.InteractionCreate, options []*discordgo.ApplicationCommandInteractionDataOption) {
	caller, ok := f.resolveCaller(s, i)
	if !ok {
		return
	}

	gameID, err := intOption(options, "id")
	if err != nil {
		common.RespondWithError(s, i, "Please provide a game ID.")
		return
	}

	game, err := f.lotteryService.RaffleGame(context.Background(), caller, gameID)
	if err != nil {
		common.HandleServiceError(s, i, err, "raffle")
		return
	}

	if err := common.RespondWithEmbed(s, i, BuildGameEmbed(game), false); err != nil {
		log.Errorf("Error responding to lottery raffle command: %v", err)
	}
}

func (f *Feature) handleGames(s *discordgo.Session, i *discordgo.InteractionCreate, options []*discordgo.ApplicationCommandInteractionDataOption) {
	ctx := context.Background()

	var (
		games []*models.Game
		title string
		err   error
	)
	switch filterOption(options) {
	case filterOpen:
		games, err = f.lotteryService.GetNotRaffledGames(ctx)
		title = "🟢 Open Lottery Games"
	case filterRaffled:
		games, err = f.lotteryService.GetRaffledGames(ctx)
		title = "🏁 Raffled Lottery Games"
	default:
		games, err = f.lotteryService.GetAllGames(ctx)
		title = "🎟️ Lottery Games"
	}
	if err != nil {
		common.HandleServiceError(s, i, err, "games")
		return
	}

	if err := common.RespondWithEmbed(s, i, BuildGamesListEmbed(title, games), false); err != nil {
		log.Errorf("Error responding to lottery games command: %v", err)
	}
}

func (f *Feature) handleGame(s *discordgo.Session, i *discordgo.InteractionCreate, options []*discordgo.ApplicationCommandInteractionDataOption) {
	gameID, err := intOption(options, "id")
	if err != nil {
		common.RespondWithError(s, i, "Please provide a game ID.")
		return
	}

	game, err := f.lotteryService.GetGame(context.Background(), gameID)
	if err != nil {
		common.HandleServiceError(s, i, err, "game")
		return
	}

	if err := common.RespondWithEmbed(s, i, BuildGameEmbed(game), false); err != nil {
		log.Errorf("Error responding to lottery game command: %v", err)
	}
}

func (f *Feature) handleFeeSet(s *discordgo.Session, i *discordgo.InteractionCreate, options []*discordgo.ApplicationCommandInteractionDataOption) {
	caller, ok := f.resolveCaller(s, i)
	if !ok {
		return
	}

	rate, err := intOption(options, "rate")
	if err != nil {
		common.RespondWithError(s, i, "Please provide a fee rate.")
		return
	}

	if err := f.lotteryService.UpdateFeeRate(context.Background(), caller, rate); err != nil {
		common.HandleServiceError(s, i, err, "fee set")
		return
	}

	common.RespondWithSuccess(s, i, fmt.Sprintf("Fee rate set to **%s** for future entries.", common.FormatFeeRate(rate)), true)
}

func (f *Feature) handleFeeShow(s *discordgo.Session, i *discordgo.InteractionCreate) {
	rate, err := f.lotteryService.GetFeeRate(context.Background())
	if err != nil {
		common.HandleServiceError(s, i, err, "fee show")
		return
	}

	common.RespondWithSuccess(s, i, fmt.Sprintf("The current lottery fee is **%s** of every entry.", common.FormatFeeRate(rate)), true)
}

func (f *Feature) handleFeesCollected(s *discordgo.Session, i *discordgo.InteractionCreate) {
	caller, ok := f.resolveCaller(s, i)
	if !ok {
		return
	}

	fees, err := f.lotteryService.GetCollectedFees(context.Background(), caller)
	if err != nil {
		common.HandleServiceError(s, i, err, "fees collected")
		return
	}

	common.RespondWithSuccess(s, i, fmt.Sprintf("Collected fees available for withdrawal: **%s**.", common.FormatBalance(fees)), true)
}

func (f *Feature) handleFeesWithdraw(s *discordgo.Session, i *discordgo.InteractionCreate) {
	caller, ok := f.resolveCaller(s, i)
	if !ok {
		return
	}

	withdrawal, err := f.lotteryService.WithdrawFees(context.Background(), caller)
	if err != nil {
		common.HandleServiceError(s, i, err, "fees withdraw")
		return
	}

	common.RespondWithSuccess(s, i, fmt.Sprintf("Withdrew **%s** in collected fees.", common.FormatBalance(withdrawal.Amount)), true)
}

func (f *Feature) handleManager(s *discordgo.Session, i *discordgo.InteractionCreate) {
	caller, ok := f.resolveCaller(s, i)
	if !ok {
		return
	}

	manager, err := f.lotteryService.GetManager(context.Background(), caller)
	if err != nil {
		common.HandleServiceError(s, i, err, "manager")
		return
	}

	common.RespondWithSuccess(s, i, fmt.Sprintf("The lottery manager is %s.", common.FormatUserMention(manager)), true)
}
