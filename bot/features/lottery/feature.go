package lottery

import (
	"strings"

	"lottery/bot/common"
	"lottery/service"

	"github.com/bwmarrin/discordgo"
)

// Feature serves the /lottery command
type Feature struct {
	lotteryService service.LotteryService
}

// New creates a new lottery feature instance
func New(lotteryService service.LotteryService) *Feature {
	return &Feature{
		lotteryService: lotteryService,
	}
}

// HandleCommand routes /lottery subcommands and subcommand groups
func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	path, options := resolveSubcommand(i.ApplicationCommandData().Options)

	switch path {
	case "create":
		f.handleCreate(s, i, options)
	case "enter":
		f.handleEnter(s, i, options)
	case "raffle":
		f.handleRaffle(s, i, options)
	case "games":
		f.handleGames(s, i, options)
	case "game":
		f.handleGame(s, i, options)
	case "fee set":
		f.handleFeeSet(s, i, options)
	case "fee show":
		f.handleFeeShow(s, i)
	case "fees collected":
		f.handleFeesCollected(s, i)
	case "fees withdraw":
		f.handleFeesWithdraw(s, i)
	case "manager":
		f.handleManager(s, i)
	case "":
		common.RespondWithError(s, i, "Please specify a subcommand.")
	default:
		common.RespondWithError(s, i, "Unknown subcommand")
	}
}

// resolveSubcommand walks through an optional subcommand group to the subcommand.
// It returns the space separated path and the subcommand's own options.
func resolveSubcommand(options []*discordgo.ApplicationCommandInteractionDataOption) (string, []*discordgo.ApplicationCommandInteractionDataOption) {
	var path []string
	for len(options) > 0 {
		opt := options[0]
		switch opt.Type {
		case discordgo.ApplicationCommandOptionSubCommandGroup:
			path = append(path, opt.Name)
			options = opt.Options
		case discordgo.ApplicationCommandOptionSubCommand:
			path = append(path, opt.Name)
			return strings.Join(path, " "), opt.Options
		default:
			return strings.Join(path, " "), options
		}
	}
	return strings.Join(path, " "), nil
}
