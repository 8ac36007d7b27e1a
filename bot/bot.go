package bot

import (
	"fmt"

	"lottery/bot/features/lottery"
	"lottery/events"
	"lottery/service"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// Config holds bot configuration
type Config struct {
	Token            string
	GuildID          string // Commands are registered globally when empty
	LotteryChannelID string // Announcements are disabled when empty
}

type Bot struct {
	config         Config
	session        *discordgo.Session
	lotteryFeature *lottery.Feature
}

// New opens the Discord session and registers the /lottery command
func New(config Config, lotteryService service.LotteryService, eventBus *events.Bus) (*Bot, error) {
	dg, err := discordgo.New("Bot " + config.Token)
	if err != nil {
		return nil, fmt.Errorf("error creating discord session: %w", err)
	}
	dg.Identify.Intents = discordgo.IntentsGuilds

	bot := &Bot{
		config:         config,
		session:        dg,
		lotteryFeature: lottery.New(lotteryService),
	}

	dg.AddHandler(bot.handleCommands)

	if err := dg.Open(); err != nil {
		return nil, fmt.Errorf("error opening connection: %w", err)
	}

	if err := bot.registerCommands(); err != nil {
		dg.Close()
		return nil, fmt.Errorf("error registering commands: %w", err)
	}

	if config.LotteryChannelID != "" {
		lottery.NewAnnouncer(dg, config.LotteryChannelID).Subscribe(eventBus)
		log.WithField("channelID", config.LotteryChannelID).Info("Lottery announcements enabled")
	}

	return bot, nil
}

func (b *Bot) Close() error {
	return b.session.Close()
}

func (b *Bot) handleCommands(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	switch i.ApplicationCommandData().Name {
	case "lottery":
		b.lotteryFeature.HandleCommand(s, i)
	}
}
