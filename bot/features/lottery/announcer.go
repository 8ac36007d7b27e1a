package lottery

import (
	"context"

	"lottery/events"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// embedSender is the part of *discordgo.Session the announcer needs
type embedSender interface {
	ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// Announcer posts game openings and raffles to the lottery channel
type Announcer struct {
	sender    embedSender
	channelID string
}

// NewAnnouncer creates a new announcer for channelID
func NewAnnouncer(sender embedSender, channelID string) *Announcer {
	return &Announcer{
		sender:    sender,
		channelID: channelID,
	}
}

// Subscribe registers the announcer on the event bus
func (a *Announcer) Subscribe(bus *events.Bus) {
	bus.Subscribe(events.EventTypeGameCreated, a.handleEvent)
	bus.Subscribe(events.EventTypeGameRaffled, a.handleEvent)
}

func (a *Announcer) handleEvent(ctx context.Context, event events.Event) {
	var embed *discordgo.MessageEmbed
	switch e := event.(type) {
	case events.GameCreatedEvent:
		embed = BuildGameCreatedEmbed(e.GameID, e.EntrancePrice)
	case events.GameRaffledEvent:
		embed = BuildGameRaffledEmbed(e.GameID, e.PrizePool, e.ParticipantCount, e.WinnerDiscordID)
	default:
		return
	}

	if _, err := a.sender.ChannelMessageSendEmbed(a.channelID, embed); err != nil {
		log.WithFields(log.Fields{
			"eventType": event.Type(),
			"channelID": a.channelID,
			"error":     err,
		}).Error("Failed to post lottery announcement")
	}
}
