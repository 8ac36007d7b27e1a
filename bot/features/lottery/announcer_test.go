package lottery

import (
	"context"
	"testing"
	"time"

	"lottery/events"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockEmbedSender struct {
	mock.Mock
}

func (m *mockEmbedSender) ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error) {
	args := m.Called(channelID, embed)
	return nil, args.Error(0)
}

func TestAnnouncer_HandleEvent(t *testing.T) {
	sender := new(mockEmbedSender)
	announcer := NewAnnouncer(sender, "channel-1")

	sender.On("ChannelMessageSendEmbed", "channel-1", mock.MatchedBy(func(e *discordgo.MessageEmbed) bool {
		return e.Title == "🎉 Lottery Game #5 is open"
	})).Return(nil).Once()

	announcer.handleEvent(context.Background(), events.GameCreatedEvent{GameID: 5, EntrancePrice: 100})

	sender.AssertExpectations(t)
}

func TestAnnouncer_IgnoresOtherEvents(t *testing.T) {
	sender := new(mockEmbedSender)
	announcer := NewAnnouncer(sender, "channel-1")

	announcer.handleEvent(context.Background(), events.EnteredGameEvent{GameID: 5})

	sender.AssertNotCalled(t, "ChannelMessageSendEmbed", mock.Anything, mock.Anything)
}

func TestAnnouncer_Subscribe(t *testing.T) {
	sender := new(mockEmbedSender)
	announcer := NewAnnouncer(sender, "channel-1")

	posted := make(chan string, 1)
	sender.On("ChannelMessageSendEmbed", "channel-1", mock.Anything).
		Return(nil).
		Run(func(args mock.Arguments) {
			posted <- args.Get(1).(*discordgo.MessageEmbed).Title
		})

	bus := events.NewBus()
	announcer.Subscribe(bus)
	bus.Emit(context.Background(), events.GameRaffledEvent{GameID: 9, PrizePool: 90, ParticipantCount: 1})

	var title string
	select {
	case title = <-posted:
	case <-time.After(2 * time.Second):
		t.Fatal("announcement was not posted")
	}
	require.NotEmpty(t, title)
	assert.Equal(t, "🏁 Lottery Game #9 has been raffled", title)
}
