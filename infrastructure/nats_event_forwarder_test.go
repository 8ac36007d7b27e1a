package infrastructure

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"lottery/events"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type publishedMessage struct {
	subject string
	data    []byte
}

// fakePublisher records published messages
type fakePublisher struct {
	mu        sync.Mutex
	messages  []publishedMessage
	err       error
	published chan struct{}
}

func newFakePublisher() *fakePublisher {
	return &fakePublisher{published: make(chan struct{}, 16)}
}

func (p *fakePublisher) Publish(ctx context.Context, subject string, data []byte) error {
	if p.err != nil {
		return p.err
	}
	p.mu.Lock()
	p.messages = append(p.messages, publishedMessage{subject: subject, data: data})
	p.mu.Unlock()
	p.published <- struct{}{}
	return nil
}

func TestNATSEventForwarder_Forward(t *testing.T) {
	publisher := newFakePublisher()
	forwarder := NewNATSEventForwarder(publisher, NewEventSubjectMapper())

	winner := int64(222)
	err := forwarder.Forward(context.Background(), events.GameRaffledEvent{
		GameID:           4,
		PrizePool:        1_800,
		ParticipantCount: 2,
		WinnerDiscordID:  &winner,
	})
	require.NoError(t, err)

	require.Len(t, publisher.messages, 1)
	msg := publisher.messages[0]
	assert.Equal(t, "lottery.games.raffled", msg.subject)

	var envelope EventEnvelope
	require.NoError(t, json.Unmarshal(msg.data, &envelope))
	assert.Equal(t, "game_raffled", envelope.EventType)
	assert.Equal(t, "lottery", envelope.SourceService)
	_, err = uuid.Parse(envelope.EventID)
	assert.NoError(t, err)

	var payload events.GameRaffledEvent
	require.NoError(t, json.Unmarshal(envelope.Payload, &payload))
	assert.Equal(t, int64(4), payload.GameID)
	assert.Equal(t, int64(1_800), payload.PrizePool)
	require.NotNil(t, payload.WinnerDiscordID)
	assert.Equal(t, winner, *payload.WinnerDiscordID)
}

func TestNATSEventForwarder_PublishError(t *testing.T) {
	publisher := newFakePublisher()
	publisher.err = errors.New("nats: no responders available for request")
	forwarder := NewNATSEventForwarder(publisher, NewEventSubjectMapper())

	err := forwarder.Forward(context.Background(), events.FeesWithdrawnEvent{Amount: 10, ManagerDiscordID: 1})

	assert.ErrorContains(t, err, "failed to publish event to NATS")
}

func TestNATSEventForwarder_AttachForwardsFlushedEvents(t *testing.T) {
	publisher := newFakePublisher()
	forwarder := NewNATSEventForwarder(publisher, NewEventSubjectMapper())

	bus := events.NewBus()
	forwarder.Attach(bus)

	txBus := events.NewTransactionalBus(bus)
	txBus.Publish(events.GameCreatedEvent{GameID: 1, EntrancePrice: 100})
	require.NoError(t, txBus.Flush(context.Background()))

	select {
	case <-publisher.published:
	case <-time.After(2 * time.Second):
		t.Fatal("event was not forwarded")
	}

	publisher.mu.Lock()
	defer publisher.mu.Unlock()
	require.Len(t, publisher.messages, 1)
	assert.Equal(t, "lottery.games.created", publisher.messages[0].subject)
}
