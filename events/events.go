package events

import (
	"context"
	"sync"

	log "github.com/sirupsen/logrus"
)

// EventType represents different types of events in the system
type EventType string

const (
	EventTypeGameCreated       EventType = "game_created"
	EventTypeEnteredGame       EventType = "entered_game"
	EventTypeGameRaffled       EventType = "game_raffled"
	EventTypeLotteryFeeUpdated EventType = "lottery_fee_updated"
	EventTypeFeesWithdrawn     EventType = "fees_withdrawn"
)

// AllEventTypes lists every event type the ledger emits
var AllEventTypes = []EventType{
	EventTypeGameCreated,
	EventTypeEnteredGame,
	EventTypeGameRaffled,
	EventTypeLotteryFeeUpdated,
	EventTypeFeesWithdrawn,
}

// Event is the base interface for all events
type Event interface {
	Type() EventType
}

// GameCreatedEvent is emitted when the manager opens a new game
type GameCreatedEvent struct {
	GameID        int64 `json:"game_id"`
	EntrancePrice int64 `json:"entrance_price"`
}

func (e GameCreatedEvent) Type() EventType {
	return EventTypeGameCreated
}

// EnteredGameEvent is emitted for every admitted entry
type EnteredGameEvent struct {
	GameID           int64 `json:"game_id"`
	DiscordID        int64 `json:"discord_id"`
	PrizePool        int64 `json:"prize_pool"`
	ParticipantCount int   `json:"participant_count"`
}

func (e EnteredGameEvent) Type() EventType {
	return EventTypeEnteredGame
}

// GameRaffledEvent is emitted once when a game is closed
type GameRaffledEvent struct {
	GameID           int64  `json:"game_id"`
	PrizePool        int64  `json:"prize_pool"`
	ParticipantCount int    `json:"participant_count"`
	WinnerDiscordID  *int64 `json:"winner_discord_id,omitempty"`
}

func (e GameRaffledEvent) Type() EventType {
	return EventTypeGameRaffled
}

// LotteryFeeUpdatedEvent is emitted when the manager changes the fee rate
type LotteryFeeUpdatedEvent struct {
	OldRate          int64 `json:"old_rate"`
	NewRate          int64 `json:"new_rate"`
	ManagerDiscordID int64 `json:"manager_discord_id"`
}

func (e LotteryFeeUpdatedEvent) Type() EventType {
	return EventTypeLotteryFeeUpdated
}

// FeesWithdrawnEvent is emitted when collected fees are paid out to the manager
type FeesWithdrawnEvent struct {
	Amount           int64 `json:"amount"`
	ManagerDiscordID int64 `json:"manager_discord_id"`
}

func (e FeesWithdrawnEvent) Type() EventType {
	return EventTypeFeesWithdrawn
}

// Handler is a function that handles events
type Handler func(ctx context.Context, event Event)

// Bus manages event subscriptions and dispatching.
// A single dispatcher goroutine delivers events in the order they were emitted,
// so every subscriber observes the same sequence.
type Bus struct {
	mu       sync.RWMutex
	handlers map[EventType][]Handler

	queueMu sync.Mutex
	queue   []queuedEvent
	wake    chan struct{}
	done    chan struct{}
	stopped chan struct{}
	once    sync.Once
}

type queuedEvent struct {
	ctx   context.Context
	event Event
}

// NewBus creates a new event bus and starts its dispatcher
func NewBus() *Bus {
	b := &Bus{
		handlers: make(map[EventType][]Handler),
		wake:     make(chan struct{}, 1),
		done:     make(chan struct{}),
		stopped:  make(chan struct{}),
	}
	go b.dispatch()
	return b
}

// Subscribe adds a handler for a specific event type
func (b *Bus) Subscribe(eventType EventType, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)

	log.WithFields(log.Fields{
		"eventType":    eventType,
		"handlerCount": len(b.handlers[eventType]),
	}).Debug("Subscribed handler to event type")
}

// SubscribeAll adds a handler for every ledger event type
func (b *Bus) SubscribeAll(handler Handler) {
	for _, eventType := range AllEventTypes {
		b.Subscribe(eventType, handler)
	}
}

// Emit queues an event for delivery and returns without waiting for handlers.
// Events are delivered one at a time in emit order.
func (b *Bus) Emit(ctx context.Context, event Event) {
	b.EmitAll(ctx, []Event{event})
}

// EmitAll queues a batch of events contiguously, preserving their order
func (b *Bus) EmitAll(ctx context.Context, batch []Event) {
	if len(batch) == 0 {
		return
	}

	b.queueMu.Lock()
	for _, event := range batch {
		b.queue = append(b.queue, queuedEvent{ctx: ctx, event: event})
	}
	queued := len(b.queue)
	b.queueMu.Unlock()

	log.WithFields(log.Fields{
		"batchSize":   len(batch),
		"queuedCount": queued,
	}).Debug("Queued events for dispatch")

	select {
	case b.wake <- struct{}{}:
	default:
	}
}

// Close stops the dispatcher after delivering everything already queued
func (b *Bus) Close() {
	b.once.Do(func() {
		close(b.done)
	})
	<-b.stopped
}

func (b *Bus) dispatch() {
	defer close(b.stopped)

	for {
		select {
		case <-b.wake:
			b.drain()
		case <-b.done:
			b.drain()
			return
		}
	}
}

func (b *Bus) drain() {
	for {
		b.queueMu.Lock()
		batch := b.queue
		b.queue = nil
		b.queueMu.Unlock()

		if len(batch) == 0 {
			return
		}
		for _, q := range batch {
			b.deliver(q.ctx, q.event)
		}
	}
}

func (b *Bus) deliver(ctx context.Context, event Event) {
	b.mu.RLock()
	handlers := make([]Handler, len(b.handlers[event.Type()]))
	copy(handlers, b.handlers[event.Type()])
	b.mu.RUnlock()

	log.WithFields(log.Fields{
		"eventType":    event.Type(),
		"handlerCount": len(handlers),
	}).Debug("Dispatching event to handlers")

	for i, handler := range handlers {
		b.invoke(ctx, event, handler, i)
	}
}

// invoke runs one handler; a panicking handler is logged and skipped
func (b *Bus) invoke(ctx context.Context, event Event, handler Handler, handlerIndex int) {
	defer func() {
		if r := recover(); r != nil {
			log.WithFields(log.Fields{
				"eventType":    event.Type(),
				"handlerIndex": handlerIndex,
				"panic":        r,
			}).Error("Event handler panicked")
		}
	}()
	handler(ctx, event)
}

// TransactionalBus holds events published during a unit of work.
// They reach the underlying bus only on Flush, in publish order.
type TransactionalBus struct {
	real    *Bus
	pending []Event
}

func NewTransactionalBus(real *Bus) *TransactionalBus {
	return &TransactionalBus{real: real}
}

func (b *TransactionalBus) Publish(e Event) {
	log.WithFields(log.Fields{
		"eventType":    e.Type(),
		"pendingCount": len(b.pending),
	}).Debug("Adding event to transactional bus pending queue")
	b.pending = append(b.pending, e)
}

// Pending returns a copy of the events not yet flushed
func (b *TransactionalBus) Pending() []Event {
	out := make([]Event, len(b.pending))
	copy(out, b.pending)
	return out
}

// Flush is called after a successful commit
func (b *TransactionalBus) Flush(ctx context.Context) error {
	log.WithField("pendingEventCount", len(b.pending)).Debug("Flushing pending events to main event bus")

	// Emission outlives the transaction context
	eventCtx := context.Background()

	if b.real != nil {
		b.real.EmitAll(eventCtx, b.pending)
	}
	b.pending = nil
	return nil
}

// Discard is called after a rollback
func (b *TransactionalBus) Discard() {
	b.pending = nil
}
