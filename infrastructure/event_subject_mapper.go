package infrastructure

import (
	"fmt"

	"lottery/events"
)

// EventSubjectMapper maps ledger events to NATS subjects
type EventSubjectMapper struct{}

// NewEventSubjectMapper creates a new event subject mapper
func NewEventSubjectMapper() *EventSubjectMapper {
	return &EventSubjectMapper{}
}

// MapEventToSubject converts an event to its NATS subject
func (m *EventSubjectMapper) MapEventToSubject(event events.Event) string {
	switch event.Type() {
	case events.EventTypeGameCreated:
		return "lottery.games.created"
	case events.EventTypeEnteredGame:
		return "lottery.games.entered"
	case events.EventTypeGameRaffled:
		return "lottery.games.raffled"
	case events.EventTypeLotteryFeeUpdated:
		return "lottery.fees.rate_updated"
	case events.EventTypeFeesWithdrawn:
		return "lottery.fees.withdrawn"
	default:
		return fmt.Sprintf("lottery.unknown.%s", event.Type())
	}
}

// GetAllSubjects returns all subjects the ledger publishes to
func (m *EventSubjectMapper) GetAllSubjects() []string {
	return []string{
		"lottery.games.created",
		"lottery.games.entered",
		"lottery.games.raffled",
		"lottery.fees.rate_updated",
		"lottery.fees.withdrawn",
	}
}
