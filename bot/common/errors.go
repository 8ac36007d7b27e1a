package common

import (
	"errors"
	"fmt"

	"lottery/service"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// RespondWithError sends an ephemeral error message as an interaction response
func RespondWithError(s *discordgo.Session, i *discordgo.InteractionCreate, message string) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: fmt.Sprintf("❌ %s", message),
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		log.Errorf("Error sending error response: %v", err)
	}
}

// UserMessageForError maps a ledger error to the text shown to the Discord user.
// Anything that is not a ledger precondition failure gets a generic message.
func UserMessageForError(err error) string {
	switch {
	case errors.Is(err, service.ErrUnauthorized):
		return "Only the lottery manager can do that."
	case errors.Is(err, service.ErrInvalidEntrancePrice):
		return "Entrance price must be greater than zero."
	case errors.Is(err, service.ErrGameNotFound):
		return "That game doesn't exist."
	case errors.Is(err, service.ErrGameAlreadyRaffled):
		return "That game has already been raffled."
	case errors.Is(err, service.ErrInvalidPaymentAmount):
		return "You must pay exactly the entrance price."
	case errors.Is(err, service.ErrInvalidFeeRate):
		return "Fee rate must be between 5 and 25 percent."
	case errors.Is(err, service.ErrGameFull):
		return "That game is full."
	case errors.Is(err, service.ErrAmountOverflow):
		return "That amount is too large for the ledger."
	default:
		return "Something went wrong. Please try again later."
	}
}

// HandleServiceError logs err and responds with the matching user message
func HandleServiceError(s *discordgo.Session, i *discordgo.InteractionCreate, err error, operation string) {
	fields := log.Fields{
		"operation": operation,
		"error":     err,
	}
	if i.Member != nil && i.Member.User != nil {
		fields["user_id"] = i.Member.User.ID
	}

	if service.IsDomainError(err) {
		log.WithFields(fields).Info("Lottery request rejected")
	} else {
		log.WithFields(fields).Error("Lottery request failed")
	}

	RespondWithError(s, i, UserMessageForError(err))
}
