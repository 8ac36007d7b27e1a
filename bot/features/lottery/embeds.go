package lottery

import (
	"fmt"
	"strings"
	"time"

	"lottery/bot/common"
	"lottery/models"

	"github.com/bwmarrin/discordgo"
)

// maxListedParticipants caps the mentions rendered in a single game embed
const maxListedParticipants = 20

// BuildGameEmbed renders a single game
func BuildGameEmbed(game *models.Game) *discordgo.MessageEmbed {
	status := "🟢 Open"
	color := common.ColorSuccess
	if !game.IsOpen() {
		status = "🏁 Raffled"
		color = common.ColorInfo
	}

	embed := &discordgo.MessageEmbed{
		Title:     fmt.Sprintf("🎟️ Lottery Game #%d", game.ID),
		Color:     color,
		Timestamp: time.Now().Format(time.RFC3339),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Status", Value: status, Inline: true},
			{Name: "Entrance Price", Value: common.FormatBalance(game.EntrancePrice), Inline: true},
			{Name: "Prize Pool", Value: common.FormatBalance(game.PrizePool), Inline: true},
			{Name: "Participants", Value: fmt.Sprintf("%d", game.ParticipantCount), Inline: true},
		},
	}

	if game.HasWinner() {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   "Winner",
			Value:  common.FormatUserMention(*game.WinnerDiscordID),
			Inline: true,
		})
	}

	if len(game.Participants) > 0 {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "Entries",
			Value: formatParticipants(game.Participants),
		})
	}

	return embed
}

func formatParticipants(participants []int64) string {
	shown := participants
	if len(shown) > maxListedParticipants {
		shown = shown[:maxListedParticipants]
	}

	mentions := make([]string, 0, len(shown))
	for _, id := range shown {
		mentions = append(mentions, common.FormatUserMention(id))
	}

	text := strings.Join(mentions, ", ")
	if extra := len(participants) - len(shown); extra > 0 {
		text += fmt.Sprintf(" and %d more", extra)
	}
	return text
}

// BuildGamesListEmbed renders a list of games, one field per game
func BuildGamesListEmbed(title string, games []*models.Game) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:     title,
		Color:     common.ColorPrimary,
		Timestamp: time.Now().Format(time.RFC3339),
	}

	if len(games) == 0 {
		embed.Description = "No games found"
		return embed
	}

	raffled, open := models.PartitionGames(games)
	embed.Description = fmt.Sprintf("%d open · %d raffled", len(open), len(raffled))

	shown := games
	if len(shown) > common.MaxEmbedFields {
		shown = shown[len(shown)-common.MaxEmbedFields:]
		embed.Description += fmt.Sprintf("\nShowing the latest %d of %d games", len(shown), len(games))
	}

	for _, game := range shown {
		status := "raffled"
		if game.IsOpen() {
			status = "open"
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name: fmt.Sprintf("#%d (%s)", game.ID, status),
			Value: fmt.Sprintf("Price **%s** · Pool **%s** · %d entrants",
				common.FormatBalance(game.EntrancePrice),
				common.FormatBalance(game.PrizePool),
				game.ParticipantCount),
		})
	}

	return embed
}

// BuildEntryEmbed confirms an admitted entry
func BuildEntryEmbed(receipt *models.EntryReceipt) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("🎟️ Entered Game #%d", receipt.GameID),
		Description: fmt.Sprintf("You are participant #%d.", receipt.ParticipantCount),
		Color:       common.ColorSuccess,
		Timestamp:   time.Now().Format(time.RFC3339),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Prize Pool", Value: common.FormatBalance(receipt.PrizePool), Inline: true},
			{Name: "Added to Pool", Value: common.FormatBalance(receipt.PrizeShare), Inline: true},
			{Name: "Fee", Value: common.FormatBalance(receipt.FeeShare), Inline: true},
		},
	}
}

// BuildGameCreatedEmbed announces a newly opened game
func BuildGameCreatedEmbed(gameID, entrancePrice int64) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("🎉 Lottery Game #%d is open", gameID),
		Description: fmt.Sprintf("Enter with `/lottery enter id:%d amount:%d`", gameID, entrancePrice),
		Color:       common.ColorPrimary,
		Timestamp:   time.Now().Format(time.RFC3339),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Entrance Price", Value: common.FormatBalance(entrancePrice), Inline: true},
		},
	}
}

// BuildGameRaffledEmbed announces a closed game
func BuildGameRaffledEmbed(gameID, prizePool int64, participantCount int, winner *int64) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:     fmt.Sprintf("🏁 Lottery Game #%d has been raffled", gameID),
		Color:     common.ColorInfo,
		Timestamp: time.Now().Format(time.RFC3339),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Prize Pool", Value: common.FormatBalance(prizePool), Inline: true},
			{Name: "Participants", Value: fmt.Sprintf("%d", participantCount), Inline: true},
		},
	}

	if winner != nil {
		embed.Description = fmt.Sprintf("Winner: %s", common.FormatUserMention(*winner))
	} else {
		embed.Description = "No winner was drawn."
		embed.Color = common.ColorWarning
	}

	return embed
}
