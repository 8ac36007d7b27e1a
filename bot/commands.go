package bot

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
)

func gameIDOption() *discordgo.ApplicationCommandOption {
	minID := float64(1)
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionInteger,
		Name:        "id",
		Description: "Game ID",
		Required:    true,
		MinValue:    &minID,
	}
}

// lotteryCommand describes /lottery and all of its subcommands
func lotteryCommand() *discordgo.ApplicationCommand {
	minRate := float64(5)

	return &discordgo.ApplicationCommand{
		Name:        "lottery",
		Description: "Enter and manage lottery games",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "create",
				Description: "Open a new game (manager only)",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "price",
						Description: "Entrance price in tokens",
						Required:    true,
					},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "enter",
				Description: "Enter a game by paying its entrance price",
				Options: []*discordgo.ApplicationCommandOption{
					gameIDOption(),
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "amount",
						Description: "Payment in tokens, must equal the entrance price",
						Required:    true,
					},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "raffle",
				Description: "Close a game to further entries (manager only)",
				Options:     []*discordgo.ApplicationCommandOption{gameIDOption()},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "games",
				Description: "List lottery games",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "filter",
						Description: "Which games to show",
						Choices: []*discordgo.ApplicationCommandOptionChoice{
							{Name: "All", Value: "all"},
							{Name: "Open", Value: "open"},
							{Name: "Raffled", Value: "raffled"},
						},
					},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "game",
				Description: "Show a single game",
				Options:     []*discordgo.ApplicationCommandOption{gameIDOption()},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommandGroup,
				Name:        "fee",
				Description: "Lottery fee rate",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionSubCommand,
						Name:        "set",
						Description: "Set the fee rate for future entries (manager only)",
						Options: []*discordgo.ApplicationCommandOption{
							{
								Type:        discordgo.ApplicationCommandOptionInteger,
								Name:        "rate",
								Description: "Fee rate in percent (5-25)",
								Required:    true,
								MinValue:    &minRate,
								MaxValue:    25,
							},
						},
					},
					{
						Type:        discordgo.ApplicationCommandOptionSubCommand,
						Name:        "show",
						Description: "Show the current fee rate",
					},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommandGroup,
				Name:        "fees",
				Description: "Collected lottery fees",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionSubCommand,
						Name:        "collected",
						Description: "Show fees available for withdrawal (manager only)",
					},
					{
						Type:        discordgo.ApplicationCommandOptionSubCommand,
						Name:        "withdraw",
						Description: "Withdraw all collected fees (manager only)",
					},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "manager",
				Description: "Show the lottery manager (manager only)",
			},
		},
	}
}

// registerCommands registers all slash commands with Discord
func (b *Bot) registerCommands() error {
	commands := []*discordgo.ApplicationCommand{
		lotteryCommand(),
	}

	for _, cmd := range commands {
		_, err := b.session.ApplicationCommandCreate(b.session.State.User.ID, b.config.GuildID, cmd)
		if err != nil {
			return fmt.Errorf("cannot create '%s' command: %w", cmd.Name, err)
		}
	}

	return nil
}
