package lottery

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"
)

// Game list filters
const (
	filterAll     = "all"
	filterOpen    = "open"
	filterRaffled = "raffled"
)

func findOption(options []*discordgo.ApplicationCommandInteractionDataOption, name string) *discordgo.ApplicationCommandInteractionDataOption {
	for _, opt := range options {
		if opt.Name == name {
			return opt
		}
	}
	return nil
}

// intOption returns a required integer option
func intOption(options []*discordgo.ApplicationCommandInteractionDataOption, name string) (int64, error) {
	opt := findOption(options, name)
	if opt == nil {
		return 0, fmt.Errorf("missing option %q", name)
	}
	return opt.IntValue(), nil
}

// amountOption parses a token amount given as text.
// Discord integer options stop at 2^53, amounts use the full int64 range.
func amountOption(options []*discordgo.ApplicationCommandInteractionDataOption, name string) (int64, error) {
	opt := findOption(options, name)
	if opt == nil {
		return 0, fmt.Errorf("missing option %q", name)
	}
	return parseAmount(opt.StringValue())
}

func parseAmount(raw string) (int64, error) {
	cleaned := strings.NewReplacer(",", "", "_", "", " ", "").Replace(raw)
	if cleaned == "" {
		return 0, fmt.Errorf("amount is empty")
	}

	amount, err := strconv.ParseInt(cleaned, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not a whole number of tokens", raw)
	}
	return amount, nil
}

// filterOption returns the games filter, defaulting to all
func filterOption(options []*discordgo.ApplicationCommandInteractionDataOption) string {
	opt := findOption(options, "filter")
	if opt == nil {
		return filterAll
	}
	switch value := opt.StringValue(); value {
	case filterOpen, filterRaffled:
		return value
	default:
		return filterAll
	}
}
