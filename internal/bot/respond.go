package bot

import (
	"fmt"
	"log"

	"github.com/bwmarrin/discordgo"
)

// Currency presentation, shared by every economy embed.
const (
	currencyName   = "Coins"
	currencySymbol = "\U0001F4B0"
)

// Embed colors.
const (
	colorSuccess = 0x00ff00
	colorError   = 0xff0000
	colorInfo    = 0x5865f2
)

// respondEmbed replies to an interaction with a single embed.
func respondEmbed(s *discordgo.Session, i *discordgo.InteractionCreate, embed *discordgo.MessageEmbed, ephemeral bool) {
	data := &discordgo.InteractionResponseData{
		Embeds: []*discordgo.MessageEmbed{embed},
	}
	if ephemeral {
		data.Flags = discordgo.MessageFlagsEphemeral
	}

	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: data,
	})
	if err != nil {
		log.Printf("[Bot] Failed to respond to interaction: %v", err)
	}
}

// errorEmbed builds the standard red failure embed.
func errorEmbed(title, description string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       title,
		Description: description,
		Color:       colorError,
	}
}

// successEmbed builds the standard green success embed.
func successEmbed(title, description string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       title,
		Description: description,
		Color:       colorSuccess,
	}
}

// respondError is the common failure reply path.
func respondError(s *discordgo.Session, i *discordgo.InteractionCreate, title, description string, ephemeral bool) {
	respondEmbed(s, i, errorEmbed(title, description), ephemeral)
}

// respondInternalError reports a store or service failure without detail.
func respondInternalError(s *discordgo.Session, i *discordgo.InteractionCreate, err error) {
	log.Printf("[Bot] Command %s failed: %v", i.ApplicationCommandData().Name, err)
	respondError(s, i, "Something Went Wrong", "The command could not be completed. Please try again later.", true)
}

// optionMap indexes interaction options by name.
func optionMap(options []*discordgo.ApplicationCommandInteractionDataOption) map[string]*discordgo.ApplicationCommandInteractionDataOption {
	m := make(map[string]*discordgo.ApplicationCommandInteractionDataOption, len(options))
	for _, opt := range options {
		m[opt.Name] = opt
	}
	return m
}

// formatAmount renders a currency amount with symbol and unit.
func formatAmount(amount int64) string {
	return fmt.Sprintf("%s %d %s", currencySymbol, amount, currencyName)
}

// guildOwnerID resolves the owner of the interaction's guild, preferring the
// session state cache.
func guildOwnerID(s *discordgo.Session, guildID string) string {
	if guild, err := s.State.Guild(guildID); err == nil && guild.OwnerID != "" {
		return guild.OwnerID
	}
	guild, err := s.Guild(guildID)
	if err != nil {
		return ""
	}
	return guild.OwnerID
}

// memberRoles returns the interaction member's role IDs.
func memberRoles(i *discordgo.InteractionCreate) []string {
	if i.Member == nil {
		return nil
	}
	return i.Member.Roles
}

// interactionUser returns the invoking user for both guild and DM interactions.
func interactionUser(i *discordgo.InteractionCreate) *discordgo.User {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User
	}
	return i.User
}
