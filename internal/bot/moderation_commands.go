package bot

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
)

// handleWarn records a warning against a user.
func (b *Bot) handleWarn(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !b.requireAdmin(s, i) {
		return
	}

	opts := optionMap(i.ApplicationCommandData().Options)
	target := opts["user"].UserValue(s)
	reason := opts["reason"].StringValue()
	moderator := interactionUser(i)

	warning, err := b.warnings.Add(context.Background(), i.GuildID, target.ID, moderator.ID, reason)
	if err != nil {
		respondInternalError(s, i, err)
		return
	}

	embed := successEmbed("User Warned",
		fmt.Sprintf("**%s** has been warned.\n**Reason:** %s\n**Warning ID:** %d",
			target.Username, reason, warning.ID))
	respondEmbed(s, i, embed, false)
}

// handleWarnings implements warnings view|remove|clear.
func (b *Bot) handleWarnings(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !b.requireAdmin(s, i) {
		return
	}

	ctx := context.Background()
	sub := i.ApplicationCommandData().Options[0]
	opts := optionMap(sub.Options)
	target := opts["user"].UserValue(s)

	switch sub.Name {
	case "view":
		warnings, err := b.warnings.List(ctx, i.GuildID, target.ID)
		if err != nil {
			respondInternalError(s, i, err)
			return
		}
		if len(warnings) == 0 {
			respondEmbed(s, i, &discordgo.MessageEmbed{
				Title:       fmt.Sprintf("Warnings for %s", target.Username),
				Description: "This user has no warnings.",
				Color:       colorInfo,
			}, true)
			return
		}
		var lines []string
		for _, warning := range warnings {
			when := time.UnixMilli(warning.Timestamp).UTC().Format("2006-01-02 15:04")
			lines = append(lines, fmt.Sprintf("**#%d** — %s (by <@%s>, %s UTC)",
				warning.ID, warning.Reason, warning.ModeratorID, when))
		}
		respondEmbed(s, i, &discordgo.MessageEmbed{
			Title:       fmt.Sprintf("Warnings for %s", target.Username),
			Description: strings.Join(lines, "\n"),
			Color:       colorInfo,
		}, true)

	case "remove":
		warningID := opts["warning_id"].IntValue()
		removed, err := b.warnings.Remove(ctx, i.GuildID, target.ID, warningID)
		if err != nil {
			respondInternalError(s, i, err)
			return
		}
		if !removed {
			respondError(s, i, "Warning Not Found",
				fmt.Sprintf("**%s** has no warning with ID %d.", target.Username, warningID), true)
			return
		}
		respondEmbed(s, i, successEmbed("Warning Removed",
			fmt.Sprintf("Warning #%d removed from **%s**.", warningID, target.Username)), true)

	case "clear":
		count, err := b.warnings.Clear(ctx, i.GuildID, target.ID)
		if err != nil {
			respondInternalError(s, i, err)
			return
		}
		respondEmbed(s, i, successEmbed("Warnings Cleared",
			fmt.Sprintf("Cleared %d warning(s) for **%s**.", count, target.Username)), true)
	}
}

// handleBan bans a user from the guild.
func (b *Bot) handleBan(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !b.requireAdmin(s, i) {
		return
	}

	opts := optionMap(i.ApplicationCommandData().Options)
	target := opts["user"].UserValue(s)
	reason := "No reason provided"
	if opt, ok := opts["reason"]; ok {
		reason = opt.StringValue()
	}

	if err := s.GuildBanCreateWithReason(i.GuildID, target.ID, reason, 0); err != nil {
		respondError(s, i, "Ban Failed",
			fmt.Sprintf("Could not ban **%s**. Check the bot's role position and permissions.", target.Username), true)
		return
	}

	respondEmbed(s, i, successEmbed("User Banned",
		fmt.Sprintf("**%s** has been banned.\n**Reason:** %s", target.Username, reason)), false)
}

// handleKick kicks a user from the guild.
func (b *Bot) handleKick(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !b.requireAdmin(s, i) {
		return
	}

	opts := optionMap(i.ApplicationCommandData().Options)
	target := opts["user"].UserValue(s)
	reason := "No reason provided"
	if opt, ok := opts["reason"]; ok {
		reason = opt.StringValue()
	}

	if err := s.GuildMemberDeleteWithReason(i.GuildID, target.ID, reason); err != nil {
		respondError(s, i, "Kick Failed",
			fmt.Sprintf("Could not kick **%s**. Check the bot's role position and permissions.", target.Username), true)
		return
	}

	respondEmbed(s, i, successEmbed("User Kicked",
		fmt.Sprintf("**%s** has been kicked.\n**Reason:** %s", target.Username, reason)), false)
}

// handleTimeout times a user out for one of the fixed durations.
func (b *Bot) handleTimeout(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !b.requireAdmin(s, i) {
		return
	}

	opts := optionMap(i.ApplicationCommandData().Options)
	target := opts["user"].UserValue(s)
	duration := time.Duration(opts["duration"].IntValue()) * time.Second
	reason := "No reason provided"
	if opt, ok := opts["reason"]; ok {
		reason = opt.StringValue()
	}

	until := time.Now().Add(duration)
	if err := s.GuildMemberTimeout(i.GuildID, target.ID, &until); err != nil {
		respondError(s, i, "Timeout Failed",
			fmt.Sprintf("Could not timeout **%s**. Check the bot's role position and permissions.", target.Username), true)
		return
	}

	respondEmbed(s, i, successEmbed("User Timed Out",
		fmt.Sprintf("**%s** is timed out for %s.\n**Reason:** %s",
			target.Username, duration, reason)), false)
}

// handleClear bulk-deletes up to 100 recent messages in the channel.
func (b *Bot) handleClear(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !b.requireAdmin(s, i) {
		return
	}

	opts := optionMap(i.ApplicationCommandData().Options)
	amount := int(opts["amount"].IntValue())

	deleted, err := b.deleteRecentMessages(s, i.ChannelID, amount)
	if err != nil {
		respondError(s, i, "Clear Failed", "Could not delete messages in this channel.", true)
		return
	}

	respondEmbed(s, i, successEmbed("Messages Cleared",
		fmt.Sprintf("Deleted %d message(s).", deleted)), true)
}

// handleClearAll bulk-deletes recent messages in batches until the channel
// runs dry. Bulk delete only reaches messages younger than 14 days; older
// history stays.
func (b *Bot) handleClearAll(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !b.requireAdmin(s, i) {
		return
	}

	total := 0
	for {
		deleted, err := b.deleteRecentMessages(s, i.ChannelID, 100)
		if err != nil {
			break
		}
		total += deleted
		if deleted < 100 {
			break
		}
	}

	respondEmbed(s, i, successEmbed("Channel Cleared",
		fmt.Sprintf("Deleted %d message(s).", total)), true)
}

// deleteRecentMessages fetches up to limit recent messages and bulk-deletes them.
func (b *Bot) deleteRecentMessages(s *discordgo.Session, channelID string, limit int) (int, error) {
	messages, err := s.ChannelMessages(channelID, limit, "", "", "")
	if err != nil {
		return 0, err
	}
	if len(messages) == 0 {
		return 0, nil
	}

	ids := make([]string, len(messages))
	for idx, msg := range messages {
		ids[idx] = msg.ID
	}

	if len(ids) == 1 {
		if err := s.ChannelMessageDelete(channelID, ids[0]); err != nil {
			return 0, err
		}
		return 1, nil
	}
	if err := s.ChannelMessagesBulkDelete(channelID, ids); err != nil {
		return 0, err
	}
	return len(ids), nil
}
