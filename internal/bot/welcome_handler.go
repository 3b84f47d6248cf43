package bot

import (
	"context"
	"fmt"
	"log"

	"theagency-bot/internal/model"
	"theagency-bot/internal/welcome"

	"github.com/bwmarrin/discordgo"
)

// onGuildMemberAdd posts the configured welcome message when a member joins.
func (b *Bot) onGuildMemberAdd(s *discordgo.Session, m *discordgo.GuildMemberAdd) {
	cfg, err := b.welcome.GetConfig(context.Background(), m.GuildID)
	if err != nil {
		log.Printf("[Bot] Failed to load welcome config for guild %s: %v", m.GuildID, err)
		return
	}
	if cfg == nil || !cfg.Enabled || cfg.ChannelID == "" {
		return
	}

	embed := &discordgo.MessageEmbed{
		Title:       cfg.Title,
		Description: welcome.RenderMessage(cfg.Message, m.User.Mention()),
		Color:       colorInfo,
	}
	if cfg.Subtitle != "" {
		embed.Footer = &discordgo.MessageEmbedFooter{Text: cfg.Subtitle}
	}
	if cfg.LogoURL != "" {
		embed.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: cfg.LogoURL}
	}

	if _, err := s.ChannelMessageSendEmbed(cfg.ChannelID, embed); err != nil {
		log.Printf("[Bot] Failed to send welcome message in guild %s: %v", m.GuildID, err)
	}
}

// handleWelcome implements welcome set|toggle|show.
func (b *Bot) handleWelcome(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !b.requireAdmin(s, i) {
		return
	}

	ctx := context.Background()
	sub := i.ApplicationCommandData().Options[0]
	opts := optionMap(sub.Options)

	switch sub.Name {
	case "set":
		cfg := model.WelcomeConfig{
			ChannelID: opts["channel"].ChannelValue(s).ID,
			Title:     opts["title"].StringValue(),
			Message:   opts["message"].StringValue(),
		}
		if opt, ok := opts["subtitle"]; ok {
			cfg.Subtitle = opt.StringValue()
		}
		if opt, ok := opts["logo_url"]; ok {
			cfg.LogoURL = opt.StringValue()
		}

		saved, err := b.welcome.SetConfig(ctx, i.GuildID, cfg)
		if err != nil {
			respondInternalError(s, i, err)
			return
		}
		respondEmbed(s, i, successEmbed("Welcome Message Configured",
			fmt.Sprintf("New members will be greeted in <#%s>.", saved.ChannelID)), true)

	case "toggle":
		enabled := opts["enabled"].BoolValue()
		ok, err := b.welcome.SetEnabled(ctx, i.GuildID, enabled)
		if err != nil {
			respondInternalError(s, i, err)
			return
		}
		if !ok {
			respondError(s, i, "Not Configured",
				"Set up the welcome message with `/welcome set` first.", true)
			return
		}
		state := "disabled"
		if enabled {
			state = "enabled"
		}
		respondEmbed(s, i, successEmbed("Welcome Message Updated",
			fmt.Sprintf("The welcome message is now %s.", state)), true)

	case "show":
		cfg, err := b.welcome.GetConfig(ctx, i.GuildID)
		if err != nil {
			respondInternalError(s, i, err)
			return
		}
		if cfg == nil {
			respondError(s, i, "Not Configured",
				"No welcome message is set for this server.", true)
			return
		}
		state := "disabled"
		if cfg.Enabled {
			state = "enabled"
		}
		respondEmbed(s, i, &discordgo.MessageEmbed{
			Title: "Welcome Message",
			Description: fmt.Sprintf("Channel: <#%s>\nStatus: %s\nTitle: %s\nMessage: %s",
				cfg.ChannelID, state, cfg.Title, cfg.Message),
			Color: colorInfo,
		}, true)
	}
}
