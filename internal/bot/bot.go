package bot

import (
	"fmt"
	"log"

	"theagency-bot/internal/access"
	"theagency-bot/internal/config"
	"theagency-bot/internal/economy"
	"theagency-bot/internal/moderation"
	"theagency-bot/internal/welcome"

	"github.com/bwmarrin/discordgo"
)

// Bot wires the Discord gateway to the economy and moderation services.
// All dependencies are injected at construction; nothing global.
type Bot struct {
	session *discordgo.Session
	cfg     *config.Config

	ledger      *economy.Ledger
	rewards     *economy.Rewards
	shop        *economy.Shop
	leaderboard *economy.Leaderboard
	warnings    *moderation.Warnings
	access      *access.Control
	welcome     *welcome.Service

	commandHandlers      map[string]func(s *discordgo.Session, i *discordgo.InteractionCreate)
	autocompleteHandlers map[string]func(s *discordgo.Session, i *discordgo.InteractionCreate)
}

// Deps bundles the services the bot depends on.
type Deps struct {
	Ledger      *economy.Ledger
	Rewards     *economy.Rewards
	Shop        *economy.Shop
	Leaderboard *economy.Leaderboard
	Warnings    *moderation.Warnings
	Access      *access.Control
	Welcome     *welcome.Service
}

// New creates the bot and its Discord session. The session is not opened yet.
func New(cfg *config.Config, deps Deps) (*Bot, error) {
	session, err := discordgo.New("Bot " + cfg.Discord.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to create Discord session: %w", err)
	}

	session.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMembers |
		discordgo.IntentsGuildMessages

	b := &Bot{
		session:     session,
		cfg:         cfg,
		ledger:      deps.Ledger,
		rewards:     deps.Rewards,
		shop:        deps.Shop,
		leaderboard: deps.Leaderboard,
		warnings:    deps.Warnings,
		access:      deps.Access,
		welcome:     deps.Welcome,
	}
	b.registerHandlers()

	session.AddHandler(b.onReady)
	session.AddHandler(b.onInteractionCreate)
	session.AddHandler(b.onGuildMemberAdd)

	return b, nil
}

// registerHandlers maps command names to their handlers.
func (b *Bot) registerHandlers() {
	b.commandHandlers = map[string]func(s *discordgo.Session, i *discordgo.InteractionCreate){
		"balance":       b.handleBalance,
		"daily":         b.handleDaily,
		"work":          b.handleWork,
		"transfer":      b.handleTransfer,
		"shop":          b.handleShop,
		"buy":           b.handleBuy,
		"inventory":     b.handleInventory,
		"leaderboard":   b.handleLeaderboard,
		"admin-economy": b.handleAdminEconomy,
		"admin-shop":    b.handleAdminShop,
		"admin-roles":   b.handleAdminRoles,
		"warn":          b.handleWarn,
		"warnings":      b.handleWarnings,
		"ban":           b.handleBan,
		"kick":          b.handleKick,
		"timeout":       b.handleTimeout,
		"clear":         b.handleClear,
		"clear-all":     b.handleClearAll,
		"welcome":       b.handleWelcome,
	}
	b.autocompleteHandlers = map[string]func(s *discordgo.Session, i *discordgo.InteractionCreate){
		"buy": b.autocompleteBuy,
	}
}

// Start opens the gateway connection. Slash commands are registered in the
// ready handler once the bot user is known.
func (b *Bot) Start() error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("failed to open Discord connection: %w", err)
	}
	return nil
}

// Stop closes the gateway connection.
func (b *Bot) Stop() error {
	return b.session.Close()
}

// onReady registers the slash commands, scoped to the configured guild when
// one is set (instant propagation) or globally otherwise.
func (b *Bot) onReady(s *discordgo.Session, r *discordgo.Ready) {
	log.Printf("[Bot] Logged in as %s#%s", r.User.Username, r.User.Discriminator)

	for _, cmd := range commandDefinitions() {
		if _, err := s.ApplicationCommandCreate(r.User.ID, b.cfg.Discord.GuildID, cmd); err != nil {
			log.Printf("[Bot] Failed to register command /%s: %v", cmd.Name, err)
			continue
		}
		log.Printf("[Bot] Registered command: /%s", cmd.Name)
	}
}

// onInteractionCreate dispatches slash commands and autocomplete requests.
func (b *Bot) onInteractionCreate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		if handler, ok := b.commandHandlers[i.ApplicationCommandData().Name]; ok {
			handler(s, i)
		}
	case discordgo.InteractionApplicationCommandAutocomplete:
		if handler, ok := b.autocompleteHandlers[i.ApplicationCommandData().Name]; ok {
			handler(s, i)
		}
	}
}
