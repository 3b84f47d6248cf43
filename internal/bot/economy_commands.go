package bot

import (
	"context"
	"fmt"
	"strings"
	"time"

	"theagency-bot/internal/economy"

	"github.com/bwmarrin/discordgo"
)

// handleBalance shows the invoker's balance, or another user's when given.
func (b *Bot) handleBalance(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()
	opts := optionMap(i.ApplicationCommandData().Options)

	target := interactionUser(i)
	if opt, ok := opts["user"]; ok {
		target = opt.UserValue(s)
	}

	balance, err := b.ledger.GetBalance(ctx, target.ID)
	if err != nil {
		respondInternalError(s, i, err)
		return
	}
	_ = b.ledger.StoreUsername(ctx, target.ID, target.Username)

	embed := &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("%s's Balance", target.Username),
		Description: formatAmount(balance),
		Color:       colorInfo,
	}
	respondEmbed(s, i, embed, false)
}

// handleDaily claims the daily reward.
func (b *Bot) handleDaily(s *discordgo.Session, i *discordgo.InteractionCreate) {
	b.handleClaim(s, i, economy.ClaimDaily)
}

// handleWork claims the work reward with a job flavor line.
func (b *Bot) handleWork(s *discordgo.Session, i *discordgo.InteractionCreate) {
	b.handleClaim(s, i, economy.ClaimWork)
}

func (b *Bot) handleClaim(s *discordgo.Session, i *discordgo.InteractionCreate, kind economy.ClaimKind) {
	ctx := context.Background()
	user := interactionUser(i)

	result, err := b.rewards.TryClaim(ctx, kind, user.ID)
	if err != nil {
		respondInternalError(s, i, err)
		return
	}

	if !result.Granted {
		title := "Daily Reward - Cooldown"
		description := fmt.Sprintf("You've already claimed your daily reward!\nCome back in **%s**.", formatRemaining(result.Remaining))
		if kind == economy.ClaimWork {
			title = "Work - Cooldown"
			description = fmt.Sprintf("You're too tired to work again!\nTake a break and come back in **%s**.", formatRemaining(result.Remaining))
		}
		respondError(s, i, title, description, false)
		return
	}

	_ = b.ledger.StoreUsername(ctx, user.ID, user.Username)

	var embed *discordgo.MessageEmbed
	if kind == economy.ClaimWork {
		job := economy.RandomJob()
		embed = successEmbed(
			fmt.Sprintf("You worked as a %s", job.Name),
			fmt.Sprintf("%s and earned %s!", job.Message, formatAmount(result.Amount)),
		)
	} else {
		embed = successEmbed(
			"Daily Reward Claimed!",
			fmt.Sprintf("You claimed your daily reward of %s!", formatAmount(result.Amount)),
		)
	}
	embed.Fields = []*discordgo.MessageEmbedField{
		{Name: "New Balance", Value: formatAmount(result.NewBalance)},
	}
	respondEmbed(s, i, embed, false)
}

// formatRemaining renders a cooldown remainder as "3h 12m" or "12m 40s".
func formatRemaining(d time.Duration) string {
	if d >= time.Hour {
		hours := int(d.Hours())
		minutes := int(d.Minutes()) % 60
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
	minutes := int(d.Minutes())
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%dm %ds", minutes, seconds)
}

// handleTransfer moves currency between two users.
func (b *Bot) handleTransfer(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()
	opts := optionMap(i.ApplicationCommandData().Options)

	sender := interactionUser(i)
	receiver := opts["user"].UserValue(s)
	amount := opts["amount"].IntValue()

	if receiver.Bot {
		respondError(s, i, "Invalid Target", "You cannot transfer currency to a bot.", false)
		return
	}

	_ = b.ledger.StoreUsername(ctx, sender.ID, sender.Username)
	_ = b.ledger.StoreUsername(ctx, receiver.ID, receiver.Username)

	senderBalance, _, err := b.ledger.TransferBalance(ctx, sender.ID, receiver.ID, amount)
	switch err {
	case nil:
	case economy.ErrSelfTransfer:
		respondError(s, i, "Invalid Target", "You cannot transfer currency to yourself.", false)
		return
	case economy.ErrInsufficientFunds:
		respondError(s, i, "Insufficient Funds",
			fmt.Sprintf("You don't have enough %s for this transfer!", currencyName), false)
		return
	default:
		respondInternalError(s, i, err)
		return
	}

	embed := successEmbed("Transfer Complete",
		fmt.Sprintf("You sent %s to **%s**.", formatAmount(amount), receiver.Username))
	embed.Fields = []*discordgo.MessageEmbedField{
		{Name: "Your New Balance", Value: formatAmount(senderBalance)},
	}
	respondEmbed(s, i, embed, false)
}

// handleShop lists the catalog.
func (b *Bot) handleShop(s *discordgo.Session, i *discordgo.InteractionCreate) {
	items, err := b.shop.ListItems(context.Background())
	if err != nil {
		respondInternalError(s, i, err)
		return
	}

	if len(items) == 0 {
		respondEmbed(s, i, &discordgo.MessageEmbed{
			Title:       "Item Shop",
			Description: "The shop is empty right now. Check back later!",
			Color:       colorInfo,
		}, false)
		return
	}

	fields := make([]*discordgo.MessageEmbedField, 0, len(items))
	for _, item := range items {
		description := item.Description
		if description == "" {
			description = "No description available"
		}
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:  fmt.Sprintf("%s — %s %d", item.Name, currencySymbol, item.Price),
			Value: description,
		})
	}

	respondEmbed(s, i, &discordgo.MessageEmbed{
		Title:       "Item Shop",
		Description: "Use `/buy item` to purchase.",
		Color:       colorInfo,
		Fields:      fields,
	}, false)
}

// handleBuy purchases an item by name or ID.
func (b *Bot) handleBuy(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()
	opts := optionMap(i.ApplicationCommandData().Options)
	user := interactionUser(i)
	itemRef := opts["item"].StringValue()

	item, newBalance, err := b.shop.Buy(ctx, user.ID, itemRef)
	switch err {
	case nil:
	case economy.ErrItemNotFound:
		respondError(s, i, "Item Not Found",
			fmt.Sprintf("Could not find an item called \"%s\" in the shop.", itemRef), false)
		return
	case economy.ErrInsufficientFunds:
		respondError(s, i, "Insufficient Funds",
			fmt.Sprintf("You don't have enough %s to buy this item!", currencyName), false)
		return
	default:
		respondInternalError(s, i, err)
		return
	}

	_ = b.ledger.StoreUsername(ctx, user.ID, user.Username)

	description := item.Description
	if description == "" {
		description = "No description available"
	}
	embed := successEmbed("Item Purchased",
		fmt.Sprintf("You purchased **%s** for %s!", item.Name, formatAmount(item.Price)))
	embed.Fields = []*discordgo.MessageEmbedField{
		{Name: "Item Description", Value: description},
		{Name: "New Balance", Value: formatAmount(newBalance)},
	}
	respondEmbed(s, i, embed, false)
}

// autocompleteBuy suggests shop items matching the typed prefix.
func (b *Bot) autocompleteBuy(s *discordgo.Session, i *discordgo.InteractionCreate) {
	items, err := b.shop.ListItems(context.Background())
	if err != nil {
		return
	}

	var typed string
	for _, opt := range i.ApplicationCommandData().Options {
		if opt.Focused {
			typed = strings.ToLower(opt.StringValue())
		}
	}

	choices := make([]*discordgo.ApplicationCommandOptionChoice, 0, 25)
	for _, item := range items {
		if typed != "" && !strings.Contains(strings.ToLower(item.Name), typed) &&
			!strings.Contains(strings.ToLower(item.ID), typed) {
			continue
		}
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{
			Name:  fmt.Sprintf("%s (%s %d)", item.Name, currencySymbol, item.Price),
			Value: item.Name,
		})
		if len(choices) == 25 {
			break
		}
	}

	_ = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionApplicationCommandAutocompleteResult,
		Data: &discordgo.InteractionResponseData{Choices: choices},
	})
}

// handleInventory shows a user's purchased items, grouped with counts.
func (b *Bot) handleInventory(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()
	opts := optionMap(i.ApplicationCommandData().Options)

	target := interactionUser(i)
	if opt, ok := opts["user"]; ok {
		target = opt.UserValue(s)
	}

	inventory, err := b.shop.GetInventory(ctx, target.ID)
	if err != nil {
		respondInternalError(s, i, err)
		return
	}

	if len(inventory) == 0 {
		respondEmbed(s, i, &discordgo.MessageEmbed{
			Title:       fmt.Sprintf("%s's Inventory", target.Username),
			Description: "No items yet. Visit the `/shop` to buy something!",
			Color:       colorInfo,
		}, false)
		return
	}

	items, err := b.shop.ListItems(ctx)
	if err != nil {
		respondInternalError(s, i, err)
		return
	}
	names := make(map[string]string, len(items))
	for _, item := range items {
		names[item.ID] = item.Name
	}

	// Group duplicates while keeping first-acquisition order.
	counts := make(map[string]int)
	var order []string
	for _, id := range inventory {
		if counts[id] == 0 {
			order = append(order, id)
		}
		counts[id]++
	}

	var lines []string
	for _, id := range order {
		name, ok := names[id]
		if !ok {
			name = "Unknown item (" + id + ")"
		}
		if counts[id] > 1 {
			lines = append(lines, fmt.Sprintf("**%s** x%d", name, counts[id]))
		} else {
			lines = append(lines, fmt.Sprintf("**%s**", name))
		}
	}

	respondEmbed(s, i, &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("%s's Inventory", target.Username),
		Description: strings.Join(lines, "\n"),
		Color:       colorInfo,
	}, false)
}

// handleLeaderboard shows the top balances.
func (b *Bot) handleLeaderboard(s *discordgo.Session, i *discordgo.InteractionCreate) {
	opts := optionMap(i.ApplicationCommandData().Options)

	limit := 10
	if opt, ok := opts["limit"]; ok {
		limit = int(opt.IntValue())
	}

	entries, err := b.leaderboard.Top(context.Background(), limit)
	if err != nil {
		respondInternalError(s, i, err)
		return
	}

	if len(entries) == 0 {
		respondEmbed(s, i, &discordgo.MessageEmbed{
			Title:       "Leaderboard",
			Description: "Nobody has earned any " + currencyName + " yet!",
			Color:       colorInfo,
		}, false)
		return
	}

	var lines []string
	for rank, entry := range entries {
		lines = append(lines, fmt.Sprintf("**%d.** %s — %s %d", rank+1, entry.Username, currencySymbol, entry.Balance))
	}

	respondEmbed(s, i, &discordgo.MessageEmbed{
		Title:       currencySymbol + " Leaderboard",
		Description: strings.Join(lines, "\n"),
		Color:       colorInfo,
	}, false)
}
