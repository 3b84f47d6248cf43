package bot

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
)

// requireAdmin checks the invoker's admin tier and replies with a permission
// error when the check fails. Returns true when the caller may proceed.
func (b *Bot) requireAdmin(s *discordgo.Session, i *discordgo.InteractionCreate) bool {
	user := interactionUser(i)
	ok, err := b.access.IsAdmin(context.Background(), user.ID, guildOwnerID(s, i.GuildID), memberRoles(i))
	if err != nil {
		respondInternalError(s, i, err)
		return false
	}
	if !ok {
		respondError(s, i, "Permission Denied",
			"You do not have permission to use this command.", true)
		return false
	}
	return true
}

// handleAdminEconomy implements admin-economy add|remove|set. The add
// subcommand is additionally gated by the sensitive-command allowlist;
// ordinary admin rights are not enough to mint currency.
func (b *Bot) handleAdminEconomy(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !b.requireAdmin(s, i) {
		return
	}

	ctx := context.Background()
	sub := i.ApplicationCommandData().Options[0]
	opts := optionMap(sub.Options)

	target := opts["user"].UserValue(s)
	amount := opts["amount"].IntValue()
	invoker := interactionUser(i)

	if target.Bot {
		respondError(s, i, "Invalid Target", "You cannot modify a bot's balance.", true)
		return
	}

	_ = b.ledger.StoreUsername(ctx, target.ID, target.Username)

	var description string
	switch sub.Name {
	case "add":
		if !b.access.IsSensitiveUser(invoker.ID) {
			respondError(s, i, "Special Permission Denied",
				"You are not authorized to add currency. This command is restricted to specific administrators.", true)
			return
		}
		newBalance, err := b.ledger.AddBalance(ctx, target.ID, amount)
		if err != nil {
			respondInternalError(s, i, err)
			return
		}
		description = fmt.Sprintf("Added %s to **%s**. New balance: %s",
			formatAmount(amount), target.Username, formatAmount(newBalance))

	case "remove":
		newBalance, err := b.ledger.RemoveBalance(ctx, target.ID, amount)
		if err != nil {
			respondInternalError(s, i, err)
			return
		}
		description = fmt.Sprintf("Removed %s from **%s**. New balance: %s",
			formatAmount(amount), target.Username, formatAmount(newBalance))

	case "set":
		if err := b.ledger.SetBalance(ctx, target.ID, amount); err != nil {
			respondInternalError(s, i, err)
			return
		}
		description = fmt.Sprintf("Set **%s**'s balance to %s.",
			target.Username, formatAmount(amount))
	}

	respondEmbed(s, i, successEmbed("Economy Updated", description), true)
}

// handleAdminShop implements admin-shop add|remove|list|clear.
func (b *Bot) handleAdminShop(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !b.requireAdmin(s, i) {
		return
	}

	ctx := context.Background()
	sub := i.ApplicationCommandData().Options[0]
	opts := optionMap(sub.Options)

	switch sub.Name {
	case "add":
		item, err := b.shop.AddItem(ctx,
			opts["name"].StringValue(),
			opts["price"].IntValue(),
			opts["description"].StringValue())
		if err != nil {
			respondInternalError(s, i, err)
			return
		}
		respondEmbed(s, i, successEmbed("Item Added",
			fmt.Sprintf("**%s** added to the shop for %s.\nItem ID: `%s`",
				item.Name, formatAmount(item.Price), item.ID)), true)

	case "remove":
		itemID := opts["item_id"].StringValue()
		removed, item, err := b.shop.RemoveItem(ctx, itemID)
		if err != nil {
			respondInternalError(s, i, err)
			return
		}
		if !removed {
			respondError(s, i, "Item Not Found",
				fmt.Sprintf("No shop item has ID `%s`.", itemID), true)
			return
		}
		respondEmbed(s, i, successEmbed("Item Removed",
			fmt.Sprintf("**%s** was removed from the shop.", item.Name)), true)

	case "list":
		items, err := b.shop.ListItems(ctx)
		if err != nil {
			respondInternalError(s, i, err)
			return
		}
		if len(items) == 0 {
			respondEmbed(s, i, &discordgo.MessageEmbed{
				Title:       "Shop Items",
				Description: "The shop is empty.",
				Color:       colorInfo,
			}, true)
			return
		}
		var lines []string
		for _, item := range items {
			lines = append(lines, fmt.Sprintf("`%s` — **%s** (%s %d)", item.ID, item.Name, currencySymbol, item.Price))
		}
		respondEmbed(s, i, &discordgo.MessageEmbed{
			Title:       "Shop Items",
			Description: strings.Join(lines, "\n"),
			Color:       colorInfo,
		}, true)

	case "clear":
		count, err := b.shop.ClearAll(ctx)
		if err != nil {
			respondInternalError(s, i, err)
			return
		}
		respondEmbed(s, i, successEmbed("Shop Cleared",
			fmt.Sprintf("Removed %d item(s) from the shop.", count)), true)
	}
}

// handleAdminRoles implements admin-roles add|remove|list|set-display|get-display|remove-display.
func (b *Bot) handleAdminRoles(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !b.requireAdmin(s, i) {
		return
	}

	ctx := context.Background()
	sub := i.ApplicationCommandData().Options[0]
	opts := optionMap(sub.Options)

	switch sub.Name {
	case "add":
		role := opts["role"].RoleValue(s, i.GuildID)
		roles, err := b.access.AddAdminRole(ctx, role.ID)
		if err != nil {
			respondInternalError(s, i, err)
			return
		}
		respondEmbed(s, i, successEmbed("Admin Role Added",
			fmt.Sprintf("<@&%s> can now use admin commands. %d role(s) configured.", role.ID, len(roles))), true)

	case "remove":
		role := opts["role"].RoleValue(s, i.GuildID)
		roles, err := b.access.RemoveAdminRole(ctx, role.ID)
		if err != nil {
			respondInternalError(s, i, err)
			return
		}
		respondEmbed(s, i, successEmbed("Admin Role Removed",
			fmt.Sprintf("<@&%s> no longer grants admin access. %d role(s) configured.", role.ID, len(roles))), true)

	case "list":
		roles, err := b.access.ListAdminRoles(ctx)
		if err != nil {
			respondInternalError(s, i, err)
			return
		}
		description := "No admin roles configured. Only the server owner can use admin commands."
		if len(roles) > 0 {
			mentions := make([]string, len(roles))
			for idx, roleID := range roles {
				mentions[idx] = fmt.Sprintf("<@&%s>", roleID)
			}
			description = strings.Join(mentions, "\n")
		}
		respondEmbed(s, i, &discordgo.MessageEmbed{
			Title:       "Admin Roles",
			Description: description,
			Color:       colorInfo,
		}, true)

	case "set-display":
		role := opts["role"].RoleValue(s, i.GuildID)
		if err := b.access.SetDisplayRoleID(ctx, role.ID); err != nil {
			respondInternalError(s, i, err)
			return
		}
		respondEmbed(s, i, successEmbed("Display Role Set",
			fmt.Sprintf("Admin commands are now shown to <@&%s>. This affects visibility only, not permissions.", role.ID)), true)

	case "get-display":
		roleID, err := b.access.GetDisplayRoleID(ctx)
		if err != nil {
			respondInternalError(s, i, err)
			return
		}
		description := "No display role is set."
		if roleID != "" {
			description = fmt.Sprintf("The current display role is <@&%s>.", roleID)
		}
		respondEmbed(s, i, &discordgo.MessageEmbed{
			Title:       "Display Role",
			Description: description,
			Color:       colorInfo,
		}, true)

	case "remove-display":
		if err := b.access.SetDisplayRoleID(ctx, ""); err != nil {
			respondInternalError(s, i, err)
			return
		}
		respondEmbed(s, i, successEmbed("Display Role Removed",
			"Admin command visibility is no longer restricted to a role."), true)
	}
}
