package access

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"theagency-bot/internal/model"
	"theagency-bot/internal/store"
)

// adminDocKey is the single admin configuration document inside the config table.
const adminDocKey = "admin"

// Control is the admin-role registry and permission predicate.
//
// Two tiers exist: ordinary admins (owner, superusers, admin-role holders)
// and the stricter sensitive-command allowlist used only for currency
// granting. Membership in adminRoles is necessary but not sufficient for the
// latter.
type Control struct {
	store          store.Store
	superusers     map[string]bool
	sensitiveUsers map[string]bool
	mu             sync.Mutex
}

// NewControl creates an access controller. Superusers and sensitiveUsers come
// from configuration, never from code.
func NewControl(st store.Store, superusers, sensitiveUsers []string) *Control {
	return &Control{
		store:          st,
		superusers:     toSet(superusers),
		sensitiveUsers: toSet(sensitiveUsers),
	}
}

func toSet(ids []string) map[string]bool {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		if id != "" {
			set[id] = true
		}
	}
	return set
}

func (c *Control) loadConfig(ctx context.Context) (*model.AdminConfig, error) {
	data, err := c.store.Get(ctx, store.TableConfig, adminDocKey)
	if err != nil {
		if err == store.ErrNotFound {
			return &model.AdminConfig{}, nil
		}
		return nil, fmt.Errorf("failed to load admin config: %w", err)
	}

	var cfg model.AdminConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse admin config: %w", err)
	}
	return &cfg, nil
}

func (c *Control) saveConfig(ctx context.Context, cfg *model.AdminConfig) error {
	if cfg.AdminRoles == nil {
		cfg.AdminRoles = []string{}
	}
	data, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to serialize admin config: %w", err)
	}
	if err := c.store.Set(ctx, store.TableConfig, adminDocKey, data); err != nil {
		return fmt.Errorf("failed to save admin config: %w", err)
	}
	return nil
}

// IsAdmin reports whether the user holds admin rights: a configured
// superuser, the guild owner, or a member of any configured admin role.
// An empty admin-role list means nobody but the owner and superusers.
// The display role is presentation only and is never consulted here.
func (c *Control) IsAdmin(ctx context.Context, userID, guildOwnerID string, roleIDs []string) (bool, error) {
	if c.superusers[userID] {
		return true, nil
	}
	if userID == guildOwnerID {
		return true, nil
	}

	cfg, err := c.loadConfig(ctx)
	if err != nil {
		return false, err
	}
	if len(cfg.AdminRoles) == 0 {
		return false, nil
	}

	adminRoles := toSet(cfg.AdminRoles)
	for _, roleID := range roleIDs {
		if adminRoles[roleID] {
			return true, nil
		}
	}
	return false, nil
}

// IsSensitiveUser reports whether the user is on the currency-granting
// allowlist. Independent of admin roles.
func (c *Control) IsSensitiveUser(userID string) bool {
	return c.sensitiveUsers[userID]
}

// AddAdminRole adds a role to the registry and returns the updated list.
// Adding an already-present role is a no-op.
func (c *Control) AddAdminRole(ctx context.Context, roleID string) ([]string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	cfg, err := c.loadConfig(ctx)
	if err != nil {
		return nil, err
	}

	for _, id := range cfg.AdminRoles {
		if id == roleID {
			return cfg.AdminRoles, nil
		}
	}
	cfg.AdminRoles = append(cfg.AdminRoles, roleID)

	if err := c.saveConfig(ctx, cfg); err != nil {
		return nil, err
	}
	return cfg.AdminRoles, nil
}

// RemoveAdminRole removes a role from the registry and returns the updated list.
func (c *Control) RemoveAdminRole(ctx context.Context, roleID string) ([]string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	cfg, err := c.loadConfig(ctx)
	if err != nil {
		return nil, err
	}

	filtered := cfg.AdminRoles[:0]
	for _, id := range cfg.AdminRoles {
		if id != roleID {
			filtered = append(filtered, id)
		}
	}
	cfg.AdminRoles = filtered

	if err := c.saveConfig(ctx, cfg); err != nil {
		return nil, err
	}
	return cfg.AdminRoles, nil
}

// ListAdminRoles returns the configured admin role IDs.
func (c *Control) ListAdminRoles(ctx context.Context) ([]string, error) {
	cfg, err := c.loadConfig(ctx)
	if err != nil {
		return nil, err
	}
	return cfg.AdminRoles, nil
}

// SetDisplayRoleID stores the role controlling command visibility. Pass an
// empty string to remove it. Presentation only, never enforcement.
func (c *Control) SetDisplayRoleID(ctx context.Context, roleID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	cfg, err := c.loadConfig(ctx)
	if err != nil {
		return err
	}
	cfg.DisplayRoleID = roleID
	return c.saveConfig(ctx, cfg)
}

// GetDisplayRoleID returns the display role ID, or "" if unset.
func (c *Control) GetDisplayRoleID(ctx context.Context) (string, error) {
	cfg, err := c.loadConfig(ctx)
	if err != nil {
		return "", err
	}
	return cfg.DisplayRoleID, nil
}
