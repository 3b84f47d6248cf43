package welcome

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"theagency-bot/internal/model"
	"theagency-bot/internal/store"
)

// Service stores per-guild welcome message configuration.
type Service struct {
	store store.Store
	now   func() time.Time
}

// NewService creates a welcome service over the given store.
func NewService(st store.Store) *Service {
	return &Service{
		store: st,
		now:   time.Now,
	}
}

// SetConfig saves the guild's welcome configuration and enables it.
func (s *Service) SetConfig(ctx context.Context, guildID string, cfg model.WelcomeConfig) (*model.WelcomeConfig, error) {
	cfg.Enabled = true
	cfg.Timestamp = s.now().UnixMilli()

	data, err := json.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize welcome config: %w", err)
	}
	if err := s.store.Set(ctx, store.TableWelcome, guildID, data); err != nil {
		return nil, fmt.Errorf("failed to save welcome config for %s: %w", guildID, err)
	}
	return &cfg, nil
}

// GetConfig returns the guild's welcome configuration, or nil when none is set.
func (s *Service) GetConfig(ctx context.Context, guildID string) (*model.WelcomeConfig, error) {
	data, err := s.store.Get(ctx, store.TableWelcome, guildID)
	if err != nil {
		if err == store.ErrNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load welcome config for %s: %w", guildID, err)
	}

	var cfg model.WelcomeConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse welcome config for %s: %w", guildID, err)
	}
	return &cfg, nil
}

// SetEnabled toggles the guild's welcome message. Returns false when the
// guild has no configuration to toggle.
func (s *Service) SetEnabled(ctx context.Context, guildID string, enabled bool) (bool, error) {
	cfg, err := s.GetConfig(ctx, guildID)
	if err != nil {
		return false, err
	}
	if cfg == nil {
		return false, nil
	}

	cfg.Enabled = enabled
	data, err := json.Marshal(cfg)
	if err != nil {
		return false, fmt.Errorf("failed to serialize welcome config: %w", err)
	}
	if err := s.store.Set(ctx, store.TableWelcome, guildID, data); err != nil {
		return false, fmt.Errorf("failed to save welcome config for %s: %w", guildID, err)
	}
	return true, nil
}

// RenderMessage substitutes the {user} placeholder with the member's mention.
func RenderMessage(template, userMention string) string {
	return strings.ReplaceAll(template, "{user}", userMention)
}
