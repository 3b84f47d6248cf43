package welcome

import (
	"context"
	"testing"

	"theagency-bot/internal/model"
	"theagency-bot/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetConfigEnablesAndStamps(t *testing.T) {
	ctx := context.Background()
	svc := NewService(store.NewMemoryStore())

	saved, err := svc.SetConfig(ctx, "guild-1", model.WelcomeConfig{
		ChannelID: "chan-1",
		Message:   "Welcome {user}!",
		Enabled:   false,
	})
	require.NoError(t, err)
	assert.True(t, saved.Enabled)
	assert.NotZero(t, saved.Timestamp)

	cfg, err := svc.GetConfig(ctx, "guild-1")
	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, "chan-1", cfg.ChannelID)
	assert.Equal(t, "Welcome {user}!", cfg.Message)
	assert.True(t, cfg.Enabled)
}

func TestGetConfigMissingGuild(t *testing.T) {
	svc := NewService(store.NewMemoryStore())

	cfg, err := svc.GetConfig(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, cfg)
}

func TestSetEnabledToggles(t *testing.T) {
	ctx := context.Background()
	svc := NewService(store.NewMemoryStore())

	_, err := svc.SetConfig(ctx, "guild-1", model.WelcomeConfig{ChannelID: "chan-1", Message: "hi"})
	require.NoError(t, err)

	ok, err := svc.SetEnabled(ctx, "guild-1", false)
	require.NoError(t, err)
	assert.True(t, ok)

	cfg, err := svc.GetConfig(ctx, "guild-1")
	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.False(t, cfg.Enabled)
}

func TestSetEnabledWithoutConfig(t *testing.T) {
	svc := NewService(store.NewMemoryStore())

	ok, err := svc.SetEnabled(context.Background(), "guild-1", true)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRenderMessage(t *testing.T) {
	assert.Equal(t, "Welcome <@123>!", RenderMessage("Welcome {user}!", "<@123>"))
	assert.Equal(t, "<@123> and <@123>", RenderMessage("{user} and {user}", "<@123>"))
	assert.Equal(t, "no placeholder", RenderMessage("no placeholder", "<@123>"))
}
