package economy

import (
	"context"
	"sync"
	"testing"
	"time"

	"theagency-bot/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRewards(t *testing.T, cooldown time.Duration, amount int64) (*Rewards, *Ledger) {
	t.Helper()
	ledger := NewLedger(store.NewMemoryStore())
	rewards := NewRewards(ledger, map[ClaimKind]ClaimPolicy{
		ClaimDaily: {Cooldown: cooldown, Reward: func() int64 { return amount }},
		ClaimWork:  {Cooldown: cooldown, Reward: func() int64 { return amount }},
	})
	return rewards, ledger
}

func TestFirstClaimGranted(t *testing.T) {
	rewards, _ := newTestRewards(t, 12*time.Hour, 1500)

	result, err := rewards.TryClaim(context.Background(), ClaimDaily, "123")
	require.NoError(t, err)
	assert.True(t, result.Granted)
	assert.Equal(t, int64(1500), result.Amount)
	assert.Equal(t, int64(1500), result.NewBalance)
}

func TestSecondClaimWithinCooldownDenied(t *testing.T) {
	ctx := context.Background()
	rewards, _ := newTestRewards(t, 12*time.Hour, 1500)

	base := time.Now()
	rewards.SetClock(func() time.Time { return base })

	result, err := rewards.TryClaim(ctx, ClaimDaily, "123")
	require.NoError(t, err)
	require.True(t, result.Granted)

	rewards.SetClock(func() time.Time { return base.Add(time.Hour) })
	result, err = rewards.TryClaim(ctx, ClaimDaily, "123")
	require.NoError(t, err)
	assert.False(t, result.Granted)
	assert.Greater(t, result.Remaining, time.Duration(0))
	assert.Equal(t, 11*time.Hour, result.Remaining)
}

func TestClaimAtExactCooldownBoundaryIsEligible(t *testing.T) {
	ctx := context.Background()
	rewards, _ := newTestRewards(t, 12*time.Hour, 1500)

	base := time.Now()
	rewards.SetClock(func() time.Time { return base })
	result, err := rewards.TryClaim(ctx, ClaimDaily, "123")
	require.NoError(t, err)
	require.True(t, result.Granted)

	// elapsed == cooldown is inclusive
	rewards.SetClock(func() time.Time { return base.Add(12 * time.Hour) })
	result, err = rewards.TryClaim(ctx, ClaimDaily, "123")
	require.NoError(t, err)
	assert.True(t, result.Granted)
	assert.Equal(t, int64(3000), result.NewBalance)
}

func TestDailyAndWorkTracksAreIndependent(t *testing.T) {
	ctx := context.Background()
	rewards, _ := newTestRewards(t, time.Hour, 100)

	result, err := rewards.TryClaim(ctx, ClaimDaily, "123")
	require.NoError(t, err)
	require.True(t, result.Granted)

	// Daily cooldown does not block work.
	result, err = rewards.TryClaim(ctx, ClaimWork, "123")
	require.NoError(t, err)
	assert.True(t, result.Granted)
	assert.Equal(t, int64(200), result.NewBalance)
}

func TestConcurrentClaimsGrantOnlyOnce(t *testing.T) {
	ctx := context.Background()
	rewards, ledger := newTestRewards(t, 12*time.Hour, 1000)

	granted := 0
	var mu sync.Mutex
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			result, err := rewards.TryClaim(ctx, ClaimDaily, "123")
			if err == nil && result.Granted {
				mu.Lock()
				granted++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, granted)

	balance, err := ledger.GetBalance(ctx, "123")
	require.NoError(t, err)
	assert.Equal(t, int64(1000), balance)
}

func TestUnknownClaimKind(t *testing.T) {
	rewards, _ := newTestRewards(t, time.Hour, 100)

	_, err := rewards.TryClaim(context.Background(), ClaimKind("weekly"), "123")
	assert.Error(t, err)
}

func TestRandomRewardStaysInRange(t *testing.T) {
	reward := RandomReward(50, 200)
	for i := 0; i < 1000; i++ {
		amount := reward()
		assert.GreaterOrEqual(t, amount, int64(50))
		assert.LessOrEqual(t, amount, int64(200))
	}
}
