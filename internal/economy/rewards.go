package economy

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"theagency-bot/internal/model"
)

// ClaimKind identifies a cooldown-gated reward track.
type ClaimKind string

const (
	ClaimDaily ClaimKind = "daily"
	ClaimWork  ClaimKind = "work"
)

// RewardFunc computes the amount granted for a successful claim.
type RewardFunc func() int64

// RandomReward returns a RewardFunc producing a uniform amount in [min, max].
func RandomReward(min, max int64) RewardFunc {
	return func() int64 {
		return min + rand.Int63n(max-min+1)
	}
}

// ClaimPolicy is the cooldown and reward policy for one claim kind.
type ClaimPolicy struct {
	Cooldown time.Duration
	Reward   RewardFunc
}

// ClaimResult is the outcome of a claim attempt. When Granted is false,
// Remaining is the time left on the cooldown.
type ClaimResult struct {
	Granted    bool
	Amount     int64
	NewBalance int64
	Remaining  time.Duration
}

// Rewards issues cooldown-gated rewards (daily/work) against the ledger.
type Rewards struct {
	ledger   *Ledger
	policies map[ClaimKind]ClaimPolicy
	now      func() time.Time
}

// NewRewards creates a reward scheduler with the given per-kind policies.
func NewRewards(ledger *Ledger, policies map[ClaimKind]ClaimPolicy) *Rewards {
	return &Rewards{
		ledger:   ledger,
		policies: policies,
		now:      time.Now,
	}
}

// SetClock overrides the time source. Test hook.
func (r *Rewards) SetClock(now func() time.Time) {
	r.now = now
}

// TryClaim attempts to claim the reward of the given kind for the user.
// A claim exactly at the cooldown boundary is eligible. The cooldown check,
// the credit and the new timestamp are one update under the account's lock,
// so two near-simultaneous requests cannot both claim.
func (r *Rewards) TryClaim(ctx context.Context, kind ClaimKind, userID string) (*ClaimResult, error) {
	policy, ok := r.policies[kind]
	if !ok {
		return nil, fmt.Errorf("unknown claim kind %q", kind)
	}

	result := &ClaimResult{}
	err := r.ledger.Update(ctx, userID, func(acct *model.Account) error {
		now := r.now().UnixMilli()
		last := acct.LastDaily
		if kind == ClaimWork {
			last = acct.LastWork
		}

		elapsed := now - last
		if last != 0 && elapsed < policy.Cooldown.Milliseconds() {
			result.Remaining = time.Duration(policy.Cooldown.Milliseconds()-elapsed) * time.Millisecond
			return nil
		}

		result.Granted = true
		result.Amount = policy.Reward()
		acct.Balance += result.Amount
		result.NewBalance = acct.Balance

		if kind == ClaimWork {
			acct.LastWork = now
		} else {
			acct.LastDaily = now
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Job is a flavor line attached to successful work claims.
type Job struct {
	Name    string
	Message string
}

var workJobs = []Job{
	{"Developer", "You fixed a critical bug in a client's website"},
	{"Developer", "You developed a new app feature"},
	{"Developer", "You optimized database queries"},
	{"Chef", "You cooked a delicious meal for customers"},
	{"Chef", "You catered a big event"},
	{"Chef", "You created a new signature dish"},
	{"Driver", "You completed several deliveries"},
	{"Driver", "You drove passengers across town"},
	{"Driver", "You transported valuable goods"},
	{"Streamer", "You hosted a successful live stream"},
	{"Streamer", "You got a bunch of new subscribers"},
	{"Streamer", "You landed a sponsorship deal"},
	{"Teacher", "You taught an engaging class"},
	{"Teacher", "You graded all the homework"},
	{"Teacher", "You helped a struggling student"},
	{"Gardener", "You landscaped a beautiful garden"},
	{"Gardener", "You planted trees in the park"},
	{"Gardener", "You maintained the community garden"},
	{"Artist", "You sold one of your paintings"},
	{"Artist", "You completed a commission"},
	{"Artist", "You hosted a successful art workshop"},
	{"Mechanic", "You fixed a broken engine"},
	{"Mechanic", "You serviced several vehicles"},
	{"Mechanic", "You restored a classic car"},
}

// RandomJob picks a random job flavor for work claim messages.
func RandomJob() Job {
	return workJobs[rand.Intn(len(workJobs))]
}
