package economy

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"theagency-bot/internal/model"
	"theagency-bot/internal/store"
)

// Leaderboard ranks all known accounts by balance.
//
// Every request scans the full users table. That is fine at community-server
// scale but is the first thing to replace with a maintained index if the
// account count grows; the HTTP layer caches responses to take the edge off.
type Leaderboard struct {
	store store.Store
}

// NewLeaderboard creates a leaderboard over the given store.
func NewLeaderboard(st store.Store) *Leaderboard {
	return &Leaderboard{store: st}
}

// Top returns up to limit entries sorted by balance descending. Ties are
// broken by user ID ascending so the ordering is deterministic.
func (l *Leaderboard) Top(ctx context.Context, limit int) ([]model.LeaderboardEntry, error) {
	entries, err := l.store.List(ctx, store.TableUsers)
	if err != nil {
		return nil, fmt.Errorf("failed to scan accounts: %w", err)
	}

	ranked := make([]model.LeaderboardEntry, 0, len(entries))
	for _, entry := range entries {
		var acct model.Account
		if err := json.Unmarshal(entry.Value, &acct); err != nil {
			return nil, fmt.Errorf("failed to parse account %s: %w", entry.Key, err)
		}

		username := acct.Username
		if username == "" {
			username = fallbackUsername(entry.Key)
		}
		ranked = append(ranked, model.LeaderboardEntry{
			UserID:   entry.Key,
			Username: username,
			Balance:  acct.Balance,
		})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Balance != ranked[j].Balance {
			return ranked[i].Balance > ranked[j].Balance
		}
		return ranked[i].UserID < ranked[j].UserID
	})

	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked, nil
}

// fallbackUsername labels accounts that never had a display name recorded.
func fallbackUsername(userID string) string {
	suffix := userID
	if len(suffix) > 4 {
		suffix = suffix[len(suffix)-4:]
	}
	return "User#" + suffix
}
