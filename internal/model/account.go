package model

// Account is the per-user economy record. Accounts are created implicitly on
// first read or write and are never deleted.
type Account struct {
	Balance   int64    `json:"balance"`
	Username  string   `json:"username,omitempty"`
	LastDaily int64    `json:"lastDaily,omitempty"`
	LastWork  int64    `json:"lastWork,omitempty"`
	Inventory []string `json:"inventory,omitempty"`
}

// LeaderboardEntry is a single ranked row of the balance leaderboard.
type LeaderboardEntry struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
	Balance  int64  `json:"balance"`
}
