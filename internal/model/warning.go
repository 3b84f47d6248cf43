package model

// Warning is a moderation record scoped to a (guild, user) pair.
// IDs increase monotonically within that scope and are never reused while
// history exists; clearing all warnings resets numbering to 1.
type Warning struct {
	ID          int64  `json:"id"`
	UserID      string `json:"userId"`
	ModeratorID string `json:"moderatorId"`
	Reason      string `json:"reason"`
	Timestamp   int64  `json:"timestamp"`
}

// WarningDoc is the stored document holding all warnings for one scope.
type WarningDoc struct {
	Warnings []Warning `json:"warnings"`
}
