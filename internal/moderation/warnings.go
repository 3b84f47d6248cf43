package moderation

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"theagency-bot/internal/model"
	"theagency-bot/internal/store"
)

// Warnings is the per-(guild, user) moderation ledger. Warning IDs are
// max-existing + 1 within their scope, so a removed ID is never handed out
// again while any history remains. Clearing deletes the whole document,
// which restarts numbering at 1.
type Warnings struct {
	store store.Store
	mu    sync.Mutex
	now   func() time.Time
}

// NewWarnings creates a warning ledger over the given store.
func NewWarnings(st store.Store) *Warnings {
	return &Warnings{
		store: st,
		now:   time.Now,
	}
}

// scopeKey builds the document key for one (guild, user) pair.
func scopeKey(guildID, userID string) string {
	return guildID + ":" + userID
}

func (w *Warnings) load(ctx context.Context, guildID, userID string) ([]model.Warning, error) {
	data, err := w.store.Get(ctx, store.TableWarnings, scopeKey(guildID, userID))
	if err != nil {
		if err == store.ErrNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load warnings for %s: %w", scopeKey(guildID, userID), err)
	}

	var doc model.WarningDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse warnings for %s: %w", scopeKey(guildID, userID), err)
	}
	return doc.Warnings, nil
}

func (w *Warnings) save(ctx context.Context, guildID, userID string, warnings []model.Warning) error {
	data, err := json.Marshal(model.WarningDoc{Warnings: warnings})
	if err != nil {
		return fmt.Errorf("failed to serialize warnings: %w", err)
	}
	if err := w.store.Set(ctx, store.TableWarnings, scopeKey(guildID, userID), data); err != nil {
		return fmt.Errorf("failed to save warnings for %s: %w", scopeKey(guildID, userID), err)
	}
	return nil
}

// Add records a warning and returns it with its assigned ID. ID generation
// and the write happen under the ledger's lock so two simultaneous warnings
// cannot share an ID.
func (w *Warnings) Add(ctx context.Context, guildID, userID, moderatorID, reason string) (*model.Warning, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	warnings, err := w.load(ctx, guildID, userID)
	if err != nil {
		return nil, err
	}

	warning := model.Warning{
		ID:          nextWarningID(warnings),
		UserID:      userID,
		ModeratorID: moderatorID,
		Reason:      reason,
		Timestamp:   w.now().UnixMilli(),
	}
	warnings = append(warnings, warning)

	if err := w.save(ctx, guildID, userID, warnings); err != nil {
		return nil, err
	}
	return &warning, nil
}

// nextWarningID is max existing ID + 1, or 1 for an empty scope.
func nextWarningID(warnings []model.Warning) int64 {
	var max int64
	for _, warning := range warnings {
		if warning.ID > max {
			max = warning.ID
		}
	}
	return max + 1
}

// List returns the scope's warnings in insertion order.
func (w *Warnings) List(ctx context.Context, guildID, userID string) ([]model.Warning, error) {
	return w.load(ctx, guildID, userID)
}

// Remove deletes the warning with the given ID. Returns false when no such
// warning exists; that is a negative result, not an error.
func (w *Warnings) Remove(ctx context.Context, guildID, userID string, warningID int64) (bool, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	warnings, err := w.load(ctx, guildID, userID)
	if err != nil {
		return false, err
	}

	for i, warning := range warnings {
		if warning.ID == warningID {
			warnings = append(warnings[:i], warnings[i+1:]...)
			if err := w.save(ctx, guildID, userID, warnings); err != nil {
				return false, err
			}
			return true, nil
		}
	}
	return false, nil
}

// Clear removes all warnings for the scope and returns how many there were.
func (w *Warnings) Clear(ctx context.Context, guildID, userID string) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	warnings, err := w.load(ctx, guildID, userID)
	if err != nil {
		return 0, err
	}

	if err := w.store.Delete(ctx, store.TableWarnings, scopeKey(guildID, userID)); err != nil {
		return 0, fmt.Errorf("failed to clear warnings for %s: %w", scopeKey(guildID, userID), err)
	}
	return len(warnings), nil
}
