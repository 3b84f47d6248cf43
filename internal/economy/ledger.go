package economy

import (
	"context"
	"encoding/json"
	"fmt"

	"theagency-bot/internal/model"
	"theagency-bot/internal/store"
)

// Ledger handles per-user balance storage. Balances never go negative:
// subtraction clamps at zero instead of rejecting the operation, so callers
// that care about sufficiency (purchases, transfers) must check the balance
// before deducting.
type Ledger struct {
	store store.Store
	locks *keyedMutex
}

// NewLedger creates a ledger over the given store.
func NewLedger(st store.Store) *Ledger {
	return &Ledger{
		store: st,
		locks: newKeyedMutex(),
	}
}

// loadAccount reads the account document, returning a zero account if none exists.
// Accounts are created implicitly on first write.
func (l *Ledger) loadAccount(ctx context.Context, userID string) (*model.Account, error) {
	data, err := l.store.Get(ctx, store.TableUsers, userID)
	if err != nil {
		if err == store.ErrNotFound {
			return &model.Account{}, nil
		}
		return nil, fmt.Errorf("failed to load account %s: %w", userID, err)
	}

	var acct model.Account
	if err := json.Unmarshal(data, &acct); err != nil {
		return nil, fmt.Errorf("failed to parse account %s: %w", userID, err)
	}
	return &acct, nil
}

// saveAccount writes the account document back.
func (l *Ledger) saveAccount(ctx context.Context, userID string, acct *model.Account) error {
	data, err := json.Marshal(acct)
	if err != nil {
		return fmt.Errorf("failed to serialize account %s: %w", userID, err)
	}
	if err := l.store.Set(ctx, store.TableUsers, userID, data); err != nil {
		return fmt.Errorf("failed to save account %s: %w", userID, err)
	}
	return nil
}

// Update runs fn against the account document under the account's lock and
// writes the result back. This is the single-writer primitive every
// read-modify-write in the economy goes through.
func (l *Ledger) Update(ctx context.Context, userID string, fn func(acct *model.Account) error) error {
	l.locks.Lock(userID)
	defer l.locks.Unlock(userID)

	acct, err := l.loadAccount(ctx, userID)
	if err != nil {
		return err
	}
	if err := fn(acct); err != nil {
		return err
	}
	return l.saveAccount(ctx, userID, acct)
}

// View runs fn against a read-only snapshot of the account document.
func (l *Ledger) View(ctx context.Context, userID string, fn func(acct *model.Account)) error {
	acct, err := l.loadAccount(ctx, userID)
	if err != nil {
		return err
	}
	fn(acct)
	return nil
}

// GetBalance returns the stored balance, or 0 if the account has no record.
func (l *Ledger) GetBalance(ctx context.Context, userID string) (int64, error) {
	var balance int64
	err := l.View(ctx, userID, func(acct *model.Account) {
		balance = acct.Balance
	})
	return balance, err
}

// SetBalance stores the balance verbatim. The amount must be non-negative.
func (l *Ledger) SetBalance(ctx context.Context, userID string, amount int64) error {
	if amount < 0 {
		return ErrInvalidAmount
	}
	return l.Update(ctx, userID, func(acct *model.Account) error {
		acct.Balance = amount
		return nil
	})
}

// AddBalance credits the account and returns the new balance. No upper bound.
func (l *Ledger) AddBalance(ctx context.Context, userID string, amount int64) (int64, error) {
	if amount <= 0 {
		return 0, ErrInvalidAmount
	}
	var newBalance int64
	err := l.Update(ctx, userID, func(acct *model.Account) error {
		acct.Balance += amount
		newBalance = acct.Balance
		return nil
	})
	return newBalance, err
}

// RemoveBalance debits the account, clamping at zero, and returns the new
// balance. Removing more than the balance is not an error; the clamp is a
// defensive floor only, so callers cannot tell a full deduction from a
// partial one by the return value.
func (l *Ledger) RemoveBalance(ctx context.Context, userID string, amount int64) (int64, error) {
	if amount <= 0 {
		return 0, ErrInvalidAmount
	}
	var newBalance int64
	err := l.Update(ctx, userID, func(acct *model.Account) error {
		acct.Balance -= amount
		if acct.Balance < 0 {
			acct.Balance = 0
		}
		newBalance = acct.Balance
		return nil
	})
	return newBalance, err
}

// TransferBalance moves amount from sender to receiver as a single atomic
// unit. Fails with ErrInsufficientFunds before any mutation if the sender
// cannot cover the amount. Returns the new sender and receiver balances.
func (l *Ledger) TransferBalance(ctx context.Context, senderID, receiverID string, amount int64) (senderBalance, receiverBalance int64, err error) {
	if amount <= 0 {
		return 0, 0, ErrInvalidAmount
	}
	if senderID == receiverID {
		return 0, 0, ErrSelfTransfer
	}

	// Both accounts stay locked from the sufficiency check through both
	// writes, so no observer sees the debit without the credit.
	l.locks.LockPair(senderID, receiverID)
	defer l.locks.UnlockPair(senderID, receiverID)

	sender, err := l.loadAccount(ctx, senderID)
	if err != nil {
		return 0, 0, err
	}
	if sender.Balance < amount {
		return 0, 0, ErrInsufficientFunds
	}
	receiver, err := l.loadAccount(ctx, receiverID)
	if err != nil {
		return 0, 0, err
	}

	originalSender := sender.Balance
	sender.Balance -= amount
	receiver.Balance += amount

	if err := l.saveAccount(ctx, senderID, sender); err != nil {
		return 0, 0, err
	}
	if err := l.saveAccount(ctx, receiverID, receiver); err != nil {
		// Undo the debit so a failed credit never strands the funds.
		sender.Balance = originalSender
		if rbErr := l.saveAccount(ctx, senderID, sender); rbErr != nil {
			return 0, 0, fmt.Errorf("credit failed and debit rollback failed: %w", rbErr)
		}
		return 0, 0, err
	}

	return sender.Balance, receiver.Balance, nil
}

// StoreUsername records the last observed display name for leaderboard use.
// Advisory cache only.
func (l *Ledger) StoreUsername(ctx context.Context, userID, username string) error {
	if username == "" {
		return nil
	}
	return l.Update(ctx, userID, func(acct *model.Account) error {
		acct.Username = username
		return nil
	})
}

// GetUsername returns the last observed display name, or "" if unknown.
func (l *Ledger) GetUsername(ctx context.Context, userID string) (string, error) {
	var username string
	err := l.View(ctx, userID, func(acct *model.Account) {
		username = acct.Username
	})
	return username, err
}
