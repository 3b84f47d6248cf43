package store

import "context"

// Table names for the logical document layout.
const (
	TableUsers    = "users"
	TableShop     = "shop"
	TableWarnings = "warnings"
	TableConfig   = "config"
	TableWelcome  = "welcome"
)

// Entry is one (key, value) pair returned by List.
type Entry struct {
	Key   string
	Value []byte
}

// Store defines generic get/set/delete access over namespaced tables.
// Values are opaque JSON documents. Set is a full-replace upsert; partial
// updates are the caller's responsibility (read, modify, write back).
// Store makes no transactional guarantee across keys; callers that need
// atomicity serialize their own read-modify-write cycles.
type Store interface {
	// Get retrieves the document at (table, key). Returns ErrNotFound if absent.
	Get(ctx context.Context, table, key string) ([]byte, error)

	// Set upserts the document at (table, key), replacing any previous value.
	Set(ctx context.Context, table, key string, value []byte) error

	// Delete removes the document at (table, key). Deleting an absent key is not an error.
	Delete(ctx context.Context, table, key string) error

	// List returns every (key, value) pair in the table, in key order.
	List(ctx context.Context, table string) ([]Entry, error)

	// Close releases the underlying connection.
	Close() error
}

// StoreError is a sentinel error type for store-level failures.
type StoreError string

func (e StoreError) Error() string { return string(e) }

const (
	// ErrNotFound indicates the requested key has no document.
	ErrNotFound StoreError = "document not found"
)
