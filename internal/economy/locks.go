package economy

import "sync"

// keyedMutex serializes read-modify-write cycles per account key.
// The underlying store has no cross-key transactions, so every balance or
// cooldown mutation must hold the key's lock from read to write, otherwise
// two concurrent updates can both read the same stale document and one
// increment is lost.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{locks: make(map[string]*sync.Mutex)}
}

// Lock acquires the mutex for key, creating it on first use.
// Locks are never evicted; there is one per account ever touched, which is
// fine at this scale.
func (k *keyedMutex) Lock(key string) {
	k.mu.Lock()
	m, ok := k.locks[key]
	if !ok {
		m = &sync.Mutex{}
		k.locks[key] = m
	}
	k.mu.Unlock()
	m.Lock()
}

// Unlock releases the mutex for key.
func (k *keyedMutex) Unlock(key string) {
	k.mu.Lock()
	m := k.locks[key]
	k.mu.Unlock()
	m.Unlock()
}

// LockPair acquires both keys in lexicographic order to avoid deadlock when
// two transfers run in opposite directions.
func (k *keyedMutex) LockPair(a, b string) {
	if b < a {
		a, b = b, a
	}
	k.Lock(a)
	k.Lock(b)
}

// UnlockPair releases both keys.
func (k *keyedMutex) UnlockPair(a, b string) {
	k.Unlock(a)
	k.Unlock(b)
}
