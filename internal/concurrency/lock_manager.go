// Package concurrency provides keyed mutual exclusion.
package concurrency

import "sync"

type keyedLock struct {
	mu   sync.Mutex
	refs int
}

// LockManager serializes work per key. Entries live only while some caller
// holds or waits on them, so character ids do not accumulate across logins.
type LockManager struct {
	mu    sync.Mutex
	locks map[string]*keyedLock
}

// NewLockManager creates an empty LockManager
func NewLockManager() *LockManager {
	return &LockManager{locks: make(map[string]*keyedLock)}
}

// Lock blocks until the key is free and returns the matching unlock.
// The returned func must be called exactly once.
func (lm *LockManager) Lock(key string) func() {
	lm.mu.Lock()
	l, ok := lm.locks[key]
	if !ok {
		l = &keyedLock{}
		lm.locks[key] = l
	}
	l.refs++
	lm.mu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()
		lm.release(key, l)
	}
}

func (lm *LockManager) release(key string, l *keyedLock) {
	lm.mu.Lock()
	defer lm.mu.Unlock()
	l.refs--
	if l.refs == 0 {
		delete(lm.locks, key)
	}
}

// Len reports how many keys are currently held or awaited.
func (lm *LockManager) Len() int {
	lm.mu.Lock()
	defer lm.mu.Unlock()
	return len(lm.locks)
}
