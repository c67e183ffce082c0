// Package lock provides user-level locking so that a user's overlapping
// submissions are serialized before they reach the database.
package lock

import "sync"

// userMutex wraps a mutex so new fields can be added without changing the map type.
type userMutex struct {
	mu sync.Mutex
}

// UserLock provides per-user locking keyed by user id.
type UserLock struct {
	locks sync.Map // map[string]*userMutex
}

// NewUserLock creates a new UserLock instance.
func NewUserLock() *UserLock {
	return &UserLock{}
}

func (ul *UserLock) getLock(userID string) *userMutex {
	if v, ok := ul.locks.Load(userID); ok {
		return v.(*userMutex)
	}
	actual, _ := ul.locks.LoadOrStore(userID, &userMutex{})
	return actual.(*userMutex)
}

// Lock acquires the lock for a user.
func (ul *UserLock) Lock(userID string) {
	ul.getLock(userID).mu.Lock()
}

// Unlock releases the lock for a user.
func (ul *UserLock) Unlock(userID string) {
	if v, ok := ul.locks.Load(userID); ok {
		v.(*userMutex).mu.Unlock()
	}
}

// TryLock attempts to acquire the lock without blocking.
func (ul *UserLock) TryLock(userID string) bool {
	return ul.getLock(userID).mu.TryLock()
}

// WithLock executes a function while holding the user's lock.
func (ul *UserLock) WithLock(userID string, fn func() error) error {
	ul.Lock(userID)
	defer ul.Unlock(userID)
	return fn()
}
