package service

import "sync"

// userLocks hands out one mutex per user id and forgets it once nobody holds
// or waits on it.
type userLocks struct {
	mu    sync.Mutex
	locks map[string]*userLock
}

type userLock struct {
	mu   sync.Mutex
	refs int
}

func newUserLocks() *userLocks {
	return &userLocks{locks: make(map[string]*userLock)}
}

// Lock blocks until the caller owns userID's lock and returns its release func.
func (l *userLocks) Lock(userID string) func() {
	l.mu.Lock()
	lock, ok := l.locks[userID]
	if !ok {
		lock = &userLock{}
		l.locks[userID] = lock
	}
	lock.refs++
	l.mu.Unlock()

	lock.mu.Lock()

	return func() {
		lock.mu.Unlock()

		l.mu.Lock()
		lock.refs--
		if lock.refs == 0 {
			delete(l.locks, userID)
		}
		l.mu.Unlock()
	}
}

func (l *userLocks) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
