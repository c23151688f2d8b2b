package usecase

import (
	"context"
	"sync"

	"github.com/secmon-lab/wayfinder/pkg/domain/types"
	"golang.org/x/sync/semaphore"
)

type userLock struct {
	sem  *semaphore.Weighted
	refs int
}

// userLocks serializes turns per user. Entries live only while a turn holds
// or waits for them, so the map does not grow with the number of users.
type userLocks struct {
	mu    sync.Mutex
	locks map[string]*userLock
}

func newUserLocks() *userLocks {
	return &userLocks{
		locks: make(map[string]*userLock),
	}
}

// acquire blocks until the user's lock is free or ctx is done. The returned
// release must be called exactly once.
func (l *userLocks) acquire(ctx context.Context, userID string) (func(), error) {
	l.mu.Lock()
	lock, ok := l.locks[userID]
	if !ok {
		lock = &userLock{sem: semaphore.NewWeighted(1)}
		l.locks[userID] = lock
	}
	lock.refs++
	l.mu.Unlock()

	if err := lock.sem.Acquire(ctx, 1); err != nil {
		l.unref(userID, lock)
		return nil, err
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			lock.sem.Release(1)
			l.unref(userID, lock)
		})
	}, nil
}

func (l *userLocks) unref(userID string, lock *userLock) {
	l.mu.Lock()
	defer l.mu.Unlock()

	lock.refs--
	if lock.refs == 0 {
		delete(l.locks, userID)
	}
}

// state reports PROCESSING while any turn of the user is running or waiting
func (l *userLocks) state(userID string) types.SessionState {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.locks[userID]; ok {
		return types.SessionStateProcessing
	}
	return types.SessionStateIdle
}
