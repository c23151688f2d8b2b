package usecase

import (
	"context"

	"github.com/secmon-lab/wayfinder/pkg/domain/types"
)

// ProfileChanged is exported for testing
var ProfileChanged = profileChanged

// UserLocks is exported for testing
type UserLocks = userLocks

// NewUserLocks is exported for testing
var NewUserLocks = newUserLocks

// Acquire is exported for testing
func (l *userLocks) Acquire(ctx context.Context, userID string) (func(), error) {
	return l.acquire(ctx, userID)
}

// State is exported for testing
func (l *userLocks) State(userID string) types.SessionState {
	return l.state(userID)
}

// Size returns the number of live lock entries
func (l *userLocks) Size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
