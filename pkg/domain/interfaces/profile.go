package interfaces

import (
	"context"

	"github.com/secmon-lab/wayfinder/pkg/domain/model"
)

// ProfileRepository defines the interface for user profile persistence
type ProfileRepository interface {
	// Get retrieves the profile of a user. Returns an error wrapping the
	// backend's ErrNotFound when the user has never been seen.
	Get(ctx context.Context, userID string) (*model.Profile, error)

	// Put replaces the whole profile atomically; readers never observe a
	// partially written profile.
	Put(ctx context.Context, profile *model.Profile) error

	// List returns the IDs of all known users
	List(ctx context.Context) ([]string, error)
}
