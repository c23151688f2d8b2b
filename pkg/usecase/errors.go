package usecase

import "errors"

// Sentinel errors for use case layer
var (
	// ErrGenerationFailed means the model could not produce a reply. The
	// turn's state changes are persisted but no reply exists.
	ErrGenerationFailed = errors.New("generation failed")

	// ErrStatePersist means mutated profile state could not be written
	ErrStatePersist = errors.New("failed to persist state")

	ErrEmptyUserID = errors.New("user ID is empty")
)

// Context keys for error values
const (
	UserIDKey = "user_id"
)
