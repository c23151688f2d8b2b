package interfaces

import (
	"context"

	"github.com/secmon-lab/wayfinder/pkg/domain/model"
)

// FactRepository defines the interface for the append-only fact log
type FactRepository interface {
	// Append stores a new entry. ID and CreatedAt are assigned when empty.
	Append(ctx context.Context, userID string, entry *model.FactEntry) (*model.FactEntry, error)

	// List returns all entries of a user in insertion order
	List(ctx context.Context, userID string) ([]*model.FactEntry, error)
}
