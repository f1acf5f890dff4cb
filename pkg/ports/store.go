package ports

import (
	"context"

	"github.com/aretw0/shrdlite/pkg/domain"
)

// WorldStore defines the interface for persisting world states. This
// allows a session to span multiple commands, each replayed onto the
// stored world.
type WorldStore interface {
	// Save persists the world under the given ID.
	Save(ctx context.Context, worldID string, w *domain.WorldState) error

	// Load retrieves a world by ID.
	// Returns domain.ErrWorldNotFound if the world does not exist.
	Load(ctx context.Context, worldID string) (*domain.WorldState, error)

	// Delete removes the world.
	Delete(ctx context.Context, worldID string) error

	// List returns the IDs of the stored worlds.
	List(ctx context.Context) ([]string, error)
}
