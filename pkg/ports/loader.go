package ports

import (
	"context"

	"github.com/aretw0/meridian/pkg/domain"
)

// WorldLoader defines how the engine retrieves its configuration tables.
// This allows the storage layer (Loam, file, memory) to be decoupled.
type WorldLoader interface {
	// Load returns the full world. It is called once per engine construction.
	Load(ctx context.Context) (*domain.WorldData, error)
}

// Watchable is implemented by loaders that can report source changes.
type Watchable interface {
	// Watch emits a changed document or file ID until ctx is done.
	Watch(ctx context.Context) (<-chan string, error)
}
