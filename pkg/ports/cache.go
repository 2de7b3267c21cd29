package ports

import (
	"context"

	"github.com/aretw0/meridian/pkg/domain"
)

// LayoutCache persists computed layouts keyed by world fingerprint and seeds.
type LayoutCache interface {
	// Get returns domain.ErrLayoutNotFound when the key is absent.
	Get(ctx context.Context, key string) (*domain.Layout, error)

	// Put stores a layout, replacing any previous value.
	Put(ctx context.Context, key string, layout *domain.Layout) error

	// Delete removes a layout. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}
