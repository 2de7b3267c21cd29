package memory

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aretw0/meridian/pkg/domain"
)

// Loader implements ports.WorldLoader over an in-memory world.
// The world is held serialized so callers never share maps with it.
type Loader struct {
	raw []byte
}

// NewLoader snapshots data. Later changes to data do not affect the loader.
func NewLoader(data *domain.WorldData) (*Loader, error) {
	if data == nil {
		data = &domain.WorldData{}
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to snapshot world: %w", err)
	}
	return &Loader{raw: raw}, nil
}

// MustLoader is NewLoader for static fixtures. It panics on error.
func MustLoader(data *domain.WorldData) *Loader {
	l, err := NewLoader(data)
	if err != nil {
		panic(err)
	}
	return l
}

// Load returns a fresh copy of the world.
func (l *Loader) Load(ctx context.Context) (*domain.WorldData, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var out domain.WorldData
	if err := json.Unmarshal(l.raw, &out); err != nil {
		return nil, fmt.Errorf("failed to restore world: %w", err)
	}
	return &out, nil
}
