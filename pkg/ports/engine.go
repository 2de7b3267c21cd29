package ports

import (
	"context"

	"github.com/aretw0/meridian/pkg/domain"
)

// Navigator is the read-only engine surface used by adapters (HTTP, MCP).
type Navigator interface {
	// Areas lists every area sorted by name.
	Areas() []domain.Area

	// Area looks up one area by name.
	Area(name string) (domain.Area, bool)

	// Next resolves a gameplay move. It never fails.
	Next(current string, dir domain.Direction) domain.NavigationResult

	// Edge classifies a single edge without gameplay semantics.
	Edge(area string, dir domain.Direction) domain.EdgeResolution

	// Sequences lists every liminal sequence, derived reverses included.
	Sequences() []domain.LiminalSequence

	// Sequence looks up one liminal sequence by key.
	Sequence(key string) (domain.LiminalSequence, bool)

	// Layout returns the hex layout for the configured seeds, cached when possible.
	Layout(ctx context.Context) (*domain.Layout, error)

	// Blend runs a climate pass over a generated or supplied tile map.
	Blend(req domain.BlendRequest) (*domain.BlendResult, error)

	// Mermaid renders the adjacency graph as a Mermaid flowchart.
	Mermaid() string
}
