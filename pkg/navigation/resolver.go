// Package navigation turns a single directional move into a gameplay outcome:
// step to an adjacent area, cross a liminal corridor, or fall back to random
// exploration.
package navigation

import (
	"io"
	"log/slog"

	"github.com/aretw0/meridian/pkg/domain"
	"github.com/aretw0/meridian/pkg/world"
)

// Observer is notified of every resolved move. observability.Metrics satisfies it.
type Observer interface {
	ObserveNavigation(kind domain.NavigationKind, reason domain.UnknownReason)
}

// Resolver is the single lookup entry point for movement.
type Resolver struct {
	graph    *world.Graph
	logger   *slog.Logger
	observer Observer
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithLogger sets the logger for fallback causes.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Resolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithObserver attaches a move observer.
func WithObserver(o Observer) Option {
	return func(r *Resolver) {
		r.observer = o
	}
}

// NewResolver creates a resolver over g.
func NewResolver(g *world.Graph, opts ...Option) *Resolver {
	r := &Resolver{
		graph:  g,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.logger = r.logger.With("component", "navigation")
	return r
}

// GetNextArea resolves a move from current in dir. It never fails: missing
// data degrades to RandomFallback, and Reason tells the three causes apart.
//
// A missing adjacency record and an unresolvable neighbor key each log one
// warning. An empty edge is a world boundary and logs at debug level only.
func (r *Resolver) GetNextArea(current string, dir domain.Direction) domain.NavigationResult {
	res := r.graph.Edge(current, dir)
	out := r.toResult(res)

	switch res.Reason {
	case domain.ReasonNoAdjacency:
		r.logger.Warn("area has no adjacency record", "area", current, "direction", dir, "fallback", "random")
	case domain.ReasonUnresolved:
		r.logger.Warn("neighbor key resolves to nothing", "area", current, "direction", dir, "key", res.Target, "fallback", "random")
	case domain.ReasonWorldEdge:
		r.logger.Debug("world edge", "area", current, "direction", dir, "fallback", "random")
	}

	if r.observer != nil {
		r.observer.ObserveNavigation(out.Kind, out.Reason)
	}
	return out
}

func (r *Resolver) toResult(res domain.EdgeResolution) domain.NavigationResult {
	switch res.Kind {
	case domain.EdgeAdjacent:
		return domain.NavigationResult{
			Kind:   domain.NavAdjacent,
			Area:   res.Area,
			Region: res.Area.Region,
			Zone:   res.Area.Zone,
		}
	case domain.EdgeLiminal:
		return domain.NavigationResult{
			Kind:        domain.NavLiminal,
			Sequence:    res.Sequence,
			Destination: res.Sequence.Destination,
			SequenceKey: res.Target,
		}
	}
	return domain.NavigationResult{Kind: domain.NavRandomFallback, Reason: res.Reason}
}
