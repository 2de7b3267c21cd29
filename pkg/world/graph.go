package world

import (
	"io"
	"log/slog"
	"sort"
	"strings"

	"github.com/aretw0/meridian/pkg/domain"
	"github.com/aretw0/meridian/pkg/registry"
	"github.com/cespare/xxhash/v2"
)

// Graph is the static directed adjacency graph of named areas.
// It is immutable after New and safe for concurrent reads.
type Graph struct {
	areas     map[string]domain.Area
	names     []string
	adjacency domain.Adjacency
	sequences *registry.Registry
	logger    *slog.Logger
}

// Option configures a Graph.
type Option func(*Graph)

// WithLogger sets the logger used for degraded lookups.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Graph) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// New flattens the geography table and indexes the adjacency table.
// A duplicate area name across regions is the only error.
func New(data *domain.WorldData, sequences *registry.Registry, opts ...Option) (*Graph, error) {
	g := &Graph{
		areas:     make(map[string]domain.Area),
		adjacency: make(domain.Adjacency),
		sequences: sequences,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(g)
	}
	g.logger = g.logger.With("component", "world")

	if g.sequences == nil {
		g.sequences = registry.NewBuilder().Freeze()
	}
	if data == nil {
		return g, nil
	}

	if err := g.indexGeography(data.Geography); err != nil {
		return nil, err
	}

	for name, edges := range data.Adjacency {
		copied := make(domain.Edges, len(edges))
		for dir, target := range edges {
			copied[dir] = strings.TrimSpace(target)
		}
		g.adjacency[name] = copied
	}

	return g, nil
}

func (g *Graph) indexGeography(geo domain.Geography) error {
	seen := make(map[string]string)

	for _, zone := range sortedKeys(geo) {
		regions := geo[zone]
		for _, region := range sortedKeys(regions) {
			defs := regions[region]
			for _, name := range sortedKeys(defs) {
				where := zone + "/" + region
				if first, ok := seen[name]; ok {
					return &domain.DuplicateAreaError{Name: name, First: first, Second: where}
				}
				seen[name] = where

				def := defs[name]
				climate := def.Climate
				if !climate.Valid() {
					g.logger.Warn("area climate unknown, defaulting", "area", name, "climate", climate, "default", domain.ClimateTemperate)
					climate = domain.ClimateTemperate
				}
				if !def.Biome.Valid() {
					g.logger.Warn("area biome unknown", "area", name, "biome", def.Biome)
				}

				g.areas[name] = domain.Area{
					Name:        name,
					Region:      region,
					Zone:        zone,
					Climate:     climate,
					Biome:       def.Biome,
					MinYear:     def.MinYear,
					Description: def.Description,
					Tags:        append([]string(nil), def.Tags...),
				}
				g.names = append(g.names, name)
			}
		}
	}
	sort.Strings(g.names)
	return nil
}

// Edge classifies the edge of area in direction dir without logging.
func (g *Graph) Edge(area string, dir domain.Direction) domain.EdgeResolution {
	res := domain.EdgeResolution{Kind: domain.EdgeUnknown, From: area, Dir: dir}

	edges, ok := g.adjacency[area]
	if !ok {
		res.Reason = domain.ReasonNoAdjacency
		return res
	}

	target := edges[dir]
	if target == "" {
		res.Reason = domain.ReasonWorldEdge
		return res
	}
	res.Target = target

	if a, ok := g.areas[target]; ok {
		res.Kind = domain.EdgeAdjacent
		res.Area = &a
		return res
	}
	if seq, ok := g.sequences.Lookup(target); ok {
		res.Kind = domain.EdgeLiminal
		res.Sequence = &seq
		return res
	}

	res.Reason = domain.ReasonUnresolved
	return res
}

// ResolveEdge is Edge plus a log line for every degraded outcome.
// It never panics: every (area, direction) pair yields one of the three kinds.
func (g *Graph) ResolveEdge(area string, dir domain.Direction) domain.EdgeResolution {
	res := g.Edge(area, dir)
	switch res.Reason {
	case domain.ReasonNoAdjacency:
		g.logger.Warn("area has no adjacency record", "area", area, "direction", dir)
	case domain.ReasonUnresolved:
		g.logger.Warn("neighbor key resolves to nothing", "area", area, "direction", dir, "key", res.Target)
	case domain.ReasonWorldEdge:
		g.logger.Debug("world edge", "area", area, "direction", dir)
	}
	return res
}

// Area returns the definition of name.
func (g *Graph) Area(name string) (domain.Area, bool) {
	a, ok := g.areas[name]
	return a, ok
}

// Areas returns every area sorted by name.
func (g *Graph) Areas() []domain.Area {
	out := make([]domain.Area, 0, len(g.names))
	for _, n := range g.names {
		out = append(out, g.areas[n])
	}
	return out
}

// Names returns every area name, sorted.
func (g *Graph) Names() []string {
	return append([]string(nil), g.names...)
}

// Len is the number of areas.
func (g *Graph) Len() int {
	return len(g.names)
}

// HasAdjacency reports whether name has an adjacency record.
func (g *Graph) HasAdjacency(name string) bool {
	_, ok := g.adjacency[name]
	return ok
}

// Edges returns a copy of the authored edges of name.
func (g *Graph) Edges(name string) domain.Edges {
	src := g.adjacency[name]
	out := make(domain.Edges, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}

// AdjacencyNames returns every name that has an adjacency record, sorted.
func (g *Graph) AdjacencyNames() []string {
	return sortedKeys(g.adjacency)
}

// Sequences exposes the frozen liminal registry.
func (g *Graph) Sequences() *registry.Registry {
	return g.sequences
}

// NeighborClimates maps each direction with an adjacent area to that area's
// climate. Liminal and empty edges contribute nothing.
func (g *Graph) NeighborClimates(area string) map[domain.Direction]domain.Climate {
	out := make(map[domain.Direction]domain.Climate)
	for _, dir := range domain.Directions {
		res := g.Edge(area, dir)
		if res.Kind == domain.EdgeAdjacent {
			out[dir] = res.Area.Climate
		}
	}
	return out
}

// Fingerprint hashes names, edges and sequence keys. Equal worlds hash equal.
func (g *Graph) Fingerprint() uint64 {
	h := xxhash.New()
	for _, n := range g.names {
		a := g.areas[n]
		_, _ = h.WriteString(n + "|" + a.Region + "|" + a.Zone + "|" + string(a.Climate) + "|" + string(a.Biome) + "\n")
	}
	for _, n := range sortedKeys(g.adjacency) {
		edges := g.adjacency[n]
		for _, dir := range domain.Directions {
			_, _ = h.WriteString(n + ">" + string(dir) + ">" + edges[dir] + "\n")
		}
	}
	for _, k := range g.sequences.Keys() {
		seq, _ := g.sequences.Lookup(k)
		_, _ = h.WriteString(k + "=" + seq.Destination + "\n")
	}
	return h.Sum64()
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
