package hexgrid

import (
	"fmt"
	"io"
	"log/slog"
	"sort"

	"github.com/aretw0/meridian/pkg/domain"
	"github.com/aretw0/meridian/pkg/world"
)

// DefaultSearchRadius bounds the collision ring search.
const DefaultSearchRadius = 3

// Builder assigns integer hex coordinates to every area reachable from a set
// of seeds. A Builder holds no per-build state and can be reused.
type Builder struct {
	graph  *world.Graph
	radius int
	logger *slog.Logger
}

// Option configures a Builder.
type Option func(*Builder)

// WithLogger sets the logger for placement warnings.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Builder) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// WithSearchRadius sets how many rings collision search probes. Zero disables
// the search: any collision leaves the node unplaceable.
func WithSearchRadius(r int) Option {
	return func(b *Builder) {
		if r >= 0 {
			b.radius = r
		}
	}
}

// NewBuilder creates a layout builder over g.
func NewBuilder(g *world.Graph, opts ...Option) *Builder {
	b := &Builder{
		graph:  g,
		radius: DefaultSearchRadius,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(b)
	}
	b.logger = b.logger.With("component", "hexgrid")
	return b
}

// Build runs one BFS layout from seeds. The result is a pure function of the
// graph and the seed list.
func (b *Builder) Build(seeds []domain.Seed) *domain.Layout {
	w := &walker{
		b:           b,
		occupied:    make(map[cell]string),
		placed:      make(map[string]cell),
		unplaceable: make(map[string]bool),
		layout:      &domain.Layout{},
	}

	for _, s := range seeds {
		if _, ok := b.graph.Area(s.Name); !ok {
			b.logger.Warn("seed area not in graph", "area", s.Name)
			continue
		}
		if _, ok := w.placed[s.Name]; ok {
			continue
		}
		w.place(s.Name, cell{s.X, s.Y}, 0)
	}

	w.loop()
	return w.finish()
}

type cell struct{ x, y int }

type queueItem struct {
	name  string
	at    cell
	depth int
}

// walker holds the mutable state of a single build. The buffer counter lives
// here so it never leaks across builds.
type walker struct {
	b           *Builder
	queue       []queueItem
	occupied    map[cell]string
	placed      map[string]cell
	unplaceable map[string]bool
	buffers     int
	layout      *domain.Layout
}

func (w *walker) loop() {
	for len(w.queue) > 0 {
		item := w.queue[0]
		w.queue = w.queue[1:]

		for _, dir := range domain.Directions {
			res := w.b.graph.Edge(item.name, dir)
			switch res.Kind {
			case domain.EdgeLiminal:
				w.buffer(item.at, dir, res.Target)
			case domain.EdgeAdjacent:
				name := res.Area.Name
				if _, done := w.placed[name]; done {
					continue
				}
				x, y := Offset(item.at.x, item.at.y, dir)
				w.place(name, cell{x, y}, item.depth+1)
			}
		}
	}
}

// place puts name at target, or at the first free cell of the bounded ring
// search, then enqueues it.
func (w *walker) place(name string, target cell, depth int) {
	at, ok := target, true
	if _, taken := w.occupied[target]; taken {
		at, ok = w.search(target)
		if !ok {
			w.b.logger.Warn("no free hex cell", "area", name, "x", target.x, "y", target.y, "radius", w.b.radius)
			w.unplaceable[name] = true
			return
		}
		w.layout.Displaced++
	}

	delete(w.unplaceable, name)
	w.occupied[at] = name
	w.placed[name] = at

	area, _ := w.b.graph.Area(name)
	typ := domain.PositionArea
	if area.Biome == domain.BiomeOcean {
		typ = domain.PositionOcean
	}
	w.layout.Positions = append(w.layout.Positions, domain.HexPosition{
		Name:    name,
		X:       at.x,
		Y:       at.y,
		Type:    typ,
		Region:  area.Region,
		Climate: area.Climate,
	})
	w.queue = append(w.queue, queueItem{name: name, at: at, depth: depth})
}

func (w *walker) search(target cell) (cell, bool) {
	for r := 1; r <= w.b.radius; r++ {
		for _, c := range Ring(target.x, target.y, r) {
			candidate := cell{c[0], c[1]}
			if _, taken := w.occupied[candidate]; !taken {
				return candidate, true
			}
		}
	}
	return cell{}, false
}

// buffer emits a liminal placeholder one cell away in dir. Buffers are not
// deduplicated and do not occupy cells.
func (w *walker) buffer(from cell, dir domain.Direction, key string) {
	w.buffers++
	x, y := Offset(from.x, from.y, dir)
	w.layout.Positions = append(w.layout.Positions, domain.HexPosition{
		Name: fmt.Sprintf("%s#%d", key, w.buffers),
		X:    x,
		Y:    y,
		Type: domain.PositionLiminal,
		Key:  key,
	})
}

func (w *walker) finish() *domain.Layout {
	w.layout.BufferCount = w.buffers

	for name := range w.unplaceable {
		w.layout.Unplaceable = append(w.layout.Unplaceable, name)
	}
	sort.Strings(w.layout.Unplaceable)

	for _, name := range w.b.graph.Names() {
		if _, ok := w.placed[name]; ok || w.unplaceable[name] {
			continue
		}
		w.layout.Skipped = append(w.layout.Skipped, name)
	}
	if len(w.layout.Skipped) > 0 {
		w.b.logger.Debug("areas unreachable from seeds", "count", len(w.layout.Skipped))
	}
	return w.layout
}
