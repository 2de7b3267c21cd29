package climate

import (
	"io"
	"log/slog"
	"math"

	"github.com/aretw0/meridian/pkg/domain"
	"golang.org/x/sync/errgroup"
)

const (
	// DefaultMaxDistance is the unperturbed transition depth in tiles.
	DefaultMaxDistance = 8.0
	// DefaultStrength attenuates every computed strength.
	DefaultStrength = 0.85

	distanceJitter = 0.3
	strengthJitter = 0.1
)

// Engine rewrites tiles near map edges. It is immutable after NewEngine and
// safe to share.
type Engine struct {
	table       Table
	noise       Noise
	maxDistance float64
	strength    float64
	workers     int
	logger      *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger for fallback warnings.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithNoise replaces the default wave noise.
func WithNoise(n Noise) Option {
	return func(e *Engine) {
		if n != nil {
			e.noise = n
		}
	}
}

// WithTable replaces the default substitution table.
func WithTable(t Table) Option {
	return func(e *Engine) {
		if t != nil {
			e.table = t
		}
	}
}

// WithMaxDistance sets the transition depth in tiles.
func WithMaxDistance(d float64) Option {
	return func(e *Engine) {
		if d > 0 {
			e.maxDistance = d
		}
	}
}

// WithStrength sets the global strength constant, clamped to [0, 1].
func WithStrength(s float64) Option {
	return func(e *Engine) {
		e.strength = clamp01(s)
	}
}

// WithWorkers splits the pass across n goroutines by row. Output is identical
// to the sequential pass.
func WithWorkers(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.workers = n
		}
	}
}

// NewEngine creates an engine with the default table and wave noise.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		table:       DefaultTable(),
		noise:       WaveNoise{},
		maxDistance: DefaultMaxDistance,
		strength:    DefaultStrength,
		workers:     1,
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.logger = e.logger.With("component", "climate")
	return e
}

// Apply mutates m in place and returns one zone per rewritten tile, in
// row-major order. neighbors maps each map edge to the climate across it;
// directions whose climate equals the map's own are ignored.
func (e *Engine) Apply(m *domain.TileMap, neighbors map[domain.Direction]domain.Climate) []domain.TransitionZone {
	if m == nil || len(neighbors) == 0 {
		return nil
	}

	active := make([]domain.Direction, 0, len(domain.Directions))
	for _, dir := range domain.Directions {
		if c, ok := neighbors[dir]; ok && c != m.Climate {
			active = append(active, dir)
		}
	}
	if len(active) == 0 {
		return nil
	}

	rows := make([][]domain.TransitionZone, len(m.Tiles))
	if e.workers <= 1 {
		for y := range m.Tiles {
			rows[y] = e.applyRow(m, y, active, neighbors)
		}
	} else {
		var g errgroup.Group
		g.SetLimit(e.workers)
		for y := range m.Tiles {
			g.Go(func() error {
				rows[y] = e.applyRow(m, y, active, neighbors)
				return nil
			})
		}
		_ = g.Wait()
	}

	var zones []domain.TransitionZone
	for _, r := range rows {
		zones = append(zones, r...)
	}
	return zones
}

func (e *Engine) applyRow(m *domain.TileMap, y int, active []domain.Direction, neighbors map[domain.Direction]domain.Climate) []domain.TransitionZone {
	var out []domain.TransitionZone
	row := m.Tiles[y]
	for x := range row {
		original := row[x].Biome
		if !Transitionable(original) {
			continue
		}

		var (
			winner domain.TransitionZone
			hit    bool
		)
		for _, dir := range active {
			to := neighbors[dir]
			z, ok := e.evaluate(m.Climate, len(row), len(m.Tiles), x, y, dir, original, to)
			if ok {
				winner, hit = z, true
			}
		}
		if hit {
			row[x].Biome = winner.Biome
			out = append(out, winner)
		}
	}
	return out
}

// evaluate computes the substitution for one tile against one edge, starting
// from the tile's original biome. width and height come from the tiles, not
// the map's declared size.
func (e *Engine) evaluate(from domain.Climate, width, height, x, y int, dir domain.Direction, original domain.Biome, to domain.Climate) (domain.TransitionZone, bool) {
	d := DistanceFromEdge(width, height, x, y, dir)
	if d < 0 {
		return domain.TransitionZone{}, false
	}
	strength, ok := e.Strength(x, y, d)
	if !ok {
		return domain.TransitionZone{}, false
	}

	next, ok := e.table.Lookup(from, to, original, strength)
	if !ok || next == original {
		return domain.TransitionZone{}, false
	}
	if !next.Valid() {
		e.logger.Warn("transition produced undefined biome",
			"from", from, "to", to, "biome", original, "result", next, "x", x, "y", y)
		return domain.TransitionZone{}, false
	}

	return domain.TransitionZone{
		X:                x,
		Y:                y,
		Direction:        dir,
		DistanceFromEdge: d,
		NeighborClimate:  to,
		Strength:         strength,
		From:             original,
		Biome:            next,
	}, true
}

// Strength returns the perturbed transition strength of tile (x, y) at
// distance d from an edge, or false when the tile is beyond reach.
func (e *Engine) Strength(x, y, d int) (float64, bool) {
	fx, fy := float64(x), float64(y)

	maxDist := e.maxDistance * (1 + distanceJitter*e.noise.Noise2D(fx, fy))
	if float64(d) >= maxDist {
		return 0, false
	}

	linear := 1 - float64(d)/maxDist
	s := linear * e.strength * (1 + strengthJitter*e.noise.Noise2D(fy+17.3, fx+5.1))
	s = clamp01(s)
	return s, s > 0
}

// DistanceFromEdge is the tile distance from (x, y) to the map border facing
// dir. North is row 0. The result is negative when (x, y) lies outside the map.
func DistanceFromEdge(width, height, x, y int, dir domain.Direction) int {
	switch dir {
	case domain.North:
		return y
	case domain.South:
		return height - 1 - y
	case domain.West:
		return x
	case domain.East:
		return width - 1 - x
	}
	return math.MaxInt
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(0, math.Min(1, v))
}
