package meridian

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/aretw0/meridian/internal/presentation/graph"
	"github.com/aretw0/meridian/pkg/adapters/file"
	loamAdapter "github.com/aretw0/meridian/pkg/adapters/loam"
	"github.com/aretw0/meridian/pkg/climate"
	"github.com/aretw0/meridian/pkg/domain"
	"github.com/aretw0/meridian/pkg/hexgrid"
	"github.com/aretw0/meridian/pkg/navigation"
	"github.com/aretw0/meridian/pkg/observability"
	"github.com/aretw0/meridian/pkg/ports"
	"github.com/aretw0/meridian/pkg/registry"
	"github.com/aretw0/meridian/pkg/world"
	"github.com/cespare/xxhash/v2"
	"golang.org/x/sync/singleflight"
)

// Version is overridden at build time with -ldflags.
var Version = "dev"

// Blend limits for generated maps.
const (
	DefaultMapSize = 32
	MaxMapSize     = 512
)

// DefaultLockTTL bounds how long a layout build may hold the distributed lock.
const DefaultLockTTL = 30 * time.Second

// Engine is the high-level entry point for the Meridian library.
// It wires the adjacency graph, liminal registry, layout builder, climate
// engine and navigation resolver behind a single read-only API.
type Engine struct {
	loader       ports.WorldLoader
	cache        ports.LayoutCache
	locker       ports.DistributedLocker
	lockTTL      time.Duration
	metrics      *observability.Metrics
	logger       *slog.Logger
	seeds        []domain.Seed
	searchRadius int
	climateOpts  []climate.Option
	climate      *climate.Engine
	builds       singleflight.Group
	Name         string

	mu    sync.RWMutex
	state *snapshot
}

// snapshot is everything derived from one Load. Reload swaps it whole.
type snapshot struct {
	graph    *world.Graph
	resolver *navigation.Resolver
	layout   *hexgrid.Builder
	seeds    []domain.Seed
	key      string
}

var _ ports.Navigator = (*Engine)(nil)

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLoader injects a custom WorldLoader, bypassing path based loading.
func WithLoader(l ports.WorldLoader) Option {
	return func(e *Engine) {
		e.loader = l
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithLayoutCache stores built layouts keyed by world fingerprint and seeds.
func WithLayoutCache(c ports.LayoutCache) Option {
	return func(e *Engine) {
		e.cache = c
	}
}

// WithLocker serializes layout builds across processes sharing one cache.
func WithLocker(l ports.DistributedLocker, ttl time.Duration) Option {
	return func(e *Engine) {
		e.locker = l
		if ttl > 0 {
			e.lockTTL = ttl
		}
	}
}

// WithMetrics records navigation, layout and climate outcomes.
func WithMetrics(m *observability.Metrics) Option {
	return func(e *Engine) {
		e.metrics = m
	}
}

// WithSeeds overrides the seeds declared by the world.
func WithSeeds(seeds ...domain.Seed) Option {
	return func(e *Engine) {
		e.seeds = append([]domain.Seed(nil), seeds...)
	}
}

// WithSearchRadius bounds the layout collision search.
func WithSearchRadius(r int) Option {
	return func(e *Engine) {
		e.searchRadius = r
	}
}

// WithClimate passes options to the climate engine.
func WithClimate(opts ...climate.Option) Option {
	return func(e *Engine) {
		e.climateOpts = append(e.climateOpts, opts...)
	}
}

// New initializes a new Meridian Engine.
// By default the world is read from worldPath: a directory is opened as a
// Loam repository of area documents, anything else as a YAML world file.
// If WithLoader is provided, worldPath is only used as a label.
func New(ctx context.Context, worldPath string, opts ...Option) (*Engine, error) {
	eng := &Engine{
		searchRadius: hexgrid.DefaultSearchRadius,
		lockTTL:      DefaultLockTTL,
	}

	for _, opt := range opts {
		opt(eng)
	}

	if eng.logger == nil {
		eng.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	if worldPath != "" {
		eng.Name = filepath.Base(worldPath)
		eng.logger = eng.logger.With("world", eng.Name)
	}

	if eng.loader == nil {
		l, err := OpenLoader(worldPath, eng.logger)
		if err != nil {
			return nil, err
		}
		eng.loader = l
	}

	eng.climate = climate.NewEngine(append([]climate.Option{climate.WithLogger(eng.logger)}, eng.climateOpts...)...)

	if err := eng.Reload(ctx); err != nil {
		return nil, err
	}
	return eng, nil
}

// OpenLoader picks a loader for path: a directory is read as markdown area
// documents, anything else as a single YAML or JSON world file.
func OpenLoader(path string, logger *slog.Logger) (ports.WorldLoader, error) {
	if path == "" {
		return nil, errors.New("world path is required when no custom loader is provided")
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("invalid world path: %w", err)
	}
	if info.IsDir() {
		l, err := loamAdapter.Open(path, loamAdapter.WithLogger(logger))
		if err != nil {
			return nil, err
		}
		return l, nil
	}
	return file.NewLoader(path, file.WithLogger(logger)), nil
}

// Reload reads the world again and atomically replaces the derived state.
// On error the previous state stays in place.
func (e *Engine) Reload(ctx context.Context) error {
	data, err := e.loader.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load world: %w", err)
	}

	b := registry.NewBuilder(registry.WithLogger(e.logger))
	if err := b.AddAll(data.Sequences); err != nil {
		return fmt.Errorf("failed to register sequences: %w", err)
	}
	seqs := b.Freeze()

	g, err := world.New(data, seqs, world.WithLogger(e.logger))
	if err != nil {
		return err
	}

	navOpts := []navigation.Option{navigation.WithLogger(e.logger)}
	if e.metrics != nil {
		navOpts = append(navOpts, navigation.WithObserver(e.metrics))
	}

	seeds := data.Seeds
	if len(e.seeds) > 0 {
		seeds = e.seeds
	}

	s := &snapshot{
		graph:    g,
		resolver: navigation.NewResolver(g, navOpts...),
		layout:   hexgrid.NewBuilder(g, hexgrid.WithLogger(e.logger), hexgrid.WithSearchRadius(e.searchRadius)),
		seeds:    append([]domain.Seed(nil), seeds...),
	}
	s.key = layoutKey(g.Fingerprint(), s.seeds, e.searchRadius)

	e.mu.Lock()
	e.state = s
	e.mu.Unlock()

	e.logger.Info("world loaded", "areas", g.Len(), "sequences", seqs.Len(), "seeds", len(s.seeds))
	return nil
}

func (e *Engine) snapshot() *snapshot {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.state
}

// layoutKey is filename and redis safe: two hex hashes joined by a dash.
func layoutKey(fingerprint uint64, seeds []domain.Seed, radius int) string {
	h := xxhash.New()
	for _, s := range seeds {
		_, _ = h.WriteString(s.Name + "@" + strconv.Itoa(s.X) + "," + strconv.Itoa(s.Y) + "\n")
	}
	_, _ = h.WriteString("r=" + strconv.Itoa(radius))
	return fmt.Sprintf("%016x-%016x", fingerprint, h.Sum64())
}

// Graph exposes the current adjacency graph.
func (e *Engine) Graph() *world.Graph {
	return e.snapshot().graph
}

// Seeds returns the seeds layouts are built from.
func (e *Engine) Seeds() []domain.Seed {
	return append([]domain.Seed(nil), e.snapshot().seeds...)
}

// LayoutKey is the cache key of the current world and seed set.
func (e *Engine) LayoutKey() string {
	return e.snapshot().key
}

// Areas lists every area sorted by name.
func (e *Engine) Areas() []domain.Area {
	return e.snapshot().graph.Areas()
}

// Area looks up one area by name.
func (e *Engine) Area(name string) (domain.Area, bool) {
	return e.snapshot().graph.Area(name)
}

// Next resolves a gameplay move. It never fails.
func (e *Engine) Next(current string, dir domain.Direction) domain.NavigationResult {
	return e.snapshot().resolver.GetNextArea(current, dir)
}

// Edge classifies a single edge without logging.
func (e *Engine) Edge(area string, dir domain.Direction) domain.EdgeResolution {
	return e.snapshot().graph.Edge(area, dir)
}

// Sequences lists every liminal sequence, derived reverses included.
func (e *Engine) Sequences() []domain.LiminalSequence {
	return e.snapshot().graph.Sequences().All()
}

// Sequence looks up one liminal sequence by key.
func (e *Engine) Sequence(key string) (domain.LiminalSequence, bool) {
	return e.snapshot().graph.Sequences().Lookup(key)
}

// Mermaid renders the adjacency graph as a Mermaid flowchart with seeds
// highlighted.
func (e *Engine) Mermaid() string {
	return e.MermaidTrail("", nil)
}

// MermaidTrail is Mermaid with a walked trail overlaid: visited areas and the
// current one get their own styles.
func (e *Engine) MermaidTrail(current string, visited []string) string {
	s := e.snapshot()
	overlay := &graph.GraphOverlay{
		Seeds:        make([]string, 0, len(s.seeds)),
		VisitedAreas: visited,
		CurrentArea:  current,
	}
	for _, seed := range s.seeds {
		overlay.Seeds = append(overlay.Seeds, seed.Name)
	}
	return graph.GenerateMermaid(s.graph, overlay)
}

// Watch returns a channel that signals when the underlying world changes.
// Returns error if the loader does not support watching.
func (e *Engine) Watch(ctx context.Context) (<-chan string, error) {
	if w, ok := e.loader.(ports.Watchable); ok {
		return w.Watch(ctx)
	}
	return nil, errors.New("current loader does not support watching")
}

// Loader returns the underlying WorldLoader used by the engine.
func (e *Engine) Loader() ports.WorldLoader {
	return e.loader
}
