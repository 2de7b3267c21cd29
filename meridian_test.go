package meridian_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/aretw0/meridian"
	"github.com/aretw0/meridian/internal/testutils"
	"github.com/aretw0/meridian/pkg/adapters/file"
	"github.com/aretw0/meridian/pkg/adapters/memory"
	"github.com/aretw0/meridian/pkg/domain"
	"github.com/aretw0/meridian/pkg/observability"
	"github.com/aretw0/meridian/pkg/ports"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEngine(t *testing.T, opts ...meridian.Option) *meridian.Engine {
	t.Helper()
	opts = append([]meridian.Option{meridian.WithLoader(memory.MustLoader(testutils.SampleWorld()))}, opts...)
	eng, err := meridian.New(t.Context(), "sample", opts...)
	require.NoError(t, err)
	return eng
}

func TestNew_RequiresPathOrLoader(t *testing.T) {
	_, err := meridian.New(t.Context(), "")
	assert.ErrorContains(t, err, "world path is required")

	_, err = meridian.New(t.Context(), filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "invalid world path")
}

func TestNew_DuplicateAreaFailsFast(t *testing.T) {
	data := testutils.SampleWorld()
	data.Geography["Europe"]["France"]["York"] = domain.AreaDefinition{Climate: domain.ClimateTemperate}

	_, err := meridian.New(t.Context(), "dup", meridian.WithLoader(memory.MustLoader(data)))
	require.ErrorIs(t, err, domain.ErrDuplicateArea)
}

func TestNew_FromYAMLFile(t *testing.T) {
	raw, err := file.Encode(testutils.SampleWorld())
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "world.yaml")
	require.NoError(t, os.WriteFile(path, raw, 0o644))

	eng, err := meridian.New(t.Context(), path)
	require.NoError(t, err)
	assert.Equal(t, "world.yaml", eng.Name)
	assert.Len(t, eng.Areas(), 11)
}

func TestEngine_Navigation(t *testing.T) {
	eng := newEngine(t)

	assert.Equal(t, domain.NavAdjacent, eng.Next("Edinburgh", domain.South).Kind)
	assert.Equal(t, domain.NavLiminal, eng.Next("Calais", domain.West).Kind)

	res := eng.Next("Atlantis", domain.North)
	assert.Equal(t, domain.NavRandomFallback, res.Kind)
	assert.Equal(t, domain.ReasonNoAdjacency, res.Reason)

	edge := eng.Edge("Paris", domain.South)
	assert.Equal(t, domain.EdgeUnknown, edge.Kind)
	assert.Equal(t, domain.ReasonUnresolved, edge.Reason)
}

func TestEngine_Lookups(t *testing.T) {
	eng := newEngine(t)

	a, ok := eng.Area("Dover")
	require.True(t, ok)
	assert.Equal(t, "England", a.Region)

	seq, ok := eng.Sequence("CHANNEL_FROM_CALAIS")
	require.True(t, ok)
	assert.True(t, seq.Derived)
	assert.Len(t, eng.Sequences(), 4)

	assert.Equal(t, []domain.Seed{{Name: "Edinburgh", X: 4, Y: 2}, {Name: "Paris", X: 7, Y: 9}}, eng.Seeds())
	assert.Contains(t, eng.Mermaid(), "graph TD")
}

func TestEngine_WithSeedsOverridesWorld(t *testing.T) {
	eng := newEngine(t, meridian.WithSeeds(domain.Seed{Name: "London"}))

	l, err := eng.Layout(t.Context())
	require.NoError(t, err)

	pos, ok := l.Position("London")
	require.True(t, ok)
	assert.Equal(t, 0, pos.X)
	assert.Equal(t, 0, pos.Y)
	_, ok = l.Position("Paris")
	assert.False(t, ok, "Paris is only reachable from its own seed")
}

func TestEngine_LayoutIsCached(t *testing.T) {
	cache := memory.NewCache()
	metrics := observability.New()
	eng := newEngine(t, meridian.WithLayoutCache(cache), meridian.WithMetrics(metrics))

	first, err := eng.Layout(t.Context())
	require.NoError(t, err)
	assert.Equal(t, []string{eng.LayoutKey()}, cache.Keys())

	second, err := eng.Layout(t.Context())
	require.NoError(t, err)
	assert.Equal(t, first, second)

	expected := `
# HELP meridian_layout_requests_total Layout requests by source (built or cache).
# TYPE meridian_layout_requests_total counter
meridian_layout_requests_total{source="built"} 1
meridian_layout_requests_total{source="cache"} 1
`
	assert.NoError(t, testutil.GatherAndCompare(metrics.Registry(), strings.NewReader(expected), "meridian_layout_requests_total"))

	require.NoError(t, eng.InvalidateLayout(t.Context()))
	assert.Empty(t, cache.Keys())
}

func TestEngine_LayoutKey(t *testing.T) {
	a := newEngine(t)
	b := newEngine(t)
	assert.Equal(t, a.LayoutKey(), b.LayoutKey(), "equal worlds share a key")
	assert.Regexp(t, `^[0-9a-f]{16}-[0-9a-f]{16}$`, a.LayoutKey())

	moved := newEngine(t, meridian.WithSeeds(domain.Seed{Name: "Edinburgh", X: 0, Y: 0}))
	assert.NotEqual(t, a.LayoutKey(), moved.LayoutKey())

	wider := newEngine(t, meridian.WithSearchRadius(6))
	assert.NotEqual(t, a.LayoutKey(), wider.LayoutKey())
}

type brokenCache struct{}

func (brokenCache) Get(context.Context, string) (*domain.Layout, error) {
	return nil, errors.New("connection refused")
}
func (brokenCache) Put(context.Context, string, *domain.Layout) error {
	return errors.New("connection refused")
}
func (brokenCache) Delete(context.Context, string) error { return nil }

func TestEngine_LayoutSurvivesCacheFailure(t *testing.T) {
	logger, logs := testutils.CaptureLogger()
	eng := newEngine(t, meridian.WithLayoutCache(brokenCache{}), meridian.WithLogger(logger))

	l, err := eng.Layout(t.Context())
	require.NoError(t, err)
	assert.NotEmpty(t, l.Positions)
	assert.Equal(t, 1, logs.Count("layout cache read failed"))
	assert.Equal(t, 1, logs.Count("layout cache write failed"))
}

type countingLocker struct {
	mu    sync.Mutex
	locks atomic.Int32
	err   error
}

func (c *countingLocker) Lock(ctx context.Context, key string, ttl time.Duration) (ports.UnlockFunc, error) {
	if c.err != nil {
		return nil, c.err
	}
	c.mu.Lock()
	c.locks.Add(1)
	return func(context.Context) error {
		c.mu.Unlock()
		return nil
	}, nil
}

func TestEngine_LayoutTakesLock(t *testing.T) {
	locker := &countingLocker{}
	eng := newEngine(t, meridian.WithLayoutCache(memory.NewCache()), meridian.WithLocker(locker, time.Second))

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := eng.Layout(t.Context())
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.GreaterOrEqual(t, locker.locks.Load(), int32(1))
	assert.LessOrEqual(t, locker.locks.Load(), int32(8))

	_, err := eng.Layout(t.Context())
	require.NoError(t, err)
	before := locker.locks.Load()
	_, err = eng.Layout(t.Context())
	require.NoError(t, err)
	assert.Equal(t, before, locker.locks.Load(), "cache hits skip the lock")
}

func TestEngine_LayoutLockFailure(t *testing.T) {
	locker := &countingLocker{err: errors.New("busy")}
	eng := newEngine(t, meridian.WithLocker(locker, 0))

	_, err := eng.Layout(t.Context())
	assert.ErrorContains(t, err, "failed to lock layout build")
}

func TestEngine_Blend(t *testing.T) {
	eng := newEngine(t)

	res, err := eng.Blend(domain.BlendRequest{Area: "Highlands", Width: 16, Height: 16})
	require.NoError(t, err)

	assert.Equal(t, domain.ClimateCold, res.Map.Climate)
	assert.Equal(t, "Highlands", res.Map.Area)
	assert.Equal(t, domain.BiomeGrassland, res.Map.Tiles[15][4].Biome, "south border takes Glasgow's climate")
	assert.Equal(t, domain.BiomeTundra, res.Map.Tiles[0][4].Biome)
	for _, z := range res.Zones {
		assert.Equal(t, domain.South, z.Direction)
	}
}

func TestEngine_BlendExplicit(t *testing.T) {
	eng := newEngine(t)

	res, err := eng.Blend(domain.BlendRequest{
		Climate:   "temperate",
		Tiles:     [][]domain.Biome{{"FOREST", "URBAN"}, {"FOREST", "forest"}},
		Neighbors: map[domain.Direction]domain.Climate{domain.East: "TROPICAL"},
	})
	require.NoError(t, err)

	assert.Equal(t, 2, res.Map.Width)
	assert.Equal(t, domain.BiomeUrban, res.Map.Tiles[0][1].Biome, "fixed biomes never change")
	assert.Equal(t, domain.BiomeJungle, res.Map.Tiles[1][1].Biome)
}

func TestEngine_BlendErrors(t *testing.T) {
	eng := newEngine(t)

	tests := []struct {
		name string
		req  domain.BlendRequest
		err  error
	}{
		{"unknown area", domain.BlendRequest{Area: "Atlantis"}, domain.ErrAreaNotFound},
		{"bad direction", domain.BlendRequest{Climate: "COLD", Neighbors: map[domain.Direction]domain.Climate{"UP": "ARID"}}, domain.ErrInvalidDirection},
		{"bad climate", domain.BlendRequest{Climate: "MILD"}, nil},
		{"bad neighbor climate", domain.BlendRequest{Climate: "COLD", Neighbors: map[domain.Direction]domain.Climate{domain.North: "MILD"}}, nil},
		{"bad fill", domain.BlendRequest{Climate: "COLD", Fill: "LAVA"}, nil},
		{"too big", domain.BlendRequest{Climate: "COLD", Width: meridian.MaxMapSize + 1}, nil},
		{"ragged tiles", domain.BlendRequest{Climate: "COLD", Tiles: [][]domain.Biome{{"SNOW", "SNOW"}, {"SNOW"}}}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := eng.Blend(tt.req)
			require.Error(t, err)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
			}
		})
	}
}

type mutableLoader struct {
	mu   sync.Mutex
	data *domain.WorldData
}

func (m *mutableLoader) Load(ctx context.Context) (*domain.WorldData, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data == nil {
		return nil, errors.New("gone")
	}
	return memory.MustLoader(m.data).Load(ctx)
}

func TestEngine_Reload(t *testing.T) {
	loader := &mutableLoader{data: testutils.SampleWorld()}
	eng, err := meridian.New(t.Context(), "", meridian.WithLoader(loader))
	require.NoError(t, err)
	key := eng.LayoutKey()

	changed := testutils.SampleWorld()
	changed.Adjacency["Paris"][domain.South] = ""
	loader.mu.Lock()
	loader.data = changed
	loader.mu.Unlock()

	require.NoError(t, eng.Reload(t.Context()))
	assert.NotEqual(t, key, eng.LayoutKey())
	assert.Equal(t, domain.ReasonWorldEdge, eng.Next("Paris", domain.South).Reason)

	loader.mu.Lock()
	loader.data = nil
	loader.mu.Unlock()

	require.Error(t, eng.Reload(t.Context()))
	assert.Equal(t, domain.ReasonWorldEdge, eng.Next("Paris", domain.South).Reason, "failed reload keeps the old world")
}

func TestEngine_WatchUnsupported(t *testing.T) {
	eng := newEngine(t)
	_, err := eng.Watch(t.Context())
	assert.Error(t, err)
}
