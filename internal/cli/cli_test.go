package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/meridian/internal/config"
	"github.com/aretw0/meridian/internal/logging"
	"github.com/aretw0/meridian/internal/testutils"
	"github.com/aretw0/meridian/pkg/adapters/file"
	"github.com/aretw0/meridian/pkg/adapters/memory"
	"github.com/aretw0/meridian/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeWorld(t *testing.T) string {
	t.Helper()
	raw, err := file.Encode(testutils.SampleWorld())
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "world.yaml")
	require.NoError(t, os.WriteFile(path, raw, 0644))
	return path
}

func testConfig(t *testing.T, world string) *config.Config {
	t.Helper()
	cfg, err := LoadConfig("", Overrides{World: world}, config.WithEnvironment(map[string]string{}))
	require.NoError(t, err)
	return cfg
}

func TestLoadConfig_FlagsWin(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "meridian.yaml")
	require.NoError(t, os.WriteFile(path, []byte("world: from-file.yaml\nlog_level: debug\n"), 0644))

	env := map[string]string{"MERIDIAN_WORLD": "from-env.yaml"}

	cfg, err := LoadConfig(path, Overrides{}, config.WithEnvironment(env))
	require.NoError(t, err)
	assert.Equal(t, "from-env.yaml", cfg.World)
	assert.Equal(t, "debug", cfg.LogLevel)

	cfg, err = LoadConfig(path, Overrides{World: "from-flag.yaml", LogLevel: "warn"}, config.WithEnvironment(env))
	require.NoError(t, err)
	assert.Equal(t, "from-flag.yaml", cfg.World)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestLoadConfig_InvalidCacheOverride(t *testing.T) {
	_, err := LoadConfig("", Overrides{Cache: "tape"}, config.WithEnvironment(map[string]string{}))
	assert.Error(t, err)
}

func TestNewLogger(t *testing.T) {
	logger, err := NewLogger("debug")
	require.NoError(t, err)
	assert.NotNil(t, logger)

	_, err = NewLogger("loud")
	assert.Error(t, err)
}

func TestCreateEngine_Backends(t *testing.T) {
	ctx := context.Background()
	world := writeWorld(t)

	t.Run("none", func(t *testing.T) {
		cfg := testConfig(t, world)
		cfg.Cache.Backend = config.CacheNone
		rt, err := CreateEngine(ctx, cfg, logging.NewNop())
		require.NoError(t, err)
		defer rt.Close()

		assert.Len(t, rt.Engine.Areas(), 11)
		assert.Nil(t, rt.Metrics)
		layout, err := rt.Engine.Layout(ctx)
		require.NoError(t, err)
		assert.NotEmpty(t, layout.Positions)
	})

	t.Run("file", func(t *testing.T) {
		cfg := testConfig(t, world)
		cfg.Cache.Backend = config.CacheFile
		cfg.Cache.Dir = t.TempDir()
		rt, err := CreateEngine(ctx, cfg, logging.NewNop(), WithMetrics())
		require.NoError(t, err)
		defer rt.Close()

		assert.NotNil(t, rt.Metrics)
		_, err = rt.Engine.Layout(ctx)
		require.NoError(t, err)

		entries, err := os.ReadDir(cfg.Cache.Dir)
		require.NoError(t, err)
		assert.Len(t, entries, 1)
	})

	t.Run("redis", func(t *testing.T) {
		mr := miniredis.RunT(t)
		cfg := testConfig(t, world)
		cfg.Cache.Backend = config.CacheRedis
		cfg.Redis.Addr = mr.Addr()
		rt, err := CreateEngine(ctx, cfg, logging.NewNop())
		require.NoError(t, err)

		_, err = rt.Engine.Layout(ctx)
		require.NoError(t, err)
		assert.True(t, mr.Exists(cfg.Redis.Prefix+rt.Engine.LayoutKey()))
		assert.NoError(t, rt.Close())
		assert.NoError(t, rt.Close())
	})

	t.Run("redis lock key", func(t *testing.T) {
		mr := miniredis.RunT(t)
		cfg := testConfig(t, world)
		cfg.Cache.Backend = config.CacheRedis
		cfg.Redis.Addr = mr.Addr()
		cfg.Redis.Prefix = "meridian:layout:"
		rt, err := CreateEngine(ctx, cfg, logging.NewNop())
		require.NoError(t, err)
		defer rt.Close()

		lockKey := "meridian:lock:layout:" + rt.Engine.LayoutKey()
		require.NoError(t, mr.Set(lockKey, "other-holder"))

		waitCtx, cancel := context.WithTimeout(ctx, 300*time.Millisecond)
		defer cancel()
		_, err = rt.Engine.Layout(waitCtx)
		assert.ErrorContains(t, err, "failed to lock layout build")

		mr.Del(lockKey)
		_, err = rt.Engine.Layout(ctx)
		require.NoError(t, err)
		assert.False(t, mr.Exists(lockKey))
	})

	t.Run("redis unreachable", func(t *testing.T) {
		cfg := testConfig(t, world)
		cfg.Cache.Backend = config.CacheRedis
		cfg.Redis.Addr = "127.0.0.1:1"
		_, err := CreateEngine(ctx, cfg, logging.NewNop())
		assert.ErrorContains(t, err, "redis unreachable")
	})
}

func TestLockPrefix(t *testing.T) {
	assert.Equal(t, "meridian:", lockPrefix("meridian:layout:"))
	assert.Equal(t, "custom:", lockPrefix("custom:"))
	assert.Equal(t, "", lockPrefix(""))
}

func TestCreateEngine_SeedsAndLoader(t *testing.T) {
	cfg := testConfig(t, "")
	cfg.Seeds = []domain.Seed{{Name: "London", X: 0, Y: 0}}

	rt, err := CreateEngine(context.Background(), cfg, logging.NewNop(),
		WithLoader(memory.MustLoader(testutils.SampleWorld())))
	require.NoError(t, err)
	defer rt.Close()

	assert.Equal(t, cfg.Seeds, rt.Engine.Seeds())
}

func TestCreateEngine_MissingWorld(t *testing.T) {
	cfg := testConfig(t, filepath.Join(t.TempDir(), "nope.yaml"))
	_, err := CreateEngine(context.Background(), cfg, logging.NewNop())
	assert.ErrorContains(t, err, "error initializing engine")
}

type fakeReloader struct {
	events  chan string
	mu      sync.Mutex
	reloads int
	fail    error
}

func (f *fakeReloader) Watch(ctx context.Context) (<-chan string, error) {
	return f.events, nil
}

func (f *fakeReloader) Reload(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reloads++
	return f.fail
}

func (f *fakeReloader) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.reloads
}

func TestWatchAndReload_Debounces(t *testing.T) {
	r := &fakeReloader{events: make(chan string)}
	var out bytes.Buffer
	reloaded := make(chan struct{}, 4)

	done := make(chan error, 1)
	go func() {
		done <- WatchAndReload(context.Background(), r, logging.NewNop(), &out, func() { reloaded <- struct{}{} })
	}()

	r.events <- "london.md"
	r.events <- "london.md"
	r.events <- "dover.md"

	select {
	case <-reloaded:
	case <-time.After(2 * time.Second):
		t.Fatal("no reload")
	}
	close(r.events)
	require.NoError(t, <-done)

	assert.Equal(t, 1, r.count())
	assert.Contains(t, out.String(), "world reloaded")
}

func TestWatchAndReload_FailedReloadKeepsWatching(t *testing.T) {
	r := &fakeReloader{events: make(chan string), fail: errors.New("bad yaml")}
	var out bytes.Buffer
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		done <- WatchAndReload(ctx, r, logging.NewNop(), &out, nil)
	}()

	r.events <- "a.md"
	assert.Eventually(t, func() bool { return r.count() == 1 }, 2*time.Second, 10*time.Millisecond)
	r.events <- "b.md"
	assert.Eventually(t, func() bool { return r.count() == 2 }, 2*time.Second, 10*time.Millisecond)

	cancel()
	require.NoError(t, <-done)
	assert.Equal(t, 2, strings.Count(out.String(), "Reload failed"))
}

type unwatchable struct{ fakeReloader }

func (*unwatchable) Watch(ctx context.Context) (<-chan string, error) {
	return nil, errors.New("current loader does not support watching")
}

func TestWatchAndReload_Unsupported(t *testing.T) {
	err := WatchAndReload(context.Background(), &unwatchable{}, logging.NewNop(), &bytes.Buffer{}, nil)
	assert.ErrorContains(t, err, "watch unavailable")
}
