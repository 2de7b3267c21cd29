package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aretw0/meridian"
	"github.com/aretw0/meridian/internal/config"
	"github.com/aretw0/meridian/pkg/adapters/file"
	"github.com/aretw0/meridian/pkg/adapters/memory"
	"github.com/aretw0/meridian/pkg/adapters/redis"
	"github.com/aretw0/meridian/pkg/climate"
	"github.com/aretw0/meridian/pkg/observability"
	"github.com/aretw0/meridian/pkg/ports"
)

// Runtime is an engine together with the resources opened to build it.
type Runtime struct {
	Engine  *meridian.Engine
	Metrics *observability.Metrics

	closers []func() error
}

// Close releases backend connections. It is safe to call more than once.
func (r *Runtime) Close() error {
	var errs []error
	for i := len(r.closers) - 1; i >= 0; i-- {
		if err := r.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	r.closers = nil
	return errors.Join(errs...)
}

// FactoryOption tweaks CreateEngine.
type FactoryOption func(*factory)

type factory struct {
	metrics bool
	loader  ports.WorldLoader
}

// WithMetrics attaches a fresh Prometheus registry to the engine.
func WithMetrics() FactoryOption {
	return func(f *factory) {
		f.metrics = true
	}
}

// WithLoader bypasses path based loading.
func WithLoader(l ports.WorldLoader) FactoryOption {
	return func(f *factory) {
		f.loader = l
	}
}

// CreateEngine initializes a Meridian engine with standard CLI conventions.
func CreateEngine(ctx context.Context, cfg *config.Config, logger *slog.Logger, opts ...FactoryOption) (*Runtime, error) {
	f := &factory{}
	for _, opt := range opts {
		opt(f)
	}

	rt := &Runtime{}
	engineOpts := []meridian.Option{
		meridian.WithLogger(logger),
		meridian.WithSearchRadius(cfg.Layout.SearchRadius),
		meridian.WithClimate(climateOptions(cfg.Climate)...),
	}

	if len(cfg.Seeds) > 0 {
		engineOpts = append(engineOpts, meridian.WithSeeds(cfg.Seeds...))
	}
	if f.loader != nil {
		engineOpts = append(engineOpts, meridian.WithLoader(f.loader))
	}
	if f.metrics {
		rt.Metrics = observability.New()
		engineOpts = append(engineOpts, meridian.WithMetrics(rt.Metrics))
	}

	cacheOpts, err := rt.cacheOptions(ctx, cfg, logger)
	if err != nil {
		_ = rt.Close()
		return nil, err
	}
	engineOpts = append(engineOpts, cacheOpts...)

	engine, err := meridian.New(ctx, cfg.World, engineOpts...)
	if err != nil {
		_ = rt.Close()
		return nil, fmt.Errorf("error initializing engine: %w", err)
	}
	rt.Engine = engine
	return rt, nil
}

// lockPrefix drops a trailing "layout:" from the cache prefix; the engine
// already locks under "layout:<key>".
func lockPrefix(cachePrefix string) string {
	return strings.TrimSuffix(cachePrefix, "layout:")
}

func climateOptions(c config.ClimateConfig) []climate.Option {
	return []climate.Option{
		climate.WithMaxDistance(c.MaxDistance),
		climate.WithStrength(c.Strength),
		climate.WithNoise(climate.NewNoise(c.Noise, c.NoiseSeed)),
		climate.WithWorkers(c.Workers),
	}
}

func (rt *Runtime) cacheOptions(ctx context.Context, cfg *config.Config, logger *slog.Logger) ([]meridian.Option, error) {
	switch cfg.Cache.Backend {
	case config.CacheNone:
		return nil, nil
	case config.CacheMemory:
		return []meridian.Option{meridian.WithLayoutCache(memory.NewCache())}, nil
	case config.CacheFile:
		logger.Debug("layout cache on disk", "dir", cfg.Cache.Dir)
		return []meridian.Option{meridian.WithLayoutCache(file.NewCache(cfg.Cache.Dir))}, nil
	case config.CacheRedis:
		cache := redis.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB,
			redis.WithPrefix(cfg.Redis.Prefix),
			redis.WithTTL(cfg.Redis.TTL),
		)
		rt.closers = append(rt.closers, cache.Close)

		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		if err := cache.Ping(pingCtx); err != nil {
			return nil, fmt.Errorf("redis unreachable at %s: %w", cfg.Redis.Addr, err)
		}
		logger.Debug("layout cache on redis", "addr", cfg.Redis.Addr, "prefix", cfg.Redis.Prefix)
		return []meridian.Option{
			meridian.WithLayoutCache(cache),
			meridian.WithLocker(redis.NewLocker(cache.Client(), lockPrefix(cfg.Redis.Prefix)), cfg.Redis.LockTTL),
		}, nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Cache.Backend)
	}
}
