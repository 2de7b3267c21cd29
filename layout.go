package meridian

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aretw0/meridian/pkg/domain"
)

// Layout returns the hex layout for the current seeds. With a cache it is
// built at most once per world and seed set; concurrent callers in this
// process share one build, and a locker extends that across processes.
// Cache failures are logged and never fail the call.
func (e *Engine) Layout(ctx context.Context) (*domain.Layout, error) {
	s := e.snapshot()

	if l, ok := e.cached(ctx, s.key); ok {
		return l, nil
	}

	v, err, _ := e.builds.Do(s.key, func() (any, error) {
		return e.buildLayout(ctx, s)
	})
	if err != nil {
		return nil, err
	}
	return v.(*domain.Layout), nil
}

func (e *Engine) cached(ctx context.Context, key string) (*domain.Layout, bool) {
	if e.cache == nil {
		return nil, false
	}
	l, err := e.cache.Get(ctx, key)
	if err == nil {
		if e.metrics != nil {
			e.metrics.ObserveLayout(l, 0, true)
		}
		return l, true
	}
	if !errors.Is(err, domain.ErrLayoutNotFound) {
		e.logger.Warn("layout cache read failed", "key", key, "err", err)
	}
	return nil, false
}

func (e *Engine) buildLayout(ctx context.Context, s *snapshot) (*domain.Layout, error) {
	if e.locker != nil {
		unlock, err := e.locker.Lock(ctx, "layout:"+s.key, e.lockTTL)
		if err != nil {
			return nil, fmt.Errorf("failed to lock layout build: %w", err)
		}
		defer func() {
			if err := unlock(context.WithoutCancel(ctx)); err != nil {
				e.logger.Warn("layout unlock failed", "key", s.key, "err", err)
			}
		}()

		// another process may have finished while we waited
		if l, ok := e.cached(ctx, s.key); ok {
			return l, nil
		}
	}

	start := time.Now()
	l := s.layout.Build(s.seeds)
	took := time.Since(start)

	if e.metrics != nil {
		e.metrics.ObserveLayout(l, took, false)
	}
	e.logger.Debug("layout built", "key", s.key, "placed", len(l.Areas()), "buffers", l.BufferCount, "took", took)

	if e.cache != nil {
		if err := e.cache.Put(ctx, s.key, l); err != nil {
			e.logger.Warn("layout cache write failed", "key", s.key, "err", err)
		}
	}
	return l, nil
}

// InvalidateLayout drops the cached layout for the current world and seeds.
func (e *Engine) InvalidateLayout(ctx context.Context) error {
	if e.cache == nil {
		return nil
	}
	return e.cache.Delete(ctx, e.snapshot().key)
}
