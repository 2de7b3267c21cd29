package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"
)

// SettleDelay lets editors finish writing before the world is re-read.
const SettleDelay = 100 * time.Millisecond

// Reloader is the part of the engine the watcher drives.
type Reloader interface {
	Watch(ctx context.Context) (<-chan string, error)
	Reload(ctx context.Context) error
}

// WatchAndReload reloads the world on every change event until ctx is done
// or the watch channel closes. Bursts of events inside SettleDelay collapse
// into a single reload. A failed reload keeps the previous world and the loop
// carries on waiting for a fix.
func WatchAndReload(ctx context.Context, r Reloader, logger *slog.Logger, out io.Writer, onReload func()) error {
	events, err := r.Watch(ctx)
	if err != nil {
		return fmt.Errorf("watch unavailable: %w", err)
	}
	logger.Info("Starting Watcher")

	for {
		select {
		case <-ctx.Done():
			logger.Info("Stopping watcher", "reason", ctx.Err())
			return nil
		case event, ok := <-events:
			if !ok {
				logger.Info("Watch channel closed")
				return nil
			}
			logger.Info("Change detected, triggering reload", "event", event)
			if !settle(ctx, events) {
				return nil
			}

			if err := r.Reload(ctx); err != nil {
				logger.Error("Reload failed, keeping previous world", "err", err)
				printSystemMessage(out, "Reload failed: %v", err)
				continue
			}
			printSystemMessage(out, "Change detected in '%s', world reloaded.", event)
			if onReload != nil {
				onReload()
			}
		}
	}
}

// settle drains events until the channel is quiet for SettleDelay.
// It returns false when ctx ends first.
func settle(ctx context.Context, events <-chan string) bool {
	timer := time.NewTimer(SettleDelay)
	defer timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return false
		case _, ok := <-events:
			if !ok {
				return true
			}
			timer.Reset(SettleDelay)
		case <-timer.C:
			return true
		}
	}
}
