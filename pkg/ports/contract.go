package ports

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/aretw0/meridian/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunLayoutCacheContract runs a suite of tests to verify that a LayoutCache
// implementation adheres to the defined interface contract.
func RunLayoutCacheContract(t *testing.T, cache LayoutCache) {
	ctx := context.Background()
	key := fmt.Sprintf("contract-%d", time.Now().UnixNano())

	layout := &domain.Layout{
		Positions: []domain.HexPosition{
			{Name: "Edinburgh", X: 4, Y: 2, Type: domain.PositionArea, Region: "Scotland", Climate: domain.ClimateTemperate},
			{Name: "ATLANTIC_SOUTH_NORTH#1", X: 4, Y: 1, Type: domain.PositionLiminal, Key: "ATLANTIC_SOUTH_NORTH"},
		},
		Skipped:     []string{"Marrakesh"},
		BufferCount: 1,
	}

	t.Run("Put and Get", func(t *testing.T) {
		require.NoError(t, cache.Put(ctx, key, layout))

		loaded, err := cache.Get(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, layout.Positions, loaded.Positions)
		assert.Equal(t, layout.Skipped, loaded.Skipped)
		assert.Equal(t, layout.BufferCount, loaded.BufferCount)
	})

	t.Run("Get returns a copy", func(t *testing.T) {
		loaded, err := cache.Get(ctx, key)
		require.NoError(t, err)
		loaded.Positions[0].X = 99

		again, err := cache.Get(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, 4, again.Positions[0].X)
	})

	t.Run("Get Non-Existent", func(t *testing.T) {
		_, err := cache.Get(ctx, "non-existent-"+key)
		assert.ErrorIs(t, err, domain.ErrLayoutNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, cache.Delete(ctx, key))
		_, err := cache.Get(ctx, key)
		assert.ErrorIs(t, err, domain.ErrLayoutNotFound)

		assert.NoError(t, cache.Delete(ctx, key), "deleting twice is fine")
	})
}
