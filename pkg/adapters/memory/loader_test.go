package memory_test

import (
	"context"
	"testing"

	"github.com/aretw0/meridian/internal/testutils"
	"github.com/aretw0/meridian/pkg/adapters/memory"
	"github.com/aretw0/meridian/pkg/domain"
	contract "github.com/aretw0/meridian/pkg/ports/tests"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryLoader_Contract(t *testing.T) {
	world := testutils.SampleWorld()
	loader, err := memory.NewLoader(world)
	require.NoError(t, err)

	contract.WorldLoaderContractTest(t, loader, world)
}

func TestInMemoryLoader_Isolation(t *testing.T) {
	world := testutils.SampleWorld()
	loader := memory.MustLoader(world)

	world.Adjacency["Edinburgh"][domain.South] = "Mars"

	got, err := loader.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "York", got.Adjacency["Edinburgh"][domain.South])

	got.Adjacency["Edinburgh"][domain.South] = "Venus"
	again, err := loader.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "York", again.Adjacency["Edinburgh"][domain.South])
}

func TestInMemoryLoader_Canceled(t *testing.T) {
	loader := memory.MustLoader(nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := loader.Load(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
