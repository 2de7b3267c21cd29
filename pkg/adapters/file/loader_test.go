package file_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/meridian/internal/testutils"
	"github.com/aretw0/meridian/pkg/adapters/file"
	"github.com/aretw0/meridian/pkg/domain"
	contract "github.com/aretw0/meridian/pkg/ports/tests"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const worldYAML = `
geography:
  Europe:
    Scotland:
      Edinburgh: {climate: TEMPERATE, biome: GRASSLAND, min_year: 1100}
      Highlands: {climate: COLD, biome: TUNDRA}
    Nordic:
      Iceland: {climate: COLD, biome: TUNDRA}
adjacency:
  Edinburgh: {north: ATLANTIC_SOUTH_NORTH, W: Highlands}
  Highlands: {e: Edinburgh, up: Sky}
sequences:
  ATLANTIC_SOUTH_NORTH:
    destination: Iceland
    origin_area: Edinburgh
    steps: [COASTAL_WATERS, OPEN_OCEAN]
seeds:
  - {name: Edinburgh, x: 4, y: 2}
`

func writeWorld(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "world.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoader_Decode(t *testing.T) {
	logger, logs := testutils.CaptureLogger()
	loader := file.NewLoader(writeWorld(t, worldYAML), file.WithLogger(logger))

	world, err := loader.Load(t.Context())
	require.NoError(t, err)

	assert.Equal(t, 1100, world.Geography["Europe"]["Scotland"]["Edinburgh"].MinYear)
	assert.Equal(t, "ATLANTIC_SOUTH_NORTH", world.Adjacency["Edinburgh"][domain.North])
	assert.Equal(t, "Highlands", world.Adjacency["Edinburgh"][domain.West])
	assert.Equal(t, "Edinburgh", world.Adjacency["Highlands"][domain.East])
	assert.Len(t, world.Adjacency["Highlands"], 1)
	assert.Equal(t, 1, logs.Count("ignoring edge with invalid direction"))

	seq := world.Sequences["ATLANTIC_SOUTH_NORTH"]
	assert.Equal(t, "ATLANTIC_SOUTH_NORTH", seq.Key, "key filled from map key")
	assert.Equal(t, "Edinburgh", seq.Origin)
	assert.Equal(t, []domain.Seed{{Name: "Edinburgh", X: 4, Y: 2}}, world.Seeds)
}

func TestLoader_UnknownField(t *testing.T) {
	loader := file.NewLoader(writeWorld(t, "geography: {}\nbiomes: []\n"))
	_, err := loader.Load(t.Context())
	assert.Error(t, err)
}

func TestLoader_MissingFile(t *testing.T) {
	loader := file.NewLoader(filepath.Join(t.TempDir(), "nope.yaml"))
	_, err := loader.Load(t.Context())
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoader_EmptyFile(t *testing.T) {
	world, err := file.NewLoader(writeWorld(t, "")).Load(t.Context())
	require.NoError(t, err)
	assert.Empty(t, world.Geography)
}

func TestLoader_Contract(t *testing.T) {
	want := testutils.SampleWorld()
	raw, err := file.Encode(want)
	require.NoError(t, err)

	contract.WorldLoaderContractTest(t, file.NewLoader(writeWorld(t, string(raw))), want)
}
