package dsl

import (
	"testing"

	"github.com/aretw0/meridian/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func channelWorld() *Builder {
	b := New()

	b.Area("London").In("Europe", "England").
		Climate(domain.ClimateTemperate).Biome(domain.BiomeUrban).
		Since(43).Tag("capital").
		Seed(0, 0).
		Link(domain.North, "York").
		South("CHANNEL_CROSSING")

	b.Area("York").In("Europe", "England").Biome(domain.BiomeFarmland)

	b.Area("Calais").In("Europe", "France").Biome(domain.BiomeBeach).
		East("")

	b.Sequence("CHANNEL_CROSSING").
		From("London").To("Calais").
		Steps("WHITE_CLIFFS", "STRAIT")

	return b
}

func TestBuilder_World(t *testing.T) {
	w := channelWorld().World()

	london := w.Geography["Europe"]["England"]["London"]
	assert.Equal(t, domain.ClimateTemperate, london.Climate)
	assert.Equal(t, domain.BiomeUrban, london.Biome)
	assert.Equal(t, 43, london.MinYear)
	assert.Equal(t, []string{"capital"}, london.Tags)

	assert.Equal(t, domain.Edges{domain.North: "York", domain.South: "CHANNEL_CROSSING"}, w.Adjacency["London"])
	assert.Equal(t, domain.Edges{domain.South: "London"}, w.Adjacency["York"], "Link adds the way back")
	assert.Equal(t, domain.Edges{domain.East: ""}, w.Adjacency["Calais"])

	seq := w.Sequences["CHANNEL_CROSSING"]
	assert.Equal(t, "Calais", seq.Destination)
	assert.Equal(t, "London", seq.Origin)
	assert.Equal(t, []domain.Archetype{"WHITE_CLIFFS", "STRAIT"}, seq.Steps)

	assert.Equal(t, []domain.Seed{{Name: "London"}}, w.Seeds)
}

func TestBuilder_Defaults(t *testing.T) {
	b := New()
	b.Area("Nowhere")

	w := b.World()
	def, ok := w.Geography[DefaultZone][DefaultRegion]["Nowhere"]
	require.True(t, ok)
	assert.Equal(t, domain.ClimateTemperate, def.Climate)
	assert.Equal(t, domain.BiomeGrassland, def.Biome)

	edges, ok := w.Adjacency["Nowhere"]
	assert.True(t, ok, "areas get an empty adjacency record by default")
	assert.Empty(t, edges)
}

func TestBuilder_Isolated(t *testing.T) {
	b := New()
	b.Area("Atlantis").North("Atlantis").Isolated()

	w := b.World()
	_, ok := w.Adjacency["Atlantis"]
	assert.False(t, ok)
	assert.Contains(t, w.Geography[DefaultZone][DefaultRegion], "Atlantis")
}

func TestBuilder_AreaIsIdempotent(t *testing.T) {
	b := New()
	first := b.Area("Paris")
	assert.Same(t, first, b.Area("Paris"))
	assert.Same(t, first, first.Area("Lyon").Area("Paris"))
	assert.Equal(t, "Paris", first.Name())
}

func TestBuilder_SeedReplaces(t *testing.T) {
	b := New()
	b.Seed("A", 1, 1).Seed("B", 2, 2).Seed("A", 5, 5)

	assert.Equal(t, []domain.Seed{{Name: "A", X: 5, Y: 5}, {Name: "B", X: 2, Y: 2}}, b.World().Seeds)
}

func TestBuilder_Build(t *testing.T) {
	loader, err := channelWorld().Build()
	require.NoError(t, err)

	w, err := loader.Load(t.Context())
	require.NoError(t, err)
	assert.Len(t, w.Adjacency, 3)
	assert.Len(t, w.Sequences, 1)
}

func TestBuilder_BuildRejectsDanglingEdge(t *testing.T) {
	b := New()
	b.Area("Paris").South("Marseille")

	_, err := b.Build()
	require.ErrorIs(t, err, domain.ErrAreaNotFound)
	assert.Contains(t, err.Error(), "Marseille")
}

func TestBuilder_BuildAcceptsDerivedReverseKey(t *testing.T) {
	b := New()
	b.Area("Dover").East("DOVER_TO_CALAIS")
	b.Area("Calais").West("DOVER_FROM_CALAIS")
	b.Sequence("DOVER_TO_CALAIS").From("Dover").To("Calais").Steps("STRAIT")

	_, err := b.Build()
	require.NoError(t, err)

	b.Sequence("DOVER_TO_CALAIS").From("")
	_, err = b.Build()
	assert.ErrorIs(t, err, domain.ErrAreaNotFound, "no origin, no reverse")
}

func TestBuilder_BuildRejectsSequenceWithoutDestination(t *testing.T) {
	b := New()
	b.Area("Dover").South("STRAIT")
	b.Sequence("STRAIT").Steps("WATER")

	_, err := b.Build()
	assert.ErrorContains(t, err, "no destination")
}

func TestBuilder_WorldIsACopy(t *testing.T) {
	b := channelWorld()
	w := b.World()
	w.Adjacency["London"][domain.West] = "Bristol"
	w.Geography["Europe"]["England"]["London"] = domain.AreaDefinition{}

	again := b.World()
	assert.NotContains(t, again.Adjacency["London"], domain.West)
	assert.Equal(t, domain.BiomeUrban, again.Geography["Europe"]["England"]["London"].Biome)
}

func TestSequenceBuilder_Build(t *testing.T) {
	b := New()
	seq := b.Sequence("K").To("X").Steps("A", "B").Build()
	seq.Steps[0] = "CHANGED"

	assert.Equal(t, domain.Archetype("A"), b.Sequence("K").Build().Steps[0])
}
