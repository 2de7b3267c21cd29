package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aretw0/meridian/internal/testutils"
	"github.com/aretw0/meridian/pkg/adapters/file"
	"github.com/aretw0/meridian/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeWorld(t *testing.T, data *domain.WorldData) string {
	t.Helper()
	raw, err := file.Encode(data)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "world.yaml")
	require.NoError(t, os.WriteFile(path, raw, 0644))
	return path
}

func cleanWorld() *domain.WorldData {
	data := testutils.SampleWorld()
	delete(data.Adjacency["Paris"], domain.South)
	return data
}

// run executes the root command with args and returns stdout.
func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append(args, "--config", filepath.Join(t.TempDir(), "absent.yaml")))
	err := cmd.Execute()
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := run(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "meridian version dev\n", out)
}

func TestValidate(t *testing.T) {
	out, err := run(t, "", "validate", "--world", writeWorld(t, cleanWorld()))
	require.NoError(t, err)
	assert.Contains(t, out, "World is valid!")
	assert.Contains(t, out, "unreachable")

	_, err = run(t, "", "validate", "--world", writeWorld(t, testutils.SampleWorld()))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dangling")
	assert.Contains(t, err.Error(), "Marseille")
}

func TestLayoutJSON(t *testing.T) {
	out, err := run(t, "", "layout", "--json", "--world", writeWorld(t, cleanWorld()))
	require.NoError(t, err)

	var layout domain.Layout
	require.NoError(t, json.Unmarshal([]byte(out), &layout))
	edinburgh, ok := layout.Position("Edinburgh")
	require.True(t, ok)
	assert.Equal(t, 4, edinburgh.X)
	assert.Equal(t, 2, edinburgh.Y)
	assert.Equal(t, []string{"Iceland", "Marrakesh", "Sargasso"}, layout.Skipped)
}

func TestLayoutRendered(t *testing.T) {
	out, err := run(t, "", "layout", "--fresh", "--world", writeWorld(t, cleanWorld()))
	require.NoError(t, err)
	assert.Contains(t, out, "3 skipped")
}

func TestEdge(t *testing.T) {
	world := writeWorld(t, cleanWorld())

	out, err := run(t, "", "edge", "Dover", "east", "--world", world)
	require.NoError(t, err)
	assert.Equal(t, "Dover east: liminal CHANNEL_TO_CALAIS -> Calais (2 steps)\n", out)

	out, err = run(t, "", "edge", "Dover", "W", "--world", world)
	require.NoError(t, err)
	assert.Equal(t, "Dover west: adjacent London\n", out)

	out, err = run(t, "", "edge", "Marrakesh", "N", "--world", world)
	require.NoError(t, err)
	assert.Equal(t, "Marrakesh north: unknown (no_adjacency)\n", out)

	_, err = run(t, "", "edge", "Dover", "up", "--world", world)
	assert.ErrorIs(t, err, domain.ErrInvalidDirection)
}

func TestNavigate(t *testing.T) {
	world := writeWorld(t, cleanWorld())

	out, err := run(t, "", "navigate", "London", "e", "--json", "--world", world)
	require.NoError(t, err)
	var res domain.NavigationResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, domain.NavAdjacent, res.Kind)
	assert.Equal(t, "Dover", res.Area.Name)

	out, err = run(t, "", "navigate", "Edinburgh", "n", "--json", "--world", world)
	require.NoError(t, err)
	res = domain.NavigationResult{}
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, domain.NavLiminal, res.Kind)
	assert.Equal(t, "Iceland", res.Destination)

	out, err = run(t, "e\ne\nquit\n", "navigate", "London", "--world", world)
	require.NoError(t, err)
	assert.Contains(t, out, "Stopped at 'Calais'.")
}

func TestSequencesAndGraph(t *testing.T) {
	world := writeWorld(t, cleanWorld())

	out, err := run(t, "", "sequences", "--json", "--world", world)
	require.NoError(t, err)
	var seqs []domain.LiminalSequence
	require.NoError(t, json.Unmarshal([]byte(out), &seqs))
	assert.Len(t, seqs, 4)

	_, err = run(t, "", "sequences", "NOPE", "--world", world)
	assert.ErrorContains(t, err, "not found")

	out, err = run(t, "", "graph", "--current", "Dover", "--visited", "London", "--world", world)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "graph TD\n"))
	assert.Contains(t, out, "classDef current")
}

func TestBlend(t *testing.T) {
	world := writeWorld(t, cleanWorld())

	out, err := run(t, "", "blend", "--climate", "temperate", "--neighbor", "N=COLD",
		"--width", "8", "--height", "6", "--json", "--world", world)
	require.NoError(t, err)
	var res domain.BlendResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, 8, res.Map.Width)
	assert.Equal(t, 6, res.Map.Height)
	for _, z := range res.Zones {
		assert.Equal(t, domain.North, z.Direction)
	}

	out, err = run(t, "", "blend", "--area", "Edinburgh", "--world", world)
	require.NoError(t, err)
	assert.Contains(t, out, "tiles rewritten")

	_, err = run(t, "", "blend", "--world", world)
	assert.ErrorContains(t, err, "--area or --climate")

	_, err = run(t, "", "blend", "--area", "Atlantis", "--world", world)
	assert.ErrorIs(t, err, domain.ErrAreaNotFound)
}

func TestExportThenLoadDirectory(t *testing.T) {
	dir := t.TempDir()
	out, err := run(t, "", "export", dir, "--world", writeWorld(t, cleanWorld()))
	require.NoError(t, err)
	assert.Equal(t, "Wrote 13 documents to "+dir+"\n", out)

	out, err = run(t, "", "edge", "Dover", "east", "--world", dir)
	require.NoError(t, err)
	assert.Equal(t, "Dover east: liminal CHANNEL_TO_CALAIS -> Calais (2 steps)\n", out)
}

func TestUnknownCacheBackend(t *testing.T) {
	_, err := run(t, "", "graph", "--cache", "tape", "--world", writeWorld(t, cleanWorld()))
	assert.ErrorContains(t, err, "unknown cache backend")
}
