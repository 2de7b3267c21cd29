package testutils

import (
	"bytes"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/aretw0/loam"
	"github.com/aretw0/loam/pkg/core"
	"github.com/aretw0/meridian/pkg/domain"
	"github.com/stretchr/testify/require"
)

// SetupTestRepo creates a temporary directory and initializes a Loam repository in it.
// It returns the absolute path to the temp dir and the initialized repository.
// It fails the test immediately on error.
func SetupTestRepo(t *testing.T, opts ...loam.Option) (string, core.Repository) {
	t.Helper()

	tmpDir := t.TempDir()

	absPath, err := filepath.Abs(tmpDir)
	require.NoError(t, err, "Failed to get absolute path for temp dir")

	repo, err := loam.Init(absPath, opts...)
	require.NoError(t, err, "Failed to init loam repo")

	return absPath, repo
}

// LogBuffer is a concurrency-safe log sink for asserting on warnings.
type LogBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *LogBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

// String returns everything logged so far.
func (b *LogBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// Count returns how many lines contain substr.
func (b *LogBuffer) Count(substr string) int {
	n := 0
	for _, line := range strings.Split(b.String(), "\n") {
		if strings.Contains(line, substr) {
			n++
		}
	}
	return n
}

// Warnings returns the number of WARN lines.
func (b *LogBuffer) Warnings() int {
	return b.Count("level=WARN")
}

// CaptureLogger returns a debug-level logger writing into a LogBuffer.
func CaptureLogger() (*slog.Logger, *LogBuffer) {
	buf := &LogBuffer{}
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug})), buf
}

// SampleWorld returns a small British Isles centred world.
//
//	Highlands
//	    |
//	Glasgow - Edinburgh ~ATLANTIC~ Iceland
//	              |
//	             York
//	              |
//	           London - Dover ~CHANNEL~ Calais
//	                                      |
//	                                    Paris -> (Marseille, undefined)
//
// Marrakesh and Sargasso are unreachable from the seeds.
func SampleWorld() *domain.WorldData {
	def := func(c domain.Climate, b domain.Biome) domain.AreaDefinition {
		return domain.AreaDefinition{Climate: c, Biome: b}
	}
	return &domain.WorldData{
		Geography: domain.Geography{
			"Europe": {
				"Scotland": {
					"Edinburgh": def(domain.ClimateTemperate, domain.BiomeGrassland),
					"Glasgow":   def(domain.ClimateTemperate, domain.BiomeUrban),
					"Highlands": def(domain.ClimateCold, domain.BiomeTundra),
				},
				"England": {
					"York":   def(domain.ClimateTemperate, domain.BiomeFarmland),
					"London": def(domain.ClimateTemperate, domain.BiomeUrban),
					"Dover":  def(domain.ClimateTemperate, domain.BiomeBeach),
				},
				"France": {
					"Calais": def(domain.ClimateTemperate, domain.BiomeGrassland),
					"Paris":  def(domain.ClimateTemperate, domain.BiomeUrban),
				},
				"Nordic": {
					"Iceland": def(domain.ClimateCold, domain.BiomeTundra),
				},
			},
			"Africa": {
				"Maghreb": {
					"Marrakesh": def(domain.ClimateArid, domain.BiomeDesert),
				},
			},
			"Atlantic": {
				"Open Ocean": {
					"Sargasso": def(domain.ClimateTropical, domain.BiomeOcean),
				},
			},
		},
		Adjacency: domain.Adjacency{
			"Edinburgh": {domain.North: "ATLANTIC_SOUTH_NORTH", domain.South: "York", domain.West: "Glasgow"},
			"Glasgow":   {domain.North: "Highlands", domain.East: "Edinburgh"},
			"Highlands": {domain.South: "Glasgow"},
			"York":      {domain.North: "Edinburgh", domain.South: "London"},
			"London":    {domain.North: "York", domain.East: "Dover"},
			"Dover":     {domain.West: "London", domain.East: "CHANNEL_TO_CALAIS"},
			"Calais":    {domain.West: "CHANNEL_FROM_CALAIS", domain.South: "Paris"},
			"Paris":     {domain.North: "Calais", domain.South: "Marseille"},
			"Iceland":   {domain.South: "ATLANTIC_NORTH_SOUTH"},
			"Sargasso":  {},
		},
		Sequences: map[string]domain.LiminalSequence{
			"ATLANTIC_SOUTH_NORTH": {
				Key:         "ATLANTIC_SOUTH_NORTH",
				Destination: "Iceland",
				Origin:      "Edinburgh",
				Steps:       []domain.Archetype{"COASTAL_WATERS", "OPEN_OCEAN", "STORM_BELT", "VOLCANIC_SHORE"},
			},
			"CHANNEL_TO_CALAIS": {
				Key:         "CHANNEL_TO_CALAIS",
				Destination: "Calais",
				Origin:      "Dover",
				Steps:       []domain.Archetype{"WHITE_CLIFFS", "STRAIT"},
			},
		},
		Seeds: []domain.Seed{
			{Name: "Edinburgh", X: 4, Y: 2},
			{Name: "Paris", X: 7, Y: 9},
		},
	}
}
