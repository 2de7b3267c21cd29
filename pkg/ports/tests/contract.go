package tests

import (
	"context"
	"testing"

	"github.com/aretw0/meridian/pkg/domain"
	"github.com/aretw0/meridian/pkg/ports"
)

// WorldLoaderContractTest is a reusable test suite that verifies if an adapter
// complies with ports.WorldLoader. want is the world the adapter was set up with.
func WorldLoaderContractTest(t *testing.T, loader ports.WorldLoader, want *domain.WorldData) {
	t.Helper()
	ctx := context.Background()

	got, err := loader.Load(ctx)
	if err != nil {
		t.Fatalf("unexpected error loading world: %v", err)
	}

	t.Run("Geography", func(t *testing.T) {
		for zone, regions := range want.Geography {
			for region, areas := range regions {
				for name, def := range areas {
					gotDef, ok := got.Geography[zone][region][name]
					if !ok {
						t.Errorf("area %s/%s/%s missing", zone, region, name)
						continue
					}
					if gotDef.Climate != def.Climate || gotDef.Biome != def.Biome {
						t.Errorf("area %s: got %s/%s, want %s/%s", name, gotDef.Climate, gotDef.Biome, def.Climate, def.Biome)
					}
				}
			}
		}
	})

	t.Run("Adjacency", func(t *testing.T) {
		if len(got.Adjacency) != len(want.Adjacency) {
			t.Errorf("expected %d adjacency records, got %d", len(want.Adjacency), len(got.Adjacency))
		}
		for name, edges := range want.Adjacency {
			for dir, target := range edges {
				if got.Adjacency[name][dir] != target {
					t.Errorf("edge %s %s: got %q, want %q", name, dir, got.Adjacency[name][dir], target)
				}
			}
		}
	})

	t.Run("Sequences", func(t *testing.T) {
		for key, seq := range want.Sequences {
			g, ok := got.Sequences[key]
			if !ok {
				t.Errorf("sequence %s missing", key)
				continue
			}
			if g.Destination != seq.Destination || g.Origin != seq.Origin {
				t.Errorf("sequence %s: got %s<-%s, want %s<-%s", key, g.Destination, g.Origin, seq.Destination, seq.Origin)
			}
			if len(g.Steps) != len(seq.Steps) {
				t.Errorf("sequence %s: got %d steps, want %d", key, len(g.Steps), len(seq.Steps))
				continue
			}
			for i := range seq.Steps {
				if g.Steps[i] != seq.Steps[i] {
					t.Errorf("sequence %s step %d: got %s, want %s", key, i, g.Steps[i], seq.Steps[i])
				}
			}
		}
	})

	t.Run("Seeds", func(t *testing.T) {
		if len(got.Seeds) != len(want.Seeds) {
			t.Fatalf("expected %d seeds, got %d", len(want.Seeds), len(got.Seeds))
		}
		for i := range want.Seeds {
			if got.Seeds[i] != want.Seeds[i] {
				t.Errorf("seed %d: got %+v, want %+v", i, got.Seeds[i], want.Seeds[i])
			}
		}
	})
}
