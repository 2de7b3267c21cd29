package dsl

import (
	"fmt"
	"sort"

	"github.com/aretw0/meridian/pkg/adapters/memory"
	"github.com/aretw0/meridian/pkg/domain"
	"github.com/aretw0/meridian/pkg/registry"
)

// Default placement for areas declared without In.
const (
	DefaultZone   = "Unzoned"
	DefaultRegion = "Unassigned"
)

// Builder manages the world construction.
type Builder struct {
	areas     map[string]*AreaBuilder
	sequences map[string]*SequenceBuilder
	seeds     []domain.Seed
}

// New creates a new world builder.
func New() *Builder {
	return &Builder{
		areas:     make(map[string]*AreaBuilder),
		sequences: make(map[string]*SequenceBuilder),
	}
}

// Area creates a new area in the world.
// If the area already exists, it returns the existing builder.
func (b *Builder) Area(name string) *AreaBuilder {
	if ab, ok := b.areas[name]; ok {
		return ab
	}
	ab := &AreaBuilder{
		name:    name,
		zone:    DefaultZone,
		region:  DefaultRegion,
		def:     domain.AreaDefinition{Climate: domain.ClimateTemperate, Biome: domain.BiomeGrassland},
		edges:   make(domain.Edges),
		builder: b,
	}
	b.areas[name] = ab
	return ab
}

// Sequence creates a new liminal sequence.
// If the key already exists, it returns the existing builder.
func (b *Builder) Sequence(key string) *SequenceBuilder {
	if sb, ok := b.sequences[key]; ok {
		return sb
	}
	sb := &SequenceBuilder{seq: domain.LiminalSequence{Key: key}, builder: b}
	b.sequences[key] = sb
	return sb
}

// Seed anchors an already declared or future area at (x, y).
func (b *Builder) Seed(name string, x, y int) *Builder {
	for i, s := range b.seeds {
		if s.Name == name {
			b.seeds[i] = domain.Seed{Name: name, X: x, Y: y}
			return b
		}
	}
	b.seeds = append(b.seeds, domain.Seed{Name: name, X: x, Y: y})
	return b
}

// World assembles the WorldData. Every area gets an adjacency record, even an
// empty one, unless it was marked Isolated.
func (b *Builder) World() *domain.WorldData {
	out := &domain.WorldData{
		Geography: make(domain.Geography),
		Adjacency: make(domain.Adjacency),
		Sequences: make(map[string]domain.LiminalSequence, len(b.sequences)),
		Seeds:     append([]domain.Seed(nil), b.seeds...),
	}

	names := make([]string, 0, len(b.areas))
	for name := range b.areas {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		ab := b.areas[name]
		regions, ok := out.Geography[ab.zone]
		if !ok {
			regions = make(map[string]map[string]domain.AreaDefinition)
			out.Geography[ab.zone] = regions
		}
		areas, ok := regions[ab.region]
		if !ok {
			areas = make(map[string]domain.AreaDefinition)
			regions[ab.region] = areas
		}
		def := ab.def
		def.Tags = append([]string(nil), ab.def.Tags...)
		areas[name] = def

		if ab.isolated {
			continue
		}
		edges := make(domain.Edges, len(ab.edges))
		for dir, target := range ab.edges {
			edges[dir] = target
		}
		out.Adjacency[name] = edges
	}

	for key, sb := range b.sequences {
		out.Sequences[key] = sb.seq.Clone()
	}
	return out
}

// Build compiles the world into a memory Loader.
// Edges pointing at names that are neither an area nor a sequence are
// rejected here, since a builder has no reason to produce them. The reverse
// key of a sequence with an origin counts as a sequence.
func (b *Builder) Build() (*memory.Loader, error) {
	reverses := make(map[string]bool)
	for key, sb := range b.sequences {
		if sb.seq.Origin != "" {
			reverses[registry.ReverseKey(key)] = true
		}
	}
	for _, name := range sortedKeys(b.areas) {
		for _, dir := range domain.Directions {
			target, ok := b.areas[name].edges[dir]
			if !ok || target == "" {
				continue
			}
			_, isArea := b.areas[target]
			_, isSeq := b.sequences[target]
			if !isArea && !isSeq && !reverses[target] {
				return nil, fmt.Errorf("area %q %s edge: %w: %q", name, dir.Name(), domain.ErrAreaNotFound, target)
			}
		}
	}
	for _, key := range sortedKeys(b.sequences) {
		if b.sequences[key].seq.Destination == "" {
			return nil, fmt.Errorf("sequence %q has no destination", key)
		}
	}

	loader, err := memory.NewLoader(b.World())
	if err != nil {
		return nil, fmt.Errorf("failed to build memory loader: %w", err)
	}
	return loader, nil
}

func sortedKeys[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
