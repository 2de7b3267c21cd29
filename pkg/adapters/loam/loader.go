package loam

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aretw0/loam"
	"github.com/aretw0/meridian/pkg/domain"
	"github.com/mitchellh/mapstructure"
)

// Loader adapts a Loam repository of Markdown/YAML/JSON documents to the
// Meridian WorldLoader interface. Each document is one area; the body becomes
// the area description.
type Loader struct {
	Repo   *loam.TypedRepository[AreaMetadata]
	logger *slog.Logger
}

// Option configures a Loader.
type Option func(*Loader)

// WithLogger sets the logger for skipped documents.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// New creates a new Loam adapter.
func New(repo *loam.TypedRepository[AreaMetadata], opts ...Option) *Loader {
	l := &Loader{
		Repo:   repo,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Open initializes a read-only strict repository at dir and wraps it.
func Open(dir string, opts ...Option) (*Loader, error) {
	absPath, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve world directory: %w", err)
	}
	repo, err := loam.Init(absPath,
		loam.WithStrict(true),
		loam.WithReadOnly(true),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to open world directory: %w", err)
	}
	return New(loam.NewTypedRepository[AreaMetadata](repo), opts...), nil
}

// Load lists every document and assembles the world tables.
// Two documents resolving to the same area name is an error.
func (l *Loader) Load(ctx context.Context) (*domain.WorldData, error) {
	docs, err := l.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loam list failed: %w", err)
	}

	out := &domain.WorldData{
		Geography: domain.Geography{},
		Adjacency: domain.Adjacency{},
		Sequences: map[string]domain.LiminalSequence{},
	}
	seen := make(map[string]string)

	sort.Slice(docs, func(i, j int) bool { return docs[i].ID < docs[j].ID })

	for _, doc := range docs {
		meta := doc.Data
		name := meta.Name
		if name == "" {
			name = trimExtension(filepath.Base(doc.ID))
		}

		if strings.EqualFold(meta.Kind, kindSequence) {
			out.Sequences[name] = domain.LiminalSequence{
				Key:         name,
				Destination: meta.Destination,
				Origin:      meta.Origin,
				Steps:       toArchetypes(meta.Steps),
			}
			continue
		}
		if meta.Kind != "" && !strings.EqualFold(meta.Kind, kindArea) {
			l.logger.Warn("skipping document of unknown kind", "doc", doc.ID, "kind", meta.Kind)
			continue
		}

		if existing, ok := seen[name]; ok {
			return nil, fmt.Errorf("%w: %q is defined in both '%s' and '%s'", domain.ErrDuplicateArea, name, existing, doc.ID)
		}
		seen[name] = doc.ID

		if err := l.addArea(out, name, meta, doc.Content); err != nil {
			return nil, fmt.Errorf("document %s: %w", doc.ID, err)
		}
	}

	sort.Slice(out.Seeds, func(i, j int) bool { return out.Seeds[i].Name < out.Seeds[j].Name })
	return out, nil
}

func (l *Loader) addArea(out *domain.WorldData, name string, meta AreaMetadata, body string) error {
	zone, region := meta.Zone, meta.Region
	if zone == "" {
		zone = "Unzoned"
	}
	if region == "" {
		region = "Unassigned"
	}
	if out.Geography[zone] == nil {
		out.Geography[zone] = map[string]map[string]domain.AreaDefinition{}
	}
	if out.Geography[zone][region] == nil {
		out.Geography[zone][region] = map[string]domain.AreaDefinition{}
	}
	out.Geography[zone][region][name] = domain.AreaDefinition{
		Climate:     domain.ParseClimate(meta.Climate),
		Biome:       domain.ParseBiome(meta.Biome),
		MinYear:     meta.MinYear,
		Description: strings.TrimSpace(body),
		Tags:        meta.Tags,
	}

	if meta.Edges != nil {
		edges := make(domain.Edges, len(meta.Edges))
		for rawDir, target := range meta.Edges {
			dir, err := domain.ParseDirection(rawDir)
			if err != nil {
				l.logger.Warn("ignoring edge with invalid direction", "area", name, "direction", rawDir)
				continue
			}
			edges[dir] = target
		}
		out.Adjacency[name] = edges
	}

	for key, raw := range meta.Sequences {
		var inline inlineSequence
		if err := mapstructure.Decode(raw, &inline); err != nil {
			return fmt.Errorf("failed to decode inline sequence %s: %w", key, err)
		}
		// An empty origin_area keeps the corridor one-way.
		out.Sequences[key] = domain.LiminalSequence{
			Key:         key,
			Destination: inline.Destination,
			Origin:      inline.Origin,
			Steps:       toArchetypes(inline.Steps),
		}
	}

	if meta.Seed != nil {
		out.Seeds = append(out.Seeds, domain.Seed{Name: name, X: meta.Seed.X, Y: meta.Seed.Y})
	}
	return nil
}

// Watch reports the IDs of changed documents until ctx is done.
func (l *Loader) Watch(ctx context.Context) (<-chan string, error) {
	events, err := l.Repo.Watch(ctx, "**/*.{md,json,yaml,yml}")
	if err != nil {
		return nil, fmt.Errorf("failed to start loam watcher: %w", err)
	}

	ch := make(chan string, 1)

	go func() {
		defer close(ch)
		for {
			select {
			case <-ctx.Done():
				return
			case evt, ok := <-events:
				if !ok {
					return
				}
				select {
				case ch <- evt.ID:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return ch, nil
}

func toArchetypes(steps []string) []domain.Archetype {
	out := make([]domain.Archetype, len(steps))
	for i, s := range steps {
		out[i] = domain.Archetype(s)
	}
	return out
}

func trimExtension(id string) string {
	ext := filepath.Ext(id)
	if ext != "" {
		return filepath.ToSlash(strings.TrimSuffix(id, ext))
	}
	return filepath.ToSlash(id)
}
