package loam

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"unicode"

	"github.com/aretw0/loam"
	"github.com/aretw0/loam/pkg/core"
	"github.com/aretw0/meridian/pkg/domain"
	"gopkg.in/yaml.v3"
)

// areaFrontmatter mirrors AreaMetadata for writing. Edges is an interface so
// an empty record survives as "edges: {}" while a missing one is omitted.
type areaFrontmatter struct {
	Name    string        `yaml:"name"`
	Zone    string        `yaml:"zone"`
	Region  string        `yaml:"region"`
	Climate string        `yaml:"climate"`
	Biome   string        `yaml:"biome"`
	MinYear int           `yaml:"min_year,omitempty"`
	Tags    []string      `yaml:"tags,omitempty"`
	Edges   any           `yaml:"edges,omitempty"`
	Seed    *SeedMetadata `yaml:"seed,omitempty"`
}

type sequenceFrontmatter struct {
	Kind        string   `yaml:"kind"`
	Name        string   `yaml:"name"`
	Destination string   `yaml:"destination"`
	Origin      string   `yaml:"origin_area,omitempty"`
	Steps       []string `yaml:"steps"`
}

// Export writes data into dir as one markdown document per area and one per
// authored liminal sequence, in the shape Open reads back. Derived reverse
// sequences are not written. It returns the number of documents saved.
func Export(ctx context.Context, dir string, data *domain.WorldData) (int, error) {
	absPath, err := filepath.Abs(dir)
	if err != nil {
		return 0, fmt.Errorf("failed to resolve world directory: %w", err)
	}
	repo, err := loam.Init(absPath, loam.WithVersioning(false))
	if err != nil {
		return 0, fmt.Errorf("failed to init world directory: %w", err)
	}

	seeds := make(map[string]domain.Seed, len(data.Seeds))
	for _, s := range data.Seeds {
		seeds[s.Name] = s
	}

	ids := map[string]bool{}
	saved := 0

	for _, zone := range sortedKeys(data.Geography) {
		for _, region := range sortedKeys(data.Geography[zone]) {
			for _, name := range sortedKeys(data.Geography[zone][region]) {
				def := data.Geography[zone][region][name]
				fm := areaFrontmatter{
					Name:    name,
					Zone:    zone,
					Region:  region,
					Climate: string(def.Climate),
					Biome:   string(def.Biome),
					MinYear: def.MinYear,
					Tags:    def.Tags,
				}
				if edges, ok := data.Adjacency[name]; ok {
					raw := make(map[string]string, len(edges))
					for dir, target := range edges {
						raw[string(dir)] = target
					}
					fm.Edges = raw
				}
				if s, ok := seeds[name]; ok {
					fm.Seed = &SeedMetadata{X: s.X, Y: s.Y}
				}
				if err := save(ctx, repo, uniqueID(ids, slug(name)), fm, def.Description); err != nil {
					return saved, fmt.Errorf("area %s: %w", name, err)
				}
				saved++
			}
		}
	}

	for _, key := range sortedKeys(data.Sequences) {
		seq := data.Sequences[key]
		if seq.Derived {
			continue
		}
		steps := make([]string, len(seq.Steps))
		for i, s := range seq.Steps {
			steps[i] = string(s)
		}
		fm := sequenceFrontmatter{
			Kind:        kindSequence,
			Name:        key,
			Destination: seq.Destination,
			Origin:      seq.Origin,
			Steps:       steps,
		}
		if err := save(ctx, repo, uniqueID(ids, "seq-"+slug(key)), fm, ""); err != nil {
			return saved, fmt.Errorf("sequence %s: %w", key, err)
		}
		saved++
	}
	return saved, nil
}

func save(ctx context.Context, repo core.Repository, id string, frontmatter any, body string) error {
	raw, err := yaml.Marshal(frontmatter)
	if err != nil {
		return fmt.Errorf("failed to encode frontmatter: %w", err)
	}
	content := "---\n" + string(raw) + "---\n" + body
	if body != "" {
		content += "\n"
	}
	return repo.Save(ctx, core.Document{ID: id + ".md", Content: content})
}

// slug turns "Open Ocean" into "open-ocean".
func slug(name string) string {
	var sb strings.Builder
	dash := false
	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			sb.WriteRune(r)
			dash = false
			continue
		}
		if !dash && sb.Len() > 0 {
			sb.WriteByte('-')
			dash = true
		}
	}
	out := strings.TrimSuffix(sb.String(), "-")
	if out == "" {
		return "area"
	}
	return out
}

func uniqueID(seen map[string]bool, id string) string {
	out := id
	for n := 2; seen[out]; n++ {
		out = fmt.Sprintf("%s-%d", id, n)
	}
	seen[out] = true
	return out
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
