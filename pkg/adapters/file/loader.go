package file

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/aretw0/meridian/pkg/domain"
	"gopkg.in/yaml.v3"
)

// Loader implements ports.WorldLoader over a single YAML document.
type Loader struct {
	Path   string
	logger *slog.Logger
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithLogger sets the logger for skipped entries.
func WithLogger(logger *slog.Logger) LoaderOption {
	return func(l *Loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// NewLoader creates a loader for the world file at path.
func NewLoader(path string, opts ...LoaderOption) *Loader {
	l := &Loader{Path: path, logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// document is the on-disk shape. Directions are accepted in any case and long
// form, so adjacency is decoded loosely and normalized.
type document struct {
	Geography domain.Geography                  `yaml:"geography"`
	Adjacency map[string]map[string]string      `yaml:"adjacency"`
	Sequences map[string]domain.LiminalSequence `yaml:"sequences"`
	Seeds     []domain.Seed                     `yaml:"seeds"`
}

// Load reads and decodes the world file.
func (l *Loader) Load(ctx context.Context) (*domain.WorldData, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	raw, err := os.ReadFile(l.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read world file: %w", err)
	}
	return Decode(raw, l.logger)
}

// Decode parses a YAML world document. Unknown fields are rejected.
func Decode(raw []byte, logger *slog.Logger) (*domain.WorldData, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)

	var doc document
	if err := dec.Decode(&doc); err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to decode world file: %w", err)
	}

	out := &domain.WorldData{
		Geography: doc.Geography,
		Adjacency: make(domain.Adjacency, len(doc.Adjacency)),
		Sequences: make(map[string]domain.LiminalSequence, len(doc.Sequences)),
		Seeds:     doc.Seeds,
	}
	if out.Geography == nil {
		out.Geography = domain.Geography{}
	}

	for area, edges := range doc.Adjacency {
		normalized := make(domain.Edges, len(edges))
		for rawDir, target := range edges {
			dir, err := domain.ParseDirection(rawDir)
			if err != nil {
				logger.Warn("ignoring edge with invalid direction", "area", area, "direction", rawDir)
				continue
			}
			normalized[dir] = target
		}
		out.Adjacency[area] = normalized
	}

	for key, seq := range doc.Sequences {
		if seq.Key == "" {
			seq.Key = key
		}
		out.Sequences[key] = seq
	}

	return out, nil
}

// Encode renders a world as YAML, the inverse of Decode.
func Encode(data *domain.WorldData) ([]byte, error) {
	doc := document{
		Geography: data.Geography,
		Adjacency: make(map[string]map[string]string, len(data.Adjacency)),
		Sequences: data.Sequences,
		Seeds:     data.Seeds,
	}
	for area, edges := range data.Adjacency {
		m := make(map[string]string, len(edges))
		for dir, target := range edges {
			m[string(dir)] = target
		}
		doc.Adjacency[area] = m
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("failed to encode world: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
