package loam

// AreaMetadata is the frontmatter of one document in a world directory.
// It uses "mapstructure" tags to match standard Frontmatter/YAML keys.
//
// A document describes either an area (the default) or, with kind: sequence,
// a standalone liminal corridor.
type AreaMetadata struct {
	Kind string `json:"kind,omitempty" mapstructure:"kind"`
	Name string `json:"name,omitempty" mapstructure:"name"`

	Zone    string   `json:"zone" mapstructure:"zone"`
	Region  string   `json:"region" mapstructure:"region"`
	Climate string   `json:"climate" mapstructure:"climate"`
	Biome   string   `json:"biome" mapstructure:"biome"`
	MinYear int      `json:"min_year,omitempty" mapstructure:"min_year"`
	Tags    []string `json:"tags,omitempty" mapstructure:"tags"`

	// Edges maps a direction (N, north, ...) to an area name or sequence key.
	Edges map[string]string `json:"edges,omitempty" mapstructure:"edges"`

	// Sequences are corridors leaving this area, keyed by sequence key.
	// A corridor with no origin_area is one-way.
	Sequences map[string]any `json:"sequences,omitempty" mapstructure:"sequences"`

	// Seed anchors this area in the layout.
	Seed *SeedMetadata `json:"seed,omitempty" mapstructure:"seed"`

	// Corridor fields, used when kind is "sequence".
	Destination string   `json:"destination,omitempty" mapstructure:"destination"`
	Origin      string   `json:"origin_area,omitempty" mapstructure:"origin_area"`
	Steps       []string `json:"steps,omitempty" mapstructure:"steps"`
}

// SeedMetadata is an approximate real-world grid position.
type SeedMetadata struct {
	X int `json:"x" mapstructure:"x"`
	Y int `json:"y" mapstructure:"y"`
}

// inlineSequence is the decoded shape of one entry under sequences.
type inlineSequence struct {
	Destination string   `mapstructure:"destination"`
	Origin      string   `mapstructure:"origin_area"`
	Steps       []string `mapstructure:"steps"`
}

const (
	kindArea     = "area"
	kindSequence = "sequence"
)
