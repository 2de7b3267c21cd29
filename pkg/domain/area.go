package domain

import "sort"

// Area is a uniquely named place in the world graph.
type Area struct {
	Name        string   `json:"name" yaml:"name"`
	Region      string   `json:"region" yaml:"region"`
	Zone        string   `json:"zone" yaml:"zone"`
	Climate     Climate  `json:"climate" yaml:"climate"`
	Biome       Biome    `json:"biome" yaml:"biome"`
	MinYear     int      `json:"min_year,omitempty" yaml:"min_year,omitempty"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	Tags        []string `json:"tags,omitempty" yaml:"tags,omitempty"`
}

// AreaDefinition is the geographic metadata of a single area as authored.
// MinYear is carried through for external pickers; nothing here gates on it.
type AreaDefinition struct {
	Climate     Climate  `json:"climate" yaml:"climate"`
	Biome       Biome    `json:"biome" yaml:"biome"`
	MinYear     int      `json:"min_year,omitempty" yaml:"min_year,omitempty"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	Tags        []string `json:"tags,omitempty" yaml:"tags,omitempty"`
}

// Geography is zone -> region -> area name -> definition.
type Geography map[string]map[string]map[string]AreaDefinition

// Edges maps a direction to its target: an area name or a liminal sequence key.
// A missing or empty entry is a legitimate world edge.
type Edges map[Direction]string

// Adjacency is the authored directed graph: area name -> edges.
type Adjacency map[string]Edges

// Seed anchors BFS layout at an approximate real-world position.
type Seed struct {
	Name string `json:"name" yaml:"name"`
	X    int    `json:"x" yaml:"x"`
	Y    int    `json:"y" yaml:"y"`
}

// WorldData is everything a loader supplies.
type WorldData struct {
	Geography Geography                  `json:"geography" yaml:"geography"`
	Adjacency Adjacency                  `json:"adjacency" yaml:"adjacency"`
	Sequences map[string]LiminalSequence `json:"sequences" yaml:"sequences"`
	Seeds     []Seed                     `json:"seeds,omitempty" yaml:"seeds,omitempty"`
}

// Names returns the areas that have an adjacency record, sorted.
func (a Adjacency) Names() []string {
	out := make([]string, 0, len(a))
	for name := range a {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
