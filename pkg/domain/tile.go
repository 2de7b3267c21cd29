package domain

// Tile is a single cell of a rendered map.
type Tile struct {
	X     int   `json:"x"`
	Y     int   `json:"y"`
	Biome Biome `json:"biome"`
}

// TileMap is one rendered area map. Tiles is indexed [y][x].
type TileMap struct {
	Area    string   `json:"area,omitempty"`
	Climate Climate  `json:"climate"`
	Width   int      `json:"width"`
	Height  int      `json:"height"`
	Tiles   [][]Tile `json:"tiles"`
}

// NewTileMap fills a width x height map with a single biome.
func NewTileMap(climate Climate, width, height int, fill Biome) *TileMap {
	m := &TileMap{Climate: climate, Width: width, Height: height}
	m.Tiles = make([][]Tile, height)
	for y := 0; y < height; y++ {
		row := make([]Tile, width)
		for x := 0; x < width; x++ {
			row[x] = Tile{X: x, Y: y, Biome: fill}
		}
		m.Tiles[y] = row
	}
	return m
}

// TransitionZone records how one tile was rewritten by a climate pass.
type TransitionZone struct {
	X                int       `json:"x"`
	Y                int       `json:"y"`
	Direction        Direction `json:"direction"`
	DistanceFromEdge int       `json:"distance_from_edge"`
	NeighborClimate  Climate   `json:"neighbor_climate"`
	Strength         float64   `json:"strength"`
	From             Biome     `json:"from"`
	Biome            Biome     `json:"biome"`
}

// BlendRequest describes a climate pass. When Area is set, Climate and any
// missing Neighbors are taken from the world graph. When Tiles is nil a
// Width x Height map filled with Fill is generated.
type BlendRequest struct {
	Area      string                `json:"area,omitempty"`
	Climate   Climate               `json:"climate,omitempty"`
	Width     int                   `json:"width,omitempty"`
	Height    int                   `json:"height,omitempty"`
	Fill      Biome                 `json:"fill,omitempty"`
	Tiles     [][]Biome             `json:"tiles,omitempty"`
	Neighbors map[Direction]Climate `json:"neighbors,omitempty"`
}

// BlendResult is the mutated map and the tiles that changed.
type BlendResult struct {
	Map   *TileMap         `json:"map"`
	Zones []TransitionZone `json:"zones"`
}
