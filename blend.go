package meridian

import (
	"fmt"

	"github.com/aretw0/meridian/pkg/domain"
)

// Blend runs a climate pass. When req.Area is set, the area's climate and
// biome fill the gaps in req and its adjacent areas supply any neighbor
// climates req does not name. Unknown biomes in supplied tiles pass through
// unchanged.
func (e *Engine) Blend(req domain.BlendRequest) (*domain.BlendResult, error) {
	neighbors := make(map[domain.Direction]domain.Climate, 4)

	if req.Area != "" {
		s := e.snapshot()
		a, ok := s.graph.Area(req.Area)
		if !ok {
			return nil, fmt.Errorf("%w: %q", domain.ErrAreaNotFound, req.Area)
		}
		if req.Climate == "" {
			req.Climate = a.Climate
		}
		if req.Fill == "" {
			req.Fill = a.Biome
		}
		for dir, c := range s.graph.NeighborClimates(req.Area) {
			neighbors[dir] = c
		}
	}

	for dir, c := range req.Neighbors {
		if !dir.Valid() {
			return nil, fmt.Errorf("%w: %q", domain.ErrInvalidDirection, dir)
		}
		c = domain.ParseClimate(string(c))
		if !c.Valid() {
			return nil, fmt.Errorf("unknown neighbor climate %q", c)
		}
		neighbors[dir] = c
	}

	req.Climate = domain.ParseClimate(string(req.Climate))
	if !req.Climate.Valid() {
		return nil, fmt.Errorf("unknown climate %q", req.Climate)
	}

	m, err := tileMap(req)
	if err != nil {
		return nil, err
	}

	zones := e.climate.Apply(m, neighbors)
	if e.metrics != nil {
		e.metrics.ObserveClimate(zones)
	}
	if zones == nil {
		zones = []domain.TransitionZone{}
	}
	return &domain.BlendResult{Map: m, Zones: zones}, nil
}

func tileMap(req domain.BlendRequest) (*domain.TileMap, error) {
	if len(req.Tiles) > 0 {
		height := len(req.Tiles)
		width := len(req.Tiles[0])
		if width == 0 || width > MaxMapSize || height > MaxMapSize {
			return nil, fmt.Errorf("tile map %dx%d outside 1..%d", width, height, MaxMapSize)
		}
		m := &domain.TileMap{Area: req.Area, Climate: req.Climate, Width: width, Height: height}
		m.Tiles = make([][]domain.Tile, height)
		for y, row := range req.Tiles {
			if len(row) != width {
				return nil, fmt.Errorf("tile row %d has %d tiles, want %d", y, len(row), width)
			}
			m.Tiles[y] = make([]domain.Tile, width)
			for x, b := range row {
				m.Tiles[y][x] = domain.Tile{X: x, Y: y, Biome: domain.ParseBiome(string(b))}
			}
		}
		return m, nil
	}

	width, height := req.Width, req.Height
	if width == 0 {
		width = DefaultMapSize
	}
	if height == 0 {
		height = DefaultMapSize
	}
	if width < 0 || height < 0 || width > MaxMapSize || height > MaxMapSize {
		return nil, fmt.Errorf("map size %dx%d outside 1..%d", width, height, MaxMapSize)
	}

	fill := domain.ParseBiome(string(req.Fill))
	if fill == "" {
		fill = domain.BiomeGrassland
	}
	if !fill.Valid() {
		return nil, fmt.Errorf("unknown biome %q", fill)
	}

	m := domain.NewTileMap(req.Climate, width, height, fill)
	m.Area = req.Area
	return m, nil
}
