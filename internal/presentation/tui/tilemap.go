package tui

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/aretw0/meridian/pkg/domain"
)

type glyph struct {
	r     rune
	color string
}

var biomeGlyphs = map[domain.Biome]glyph{
	domain.BiomeGrassland:  {'"', "#4ade80"},
	domain.BiomePrairie:    {',', "#a3e635"},
	domain.BiomeMeadow:     {'\'', "#bef264"},
	domain.BiomeSteppe:     {'-', "#d9f99d"},
	domain.BiomeForest:     {'T', "#16a34a"},
	domain.BiomeTaiga:      {'A', "#0f766e"},
	domain.BiomeTundra:     {'_', "#cbd5e1"},
	domain.BiomeSnow:       {'*', "#f8fafc"},
	domain.BiomeSavanna:    {';', "#facc15"},
	domain.BiomeJungle:     {'&', "#15803d"},
	domain.BiomeRainforest: {'%', "#166534"},
	domain.BiomeMarsh:      {'w', "#65a30d"},
	domain.BiomeSwamp:      {'W', "#3f6212"},
	domain.BiomeDesert:     {'.', "#fde68a"},
	domain.BiomeScrubland:  {':', "#d6d3d1"},
	domain.BiomeBadlands:   {'x', "#b45309"},
	domain.BiomeOcean:      {'~', "#2563eb"},
	domain.BiomeLake:       {'o', "#60a5fa"},
	domain.BiomeRiver:      {'=', "#38bdf8"},
	domain.BiomeBeach:      {'b', "#fef3c7"},
	domain.BiomeUrban:      {'#', "#a1a1aa"},
	domain.BiomeFarmland:   {'+', "#ca8a04"},
	domain.BiomeRoad:       {'|', "#78716c"},
	domain.BiomeMountain:   {'^', "#a8a29e"},
	domain.BiomeGlacier:    {'@', "#e0f2fe"},
}

// Glyph returns the single character used for b, '?' when unknown.
func Glyph(b domain.Biome) rune {
	if g, ok := biomeGlyphs[b]; ok {
		return g.r
	}
	return '?'
}

// RenderTiles draws a tile map one character per tile followed by a legend of
// the biomes present.
func RenderTiles(w io.Writer, m *domain.TileMap) {
	if m == nil {
		return
	}
	p := Profile(w)
	seen := make(map[domain.Biome]int)

	for _, row := range m.Tiles {
		var sb strings.Builder
		for _, t := range row {
			seen[t.Biome]++
			g, ok := biomeGlyphs[t.Biome]
			if !ok {
				sb.WriteRune('?')
				continue
			}
			sb.WriteString(p.String(string(g.r)).Foreground(p.Color(g.color)).String())
		}
		fmt.Fprintln(w, sb.String())
	}

	biomes := make([]domain.Biome, 0, len(seen))
	for b := range seen {
		biomes = append(biomes, b)
	}
	sort.Slice(biomes, func(i, j int) bool { return biomes[i] < biomes[j] })

	fmt.Fprintln(w)
	for _, b := range biomes {
		fmt.Fprintf(w, "  %c %-10s %d\n", Glyph(b), b, seen[b])
	}
}
