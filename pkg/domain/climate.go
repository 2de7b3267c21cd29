package domain

import "strings"

// Climate is the coarse classification that drives transition blending.
type Climate string

const (
	ClimateCold      Climate = "COLD"
	ClimateTemperate Climate = "TEMPERATE"
	ClimateTropical  Climate = "TROPICAL"
	ClimateArid      Climate = "ARID"
)

// Climates lists every known climate.
var Climates = []Climate{ClimateCold, ClimateTemperate, ClimateTropical, ClimateArid}

// Valid reports whether c is a known climate.
func (c Climate) Valid() bool {
	switch c {
	case ClimateCold, ClimateTemperate, ClimateTropical, ClimateArid:
		return true
	}
	return false
}

// ParseClimate normalizes case. Unknown values are returned as-is and fail Valid.
func ParseClimate(s string) Climate {
	return Climate(strings.ToUpper(strings.TrimSpace(s)))
}

// Biome is the fine-grained terrain category of a tile.
type Biome string

const (
	BiomeGrassland  Biome = "GRASSLAND"
	BiomePrairie    Biome = "PRAIRIE"
	BiomeMeadow     Biome = "MEADOW"
	BiomeSteppe     Biome = "STEPPE"
	BiomeForest     Biome = "FOREST"
	BiomeTaiga      Biome = "TAIGA"
	BiomeTundra     Biome = "TUNDRA"
	BiomeSnow       Biome = "SNOW"
	BiomeSavanna    Biome = "SAVANNA"
	BiomeJungle     Biome = "JUNGLE"
	BiomeRainforest Biome = "RAINFOREST"
	BiomeMarsh      Biome = "MARSH"
	BiomeSwamp      Biome = "SWAMP"
	BiomeDesert     Biome = "DESERT"
	BiomeScrubland  Biome = "SCRUBLAND"
	BiomeBadlands   Biome = "BADLANDS"

	// Fixed-purpose biomes. These never transition.
	BiomeOcean    Biome = "OCEAN"
	BiomeLake     Biome = "LAKE"
	BiomeRiver    Biome = "RIVER"
	BiomeBeach    Biome = "BEACH"
	BiomeUrban    Biome = "URBAN"
	BiomeFarmland Biome = "FARMLAND"
	BiomeRoad     Biome = "ROAD"
	BiomeMountain Biome = "MOUNTAIN"
	BiomeGlacier  Biome = "GLACIER"
)

// Biomes is the complete enumeration.
var Biomes = []Biome{
	BiomeGrassland, BiomePrairie, BiomeMeadow, BiomeSteppe, BiomeForest, BiomeTaiga,
	BiomeTundra, BiomeSnow, BiomeSavanna, BiomeJungle, BiomeRainforest, BiomeMarsh,
	BiomeSwamp, BiomeDesert, BiomeScrubland, BiomeBadlands,
	BiomeOcean, BiomeLake, BiomeRiver, BiomeBeach, BiomeUrban, BiomeFarmland,
	BiomeRoad, BiomeMountain, BiomeGlacier,
}

var knownBiomes = func() map[Biome]struct{} {
	m := make(map[Biome]struct{}, len(Biomes))
	for _, b := range Biomes {
		m[b] = struct{}{}
	}
	return m
}()

// Valid reports whether b belongs to the known enumeration.
func (b Biome) Valid() bool {
	_, ok := knownBiomes[b]
	return ok
}

// ParseBiome normalizes case. Unknown values are returned as-is and fail Valid.
func ParseBiome(s string) Biome {
	return Biome(strings.ToUpper(strings.TrimSpace(s)))
}
