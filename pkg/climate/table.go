package climate

import "github.com/aretw0/meridian/pkg/domain"

// Strength thresholds for each substitution tier.
const (
	StrongThreshold   = 0.6
	ModerateThreshold = 0.3
	WeakThreshold     = 0.1
)

// Substitution holds the replacement biome per tier. An empty tier means the
// tile stays as it is at that strength.
type Substitution struct {
	Strong   domain.Biome
	Moderate domain.Biome
	Weak     domain.Biome
}

// Pick returns the biome for strength, or false when the tier is empty.
func (s Substitution) Pick(strength float64) (domain.Biome, bool) {
	var b domain.Biome
	switch {
	case strength > StrongThreshold:
		b = s.Strong
	case strength > ModerateThreshold:
		b = s.Moderate
	case strength > WeakThreshold:
		b = s.Weak
	}
	return b, b != ""
}

// Key addresses one entry of the table.
type Key struct {
	From  domain.Climate
	To    domain.Climate
	Biome domain.Biome
}

// Table is the sparse climate x climate x biome substitution map.
type Table map[Key]Substitution

// Lookup returns the substitution for a triple. Missing entries are identity.
func (t Table) Lookup(from, to domain.Climate, b domain.Biome, strength float64) (domain.Biome, bool) {
	if from == to {
		return b, false
	}
	sub, ok := t[Key{From: from, To: to, Biome: b}]
	if !ok {
		return b, false
	}
	return sub.Pick(strength)
}

var transitionable = map[domain.Biome]bool{
	domain.BiomeGrassland:  true,
	domain.BiomePrairie:    true,
	domain.BiomeMeadow:     true,
	domain.BiomeSteppe:     true,
	domain.BiomeForest:     true,
	domain.BiomeTaiga:      true,
	domain.BiomeTundra:     true,
	domain.BiomeSnow:       true,
	domain.BiomeSavanna:    true,
	domain.BiomeJungle:     true,
	domain.BiomeRainforest: true,
	domain.BiomeMarsh:      true,
	domain.BiomeSwamp:      true,
	domain.BiomeDesert:     true,
	domain.BiomeScrubland:  true,
	domain.BiomeBadlands:   true,
}

// Transitionable reports whether b may be rewritten at all. Water, urban and
// other fixed-purpose biomes never change.
func Transitionable(b domain.Biome) bool {
	return transitionable[b]
}

// DefaultTable returns the built-in substitution families:
// COLD<->TEMPERATE, TEMPERATE<->TROPICAL and TEMPERATE<->ARID.
func DefaultTable() Table {
	const (
		cold      = domain.ClimateCold
		temperate = domain.ClimateTemperate
		tropical  = domain.ClimateTropical
		arid      = domain.ClimateArid
	)
	return Table{
		{cold, temperate, domain.BiomeTundra}:    {Strong: domain.BiomeGrassland, Moderate: domain.BiomeSteppe},
		{cold, temperate, domain.BiomeTaiga}:     {Strong: domain.BiomeForest},
		{cold, temperate, domain.BiomeGrassland}: {Strong: domain.BiomePrairie, Moderate: domain.BiomeMeadow},
		{cold, temperate, domain.BiomeSnow}:      {Strong: domain.BiomeTundra, Moderate: domain.BiomeTundra},

		{temperate, cold, domain.BiomeGrassland}: {Strong: domain.BiomeTundra, Moderate: domain.BiomeSteppe},
		{temperate, cold, domain.BiomeForest}:    {Strong: domain.BiomeTaiga, Moderate: domain.BiomeTaiga},
		{temperate, cold, domain.BiomePrairie}:   {Strong: domain.BiomeTundra, Moderate: domain.BiomeGrassland},
		{temperate, cold, domain.BiomeMeadow}:    {Strong: domain.BiomeTundra},

		{temperate, tropical, domain.BiomeGrassland}: {Strong: domain.BiomeSavanna, Moderate: domain.BiomeSavanna},
		{temperate, tropical, domain.BiomeForest}:    {Strong: domain.BiomeJungle, Moderate: domain.BiomeRainforest},
		{temperate, tropical, domain.BiomeMarsh}:     {Strong: domain.BiomeSwamp},

		{tropical, temperate, domain.BiomeJungle}:  {Strong: domain.BiomeForest, Moderate: domain.BiomeRainforest},
		{tropical, temperate, domain.BiomeSavanna}: {Strong: domain.BiomeGrassland, Moderate: domain.BiomePrairie},
		{tropical, temperate, domain.BiomeSwamp}:   {Strong: domain.BiomeMarsh},

		// the only entry with a weak tier
		{temperate, arid, domain.BiomeGrassland}: {Strong: domain.BiomeScrubland, Moderate: domain.BiomeSteppe, Weak: domain.BiomePrairie},
		{temperate, arid, domain.BiomeForest}:    {Strong: domain.BiomeScrubland, Moderate: domain.BiomeGrassland},
		{temperate, arid, domain.BiomePrairie}:   {Strong: domain.BiomeSteppe, Moderate: domain.BiomeSteppe},

		{arid, temperate, domain.BiomeDesert}:    {Strong: domain.BiomeSteppe, Moderate: domain.BiomeScrubland},
		{arid, temperate, domain.BiomeScrubland}: {Strong: domain.BiomeGrassland, Moderate: domain.BiomeSteppe},
		{arid, temperate, domain.BiomeBadlands}:  {Strong: domain.BiomeScrubland},
	}
}
