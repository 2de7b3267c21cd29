/*
Package dsl provides a Go DSL for programmatically constructing Meridian worlds.

It lets developers describe areas, edges and liminal sequences with a fluent
builder instead of YAML or markdown files. This is particularly useful for
procedurally generated worlds, unit testing, and leveraging IDE
autocompletion/type-checking.

Example usage:

	b := dsl.New()

	b.Area("London").In("Europe", "England").
		Climate(domain.ClimateTemperate).Biome(domain.BiomeUrban).
		Seed(0, 0).
		North("York").
		South("CHANNEL_CROSSING")

	b.Area("York").In("Europe", "England").Biome(domain.BiomeFarmland).
		South("London")

	b.Area("Calais").In("Europe", "France").Biome(domain.BiomeBeach)

	b.Sequence("CHANNEL_CROSSING").
		From("London").To("Calais").
		Steps("WHITE_CLIFFS", "STRAIT")

	// The result can be used as a ports.WorldLoader
	loader, err := b.Build()
	// ... pass loader to meridian.New(...)
*/
package dsl
