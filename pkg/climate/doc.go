// Package climate blends tile biomes near the edges of a rendered map toward
// the climate of the neighboring area, so borders shift gradually instead of
// cutting abruptly.
//
// The substitution table is sparse: a (from, to, biome) triple that has no
// entry leaves the tile unchanged.
package climate
