package dsl

import "github.com/aretw0/meridian/pkg/domain"

// AreaBuilder provides a fluent API for configuring an area.
type AreaBuilder struct {
	name     string
	zone     string
	region   string
	def      domain.AreaDefinition
	edges    domain.Edges
	isolated bool
	builder  *Builder
}

// In places the area in a zone and region.
func (a *AreaBuilder) In(zone, region string) *AreaBuilder {
	a.zone = zone
	a.region = region
	return a
}

// Climate sets the area's climate.
func (a *AreaBuilder) Climate(c domain.Climate) *AreaBuilder {
	a.def.Climate = c
	return a
}

// Biome sets the area's dominant biome.
func (a *AreaBuilder) Biome(b domain.Biome) *AreaBuilder {
	a.def.Biome = b
	return a
}

// Since records the first year the area is available to external pickers.
func (a *AreaBuilder) Since(year int) *AreaBuilder {
	a.def.MinYear = year
	return a
}

// Describe sets free text shown on area cards.
func (a *AreaBuilder) Describe(text string) *AreaBuilder {
	a.def.Description = text
	return a
}

// Tag appends tags.
func (a *AreaBuilder) Tag(tags ...string) *AreaBuilder {
	a.def.Tags = append(a.def.Tags, tags...)
	return a
}

// Edge points dir at an area name or a liminal sequence key.
// An empty target declares an explicit world edge.
func (a *AreaBuilder) Edge(dir domain.Direction, target string) *AreaBuilder {
	a.isolated = false
	a.edges[dir] = target
	return a
}

// Link adds dir to target and the opposite edge back, declaring target if
// needed.
func (a *AreaBuilder) Link(dir domain.Direction, target string) *AreaBuilder {
	a.Edge(dir, target)
	a.builder.Area(target).Edge(dir.Opposite(), a.name)
	return a
}

func (a *AreaBuilder) North(target string) *AreaBuilder { return a.Edge(domain.North, target) }
func (a *AreaBuilder) South(target string) *AreaBuilder { return a.Edge(domain.South, target) }
func (a *AreaBuilder) East(target string) *AreaBuilder  { return a.Edge(domain.East, target) }
func (a *AreaBuilder) West(target string) *AreaBuilder  { return a.Edge(domain.West, target) }

// Isolated drops the adjacency record entirely, so navigation from this
// area falls back to random exploration.
func (a *AreaBuilder) Isolated() *AreaBuilder {
	a.isolated = true
	a.edges = make(domain.Edges)
	return a
}

// Seed anchors this area for layout.
func (a *AreaBuilder) Seed(x, y int) *AreaBuilder {
	a.builder.Seed(a.name, x, y)
	return a
}

// Area switches to another area, for chaining whole worlds in one expression.
func (a *AreaBuilder) Area(name string) *AreaBuilder {
	return a.builder.Area(name)
}

// Name returns the area name.
func (a *AreaBuilder) Name() string {
	return a.name
}
