package graph

import (
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/aretw0/meridian/pkg/domain"
	"github.com/aretw0/meridian/pkg/world"
)

// GraphOverlay contains dynamic state data to visualize on the graph.
type GraphOverlay struct {
	Seeds        []string
	VisitedAreas []string
	CurrentArea  string
}

// GenerateMermaid produces a Mermaid flowchart of the adjacency graph.
// Areas are grouped into one subgraph per region. It applies semantic styling:
// - Seed: ((Circle))
// - Ocean: [(Cylinder)]
// - Default: [Rectangle]
// Liminal edges are dashed and labelled with the sequence key. Edges whose
// key resolves to nothing point at a hexagon marked with '?'.
func GenerateMermaid(g *world.Graph, overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	seeds := make(map[string]bool)
	if overlay != nil {
		for _, s := range overlay.Seeds {
			seeds[s] = true
		}
	}

	// Group by zone/region, both sorted.
	groups := make(map[string][]domain.Area)
	for _, a := range g.Areas() {
		key := a.Zone + " / " + a.Region
		groups[key] = append(groups[key], a)
	}
	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		fmt.Fprintf(&sb, "    subgraph %s[\"%s\"]\n", sanitizeMermaidID("region_"+k), escape(k))
		for _, a := range groups[k] {
			opener, closer := "[", "]"
			switch {
			case seeds[a.Name]:
				opener, closer = "((", "))"
			case a.Biome == domain.BiomeOcean:
				opener, closer = "[(", ")]"
			}
			fmt.Fprintf(&sb, "        %s%s\"%s\"%s\n", sanitizeMermaidID(a.Name), opener, escape(a.Name), closer)
		}
		sb.WriteString("    end\n")
	}

	missing := make(map[string]bool)
	for _, name := range g.AdjacencyNames() {
		from := sanitizeMermaidID(name)
		for _, dir := range domain.Directions {
			res := g.Edge(name, dir)
			switch res.Kind {
			case domain.EdgeAdjacent:
				fmt.Fprintf(&sb, "    %s -- %s --> %s\n", from, dir, sanitizeMermaidID(res.Area.Name))
			case domain.EdgeLiminal:
				label := fmt.Sprintf("%s %s (%d)", dir, escape(res.Target), len(res.Sequence.Steps))
				fmt.Fprintf(&sb, "    %s -. \"%s\" .-> %s\n", from, label, sanitizeMermaidID(res.Sequence.Destination))
			default:
				if res.Reason != domain.ReasonUnresolved {
					continue
				}
				to := sanitizeMermaidID("missing_" + res.Target)
				if !missing[to] {
					missing[to] = true
					fmt.Fprintf(&sb, "    %s{{\"%s ?\"}}\n", to, escape(res.Target))
				}
				fmt.Fprintf(&sb, "    %s -- %s --> %s\n", from, dir, to)
			}
		}
	}

	if len(missing) > 0 {
		sb.WriteString("    classDef missing fill:#fee2e2,stroke:#b91c1c,stroke-dasharray:4,color:#000;\n")
		names := make([]string, 0, len(missing))
		for id := range missing {
			names = append(names, id)
		}
		sort.Strings(names)
		fmt.Fprintf(&sb, "    class %s missing;\n", strings.Join(names, ","))
	}

	// Apply Overlay Styles
	if overlay != nil && (len(overlay.VisitedAreas) > 0 || overlay.CurrentArea != "") {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high-contrast regardless of theme
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		visitedSet := make(map[string]bool)
		for _, id := range overlay.VisitedAreas {
			safeID := sanitizeMermaidID(id)
			if !visitedSet[safeID] && safeID != "" {
				visitedSet[safeID] = true
				fmt.Fprintf(&sb, "    class %s visited;\n", safeID)
			}
		}

		if overlay.CurrentArea != "" {
			fmt.Fprintf(&sb, "    class %s current;\n", sanitizeMermaidID(overlay.CurrentArea))
		}
	}

	return sb.String()
}

func sanitizeMermaidID(id string) string {
	return strings.Map(func(r rune) rune {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			return r
		}
		return '_'
	}, id)
}

func escape(s string) string {
	return strings.ReplaceAll(s, "\"", "'")
}
