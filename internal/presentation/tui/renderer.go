package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/meridian/pkg/domain"
	"github.com/charmbracelet/glamour"
)

// NewRenderer returns a function that renders markdown using glamour, wrapped
// to width columns.
func NewRenderer(width int) func(string) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(), // Automatically detect light/dark background
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return func(markdown string) (string, error) { return markdown, nil }
	}

	return func(markdown string) (string, error) {
		return r.Render(markdown)
	}
}

// AreaCard is the markdown summary of an area shown by navigate.
func AreaCard(a domain.Area) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", a.Name)
	fmt.Fprintf(&sb, "*%s, %s*\n\n", a.Region, a.Zone)
	fmt.Fprintf(&sb, "| Climate | Biome |\n|---|---|\n| %s | %s |\n\n", a.Climate, a.Biome)
	if a.MinYear != 0 {
		fmt.Fprintf(&sb, "Available from year %d.\n\n", a.MinYear)
	}
	if a.Description != "" {
		sb.WriteString(a.Description)
		sb.WriteString("\n\n")
	}
	if len(a.Tags) > 0 {
		fmt.Fprintf(&sb, "Tags: `%s`\n", strings.Join(a.Tags, "` `"))
	}
	return sb.String()
}

// NavigationCard is the markdown summary of a move result.
func NavigationCard(from string, dir domain.Direction, res domain.NavigationResult) string {
	var sb strings.Builder
	switch res.Kind {
	case domain.NavAdjacent:
		fmt.Fprintf(&sb, "**%s** → %s → **%s**\n\n", from, dir.Name(), res.Area.Name)
		sb.WriteString(AreaCard(*res.Area))
	case domain.NavLiminal:
		fmt.Fprintf(&sb, "**%s** → %s → *%s* → **%s**\n\n", from, dir.Name(), res.SequenceKey, res.Destination)
		sb.WriteString("## Crossing\n\n")
		for i, step := range res.Sequence.Steps {
			fmt.Fprintf(&sb, "%d. %s\n", i+1, step)
		}
	default:
		fmt.Fprintf(&sb, "**%s** → %s → *random exploration* (`%s`)\n", from, dir.Name(), res.Reason)
	}
	return sb.String()
}
