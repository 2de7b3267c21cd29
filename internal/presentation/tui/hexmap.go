package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/meridian/pkg/domain"
	"github.com/muesli/termenv"
)

var climateColors = map[domain.Climate]string{
	domain.ClimateCold:      "#93c5fd",
	domain.ClimateTemperate: "#86efac",
	domain.ClimateTropical:  "#fca5a5",
	domain.ClimateArid:      "#fcd34d",
}

const cellWidth = 4

// RenderLayout draws a layout as text. Odd columns sit half a row lower, so
// each hex row takes two text lines. Areas show their first three letters
// coloured by climate, oceans '≈≈≈' and liminal buffers '~~~'.
func RenderLayout(w io.Writer, l *domain.Layout) {
	if l == nil || len(l.Positions) == 0 {
		fmt.Fprintln(w, "(empty layout)")
		return
	}
	p := Profile(w)

	minX, maxX := l.Positions[0].X, l.Positions[0].X
	minY, maxY := l.Positions[0].Y, l.Positions[0].Y
	cells := make(map[[2]int]domain.HexPosition, len(l.Positions))
	for _, pos := range l.Positions {
		minX, maxX = min(minX, pos.X), max(maxX, pos.X)
		minY, maxY = min(minY, pos.Y), max(maxY, pos.Y)
		key := [2]int{pos.X, pos.Y}
		// areas win over buffers drawn on the same cell
		if prev, ok := cells[key]; ok && prev.Type != domain.PositionLiminal {
			continue
		}
		cells[key] = pos
	}

	for y := minY; y <= maxY; y++ {
		for half := 0; half < 2; half++ {
			var sb strings.Builder
			for x := minX; x <= maxX; x++ {
				if x&1 != half {
					sb.WriteString(strings.Repeat(" ", cellWidth))
					continue
				}
				pos, ok := cells[[2]int{x, y}]
				if !ok {
					sb.WriteString(" .  ")
					continue
				}
				sb.WriteString(renderCell(p, pos))
			}
			fmt.Fprintln(w, strings.TrimRight(sb.String(), " "))
		}
	}

	fmt.Fprintf(w, "\n%d areas, %d buffers, %d skipped, %d unplaceable, %d displaced\n",
		len(l.Areas()), l.BufferCount, len(l.Skipped), len(l.Unplaceable), l.Displaced)
}

func renderCell(p termenv.Profile, pos domain.HexPosition) string {
	switch pos.Type {
	case domain.PositionLiminal:
		return p.String("~~~").Foreground(p.Color("#67e8f9")).Faint().String() + " "
	case domain.PositionOcean:
		return p.String("≈≈≈").Foreground(p.Color("#3b82f6")).String() + " "
	}
	label := []rune(pos.Name)
	if len(label) > 3 {
		label = label[:3]
	}
	text := fmt.Sprintf("%-3s", string(label))
	return p.String(text).Foreground(p.Color(climateColors[pos.Climate])).Bold().String() + " "
}
