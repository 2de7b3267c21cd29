package domain

// PositionType classifies a placed hex.
type PositionType string

const (
	PositionArea    PositionType = "area"
	PositionLiminal PositionType = "liminal-buffer"
	PositionOcean   PositionType = "ocean"
)

// HexPosition is a single placed cell of a layout.
// For liminal buffers Name is synthetic and Key holds the sequence key.
type HexPosition struct {
	Name    string       `json:"name"`
	X       int          `json:"x"`
	Y       int          `json:"y"`
	Type    PositionType `json:"type"`
	Region  string       `json:"region,omitempty"`
	Climate Climate      `json:"climate,omitempty"`
	Key     string       `json:"key,omitempty"`
}

// Layout is the output of one layout build.
type Layout struct {
	Positions []HexPosition `json:"positions"`

	// Skipped lists areas unreachable from every seed, sorted.
	Skipped []string `json:"skipped,omitempty"`
	// Unplaceable lists areas reached but left without a free cell.
	Unplaceable []string `json:"unplaceable,omitempty"`
	// BufferCount is the number of liminal buffers emitted.
	BufferCount int `json:"buffer_count"`
	// Displaced counts areas placed by collision search instead of at their target cell.
	Displaced int `json:"displaced"`
}

// Position returns the area position with the given name.
// Liminal buffers are not addressable.
func (l *Layout) Position(name string) (HexPosition, bool) {
	for _, p := range l.Positions {
		if p.Type != PositionLiminal && p.Name == name {
			return p, true
		}
	}
	return HexPosition{}, false
}

// At returns the area (or ocean) position at (x, y).
func (l *Layout) At(x, y int) (HexPosition, bool) {
	for _, p := range l.Positions {
		if p.Type != PositionLiminal && p.X == x && p.Y == y {
			return p, true
		}
	}
	return HexPosition{}, false
}

// Areas returns positions that are not liminal buffers.
func (l *Layout) Areas() []HexPosition {
	out := make([]HexPosition, 0, len(l.Positions))
	for _, p := range l.Positions {
		if p.Type != PositionLiminal {
			out = append(out, p)
		}
	}
	return out
}
