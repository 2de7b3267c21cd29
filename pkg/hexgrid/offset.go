package hexgrid

import "github.com/aretw0/meridian/pkg/domain"

// HexDir is one of the eight neighbor directions of the offset grid.
type HexDir uint8

const (
	DirN HexDir = iota
	DirNE
	DirE
	DirSE
	DirS
	DirSW
	DirW
	DirNW
)

// RingOrder is the order in which collision search probes a ring.
var RingOrder = [8]HexDir{DirN, DirNE, DirE, DirSE, DirS, DirSW, DirW, DirNW}

func (d HexDir) String() string {
	return [...]string{"N", "NE", "E", "SE", "S", "SW", "W", "NW"}[d]
}

type delta struct{ dx, dy int }

// offsets[parity][dir]. Flat-top columns, odd columns sit half a cell lower.
// Only the diagonals depend on column parity.
var offsets = [2][8]delta{
	// even column
	{
		DirN:  {0, -1},
		DirNE: {1, -1},
		DirE:  {1, 0},
		DirSE: {1, 0},
		DirS:  {0, 1},
		DirSW: {-1, 0},
		DirW:  {-1, 0},
		DirNW: {-1, -1},
	},
	// odd column
	{
		DirN:  {0, -1},
		DirNE: {1, 0},
		DirE:  {1, 0},
		DirSE: {1, 1},
		DirS:  {0, 1},
		DirSW: {-1, 1},
		DirW:  {-1, 0},
		DirNW: {-1, 0},
	},
}

// Step moves one cell from (x, y) in direction d.
func Step(x, y int, d HexDir) (int, int) {
	o := offsets[x&1][d]
	return x + o.dx, y + o.dy
}

// Offset moves one cell from (x, y) along a cardinal edge direction.
// N/S shift y at the same x, E/W shift x at the same y.
func Offset(x, y int, dir domain.Direction) (int, int) {
	switch dir {
	case domain.North:
		return Step(x, y, DirN)
	case domain.South:
		return Step(x, y, DirS)
	case domain.East:
		return Step(x, y, DirE)
	case domain.West:
		return Step(x, y, DirW)
	}
	return x, y
}

// Ring returns the probe cells at the given radius around (x, y):
// each of the eight directions walked radius steps, in RingOrder.
func Ring(x, y, radius int) [8][2]int {
	var out [8][2]int
	for i, d := range RingOrder {
		cx, cy := x, y
		for r := 0; r < radius; r++ {
			cx, cy = Step(cx, cy, d)
		}
		out[i] = [2]int{cx, cy}
	}
	return out
}
