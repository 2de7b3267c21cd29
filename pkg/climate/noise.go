package climate

import (
	"math"

	"github.com/aquilax/go-perlin"
)

// Noise is a deterministic 2D noise source returning values in [-1, 1].
type Noise interface {
	Noise2D(x, y float64) float64
}

// WaveNoise is two offset sine/cosine terms. It needs no state and is the
// default source.
type WaveNoise struct{}

func (WaveNoise) Noise2D(x, y float64) float64 {
	return (math.Sin(x*0.3+y*0.1) + math.Cos(y*0.25-x*0.15+1.7)) / 2
}

// PerlinNoise adapts go-perlin. Coordinates are scaled down so neighboring
// tiles vary smoothly.
type PerlinNoise struct {
	p     *perlin.Perlin
	scale float64
}

// NewPerlinNoise creates a seeded Perlin source.
func NewPerlinNoise(seed int64) *PerlinNoise {
	alpha := 2.0
	beta := 2.0
	n := int32(3)
	return &PerlinNoise{p: perlin.NewPerlin(alpha, beta, n, seed), scale: 0.1}
}

func (n *PerlinNoise) Noise2D(x, y float64) float64 {
	v := n.p.Noise2D(x*n.scale, y*n.scale)
	return math.Max(-1, math.Min(1, v))
}

// NewNoise returns the source for a config name: "perlin" or "wave".
// Anything else falls back to wave.
func NewNoise(kind string, seed int64) Noise {
	if kind == "perlin" {
		return NewPerlinNoise(seed)
	}
	return WaveNoise{}
}
