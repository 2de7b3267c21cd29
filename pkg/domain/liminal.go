package domain

// Archetype is an opaque terrain-generation template token.
type Archetype string

// LiminalSequence is an ordered multi-step transit corridor between two areas
// that share no direct edge.
type LiminalSequence struct {
	Key         string      `json:"key" yaml:"key"`
	Destination string      `json:"destination" yaml:"destination"`
	Origin      string      `json:"origin_area,omitempty" yaml:"origin_area,omitempty"`
	Steps       []Archetype `json:"steps" yaml:"steps"`

	// Derived marks entries synthesized from a forward sequence.
	Derived bool `json:"derived,omitempty" yaml:"-"`
}

// Clone returns a copy with its own step slice.
func (s LiminalSequence) Clone() LiminalSequence {
	out := s
	out.Steps = append([]Archetype(nil), s.Steps...)
	return out
}
