package dsl

import "github.com/aretw0/meridian/pkg/domain"

// SequenceBuilder provides a fluent API for configuring a liminal sequence.
type SequenceBuilder struct {
	seq     domain.LiminalSequence
	builder *Builder
}

// From sets the origin area. Without an origin no reverse sequence is derived.
func (s *SequenceBuilder) From(origin string) *SequenceBuilder {
	s.seq.Origin = origin
	return s
}

// To sets the destination area.
func (s *SequenceBuilder) To(destination string) *SequenceBuilder {
	s.seq.Destination = destination
	return s
}

// Steps appends archetype steps in travel order.
func (s *SequenceBuilder) Steps(steps ...string) *SequenceBuilder {
	for _, step := range steps {
		s.seq.Steps = append(s.seq.Steps, domain.Archetype(step))
	}
	return s
}

// Build returns the underlying sequence.
func (s *SequenceBuilder) Build() domain.LiminalSequence {
	return s.seq.Clone()
}
