package domain

// EdgeKind is the outcome of resolving one directional edge.
type EdgeKind string

const (
	EdgeAdjacent EdgeKind = "adjacent"
	EdgeLiminal  EdgeKind = "liminal"
	EdgeUnknown  EdgeKind = "unknown"
)

// UnknownReason distinguishes why an edge resolved to nothing.
type UnknownReason string

const (
	ReasonNone UnknownReason = ""
	// ReasonNoAdjacency: the area has no adjacency record at all.
	ReasonNoAdjacency UnknownReason = "no_adjacency"
	// ReasonWorldEdge: the edge is empty, a legitimate boundary.
	ReasonWorldEdge UnknownReason = "world_edge"
	// ReasonUnresolved: the neighbor key is neither an area nor a sequence.
	ReasonUnresolved UnknownReason = "unresolved_neighbor"
)

// EdgeResolution is exactly one of AdjacentArea, LiminalCrossing or Unknown.
type EdgeResolution struct {
	Kind     EdgeKind         `json:"kind"`
	From     string           `json:"from"`
	Dir      Direction        `json:"direction"`
	Target   string           `json:"target,omitempty"`
	Area     *Area            `json:"area,omitempty"`
	Sequence *LiminalSequence `json:"sequence,omitempty"`
	Reason   UnknownReason    `json:"reason,omitempty"`
}

// NavigationKind is the gameplay-facing outcome of a step.
type NavigationKind string

const (
	NavAdjacent       NavigationKind = "adjacent"
	NavLiminal        NavigationKind = "liminal_crossing"
	NavRandomFallback NavigationKind = "random_fallback"
)

// NavigationResult is exactly one of Adjacent, LiminalCrossing or RandomFallback.
type NavigationResult struct {
	Kind NavigationKind `json:"kind"`

	// Adjacent
	Area   *Area  `json:"area,omitempty"`
	Region string `json:"region,omitempty"`
	Zone   string `json:"zone,omitempty"`

	// LiminalCrossing
	Sequence    *LiminalSequence `json:"sequence,omitempty"`
	Destination string           `json:"destination,omitempty"`
	SequenceKey string           `json:"sequence_key,omitempty"`

	// RandomFallback
	Reason UnknownReason `json:"reason,omitempty"`
}
