package registry

import (
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"

	"github.com/aretw0/meridian/pkg/domain"
)

// Builder holds the authored (base) liminal table. It is the first phase of
// the two-phase load: collect, then Freeze exactly once.
type Builder struct {
	base   map[string]domain.LiminalSequence
	frozen bool
	logger *slog.Logger
}

// Option configures a Builder.
type Option func(*Builder)

// WithLogger sets the logger used for derivation warnings.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Builder) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// NewBuilder creates an empty builder.
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{
		base:   make(map[string]domain.LiminalSequence),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(b)
	}
	b.logger = b.logger.With("component", "registry")
	return b
}

// Add registers an authored sequence. A later Add with the same key replaces
// the earlier one.
func (b *Builder) Add(seq domain.LiminalSequence) error {
	if b.frozen {
		return domain.ErrFrozen
	}
	if seq.Key == "" {
		return fmt.Errorf("liminal sequence missing key")
	}
	if _, exists := b.base[seq.Key]; exists {
		b.logger.Warn("liminal sequence redefined", "key", seq.Key)
	}
	seq = seq.Clone()
	seq.Derived = false
	b.base[seq.Key] = seq
	return nil
}

// AddAll registers every entry of a key -> sequence table. Empty Key fields
// are filled from the map key.
func (b *Builder) AddAll(table map[string]domain.LiminalSequence) error {
	keys := make([]string, 0, len(table))
	for k := range table {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		seq := table[k]
		if seq.Key == "" {
			seq.Key = k
		}
		if err := b.Add(seq); err != nil {
			return err
		}
	}
	return nil
}

// Freeze derives reverse sequences once and returns the read-only registry.
// The builder cannot be used afterwards.
func (b *Builder) Freeze() *Registry {
	b.frozen = true
	table := DeriveReverseSequences(b.base, b.logger)
	return newRegistry(table)
}

// Registry is the final, frozen liminal table. Safe for concurrent reads.
type Registry struct {
	table map[string]domain.LiminalSequence
	keys  []string
}

func newRegistry(table map[string]domain.LiminalSequence) *Registry {
	keys := make([]string, 0, len(table))
	for k := range table {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return &Registry{table: table, keys: keys}
}

// Lookup returns a copy of the sequence registered under key.
func (r *Registry) Lookup(key string) (domain.LiminalSequence, bool) {
	seq, ok := r.table[key]
	if !ok {
		return domain.LiminalSequence{}, false
	}
	return seq.Clone(), true
}

// Has reports whether key is registered.
func (r *Registry) Has(key string) bool {
	_, ok := r.table[key]
	return ok
}

// Keys returns all keys, sorted.
func (r *Registry) Keys() []string {
	return append([]string(nil), r.keys...)
}

// All returns every sequence sorted by key.
func (r *Registry) All() []domain.LiminalSequence {
	out := make([]domain.LiminalSequence, 0, len(r.keys))
	for _, k := range r.keys {
		out = append(out, r.table[k].Clone())
	}
	return out
}

// Len returns the number of registered sequences, derived ones included.
func (r *Registry) Len() int {
	return len(r.table)
}

// Table returns a copy of the underlying key -> sequence map.
func (r *Registry) Table() map[string]domain.LiminalSequence {
	out := make(map[string]domain.LiminalSequence, len(r.table))
	for k, v := range r.table {
		out[k] = v.Clone()
	}
	return out
}

var suffixSwaps = [][2]string{
	{"_NORTH_SOUTH", "_SOUTH_NORTH"},
	{"_SOUTH_NORTH", "_NORTH_SOUTH"},
	{"_EAST_WEST", "_WEST_EAST"},
	{"_WEST_EAST", "_EAST_WEST"},
}

// ReverseKey computes the key of the reverse corridor by swapping a
// directional suffix, or turning the last "_TO_X" into "_FROM_X".
// Keys with no recognizable pattern come back unchanged.
func ReverseKey(key string) string {
	for _, s := range suffixSwaps {
		if strings.HasSuffix(key, s[0]) {
			return strings.TrimSuffix(key, s[0]) + s[1]
		}
	}
	if i := strings.LastIndex(key, "_TO_"); i >= 0 {
		return key[:i] + "_FROM_" + key[i+len("_TO_"):]
	}
	return key
}

// DeriveReverse builds the reverse of seq. ok is false when seq declares no
// origin, is itself derived, or its reverse key equals its own key.
func DeriveReverse(seq domain.LiminalSequence) (domain.LiminalSequence, bool) {
	if seq.Origin == "" || seq.Derived {
		return domain.LiminalSequence{}, false
	}
	rk := ReverseKey(seq.Key)
	if rk == seq.Key {
		return domain.LiminalSequence{}, false
	}
	steps := make([]domain.Archetype, len(seq.Steps))
	for i, s := range seq.Steps {
		steps[len(seq.Steps)-1-i] = s
	}
	return domain.LiminalSequence{
		Key:         rk,
		Destination: seq.Origin,
		Origin:      seq.Destination,
		Steps:       steps,
		Derived:     true,
	}, true
}

// DeriveReverseSequences returns a new table holding every entry of base plus
// the reverse of each sequence that declares an origin. Authored keys always
// win over derived ones. Running it over its own output adds nothing.
func DeriveReverseSequences(base map[string]domain.LiminalSequence, logger *slog.Logger) map[string]domain.LiminalSequence {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	out := make(map[string]domain.LiminalSequence, len(base)*2)
	keys := make([]string, 0, len(base))
	for k, v := range base {
		if v.Key == "" {
			v.Key = k
		}
		out[k] = v.Clone()
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		seq := out[k]
		if seq.Origin == "" || seq.Derived {
			continue
		}
		rev, ok := DeriveReverse(seq)
		if !ok {
			logger.Warn("reverse sequence key collides with forward key", "key", k)
			continue
		}
		if _, exists := out[rev.Key]; exists {
			logger.Debug("reverse sequence already defined", "key", k, "reverse", rev.Key)
			continue
		}
		out[rev.Key] = rev
	}
	return out
}
