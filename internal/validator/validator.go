// Package validator checks a world for authoring mistakes before it is served.
package validator

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/aretw0/meridian/pkg/domain"
	"github.com/aretw0/meridian/pkg/hexgrid"
	"github.com/aretw0/meridian/pkg/registry"
	"github.com/aretw0/meridian/pkg/world"
)

// Severity orders issues. Errors fail validation, warnings do not.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Issue is one finding.
type Issue struct {
	Severity Severity `json:"severity"`
	Code     string   `json:"code"`
	Subject  string   `json:"subject"`
	Message  string   `json:"message"`
}

func (i Issue) String() string {
	return fmt.Sprintf("[%s] %s: %s", i.Code, i.Subject, i.Message)
}

// Report is the outcome of Validate.
type Report struct {
	Areas     int     `json:"areas"`
	Sequences int     `json:"sequences"`
	Issues    []Issue `json:"issues"`
}

// Errors returns only error-severity issues.
func (r *Report) Errors() []Issue {
	var out []Issue
	for _, i := range r.Issues {
		if i.Severity == SeverityError {
			out = append(out, i)
		}
	}
	return out
}

// Err joins every error-severity issue, or returns nil.
func (r *Report) Err() error {
	errs := r.Errors()
	if len(errs) == 0 {
		return nil
	}
	lines := make([]string, len(errs))
	for i, e := range errs {
		lines[i] = e.String()
	}
	return fmt.Errorf("found %d errors:\n- %s", len(errs), strings.Join(lines, "\n- "))
}

func (r *Report) add(sev Severity, code, subject, format string, args ...any) {
	r.Issues = append(r.Issues, Issue{Severity: sev, Code: code, Subject: subject, Message: fmt.Sprintf(format, args...)})
}

// Validate inspects data without building an engine. Duplicate area names and
// dangling edges are errors; everything else the engine tolerates at runtime
// is reported as a warning.
func Validate(data *domain.WorldData) *Report {
	r := &Report{}
	if data == nil {
		r.add(SeverityError, "empty", "world", "no world data")
		return r
	}

	b := registry.NewBuilder()
	if err := b.AddAll(data.Sequences); err != nil {
		r.add(SeverityError, "sequence", "sequences", "%v", err)
	}
	seqs := b.Freeze()
	r.Sequences = seqs.Len()

	for _, key := range sortedSequenceKeys(data.Sequences) {
		if data.Sequences[key].Origin != "" && registry.ReverseKey(key) == key {
			r.add(SeverityWarning, "reverse-collision", key, "reverse key equals forward key, no reverse derived")
		}
	}

	g, err := world.New(data, seqs)
	if err != nil {
		var dup *domain.DuplicateAreaError
		if errors.As(err, &dup) {
			r.add(SeverityError, "duplicate", dup.Name, "defined in both %s and %s", dup.First, dup.Second)
		} else {
			r.add(SeverityError, "graph", "world", "%v", err)
		}
		return r
	}
	r.Areas = g.Len()

	checkAreas(r, g)
	checkEdges(r, data, g)
	checkSequences(r, g, seqs)
	checkReachability(r, data, g)

	sort.SliceStable(r.Issues, func(i, j int) bool {
		if r.Issues[i].Severity != r.Issues[j].Severity {
			return r.Issues[i].Severity == SeverityError
		}
		return false
	})
	return r
}

func checkAreas(r *Report, g *world.Graph) {
	for _, a := range g.Areas() {
		if !a.Biome.Valid() {
			r.add(SeverityWarning, "biome", a.Name, "unknown biome %q", a.Biome)
		}
		if !g.HasAdjacency(a.Name) {
			r.add(SeverityWarning, "no-adjacency", a.Name, "no adjacency record, moves fall back to random exploration")
		}
	}
}

func checkEdges(r *Report, data *domain.WorldData, g *world.Graph) {
	for _, name := range data.Adjacency.Names() {
		if _, ok := g.Area(name); !ok {
			r.add(SeverityWarning, "orphan-adjacency", name, "adjacency record for an area with no geography entry")
		}
		for _, dir := range domain.Directions {
			res := g.Edge(name, dir)
			if res.Reason == domain.ReasonUnresolved {
				r.add(SeverityError, "dangling", name, "%s edge %q is neither an area nor a sequence", dir.Name(), res.Target)
			}
		}
	}
}

func checkSequences(r *Report, g *world.Graph, seqs *registry.Registry) {
	for _, seq := range seqs.All() {
		if _, ok := g.Area(seq.Destination); !ok {
			r.add(SeverityWarning, "sequence-destination", seq.Key, "destination %q is not an area", seq.Destination)
		}
		if seq.Origin != "" {
			if _, ok := g.Area(seq.Origin); !ok {
				r.add(SeverityWarning, "sequence-origin", seq.Key, "origin %q is not an area", seq.Origin)
			}
		}
		if len(seq.Steps) == 0 {
			r.add(SeverityWarning, "sequence-empty", seq.Key, "no steps")
		}
	}
}

func checkReachability(r *Report, data *domain.WorldData, g *world.Graph) {
	if len(data.Seeds) == 0 {
		r.add(SeverityWarning, "no-seeds", "seeds", "no seeds, layout will be empty")
		return
	}
	for _, s := range data.Seeds {
		if _, ok := g.Area(s.Name); !ok {
			r.add(SeverityWarning, "seed", s.Name, "seed area not in graph")
		}
	}

	layout := hexgrid.NewBuilder(g).Build(data.Seeds)
	for _, name := range layout.Skipped {
		r.add(SeverityWarning, "unreachable", name, "not reachable from any seed, excluded from layout")
	}
	for _, name := range layout.Unplaceable {
		r.add(SeverityWarning, "unplaceable", name, "no free hex cell within the search radius")
	}
}

func sortedSequenceKeys(m map[string]domain.LiminalSequence) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
