// Package search ranks queries against a symbol inventory and the flat API
// reference lists.
package search

import (
	"strings"

	"github.com/fwojciec/rulesbot"
)

// Kind multipliers applied to the raw similarity score. They were tuned by
// hand against real queries.
const (
	ModuleWeight    = 0.75
	ClassWeight     = 1.10
	AttributeWeight = 0.85
)

// DocKinds lists the inventory kinds that take part in ranking.
var DocKinds = []string{
	"py:module",
	"py:class",
	"py:function",
	"py:method",
	"py:attribute",
	"py:data",
	"py:exception",
	"py:staticmethod",
}

// Weights maps inventory kinds to score multipliers. Kinds without an entry
// use a multiplier of 1.
type Weights map[string]float64

// DefaultWeights returns the standard kind multipliers.
func DefaultWeights() Weights {
	return Weights{
		"py:module":    ModuleWeight,
		"py:class":     ClassWeight,
		"py:attribute": AttributeWeight,
	}
}

// Of returns the multiplier for kind.
func (w Weights) Of(kind string) float64 {
	if v, ok := w[kind]; ok {
		return v
	}
	return 1
}

// Ranker scores queries against inventory names.
type Ranker struct {
	Scorer  rulesbot.Scorer
	Weights Weights
	Kinds   []string
}

// NewRanker returns a Ranker using the default weights and kinds.
func NewRanker(scorer rulesbot.Scorer) *Ranker {
	return &Ranker{
		Scorer:  scorer,
		Weights: DefaultWeights(),
		Kinds:   DocKinds,
	}
}

// Score rates query against name. Both are split on dots and compared
// segment by segment from the most specific end; unmatched trailing
// segments of the longer side are ignored. The whole strings are compared
// once more and the sum is scaled by the weight of kind.
func (r *Ranker) Score(query, name, kind string) float64 {
	return r.score(reversed(strings.Split(query, ".")), query, name, kind)
}

func (r *Ranker) score(querySegments []string, query, name, kind string) float64 {
	nameSegments := reversed(strings.Split(name, "."))
	n := min(len(querySegments), len(nameSegments))

	score := 0
	for i := range n {
		score += r.Scorer.Ratio(querySegments[i], nameSegments[i])
	}
	score += r.Scorer.Ratio(query, name)

	return float64(score) * r.Weights.Of(kind)
}

// Rank scores every name of the ranked kinds in inv and feeds the results
// into a BestHandler. It also returns the single best candidate.
func (r *Ranker) Rank(query string, inv *rulesbot.Inventory) (*rulesbot.BestHandler, rulesbot.ScoredDoc) {
	querySegments := reversed(strings.Split(query, "."))
	besth := &rulesbot.BestHandler{}
	var best rulesbot.ScoredDoc

	for _, kind := range r.Kinds {
		locations := inv.Lookup(kind)
		for _, name := range inv.Names(kind) {
			score := r.score(querySegments, query, name, kind)
			doc := rulesbot.Doc{
				ShortName: rulesbot.ShortName(name),
				FullName:  name,
				Kind:      kindRole(kind),
				URL:       locations[name].URL,
			}
			if score > best.Score {
				best = rulesbot.ScoredDoc{Score: score, Doc: doc}
			}
			besth.Add(score, doc)
		}
	}
	return besth, best
}

// kindRole strips the domain from a "domain:role" kind.
func kindRole(kind string) string {
	if _, role, ok := strings.Cut(kind, ":"); ok {
		return role
	}
	return kind
}

func reversed(s []string) []string {
	out := make([]string, len(s))
	for i, v := range s {
		out[len(s)-1-i] = v
	}
	return out
}
