// Package edlib implements rulesbot.Scorer on top of go-edlib.
package edlib

import (
	"math"
	"unicode/utf8"

	"github.com/fwojciec/rulesbot"
	edlib "github.com/hbollon/go-edlib"
)

// Ensure Scorer implements rulesbot.Scorer at compile time.
var _ rulesbot.Scorer = (*Scorer)(nil)

// Scorer rates string similarity as the normalized insert/delete edit
// distance, 2*LCS/(len(a)+len(b)), scaled to 0-100 and rounded.
// Comparison is case-sensitive.
type Scorer struct{}

// NewScorer returns a new Scorer.
func NewScorer() *Scorer {
	return &Scorer{}
}

// Ratio returns 100 for identical strings and 0 when either is empty.
func (s *Scorer) Ratio(a, b string) int {
	if a == "" || b == "" {
		return 0
	}
	if a == b {
		return 100
	}
	total := utf8.RuneCountInString(a) + utf8.RuneCountInString(b)
	lcs := edlib.LCS(a, b)
	return int(math.Round(200 * float64(lcs) / float64(total)))
}
