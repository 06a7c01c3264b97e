package mock

import "github.com/fwojciec/rulesbot"

var _ rulesbot.Scorer = (*Scorer)(nil)

// Scorer is a mock implementation of rulesbot.Scorer.
type Scorer struct {
	RatioFn func(a, b string) int
}

func (s *Scorer) Ratio(a, b string) int {
	return s.RatioFn(a, b)
}
