// Package prometheus exposes Prometheus metrics for title lookups and the
// metadata cache.
package prometheus

import (
	"context"
	"time"

	"github.com/fwojciec/rulesbot"
	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Title fetch outcomes.
const (
	OutcomeOK       = "ok"
	OutcomeNotFound = "not_found"
	OutcomeError    = "error"
)

// Ensure TitleFetcher implements rulesbot.TitleFetcher.
var _ rulesbot.TitleFetcher = (*TitleFetcher)(nil)

// TitleFetcher wraps a TitleFetcher and records the outcome and latency of
// each lookup.
type TitleFetcher struct {
	next     rulesbot.TitleFetcher
	total    *prom.CounterVec
	duration prom.Histogram
}

// NewTitleFetcher registers the title fetch metrics with reg and returns a
// decorator recording them.
func NewTitleFetcher(next rulesbot.TitleFetcher, reg prom.Registerer) *TitleFetcher {
	factory := promauto.With(reg)
	return &TitleFetcher{
		next: next,
		total: factory.NewCounterVec(prom.CounterOpts{
			Namespace: "rulesbot",
			Name:      "title_fetch_total",
			Help:      "Title lookups by outcome.",
		}, []string{"outcome"}),
		duration: factory.NewHistogram(prom.HistogramOpts{
			Namespace: "rulesbot",
			Name:      "title_fetch_duration_seconds",
			Help:      "Title lookup latency.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
	}
}

// FetchTitle delegates to the wrapped fetcher and records the result.
func (f *TitleFetcher) FetchTitle(ctx context.Context, url string) (title string, err error) {
	defer func(begin time.Time) {
		f.duration.Observe(time.Since(begin).Seconds())
		f.total.WithLabelValues(outcome(err)).Inc()
	}(time.Now())
	return f.next.FetchTitle(ctx, url)
}

func outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeOK
	case rulesbot.ErrorCode(err) == rulesbot.ENOTFOUND:
		return OutcomeNotFound
	default:
		return OutcomeError
	}
}

// RegisterCacheSize registers a gauge reporting size() as the number of
// cached reference entries.
func RegisterCacheSize(reg prom.Registerer, size func() int) {
	promauto.With(reg).NewGaugeFunc(prom.GaugeOpts{
		Namespace: "rulesbot",
		Name:      "metadata_cache_entries",
		Help:      "Number of cached reference metadata entries.",
	}, func() float64 {
		return float64(size())
	})
}
