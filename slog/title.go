package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/rulesbot"
)

// Ensure LoggingTitleFetcher implements rulesbot.TitleFetcher.
var _ rulesbot.TitleFetcher = (*LoggingTitleFetcher)(nil)

// LoggingTitleFetcher wraps a TitleFetcher with logging.
type LoggingTitleFetcher struct {
	next   rulesbot.TitleFetcher
	logger *slog.Logger
}

// NewLoggingTitleFetcher creates a new LoggingTitleFetcher.
func NewLoggingTitleFetcher(next rulesbot.TitleFetcher, logger *slog.Logger) *LoggingTitleFetcher {
	return &LoggingTitleFetcher{next: next, logger: logger}
}

// FetchTitle delegates to the wrapped fetcher and logs the title it got.
func (f *LoggingTitleFetcher) FetchTitle(ctx context.Context, url string) (title string, err error) {
	defer func(begin time.Time) {
		f.logger.Info("title fetch",
			"url", url,
			"title", title,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.FetchTitle(ctx, url)
}
