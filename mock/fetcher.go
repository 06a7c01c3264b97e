package mock

import (
	"context"

	"github.com/fwojciec/rulesbot"
)

// Compile-time interface verification.
var (
	_ rulesbot.Fetcher       = (*Fetcher)(nil)
	_ rulesbot.TitleFetcher  = (*TitleFetcher)(nil)
	_ rulesbot.DomainLimiter = (*DomainLimiter)(nil)
)

// Fetcher is a mock implementation of rulesbot.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	return f.CloseFn()
}

// TitleFetcher is a mock implementation of rulesbot.TitleFetcher.
type TitleFetcher struct {
	FetchTitleFn func(ctx context.Context, url string) (string, error)
}

func (f *TitleFetcher) FetchTitle(ctx context.Context, url string) (string, error) {
	return f.FetchTitleFn(ctx, url)
}

// DomainLimiter is a mock implementation of rulesbot.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (l *DomainLimiter) Wait(ctx context.Context, domain string) error {
	return l.WaitFn(ctx, domain)
}
