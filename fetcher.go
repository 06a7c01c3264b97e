package rulesbot

import "context"

// Fetcher retrieves raw response bodies from URLs.
type Fetcher interface {
	// Fetch performs a GET request and returns the response body.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (body string, err error)

	// Close releases any held resources.
	Close() error
}

// TitleFetcher retrieves the title of a web page.
type TitleFetcher interface {
	// FetchTitle returns the trimmed <title> of the page at url.
	// Returns ENOTFOUND if the page has no usable title.
	FetchTitle(ctx context.Context, url string) (string, error)
}

// DomainLimiter provides per-domain rate limiting.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}
