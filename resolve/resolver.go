// Package resolve turns repository references in message text into
// resolved links with page titles.
package resolve

import (
	"context"
	"log/slog"
	"net/url"
	"time"

	"github.com/fwojciec/rulesbot"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// Defaults for NewResolver.
const (
	DefaultBaseURL          = "https://github.com/"
	DefaultRepo             = "LonamiWebs/Telethon"
	DefaultFetchTimeout     = 10 * time.Second
	DefaultProgressInterval = time.Second
	DefaultConcurrency      = 4
)

// Resolver resolves the references found in a text to titled links.
// A Resolver is safe for concurrent use; each call works on its own batch
// and only the cache is shared.
type Resolver struct {
	Titles      rulesbot.TitleFetcher
	Cache       rulesbot.MetadataCache
	RateLimiter rulesbot.DomainLimiter // optional

	// BaseURL prefixes every reference URL and must end with a slash.
	BaseURL string
	// DefaultRepo is used for references that do not name a repository.
	DefaultRepo string

	// FetchTimeout bounds one title lookup including its retries.
	FetchTimeout     time.Duration
	ProgressInterval time.Duration
	RetryDelays      []time.Duration
	Concurrency      int

	Logger *slog.Logger
}

// NewResolver creates a Resolver with default settings.
func NewResolver(titles rulesbot.TitleFetcher, cache rulesbot.MetadataCache) *Resolver {
	return &Resolver{
		Titles:           titles,
		Cache:            cache,
		RateLimiter:      NewDomainLimiter(DefaultRequestsPerSecond),
		BaseURL:          DefaultBaseURL,
		DefaultRepo:      DefaultRepo,
		FetchTimeout:     DefaultFetchTimeout,
		ProgressInterval: DefaultProgressInterval,
		RetryDelays:      DefaultRetryDelays(),
		Concurrency:      DefaultConcurrency,
		Logger:           slog.New(slog.DiscardHandler),
	}
}

// Resolve extracts the references in text and resolves them. The result
// keeps first-seen order, holds each URL once and leaves out references
// whose page could not be looked up. progress, if not nil, is called while
// lookups are pending. The only error is ctx's.
func (r *Resolver) Resolve(ctx context.Context, text string, progress rulesbot.ProgressFunc) ([]rulesbot.ResolvedReference, error) {
	return r.Go(ctx, text, progress).Wait(ctx)
}

// Batch is a resolution running in the background.
type Batch struct {
	id   string
	done chan struct{}
	refs []rulesbot.ResolvedReference
}

// ID returns the identifier the batch is logged under.
func (b *Batch) ID() string { return b.id }

// Done is closed once every lookup of the batch has finished.
func (b *Batch) Done() <-chan struct{} { return b.done }

// Wait blocks until the batch is done or ctx ends. Giving up on a batch
// does not stop it; its lookups still complete and fill the cache.
func (b *Batch) Wait(ctx context.Context) ([]rulesbot.ResolvedReference, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-b.done:
		return b.refs, nil
	}
}

// Go starts resolving the references in text and returns immediately.
// The batch runs detached from ctx cancellation.
func (r *Resolver) Go(ctx context.Context, text string, progress rulesbot.ProgressFunc) *Batch {
	b := &Batch{
		id:   uuid.NewString(),
		done: make(chan struct{}),
	}
	go r.run(context.WithoutCancel(ctx), b, text, progress)
	return b
}

func (r *Resolver) run(ctx context.Context, b *Batch, text string, progress rulesbot.ProgressFunc) {
	defer close(b.done)

	begin := time.Now()
	logger := r.logger().With("batch", b.id)

	tokens := rulesbot.ExtractReferences(text)
	if len(tokens) == 0 {
		return
	}
	targets := r.Targets(tokens)
	logger.Debug("resolve batch", "tokens", len(tokens), "targets", len(targets))

	// Per batch, never shared.
	notifier := &rate.Sometimes{Interval: r.progressInterval()}
	notify := func() {
		if progress != nil {
			notifier.Do(progress)
		}
	}
	notify()

	results := make([]*rulesbot.ResolvedReference, len(targets))
	finished := make(chan struct{})
	go func() {
		defer close(finished)
		var g errgroup.Group
		g.SetLimit(r.concurrency())
		for i, t := range targets {
			g.Go(func() error {
				results[i] = r.resolve(ctx, logger, t)
				return nil
			})
		}
		_ = g.Wait()
	}()

	ticker := time.NewTicker(r.progressInterval())
	defer ticker.Stop()
wait:
	for {
		select {
		case <-finished:
			break wait
		case <-ticker.C:
			notify()
		}
	}

	for _, ref := range results {
		if ref != nil {
			b.refs = append(b.refs, *ref)
		}
	}
	logger.Debug("resolve batch done",
		"resolved", len(b.refs),
		"dropped", len(targets)-len(b.refs),
		"duration", time.Since(begin),
	)
}

// resolve looks up one target. It returns nil when the page cannot be
// fetched or has no usable title.
func (r *Resolver) resolve(ctx context.Context, logger *slog.Logger, t Target) *rulesbot.ResolvedReference {
	key := rulesbot.CacheKey{URL: t.URL, IsCommit: t.IsCommit}
	md, err := r.Cache.GetOrCompute(ctx, key, func(ctx context.Context) (rulesbot.Metadata, error) {
		return r.lookup(ctx, logger, t)
	})
	if err != nil {
		level := slog.LevelWarn
		if rulesbot.ErrorCode(err) == rulesbot.ENOTFOUND {
			level = slog.LevelDebug
		}
		logger.Log(ctx, level, "reference dropped", "url", t.URL, "err", err)
		return nil
	}
	return &rulesbot.ResolvedReference{
		URL:         t.URL,
		DisplayName: string(md.Kind) + " " + t.Name + ": " + md.Title,
		Kind:        md.Kind,
	}
}

func (r *Resolver) lookup(ctx context.Context, logger *slog.Logger, t Target) (rulesbot.Metadata, error) {
	if r.FetchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.FetchTimeout)
		defer cancel()
	}

	fetch := func(ctx context.Context, u string) (string, error) {
		if r.RateLimiter != nil {
			if err := r.RateLimiter.Wait(ctx, host(u)); err != nil {
				return "", err
			}
		}
		return r.Titles.FetchTitle(ctx, u)
	}
	onRetry := func(attempt int, err error) {
		logger.Debug("retry title fetch", "url", t.URL, "attempt", attempt, "err", err)
	}

	title, err := FetchWithRetry(ctx, t.URL, fetch, r.RetryDelays, onRetry)
	if err != nil {
		return rulesbot.Metadata{}, err
	}
	return rulesbot.ParseTitle(title, t.IsCommit)
}

func (r *Resolver) logger() *slog.Logger {
	if r.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return r.Logger
}

func (r *Resolver) progressInterval() time.Duration {
	if r.ProgressInterval <= 0 {
		return DefaultProgressInterval
	}
	return r.ProgressInterval
}

func (r *Resolver) concurrency() int {
	if r.Concurrency <= 0 {
		return DefaultConcurrency
	}
	return r.Concurrency
}

func host(u string) string {
	parsed, err := url.Parse(u)
	if err != nil {
		return u
	}
	return parsed.Host
}
