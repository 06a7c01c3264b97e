package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/rulesbot"
	"github.com/fwojciec/rulesbot/cache"
	"github.com/fwojciec/rulesbot/config"
	"github.com/fwojciec/rulesbot/edlib"
	"github.com/fwojciec/rulesbot/goquery"
	rbhttp "github.com/fwojciec/rulesbot/http"
	rbprom "github.com/fwojciec/rulesbot/prometheus"
	"github.com/fwojciec/rulesbot/resolve"
	"github.com/fwojciec/rulesbot/search"
	rbslog "github.com/fwojciec/rulesbot/slog"
	"github.com/fwojciec/rulesbot/sphinx"
	prom "github.com/prometheus/client_golang/prometheus"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Stdin is read by commands taking text from standard input.
	Stdin io.Reader

	// Fetcher overrides the HTTP fetcher. Set before calling Run().
	Fetcher rulesbot.Fetcher
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{Stdin: os.Stdin}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdin:  m.Stdin,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("rulesbot"),
		kong.Description("Search the Telethon docs and resolve GitHub references."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'rulesbot --help' to see available commands")
	}

	if cmd := args[0]; cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	cfg, err := config.Load(cli.Config)
	if err != nil {
		fmt.Fprintf(stderr, "Hint: Set %s or --config to point at a valid YAML file\n", config.EnvPath)
		return err
	}
	deps.Config = cfg

	var level slog.Level
	if err := level.UnmarshalText([]byte(cli.LogLevel)); err != nil {
		return rulesbot.Errorf(rulesbot.EINVALID, "invalid log level %q", cli.LogLevel)
	}
	deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	fetcher := m.Fetcher
	if fetcher == nil {
		fetcher = rbhttp.NewFetcher(rbhttp.WithTimeout(cfg.FetchTimeout))
	}
	fetcher = rbslog.NewLoggingFetcher(fetcher, deps.Logger)
	defer fetcher.Close()

	// Wire command-specific dependencies based on command
	switch strings.Fields(kongCtx.Command())[0] {
	case "docs", "replace":
		loader := rbslog.NewLoggingInventoryLoader(sphinx.NewLoader(fetcher), deps.Logger)
		inv, err := loader.Load(ctx, cfg.DocsURL)
		if err != nil {
			fmt.Fprintf(stderr, "Hint: docs_url must point at a Sphinx site serving %s\n", sphinx.InventoryFile)
			return fmt.Errorf("failed to load inventory from %s: %w", cfg.DocsURL, err)
		}
		ranker := search.NewRanker(edlib.NewScorer())
		ranker.Weights = cfg.Weights.Search()
		deps.Searcher = search.NewSearcher(inv, ranker, cfg.APIURL)

	case "api":
		deps.Searcher = search.NewSearcher(nil, nil, cfg.APIURL)

	case "refs":
		deps.Registry = prom.NewRegistry()
		titles := rbslog.NewLoggingTitleFetcher(
			rbprom.NewTitleFetcher(goquery.NewTitleFetcher(fetcher), deps.Registry),
			deps.Logger,
		)
		metadata := cache.New()
		rbprom.RegisterCacheSize(deps.Registry, metadata.Len)

		r := resolve.NewResolver(titles, metadata)
		r.RateLimiter = resolve.NewDomainLimiter(cfg.RequestsPerSecond)
		r.BaseURL = cfg.GitHubURL
		r.DefaultRepo = cfg.DefaultRepo
		r.FetchTimeout = cfg.FetchTimeout
		r.ProgressInterval = cfg.ProgressInterval
		r.Concurrency = cfg.Concurrency
		r.Logger = deps.Logger
		deps.Resolver = r
	}

	return kongCtx.Run(deps)
}
