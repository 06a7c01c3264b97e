package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/fwojciec/rulesbot/config"
	"github.com/fwojciec/rulesbot/resolve"
	"github.com/fwojciec/rulesbot/search"
	prom "github.com/prometheus/client_golang/prometheus"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx      context.Context
	Stdin    io.Reader
	Stdout   io.Writer
	Stderr   io.Writer
	Config   *config.Config
	Logger   *slog.Logger
	Searcher *search.Searcher
	Resolver *resolve.Resolver
	Registry *prom.Registry
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config   string `type:"path" env:"RULESBOT_CONFIG" help:"YAML config file"`
	LogLevel string `default:"warn" enum:"debug,info,warn,error" help:"Log level (debug, info, warn, error)"`

	Docs    DocsCmd    `cmd:"" help:"Search the documentation for a symbol"`
	API     APICmd     `cmd:"" name:"api" help:"Search the raw API reference"`
	Replace ReplaceCmd `cmd:"" help:"Replace +symbol+ mentions with documentation links"`
	Refs    RefsCmd    `cmd:"" help:"Resolve issue, pull request and commit references"`
}

// DocsCmd is the "docs" subcommand.
type DocsCmd struct {
	Query     string   `arg:"" help:"Symbol to look up, e.g. client.send_message"`
	Amount    int      `short:"n" default:"3" help:"Maximum number of results"`
	Threshold *float64 `short:"t" help:"Minimum score (default from config)"`
}

// APICmd is the "api" subcommand.
type APICmd struct {
	Query      string `arg:"" help:"Letters to match in order against method, type and constructor names"`
	Categories string `type:"existingfile" help:"JSON file with the API categories (default from config)"`
}

// ReplaceCmd is the "replace" subcommand.
type ReplaceCmd struct {
	Text      string   `arg:"" help:"Text with symbols enclosed in + signs"`
	Threshold *float64 `short:"t" help:"Minimum score (default from config)"`
}

// RefsCmd is the "refs" subcommand.
type RefsCmd struct {
	Text    string `arg:"" optional:"" help:"Message text; read from stdin when absent or -"`
	HTML    bool   `name:"html" help:"Treat the text as HTML and ignore links and formatting"`
	Metrics bool   `help:"Print lookup metrics to stderr when done"`
}
