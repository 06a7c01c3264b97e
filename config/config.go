// Package config loads rulesbot settings from YAML.
package config

import (
	"os"
	"time"

	"github.com/fwojciec/rulesbot"
	"github.com/fwojciec/rulesbot/resolve"
	"github.com/fwojciec/rulesbot/search"
	"gopkg.in/yaml.v3"
)

// EnvPath names the environment variable holding the config file path.
const EnvPath = "RULESBOT_CONFIG"

// Config holds every tunable of the bot. Zero-valued fields in a file keep
// their defaults.
type Config struct {
	// DocsURL is the documentation root holding objects.inv.
	DocsURL string `yaml:"docs_url"`
	// APIURL prefixes the URL suffixes of the API category feed.
	APIURL string `yaml:"api_url"`
	// GitHubURL prefixes resolved reference URLs.
	GitHubURL   string `yaml:"github_url"`
	DefaultRepo string `yaml:"default_repo"`
	// CategoriesPath is the JSON file with the API categories.
	CategoriesPath string `yaml:"categories_path"`

	FetchTimeout      time.Duration `yaml:"fetch_timeout"`
	ProgressInterval  time.Duration `yaml:"progress_interval"`
	Concurrency       int           `yaml:"concurrency"`
	RequestsPerSecond float64       `yaml:"requests_per_second"`

	DocsThreshold    float64 `yaml:"docs_threshold"`
	ReplaceThreshold float64 `yaml:"replace_threshold"`
	Weights          Weights `yaml:"weights"`
}

// Weights overrides the ranking multipliers per symbol kind.
type Weights struct {
	Module    float64 `yaml:"module"`
	Class     float64 `yaml:"class"`
	Attribute float64 `yaml:"attribute"`
}

// Search returns the weights as search.Weights.
func (w Weights) Search() search.Weights {
	return search.Weights{
		"py:module":    w.Module,
		"py:class":     w.Class,
		"py:attribute": w.Attribute,
	}
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		DocsURL:           "https://telethon.readthedocs.io/en/latest/",
		APIURL:            "https://lonamiwebs.github.io/Telethon/",
		GitHubURL:         resolve.DefaultBaseURL,
		DefaultRepo:       resolve.DefaultRepo,
		FetchTimeout:      resolve.DefaultFetchTimeout,
		ProgressInterval:  resolve.DefaultProgressInterval,
		Concurrency:       resolve.DefaultConcurrency,
		RequestsPerSecond: resolve.DefaultRequestsPerSecond,
		DocsThreshold:     search.DefaultThreshold,
		ReplaceThreshold:  search.ReplaceThreshold,
		Weights: Weights{
			Module:    search.ModuleWeight,
			Class:     search.ClassWeight,
			Attribute: search.AttributeWeight,
		},
	}
}

// Load reads the YAML file at path on top of Default. An empty path returns
// the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, rulesbot.Errorf(rulesbot.EINVALID, "failed to read config %s: %v", path, err)
	}
	if err := Parse(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse decodes YAML data into cfg and validates the result.
func Parse(data []byte, cfg *Config) error {
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return rulesbot.Errorf(rulesbot.EINVALID, "failed to parse config: %v", err)
	}
	return cfg.Validate()
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	for name, v := range map[string]string{
		"docs_url":   c.DocsURL,
		"api_url":    c.APIURL,
		"github_url": c.GitHubURL,
	} {
		if v == "" {
			return rulesbot.Errorf(rulesbot.EINVALID, "%s is required", name)
		}
		if v[len(v)-1] != '/' {
			return rulesbot.Errorf(rulesbot.EINVALID, "%s must end with a slash, got %q", name, v)
		}
	}
	if c.DefaultRepo == "" {
		return rulesbot.Errorf(rulesbot.EINVALID, "default_repo is required")
	}
	if c.FetchTimeout <= 0 {
		return rulesbot.Errorf(rulesbot.EINVALID, "fetch_timeout must be positive, got %v", c.FetchTimeout)
	}
	if c.ProgressInterval <= 0 {
		return rulesbot.Errorf(rulesbot.EINVALID, "progress_interval must be positive, got %v", c.ProgressInterval)
	}
	if c.Concurrency < 1 {
		return rulesbot.Errorf(rulesbot.EINVALID, "concurrency must be at least 1, got %d", c.Concurrency)
	}
	if c.RequestsPerSecond <= 0 {
		return rulesbot.Errorf(rulesbot.EINVALID, "requests_per_second must be positive, got %v", c.RequestsPerSecond)
	}
	if c.DocsThreshold < 0 || c.ReplaceThreshold < 0 {
		return rulesbot.Errorf(rulesbot.EINVALID, "thresholds must not be negative")
	}
	if c.Weights.Module <= 0 || c.Weights.Class <= 0 || c.Weights.Attribute <= 0 {
		return rulesbot.Errorf(rulesbot.EINVALID, "weights must be positive")
	}
	return nil
}
