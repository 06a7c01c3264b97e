package search

import (
	"context"
	"strings"

	"github.com/fwojciec/rulesbot"
	"golang.org/x/sync/errgroup"
)

// Defaults for Docs.
const (
	DefaultAmount    = 3
	DefaultThreshold = 80

	// ReplaceThreshold is the stricter threshold used when replacing
	// enclosed symbols in free text with links.
	ReplaceThreshold = 95

	// MaxAPIMatches caps the matches per API category.
	MaxAPIMatches = 10
)

// Searcher answers documentation queries against a loaded inventory.
// It holds no mutable state and is safe for concurrent use.
type Searcher struct {
	Inventory *rulesbot.Inventory
	Ranker    *Ranker

	// APIURL is prepended to the URL suffixes of API categories.
	APIURL string
}

// NewSearcher returns a Searcher over inv.
func NewSearcher(inv *rulesbot.Inventory, ranker *Ranker, apiURL string) *Searcher {
	return &Searcher{
		Inventory: inv,
		Ranker:    ranker,
		APIURL:    apiURL,
	}
}

// Docs returns at most amount docs scoring above threshold, best first.
// Returns nil when nothing matches.
func (s *Searcher) Docs(query string, amount int, threshold float64) []rulesbot.Doc {
	besth, _ := s.Ranker.Rank(query, s.Inventory)
	return besth.ToList(amount, threshold)
}

// Best returns the top doc for query if it scores above threshold.
func (s *Searcher) Best(query string, threshold float64) (rulesbot.Doc, bool) {
	docs := s.Docs(query, 1, threshold)
	if len(docs) == 0 {
		return rulesbot.Doc{}, false
	}
	return docs[0], true
}

// DocsAll runs Docs for every query concurrently. The result at index i
// belongs to queries[i].
func (s *Searcher) DocsAll(ctx context.Context, queries []string, amount int, threshold float64) ([][]rulesbot.Doc, error) {
	results := make([][]rulesbot.Doc, len(queries))

	g, gctx := errgroup.WithContext(ctx)
	for i, q := range queries {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = s.Docs(q, amount, threshold)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// ReplaceSymbols rewrites enclosed symbols in text as links to their best
// match above threshold. It returns the changed display names and the
// rewritten text, or nil and "" when text has no enclosed symbols.
func (s *Searcher) ReplaceSymbols(ctx context.Context, text string, threshold float64) ([]string, string, error) {
	symbols := rulesbot.EnclosedSymbols(text)
	if len(symbols) == 0 {
		return nil, "", nil
	}

	results, err := s.DocsAll(ctx, symbols, 1, threshold)
	if err != nil {
		return nil, "", err
	}

	docs := make([]*rulesbot.Doc, len(symbols))
	for i, r := range results {
		if len(r) > 0 {
			docs[i] = &r[0]
		}
	}
	changed, replaced := rulesbot.ApplyReplacements(text, symbols, docs)
	return changed, replaced, nil
}

// APIDocs matches query as an ordered subsequence against the lowercased
// names of each category, keeping at most MaxAPIMatches per category.
func (s *Searcher) APIDocs(query string, categories []rulesbot.Category) []rulesbot.Doc {
	var docs []rulesbot.Doc
	for _, c := range categories {
		matched := 0
		for i, name := range c.Names {
			if matched == MaxAPIMatches {
				break
			}
			if !rulesbot.Find(strings.ToLower(name), query) {
				continue
			}
			matched++
			docs = append(docs, rulesbot.Doc{
				ShortName: name,
				FullName:  name,
				Kind:      c.Label,
				URL:       s.APIURL + c.URLs[i],
			})
		}
	}
	return docs
}
