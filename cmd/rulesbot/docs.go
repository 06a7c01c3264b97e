package main

import (
	"fmt"

	"github.com/fwojciec/rulesbot"
)

// Run executes the docs command.
func (c *DocsCmd) Run(deps *Dependencies) error {
	threshold := deps.Config.DocsThreshold
	if c.Threshold != nil {
		threshold = *c.Threshold
	}
	if c.Amount < 1 {
		return rulesbot.Errorf(rulesbot.EINVALID, "amount must be at least 1, got %d", c.Amount)
	}

	docs := deps.Searcher.Docs(c.Query, c.Amount, threshold)
	if len(docs) == 0 {
		fmt.Fprintf(deps.Stdout, "No documentation found for %q. You can find our documentation at [Read the Docs](%s)\n", c.Query, deps.Config.DocsURL)
		return nil
	}

	fmt.Fprintln(deps.Stdout, rulesbot.FormatDocs(docs))
	return nil
}
