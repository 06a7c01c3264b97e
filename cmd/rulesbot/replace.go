package main

import (
	"fmt"
	"strings"
)

// Run executes the replace command.
func (c *ReplaceCmd) Run(deps *Dependencies) error {
	threshold := deps.Config.ReplaceThreshold
	if c.Threshold != nil {
		threshold = *c.Threshold
	}

	changed, text, err := deps.Searcher.ReplaceSymbols(deps.Ctx, c.Text, threshold)
	if err != nil {
		return err
	}
	if changed == nil {
		fmt.Fprintln(deps.Stdout, "No symbols to replace. Enclose them in + signs, e.g. +TelegramClient+")
		return nil
	}

	fmt.Fprintln(deps.Stdout, text)
	fmt.Fprintf(deps.Stderr, "Replaced: %s\n", strings.Join(changed, ", "))
	return nil
}
