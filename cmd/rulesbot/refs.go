package main

import (
	"fmt"
	"io"

	"github.com/fwojciec/rulesbot"
	"github.com/fwojciec/rulesbot/goquery"
	"github.com/prometheus/common/expfmt"
)

// Run executes the refs command.
func (c *RefsCmd) Run(deps *Dependencies) error {
	text := c.Text
	if text == "" || text == "-" {
		data, err := io.ReadAll(deps.Stdin)
		if err != nil {
			return fmt.Errorf("failed to read stdin: %w", err)
		}
		text = string(data)
	}
	if c.HTML {
		visible, err := goquery.VisibleText(text)
		if err != nil {
			return err
		}
		text = visible
	}

	progress := func() {
		fmt.Fprintln(deps.Stderr, "resolving…")
	}
	refs, err := deps.Resolver.Resolve(deps.Ctx, text, progress)
	if err != nil {
		return err
	}

	if len(refs) == 0 {
		fmt.Fprintln(deps.Stdout, "No references found.")
	} else {
		fmt.Fprintln(deps.Stdout, rulesbot.FormatReferences(refs))
	}

	if c.Metrics && deps.Registry != nil {
		return writeMetrics(deps)
	}
	return nil
}

func writeMetrics(deps *Dependencies) error {
	families, err := deps.Registry.Gather()
	if err != nil {
		return fmt.Errorf("failed to gather metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(deps.Stderr, mf); err != nil {
			return err
		}
	}
	return nil
}
