package main

import (
	"fmt"
	"os"

	"github.com/fwojciec/rulesbot"
)

// Run executes the api command.
func (c *APICmd) Run(deps *Dependencies) error {
	path := c.Categories
	if path == "" {
		path = deps.Config.CategoriesPath
	}
	if path == "" {
		fmt.Fprintln(deps.Stderr, "Hint: pass --categories or set categories_path in the config")
		return rulesbot.Errorf(rulesbot.EINVALID, "no API categories file")
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open categories: %w", err)
	}
	defer f.Close()

	categories, err := rulesbot.LoadCategories(f)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", rulesbot.ErrorMessage(err))
		return err
	}

	docs := deps.Searcher.APIDocs(c.Query, categories)
	if len(docs) == 0 {
		fmt.Fprintf(deps.Stdout, "No API entries match %q. The raw API is listed at %s\n", c.Query, deps.Config.APIURL)
		return nil
	}

	fmt.Fprintln(deps.Stdout, rulesbot.FormatDocs(docs))
	return nil
}
