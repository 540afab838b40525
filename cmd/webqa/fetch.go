package main

import (
	"fmt"

	"github.com/fwojciec/webqa"
)

// Run executes the fetch command.
func (c *FetchCmd) Run(deps *Dependencies) error {
	html, err := deps.Fetcher.Fetch(deps.Ctx, c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: fetch %s: %v\n", c.URL, err)
		return err
	}

	text, err := deps.Extractor.Extract(html)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", webqa.ErrorMessage(err))
		return err
	}

	fmt.Fprintln(deps.Stdout, text)
	return nil
}
