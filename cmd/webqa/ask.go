package main

import (
	"encoding/json"
	"fmt"

	"github.com/fwojciec/webqa"
)

// Run executes the ask command.
func (c *AskCmd) Run(deps *Dependencies) error {
	req := &webqa.PredictionRequest{ID: c.ID, Query: c.Query}

	resp, err := deps.Service.Process(deps.Ctx, req)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", webqa.ErrorMessage(err))
		return err
	}

	enc := json.NewEncoder(deps.Stdout)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(resp)
}
