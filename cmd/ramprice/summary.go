package main

import (
	"fmt"

	"github.com/fwojciec/ramprice"
)

// Run executes the summary command.
func (c *SummaryCmd) Run(deps *Dependencies) error {
	filter, err := c.filter()
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", ramprice.ErrorMessage(err))
		return err
	}

	records, err := deps.Records.FindRecords(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", ramprice.ErrorMessage(err))
		return err
	}

	renderSummaries(deps.Stdout, ramprice.Summarize(records, c.Module))
	return nil
}
