package main

import (
	"fmt"

	"github.com/fwojciec/ramprice"
)

// Run executes the report command.
func (c *ReportCmd) Run(deps *Dependencies) error {
	filter, err := c.filter()
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", ramprice.ErrorMessage(err))
		return err
	}

	h, skips, err := readHistory(c.Path)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}

	records, loadSkips := ramprice.LoadHistory(h)
	logSkips(deps, append(skips, loadSkips...))

	records = ramprice.FilterRecords(records, filter)
	renderSummaries(deps.Stdout, ramprice.Summarize(records, c.Module))
	return nil
}
