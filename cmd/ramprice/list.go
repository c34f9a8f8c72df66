package main

import (
	"fmt"

	"github.com/fwojciec/ramprice"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	filter, err := c.filter()
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", ramprice.ErrorMessage(err))
		return err
	}
	if c.Module > 0 {
		filter.UnitSizeGB = &c.Module
	}
	filter.Limit = c.Limit
	filter.Offset = c.Offset

	records, err := deps.Records.FindRecords(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", ramprice.ErrorMessage(err))
		return err
	}

	if len(records) == 0 {
		fmt.Fprintf(deps.Stdout, "No records found. Use 'ramprice import' or 'ramprice scrape --save' to add some.\n")
		return nil
	}

	t := newTable(deps.Stdout)
	t.AppendHeader(table.Row{"Date", "Type", "Store", "Capacity", "Brand", "Price", "Price/GB"})
	for _, r := range records {
		t.AppendRow(table.Row{
			r.Date().String(),
			r.ModuleType(),
			r.Store(),
			r.Capacity().String() + "GB",
			r.Brand(),
			"$" + r.UnitPrice().StringFixed(2),
			"$" + r.PricePerGB().StringFixed(4),
		})
	}
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 6, Align: text.AlignRight},
		{Number: 7, Align: text.AlignRight},
	})
	t.Render()
	return nil
}
