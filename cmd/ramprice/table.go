package main

import (
	"fmt"
	"io"

	"github.com/fwojciec/ramprice"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

func newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)
	return t
}

// renderSummaries prints one row per date with the mean price for the day.
func renderSummaries(w io.Writer, summaries []ramprice.DailySummary) {
	if len(summaries) == 0 {
		fmt.Fprintf(w, "No matching records.\n")
		return
	}

	t := newTable(w)
	t.AppendHeader(table.Row{"Date", "Records", string(summaries[0].Metric)})
	for _, s := range summaries {
		t.AppendRow(table.Row{s.Date.String(), s.Records, formatMean(s)})
	}
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
	})
	t.Render()
}

func formatMean(s ramprice.DailySummary) string {
	if s.Metric == ramprice.PerGB {
		return "$" + s.Mean.StringFixed(4)
	}
	return "$" + s.Mean.StringFixed(2)
}

// logSkips reports entries left out of a batch as warnings.
func logSkips(deps *Dependencies, skips []ramprice.Skip) {
	logger := deps.logger()
	for _, s := range skips {
		logger.Warn("skipped entry", "path", s.Path, "entry", s.Entry, "reason", ramprice.ErrorMessage(s.Err))
	}
}
