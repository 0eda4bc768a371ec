package main

import (
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/pdiddy/gnd-harvest/internal/gnd"
)

// renderFailures lists identifiers that produced no record.
func renderFailures(failures []gnd.Failure) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.SetTitle("Failed identifiers")
	tw.AppendHeader(table.Row{"#", "GND ID", "Reason"})
	for i, f := range failures {
		tw.AppendRow(table.Row{strconv.Itoa(i + 1), f.ID, f.Reason})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight, AlignHeader: text.AlignLeft},
		{Number: 3, WidthMax: 60},
	})
	return tw.Render()
}
