package report

// Console summary of the records that went into a chart (--summary).

import (
	"fmt"
	"io"

	"activity-charts/internal/activity"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// WriteSummary renders records as a table under a "source: title" heading.
func WriteSummary(w io.Writer, source, title string, records []activity.Record) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	style := table.StyleLight
	style.Format.Footer = text.FormatDefault
	t.SetStyle(style)
	t.SetTitle(fmt.Sprintf("%s: %s", source, title))
	t.AppendHeader(table.Row{"#", "Name", "Time", "Hours"})

	var total int64
	for i, r := range records {
		t.AppendRow(table.Row{i + 1, r.Label, activity.FormatDuration(r.Seconds), fmt.Sprintf("%.1f", r.Hours())})
		total += r.Seconds
	}
	t.AppendFooter(table.Row{"", "Total", activity.FormatDuration(total), fmt.Sprintf("%.1f", float64(total)/3600)})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
	})
	t.Render()
}

// Writer adapts WriteSummary to the pipeline summary hook.
func Writer(w io.Writer) func(source, title string, records []activity.Record) {
	return func(source, title string, records []activity.Record) {
		WriteSummary(w, source, title, records)
	}
}
