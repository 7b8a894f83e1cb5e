package output

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/limitlens/limitlens/internal/fixtures"
	"github.com/limitlens/limitlens/internal/logcheck"
)

// TableFormatter renders results as an ASCII table.
type TableFormatter struct{}

// FormatLimits renders a dataset as a table.
func (f *TableFormatter) FormatLimits(dataset fixtures.Dataset) (string, error) {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"Service", "Limit", "Type", "Default", "Override", "API", "TA", "Effective", "Source"})

	rows := LimitRows(dataset)
	for _, r := range rows {
		t.AppendRow(table.Row{
			r.Service,
			r.Name,
			limitType(r),
			r.Default,
			optional(r.Override),
			optional(r.API),
			optional(r.TA),
			r.Effective,
			string(r.Source),
		})
	}
	t.AppendFooter(table.Row{"", "", "", "", "", "", "", "", fmt.Sprintf("%d limits", len(rows))})

	return t.Render(), nil
}

// FormatReports renders one row per unexpected entry plus a per-source summary.
func (f *TableFormatter) FormatReports(reports []*logcheck.Report) (string, error) {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"Source", "Level", "Origin", "Message"})

	unexpected := 0
	for _, report := range reports {
		if report == nil {
			continue
		}
		for _, e := range report.Unexpected {
			t.AppendRow(table.Row{
				report.Source,
				e.Level.CapitalString(),
				fmt.Sprintf("%s.%s (%s:%d)", e.Module, e.Function, e.File, e.Line),
				fmt.Sprintf("%s %v", e.Message, e.Args),
			})
		}
		unexpected += len(report.Unexpected)
	}

	summary := "clean"
	if unexpected > 0 {
		summary = fmt.Sprintf("%d unexpected", unexpected)
	}
	t.AppendFooter(table.Row{"", "", "", summary})

	return t.Render(), nil
}

func limitType(r LimitRow) string {
	if r.Subtype == "" {
		return r.Type
	}
	return r.Type + "/" + r.Subtype
}
