package output

import (
	"fmt"
	"strings"

	"github.com/limitlens/limitlens/internal/fixtures"
	"github.com/limitlens/limitlens/internal/logcheck"
)

// MarkdownFormatter renders results as markdown tables.
type MarkdownFormatter struct{}

// FormatLimits renders a dataset as Markdown.
func (f *MarkdownFormatter) FormatLimits(dataset fixtures.Dataset) (string, error) {
	var sb strings.Builder
	sb.WriteString("| Service | Limit | Default | Override | API | TA | Effective | Source |\n")
	sb.WriteString("|---------|-------|---------|----------|-----|----|-----------|--------|\n")

	for _, r := range LimitRows(dataset) {
		sb.WriteString(fmt.Sprintf("| %s | %s | %d | %s | %s | %s | %d | %s |\n",
			escapeMarkdownCell(r.Service),
			escapeMarkdownCell(r.Name),
			r.Default,
			optional(r.Override),
			optional(r.API),
			optional(r.TA),
			r.Effective,
			r.Source,
		))
	}
	return sb.String(), nil
}

// FormatReports renders each report as a section listing unexpected entries.
func (f *MarkdownFormatter) FormatReports(reports []*logcheck.Report) (string, error) {
	var sb strings.Builder
	for _, report := range reports {
		if report == nil {
			continue
		}
		sb.WriteString(fmt.Sprintf("## %s\n\n", escapeMarkdownCell(report.Source)))
		sb.WriteString(fmt.Sprintf("%d entries, %d Trusted Advisor polls\n\n", report.Total, report.Polls))
		if report.Clean() {
			sb.WriteString("No unexpected log entries.\n\n")
			continue
		}
		for _, e := range report.Unexpected {
			sb.WriteString(fmt.Sprintf("- `%s`\n", strings.ReplaceAll(e.String(), "`", "'")))
		}
		sb.WriteString("\n")
	}
	return sb.String(), nil
}

func escapeMarkdownCell(value string) string {
	return strings.ReplaceAll(value, "|", "\\|")
}
