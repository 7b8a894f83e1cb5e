package output

import (
	"fmt"
	"strings"

	"github.com/limitlens/limitlens/internal/core"
	"github.com/limitlens/limitlens/internal/fixtures"
	"github.com/limitlens/limitlens/internal/logcheck"
)

// Format represents an output format.
type Format string

const (
	FormatTable    Format = "table"
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
	FormatMarkdown Format = "markdown"
)

// Formatter renders limit datasets and scan reports.
type Formatter interface {
	FormatLimits(dataset fixtures.Dataset) (string, error)
	FormatReports(reports []*logcheck.Report) (string, error)
}

// ParseFormat validates and normalizes a format string.
func ParseFormat(value string) (Format, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	switch normalized {
	case "", string(FormatTable):
		return FormatTable, nil
	case string(FormatJSON):
		return FormatJSON, nil
	case string(FormatYAML), "yml":
		return FormatYAML, nil
	case string(FormatMarkdown), "md":
		return FormatMarkdown, nil
	default:
		return "", fmt.Errorf("unsupported output format: %s", value)
	}
}

// NewFormatter returns a formatter for the requested format.
func NewFormatter(format Format) Formatter {
	switch format {
	case FormatJSON:
		return &JSONFormatter{Indent: true}
	case FormatYAML:
		return &YAMLFormatter{}
	case FormatMarkdown:
		return &MarkdownFormatter{}
	default:
		return &TableFormatter{}
	}
}

// LimitRow is the flattened, serializable view of a limit.
type LimitRow struct {
	Service   string           `json:"service" yaml:"service"`
	Name      string           `json:"name" yaml:"name"`
	Type      string           `json:"type,omitempty" yaml:"type,omitempty"`
	Subtype   string           `json:"subtype,omitempty" yaml:"subtype,omitempty"`
	Default   int              `json:"default" yaml:"default"`
	Override  *int             `json:"override,omitempty" yaml:"override,omitempty"`
	API       *int             `json:"api,omitempty" yaml:"api,omitempty"`
	TA        *int             `json:"trusted_advisor,omitempty" yaml:"trusted_advisor,omitempty"`
	Effective int              `json:"effective" yaml:"effective"`
	Source    core.LimitSource `json:"source" yaml:"source"`
	Warn      int              `json:"warn_percent" yaml:"warn_percent"`
	Crit      int              `json:"crit_percent" yaml:"crit_percent"`
}

// LimitRows flattens dataset ordered by service, then limit name.
func LimitRows(dataset fixtures.Dataset) []LimitRow {
	rows := []LimitRow{}
	dataset.Each(func(l *core.Limit) {
		row := LimitRow{
			Service:   l.Service(),
			Name:      l.Name(),
			Type:      l.LimitType(),
			Subtype:   l.LimitSubtype(),
			Default:   l.DefaultLimit(),
			Effective: l.EffectiveLimit(),
			Source:    l.Source(),
			Warn:      l.WarnPercent(),
			Crit:      l.CritPercent(),
		}
		if v, ok := l.LimitOverride(); ok {
			row.Override = &v
		}
		if v, ok := l.APILimit(); ok {
			row.API = &v
		}
		if v, ok := l.TALimit(); ok {
			row.TA = &v
		}
		rows = append(rows, row)
	})
	return rows
}

func optional(value *int) string {
	if value == nil {
		return "-"
	}
	return fmt.Sprintf("%d", *value)
}
