package output

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/limitlens/limitlens/internal/core"
	"github.com/limitlens/limitlens/internal/fixtures"
	"github.com/limitlens/limitlens/internal/logcheck"
)

func sampleReports() []*logcheck.Report {
	return []*logcheck.Report{
		{
			Source: "run.log",
			Total:  4,
			Polls:  2,
			Unexpected: []logcheck.Entry{
				{
					Name:     "awslimitchecker",
					Level:    zapcore.ErrorLevel,
					Module:   "ec2",
					Function: "findUsage",
					File:     "usage.go",
					Line:     12,
					Message:  "usage lookup failed for %s",
					Args:     []any{"vpc"},
				},
			},
		},
		{Source: "clean.log", Total: 1},
	}
}

func TestParseFormat(t *testing.T) {
	format, err := ParseFormat("table")
	require.NoError(t, err)
	require.Equal(t, FormatTable, format)

	format, err = ParseFormat("JSON")
	require.NoError(t, err)
	require.Equal(t, FormatJSON, format)

	format, err = ParseFormat("yml")
	require.NoError(t, err)
	require.Equal(t, FormatYAML, format)

	format, err = ParseFormat("")
	require.NoError(t, err)
	require.Equal(t, FormatTable, format)

	_, err = ParseFormat("csv")
	require.Error(t, err)
}

func TestLimitRows(t *testing.T) {
	rows := LimitRows(fixtures.SampleLimitsAPI())
	require.Len(t, rows, 4)

	bar2 := rows[0]
	require.Equal(t, "bar limit2", bar2.Name)
	require.NotNil(t, bar2.Override)
	require.Equal(t, 99, *bar2.Override)
	require.NotNil(t, bar2.API)
	require.Equal(t, 2, *bar2.API)
	require.Nil(t, bar2.TA)
	require.Equal(t, core.LimitSourceOverride, bar2.Source)

	zzz := rows[3]
	require.Equal(t, "zzz limit4", zzz.Name)
	require.Equal(t, 34, zzz.Effective)
}

func TestJSONFormatter(t *testing.T) {
	formatter := NewFormatter(FormatJSON)

	rendered, err := formatter.FormatLimits(fixtures.SampleLimits())
	require.NoError(t, err)
	var rows []LimitRow
	require.NoError(t, json.Unmarshal([]byte(rendered), &rows))
	require.Len(t, rows, 3)
	require.Contains(t, rendered, "\"trusted_advisor\": 10")

	rendered, err = formatter.FormatReports(sampleReports())
	require.NoError(t, err)
	require.Contains(t, rendered, "\"level\": \"error\"")
	require.Contains(t, rendered, "\"trusted_advisor_polls\": 2")

	rendered, err = formatter.FormatReports(nil)
	require.NoError(t, err)
	require.Equal(t, "[]", rendered)
}

func TestYAMLFormatter(t *testing.T) {
	formatter := NewFormatter(FormatYAML)

	rendered, err := formatter.FormatLimits(fixtures.SampleLimitsAPI())
	require.NoError(t, err)
	var rows []map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(rendered), &rows))
	require.Len(t, rows, 4)
	require.Equal(t, "SvcBar", rows[0]["service"])
	require.Equal(t, 99, rows[0]["override"])

	rendered, err = formatter.FormatReports(sampleReports())
	require.NoError(t, err)
	require.Contains(t, rendered, "source: run.log")
	require.Contains(t, rendered, "level: error")
}

func TestTableFormatter(t *testing.T) {
	formatter := NewFormatter(FormatTable)

	rendered, err := formatter.FormatLimits(fixtures.SampleLimits())
	require.NoError(t, err)
	require.Contains(t, rendered, "bar limit2")
	require.Contains(t, rendered, "ltfoo3/sltfoo3")
	require.Contains(t, strings.ToLower(rendered), "3 limits")

	rendered, err = formatter.FormatReports(sampleReports())
	require.NoError(t, err)
	require.Contains(t, rendered, "ec2.findUsage (usage.go:12)")
	require.Contains(t, strings.ToLower(rendered), "1 unexpected")

	rendered, err = formatter.FormatReports([]*logcheck.Report{{Source: "clean.log"}})
	require.NoError(t, err)
	require.Contains(t, strings.ToLower(rendered), "clean")
}

func TestMarkdownFormatter(t *testing.T) {
	formatter := NewFormatter(FormatMarkdown)

	rendered, err := formatter.FormatLimits(fixtures.SampleLimits())
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(rendered, "| Service |"))
	require.Contains(t, rendered, "| SvcFoo | foo limit3 | 3 | - | - | 10 | 10 | trusted_advisor |")

	rendered, err = formatter.FormatReports(sampleReports())
	require.NoError(t, err)
	require.Contains(t, rendered, "## run.log")
	require.Contains(t, rendered, "No unexpected log entries.")
}

func TestMarkdownEscaping(t *testing.T) {
	require.Equal(t, "a\\|b", escapeMarkdownCell("a|b"))
}
