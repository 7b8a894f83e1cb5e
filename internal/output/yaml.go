package output

import (
	"gopkg.in/yaml.v3"

	"github.com/limitlens/limitlens/internal/fixtures"
	"github.com/limitlens/limitlens/internal/logcheck"
)

// YAMLFormatter renders results as YAML documents.
type YAMLFormatter struct{}

// FormatLimits renders a dataset as a YAML list of limits.
func (f *YAMLFormatter) FormatLimits(dataset fixtures.Dataset) (string, error) {
	data, err := yaml.Marshal(LimitRows(dataset))
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// FormatReports renders scan reports as a YAML list.
func (f *YAMLFormatter) FormatReports(reports []*logcheck.Report) (string, error) {
	if reports == nil {
		reports = []*logcheck.Report{}
	}
	data, err := yaml.Marshal(reports)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
