package output

import (
	"encoding/json"

	"github.com/limitlens/limitlens/internal/fixtures"
	"github.com/limitlens/limitlens/internal/logcheck"
)

// JSONFormatter renders results as JSON.
type JSONFormatter struct {
	Indent bool
}

// FormatLimits renders a dataset as a JSON array of limits.
func (f *JSONFormatter) FormatLimits(dataset fixtures.Dataset) (string, error) {
	return f.marshal(LimitRows(dataset))
}

// FormatReports renders scan reports as a JSON array.
func (f *JSONFormatter) FormatReports(reports []*logcheck.Report) (string, error) {
	if reports == nil {
		reports = []*logcheck.Report{}
	}
	return f.marshal(reports)
}

func (f *JSONFormatter) marshal(value any) (string, error) {
	var (
		data []byte
		err  error
	)

	if f.Indent {
		data, err = json.MarshalIndent(value, "", "  ")
	} else {
		data, err = json.Marshal(value)
	}
	if err != nil {
		return "", err
	}

	return string(data), nil
}
