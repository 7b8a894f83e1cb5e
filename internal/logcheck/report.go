package logcheck

// Report summarizes a scan of one Source.
type Report struct {
	Source     string  `json:"source" yaml:"source"`
	Total      int     `json:"total" yaml:"total"`
	Skipped    int     `json:"skipped,omitempty" yaml:"skipped,omitempty"`
	Polls      int     `json:"trusted_advisor_polls" yaml:"trusted_advisor_polls"`
	Unexpected []Entry `json:"unexpected" yaml:"unexpected"`
}

// Clean reports whether the scan found no unexpected entries.
func (r *Report) Clean() bool {
	return r == nil || len(r.Unexpected) == 0
}

// Report scans the current contents of the helper's source.
func (h *Helper) Report(name string, allowEndpointError bool) *Report {
	report := &Report{
		Source:     name,
		Total:      len(h.Entries()),
		Polls:      h.PollCount(),
		Unexpected: h.UnexpectedEntries(allowEndpointError),
	}
	if h == nil {
		return report
	}
	if file, ok := h.source.(*LogFile); ok && file != nil {
		report.Skipped = file.Skipped
	}
	return report
}
