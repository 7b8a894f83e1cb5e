package logcheck

import (
	"strings"

	"go.uber.org/zap/zapcore"
)

// Helper answers queries over a live Source.
type Helper struct {
	source Source
	rules  []SuppressionRule
}

// Option configures a Helper.
type Option func(*Helper)

// WithRules appends suppression rules after the defaults.
func WithRules(rules ...SuppressionRule) Option {
	return func(h *Helper) {
		for _, rule := range rules {
			if rule.Match != nil {
				h.rules = append(h.rules, rule)
			}
		}
	}
}

// NewHelper wraps source. A nil source behaves as an empty capture.
func NewHelper(source Source, opts ...Option) *Helper {
	h := &Helper{
		source: source,
		rules:  DefaultRules(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(h)
		}
	}
	return h
}

// Entries returns the current contents of the source.
func (h *Helper) Entries() []Entry {
	if h == nil || h.source == nil {
		return nil
	}
	return h.source.Entries()
}

// AtLevel returns, in order, every entry logged at exactly level.
func (h *Helper) AtLevel(level zapcore.Level) []Entry {
	return h.filter(func(e Entry) bool { return e.Level == level })
}

// AtOrAboveLevel returns, in order, every entry logged at level or higher.
func (h *Helper) AtOrAboveLevel(level zapcore.Level) []Entry {
	return h.filter(func(e Entry) bool { return e.Level >= level })
}

// FailureMessage renders entries one per line for assertion failure output.
func (h *Helper) FailureMessage(entries []Entry) string {
	var b strings.Builder
	for _, e := range entries {
		b.WriteString(e.String())
		b.WriteByte('\n')
	}
	return b.String()
}

// Unexpected returns formatted lines for every WARN-or-above entry that no
// suppression rule matches. With allowEndpointError, endpoint connectivity
// warnings are suppressed as well.
func (h *Helper) Unexpected(allowEndpointError bool) []string {
	entries := h.UnexpectedEntries(allowEndpointError)
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		lines = append(lines, e.String())
	}
	return lines
}

// UnexpectedEntries is Unexpected without the formatting step.
func (h *Helper) UnexpectedEntries(allowEndpointError bool) []Entry {
	rules := h.activeRules(allowEndpointError)
	res := []Entry{}
	for _, e := range h.AtOrAboveLevel(zapcore.WarnLevel) {
		if suppressed(rules, e) {
			continue
		}
		res = append(res, e)
	}
	return res
}

// PollCount returns how many Trusted Advisor polls were started.
func (h *Helper) PollCount() int {
	count := 0
	for _, e := range h.Entries() {
		if strings.Contains(e.Message, PollMarker) {
			count++
		}
	}
	return count
}

func (h *Helper) activeRules(allowEndpointError bool) []SuppressionRule {
	if h == nil {
		return nil
	}
	rules := make([]SuppressionRule, 0, len(h.rules)+1)
	rules = append(rules, h.rules...)
	if allowEndpointError {
		rules = append(rules, EndpointErrorRule)
	}
	return rules
}

func (h *Helper) filter(keep func(Entry) bool) []Entry {
	res := []Entry{}
	for _, e := range h.Entries() {
		if keep(e) {
			res = append(res, e)
		}
	}
	return res
}

func suppressed(rules []SuppressionRule, e Entry) bool {
	for _, rule := range rules {
		if rule.Match(e) {
			return true
		}
	}
	return false
}
