package logcheck

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap/zapcore"
)

const (
	// PollMarker is logged once at the start of every Trusted Advisor poll.
	PollMarker = "Beginning TrustedAdvisor poll"

	// EndpointErrorMarker prefixes connectivity warnings raised when an AWS
	// endpoint cannot be reached.
	EndpointErrorMarker = "Could not connect to the endpoint URL:"

	taSubscriptionMessage = "Cannot check TrustedAdvisor: %s"
	taSubscriptionArg     = "AWS Premium Support Subscription is required to use this service."
)

// SuppressionRule marks a known, non-actionable log pattern.
type SuppressionRule struct {
	Name  string
	Match func(Entry) bool
}

// TrustedAdvisorSubscriptionRule matches the warning logged when the account
// has no premium support subscription and Trusted Advisor cannot be used.
var TrustedAdvisorSubscriptionRule = SuppressionRule{
	Name: "trusted-advisor-subscription",
	Match: func(e Entry) bool {
		return e.Level == zapcore.WarnLevel &&
			e.Module == "trustedadvisor" &&
			e.Function == "_get_limit_check_id" &&
			e.Message == taSubscriptionMessage &&
			argsEqual(e.Args, []string{taSubscriptionArg})
	},
}

// EndpointErrorRule matches transient endpoint connectivity warnings.
var EndpointErrorRule = SuppressionRule{
	Name: "endpoint-connectivity",
	Match: func(e Entry) bool {
		if e.Level != zapcore.WarnLevel {
			return false
		}
		first, ok := e.FirstArg()
		return ok && strings.Contains(first, EndpointErrorMarker)
	},
}

// DefaultRules are always applied by Helper.Unexpected.
func DefaultRules() []SuppressionRule {
	return []SuppressionRule{TrustedAdvisorSubscriptionRule}
}

// RuleSpec describes a suppression rule declaratively. Every non-empty field
// must match; Args, when set, must equal the entry's arguments exactly.
type RuleSpec struct {
	Name             string   `mapstructure:"name" yaml:"name"`
	Level            string   `mapstructure:"level" yaml:"level"`
	Module           string   `mapstructure:"module" yaml:"module"`
	Function         string   `mapstructure:"function" yaml:"function"`
	Message          string   `mapstructure:"message" yaml:"message"`
	Args             []string `mapstructure:"args" yaml:"args"`
	FirstArgContains string   `mapstructure:"first_arg_contains" yaml:"first_arg_contains"`
}

// RuleFromSpec compiles a RuleSpec into a SuppressionRule.
func RuleFromSpec(spec RuleSpec) (SuppressionRule, error) {
	if spec.Level == "" && spec.Module == "" && spec.Function == "" &&
		spec.Message == "" && spec.Args == nil && spec.FirstArgContains == "" {
		return SuppressionRule{}, errors.New("suppression rule has no match criteria")
	}

	var (
		level    zapcore.Level
		hasLevel bool
	)
	if spec.Level != "" {
		parsed, err := ParseLevel(spec.Level)
		if err != nil {
			return SuppressionRule{}, fmt.Errorf("suppression rule %q: %w", spec.Name, err)
		}
		level, hasLevel = parsed, true
	}

	name := spec.Name
	if name == "" {
		name = "custom"
	}

	return SuppressionRule{
		Name: name,
		Match: func(e Entry) bool {
			if hasLevel && e.Level != level {
				return false
			}
			if spec.Module != "" && e.Module != spec.Module {
				return false
			}
			if spec.Function != "" && e.Function != spec.Function {
				return false
			}
			if spec.Message != "" && e.Message != spec.Message {
				return false
			}
			if spec.Args != nil && !argsEqual(e.Args, spec.Args) {
				return false
			}
			if spec.FirstArgContains != "" {
				first, ok := e.FirstArg()
				if !ok || !strings.Contains(first, spec.FirstArgContains) {
					return false
				}
			}
			return true
		},
	}, nil
}

// ParseLevel accepts zap level names plus "warning".
func ParseLevel(value string) (zapcore.Level, error) {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "warning" {
		value = "warn"
	}
	return zapcore.ParseLevel(value)
}

func argsEqual(got []any, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range want {
		s, ok := got[i].(string)
		if !ok || s != want[i] {
			return false
		}
	}
	return true
}
