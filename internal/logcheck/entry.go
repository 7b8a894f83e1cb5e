// Package logcheck inspects captured log output for entries a healthy limit
// check run should never produce.
//
// Entries come from a Source: a live zap observer during tests (see
// NewObserved) or zap JSON log files read from disk (see OpenJSON). The Helper
// never caches what a Source returns, so queries always reflect the current
// capture.
package logcheck

import (
	"fmt"
	"strings"

	"go.uber.org/zap/zapcore"
)

// Entry is a single captured log record.
type Entry struct {
	Name     string        `json:"name" yaml:"name"`
	Level    zapcore.Level `json:"level" yaml:"level"`
	Module   string        `json:"module" yaml:"module"`
	Function string        `json:"function" yaml:"function"`
	File     string        `json:"file" yaml:"file"`
	Line     int           `json:"line" yaml:"line"`
	Message  string        `json:"message" yaml:"message"`
	Args     []any         `json:"args,omitempty" yaml:"args,omitempty"`
}

// Source supplies entries in capture order.
type Source interface {
	Entries() []Entry
}

// String renders the entry as "name:module.function (file:line) LEVEL - message args".
func (e Entry) String() string {
	return fmt.Sprintf("%s:%s.%s (%s:%d) %s - %s %s",
		e.Name,
		e.Module,
		e.Function,
		e.File,
		e.Line,
		e.Level.CapitalString(),
		e.Message,
		formatArgs(e.Args),
	)
}

// FirstArg returns the first positional argument as a string.
func (e Entry) FirstArg() (string, bool) {
	if len(e.Args) == 0 {
		return "", false
	}
	if s, ok := e.Args[0].(string); ok {
		return s, true
	}
	return fmt.Sprint(e.Args[0]), true
}

func formatArgs(args []any) string {
	parts := make([]string, 0, len(args))
	for _, arg := range args {
		parts = append(parts, fmt.Sprint(arg))
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// splitFunction turns a runtime function name such as
// "github.com/org/repo/internal/trustedadvisor.(*Poller).getLimitCheckID"
// into its package ("trustedadvisor") and function ("getLimitCheckID").
// Type parameter placeholders ("[...]") are dropped and the runtime's "%2e"
// escape in package names is undone.
func splitFunction(fn string) (string, string) {
	if fn == "" {
		return "", ""
	}
	rest := fn
	if slash := strings.LastIndex(rest, "/"); slash >= 0 {
		rest = rest[slash+1:]
	}
	rest = strings.ReplaceAll(rest, "[...]", "")

	dot := strings.Index(rest, ".(")
	if dot < 0 {
		dot = strings.Index(rest, ".")
	}
	if dot < 0 {
		return unescapePackage(rest), ""
	}
	module, name := unescapePackage(rest[:dot]), rest[dot+1:]
	if strings.HasPrefix(name, "(") {
		if end := strings.Index(name, ")."); end >= 0 {
			name = name[end+2:]
		}
	}
	return module, name
}

func unescapePackage(name string) string {
	return strings.ReplaceAll(name, "%2e", ".")
}
