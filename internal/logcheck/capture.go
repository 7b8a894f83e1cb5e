package logcheck

import (
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// ArgsKey is the field holding positional arguments for a message template.
const ArgsKey = "args"

// Args attaches positional arguments to a templated log message, keeping the
// template itself as the message so captures can match on it.
func Args(args ...any) zap.Field {
	return zap.Reflect(ArgsKey, args)
}

// Capture is a Source backed by a zap observer core.
type Capture struct {
	logs *observer.ObservedLogs
}

// NewObserved returns a logger whose output is recorded by the returned Capture.
func NewObserved(level zapcore.LevelEnabler) (*zap.Logger, *Capture) {
	core, logs := observer.New(level)
	return zap.New(core, zap.AddCaller()), &Capture{logs: logs}
}

// Entries converts everything observed so far, in logging order.
func (c *Capture) Entries() []Entry {
	if c == nil || c.logs == nil {
		return nil
	}
	observed := c.logs.All()
	entries := make([]Entry, 0, len(observed))
	for _, logged := range observed {
		entries = append(entries, fromObserved(logged))
	}
	return entries
}

// Len reports the number of observed entries.
func (c *Capture) Len() int {
	if c == nil || c.logs == nil {
		return 0
	}
	return c.logs.Len()
}

// Reset discards everything observed so far.
func (c *Capture) Reset() {
	if c == nil || c.logs == nil {
		return
	}
	_ = c.logs.TakeAll()
}

func fromObserved(logged observer.LoggedEntry) Entry {
	module, function := splitFunction(logged.Caller.Function)
	entry := Entry{
		Name:     logged.LoggerName,
		Level:    logged.Level,
		Module:   module,
		Function: function,
		Message:  logged.Message,
	}
	if logged.Caller.Defined {
		entry.File = filepath.Base(logged.Caller.File)
		entry.Line = logged.Caller.Line
	}
	for _, field := range logged.Context {
		if field.Key != ArgsKey {
			continue
		}
		if args, ok := field.Interface.([]any); ok {
			entry.Args = args
		}
	}
	return entry
}
