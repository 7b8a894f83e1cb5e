package logcheck

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"strconv"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/valyala/fastjson"
)

const maxLineSize = 1024 * 1024

// LogFile is a Source over zap JSON log lines read from disk.
type LogFile struct {
	Path    string
	Skipped int

	entries []Entry
}

// Entries returns a copy of the decoded entries in file order.
func (f *LogFile) Entries() []Entry {
	if f == nil {
		return nil
	}
	out := make([]Entry, len(f.entries))
	copy(out, f.entries)
	return out
}

// OpenJSON reads a zap JSON log file. Files ending in .gz are decompressed.
func OpenJSON(filePath string) (*LogFile, error) {
	file, err := os.Open(filePath) // nolint:gosec // path supplied by the operator
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	defer file.Close() // nolint:errcheck // read-only file

	var reader io.Reader = file
	if strings.HasSuffix(filePath, ".gz") {
		gz, err := gzip.NewReader(file)
		if err != nil {
			return nil, fmt.Errorf("open gzip log file %s: %w", filePath, err)
		}
		defer gz.Close() // nolint:errcheck // read-only stream
		reader = gz
	}

	logFile, err := ReadJSON(reader)
	if err != nil {
		return nil, fmt.Errorf("read log file %s: %w", filePath, err)
	}
	logFile.Path = filePath
	return logFile, nil
}

var parserPool fastjson.ParserPool

// ReadJSON decodes one zap JSON object per line. Blank lines are ignored.
// Lines that are not log objects, or are longer than maxLineSize, are counted
// in Skipped.
func ReadJSON(r io.Reader) (*LogFile, error) {
	logFile := &LogFile{}
	parser := parserPool.Get()
	defer parserPool.Put(parser)

	reader := bufio.NewReaderSize(r, 64*1024)
	var (
		line    []byte
		tooLong bool
	)
	for {
		chunk, err := reader.ReadSlice('\n')
		if !tooLong && len(line)+len(chunk) > maxLineSize {
			tooLong = true
			line = line[:0]
		}
		if !tooLong {
			line = append(line, chunk...)
		}
		if errors.Is(err, bufio.ErrBufferFull) {
			continue
		}

		if tooLong {
			logFile.Skipped++
		} else {
			logFile.addLine(parser, line)
		}
		line = line[:0]
		tooLong = false

		if errors.Is(err, io.EOF) {
			return logFile, nil
		}
		if err != nil {
			return nil, err
		}
	}
}

func (f *LogFile) addLine(parser *fastjson.Parser, raw []byte) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return
	}
	v, err := parser.ParseBytes(raw)
	if err != nil || v.Type() != fastjson.TypeObject {
		f.Skipped++
		return
	}
	entry, ok := decodeEntry(v)
	if !ok {
		f.Skipped++
		return
	}
	f.entries = append(f.entries, entry)
}

func decodeEntry(v *fastjson.Value) (Entry, bool) {
	if !v.Exists("msg") || !v.Exists("level") {
		return Entry{}, false
	}
	level, err := ParseLevel(string(v.GetStringBytes("level")))
	if err != nil {
		return Entry{}, false
	}

	entry := Entry{
		Name:    string(v.GetStringBytes("logger")),
		Level:   level,
		Message: string(v.GetStringBytes("msg")),
	}

	caller := string(v.GetStringBytes("caller"))
	if caller != "" {
		file, line := splitCaller(caller)
		entry.File = path.Base(file)
		entry.Line = line
		if dir := path.Dir(file); dir != "." {
			entry.Module = path.Base(dir)
		}
	}
	if fn := string(v.GetStringBytes("function")); fn != "" {
		entry.Module, entry.Function = splitFunction(fn)
	}

	for _, arg := range v.GetArray(ArgsKey) {
		entry.Args = append(entry.Args, decodeArg(arg))
	}
	return entry, true
}

func decodeArg(v *fastjson.Value) any {
	switch v.Type() {
	case fastjson.TypeString:
		return string(v.GetStringBytes())
	case fastjson.TypeNumber:
		if n, err := v.Int64(); err == nil {
			return n
		}
		f, _ := v.Float64()
		return f
	case fastjson.TypeTrue:
		return true
	case fastjson.TypeFalse:
		return false
	case fastjson.TypeNull:
		return nil
	default:
		return v.String()
	}
}

// splitCaller parses zap's "dir/file.go:123" caller form.
func splitCaller(caller string) (string, int) {
	idx := strings.LastIndex(caller, ":")
	if idx < 0 {
		return caller, 0
	}
	line, err := strconv.Atoi(caller[idx+1:])
	if err != nil {
		return caller, 0
	}
	return caller[:idx], line
}
