package logcheck

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

const sampleJSONLog = `{"level":"info","ts":1716259373.1,"logger":"awslimitchecker","caller":"trustedadvisor/poller.go:88","msg":"Beginning TrustedAdvisor poll"}
{"level":"warn","ts":1716259373.2,"logger":"awslimitchecker","caller":"trustedadvisor/poller.go:140","function":"github.com/limitlens/limitlens/internal/trustedadvisor._get_limit_check_id","msg":"Cannot check TrustedAdvisor: %s","args":["AWS Premium Support Subscription is required to use this service."]}

not json at all
{"level":"error","ts":1716259373.3,"logger":"awslimitchecker.ec2","caller":"ec2/usage.go:12","msg":"usage lookup failed for %s after %d attempts","args":["vpc",3]}
{"ts":1716259373.4,"note":"no level or msg"}
`

func TestReadJSON(t *testing.T) {
	logFile, err := ReadJSON(strings.NewReader(sampleJSONLog))
	require.NoError(t, err)
	require.Equal(t, 2, logFile.Skipped)

	entries := logFile.Entries()
	require.Len(t, entries, 3)

	require.Equal(t, zapcore.InfoLevel, entries[0].Level)
	require.Equal(t, "trustedadvisor", entries[0].Module)
	require.Equal(t, "poller.go", entries[0].File)
	require.Equal(t, 88, entries[0].Line)

	require.Equal(t, "_get_limit_check_id", entries[1].Function)
	require.Equal(t, "trustedadvisor", entries[1].Module)

	require.Equal(t, "awslimitchecker.ec2", entries[2].Name)
	require.Equal(t, []any{"vpc", int64(3)}, entries[2].Args)

	helper := NewHelper(logFile)
	require.Equal(t, 1, helper.PollCount())
	require.Equal(t, []string{
		"awslimitchecker.ec2:ec2. (usage.go:12) ERROR - usage lookup failed for %s after %d attempts [vpc 3]",
	}, helper.Unexpected(false))
}

func TestOpenJSONGzip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "limitlens.log.gz")

	file, err := os.Create(path)
	require.NoError(t, err)
	gz := gzip.NewWriter(file)
	_, err = gz.Write([]byte(sampleJSONLog))
	require.NoError(t, err)
	require.NoError(t, gz.Close())
	require.NoError(t, file.Close())

	logFile, err := OpenJSON(path)
	require.NoError(t, err)
	require.Equal(t, path, logFile.Path)
	require.Len(t, logFile.Entries(), 3)
}

func TestOpenJSONMissingFile(t *testing.T) {
	_, err := OpenJSON(filepath.Join(t.TempDir(), "missing.log"))
	require.Error(t, err)
}

func TestReadJSONSkipsOversizedLine(t *testing.T) {
	huge := `{"level":"error","msg":"` + strings.Repeat("x", 2*maxLineSize) + `"}`
	input := `{"level":"error","msg":"first"}` + "\n" + huge + "\n" + `{"level":"error","msg":"after"}`

	logFile, err := ReadJSON(strings.NewReader(input))
	require.NoError(t, err)
	require.Equal(t, 1, logFile.Skipped)

	entries := logFile.Entries()
	require.Len(t, entries, 2)
	require.Equal(t, "first", entries[0].Message)
	require.Equal(t, "after", entries[1].Message)
}

func TestReadJSONOversizedLastLine(t *testing.T) {
	input := `{"level":"warn","msg":"kept"}` + "\n" + strings.Repeat("y", maxLineSize+1)

	logFile, err := ReadJSON(strings.NewReader(input))
	require.NoError(t, err)
	require.Equal(t, 1, logFile.Skipped)
	require.Len(t, logFile.Entries(), 1)
}
