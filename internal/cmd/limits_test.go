package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLimitsCommand(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	defer rootCmd.SetOut(nil)

	rootCmd.SetArgs([]string{"limits", "--api", "--output", "yaml"})
	require.NoError(t, rootCmd.Execute())
	require.Contains(t, out.String(), "name: zzz limit4")
	require.Contains(t, out.String(), "override: 99")

	out.Reset()
	rootCmd.SetArgs([]string{"limits", "--api=false", "--output", "markdown"})
	require.NoError(t, rootCmd.Execute())
	require.NotContains(t, out.String(), "zzz limit4")
	require.Contains(t, out.String(), "| SvcBar | bar limit2 |")
}

func TestLimitsCommandRejectsFormat(t *testing.T) {
	rootCmd.SetArgs([]string{"limits", "--output", "csv"})
	require.Error(t, rootCmd.Execute())
}
