package cmd

import (
	"context"
	"testing"

	"github.com/fulmenhq/gofulmen/foundry"
	"github.com/stretchr/testify/require"

	apperrors "github.com/limitlens/limitlens/internal/errors"
	"github.com/limitlens/limitlens/internal/logcheck"
)

func TestResolveExitPollMismatch(t *testing.T) {
	ctx := apperrors.WithCorrelationID(context.Background(), "run-polls")

	err := checkReports([]*logcheck.Report{{Polls: 1}}, scanOptions{ExpectedPolls: 2})
	require.Error(t, err)

	envelope, code := resolveExit(ctx, err)
	require.Equal(t, "INTERNAL_ERROR", envelope.Code)
	require.Equal(t, "run-polls", envelope.CorrelationID)
	require.Equal(t, "expected 2 Trusted Advisor polls, found 1", envelope.Message)
	require.Equal(t, foundry.ExitFailure, code)
}

func TestResolveExitKeepsEnvelope(t *testing.T) {
	ctx := NewRunContext(context.Background())

	_, err := scanFiles([]string{"testdata/missing.log"}, scanOptions{})
	require.Error(t, err)
	wrapped := apperrors.WrapNotFound(ctx, err, "log file not found")

	envelope, code := resolveExit(ctx, wrapped)
	require.Same(t, wrapped, envelope)
	require.Equal(t, foundry.ExitFileNotFound, code)

	id, ok := apperrors.LookupCorrelationID(ctx)
	require.True(t, ok)
	require.Equal(t, id, envelope.CorrelationID)
}
