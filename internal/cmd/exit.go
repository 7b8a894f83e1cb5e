package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	gferrors "github.com/fulmenhq/gofulmen/errors"
	"github.com/fulmenhq/gofulmen/foundry"
	"github.com/fulmenhq/gofulmen/logging"
	"go.uber.org/zap"

	apperrors "github.com/limitlens/limitlens/internal/errors"
	"github.com/limitlens/limitlens/internal/observability"
)

// ExitWithError exits with the semantic exit code matching err. Scan
// findings exit with ExitFailure without being logged as a fault.
func ExitWithError(ctx context.Context, err error) {
	if errors.Is(err, errUnexpectedEntries) {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(failureExitCode())
	}

	envelope, exitCode := resolveExit(ctx, err)
	ExitWithCode(observability.CLILogger, exitCode, envelope.Message, envelope)
}

// resolveExit turns err into an envelope tagged with the run's correlation ID
// and picks its exit code.
func resolveExit(ctx context.Context, err error) (*gferrors.ErrorEnvelope, foundry.ExitCode) {
	envelope := apperrors.EnsureEnvelope(ctx, err)
	return envelope, apperrors.ExitCodeFromEnvelope(envelope)
}

// ExitWithCode exits the program with a semantic foundry exit code and logs the error.
//
// Parameters:
//   - logger: The logger to use for error output (can be nil for early failures)
//   - exitCode: The foundry exit code constant (e.g., foundry.ExitConfigInvalid)
//   - msg: Human-readable error message
//   - err: The underlying error (can be nil)
func ExitWithCode(logger *logging.Logger, exitCode foundry.ExitCode, msg string, err error) {
	info, ok := foundry.GetExitCodeInfo(exitCode)
	if !ok {
		fmt.Fprintf(os.Stderr, "FATAL: %s: %v (exit code: %d)\n", msg, err, exitCode)
		os.Exit(int(exitCode))
	}

	if logger == nil {
		ExitWithCodeStderr(exitCode, msg, err)
		return
	}

	fields := []zap.Field{
		zap.Int("exit_code", info.Code),
		zap.String("exit_name", info.Name),
		zap.String("exit_category", info.Category),
	}
	if envelope, ok := err.(*gferrors.ErrorEnvelope); ok {
		fields = append(fields,
			zap.String("error_code", envelope.Code),
			zap.String("correlation_id", envelope.CorrelationID),
		)
		if envelope.Context != nil {
			fields = append(fields, zap.Any("error_context", envelope.Context))
		}
	} else if err != nil {
		fields = append(fields, zap.Error(err))
	}
	logger.Error(msg, fields...)

	os.Exit(info.Code)
}

// ExitWithCodeStderr is a variant that writes to stderr without a logger.
// Use this for early failures before logger initialization.
func ExitWithCodeStderr(exitCode foundry.ExitCode, msg string, err error) {
	info, ok := foundry.GetExitCodeInfo(exitCode)
	if !ok {
		fmt.Fprintf(os.Stderr, "FATAL: %s: %v (exit code: %d)\n", msg, err, exitCode)
		os.Exit(int(exitCode))
	}

	if envelope, ok := err.(*gferrors.ErrorEnvelope); ok {
		fmt.Fprintf(os.Stderr, "FATAL: %s [%s] (correlation: %s)\n", msg, envelope.Code, envelope.CorrelationID)
		if wrapped, ok := envelope.Context["wrapped_error"]; ok {
			fmt.Fprintf(os.Stderr, "Underlying error: %v\n", wrapped)
		}
	} else if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: %s: %v\n", msg, err)
	} else {
		fmt.Fprintf(os.Stderr, "FATAL: %s\n", msg)
	}
	fmt.Fprintf(os.Stderr, "Exit Code: %d (%s) - %s\n", info.Code, info.Name, info.Description)

	os.Exit(info.Code)
}

func failureExitCode() int {
	info, ok := foundry.GetExitCodeInfo(foundry.ExitFailure)
	if !ok {
		return 1
	}
	return info.Code
}
