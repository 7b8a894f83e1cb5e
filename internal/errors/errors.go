package errors

import (
	"context"
	stderrors "errors"

	"github.com/fulmenhq/gofulmen/errors"
	"github.com/fulmenhq/gofulmen/foundry"
	"github.com/google/uuid"
)

// Wrap functions for existing errors.
// The context carries the run's correlation ID (see WithCorrelationID).

func WrapInvalidInput(ctx context.Context, err error, message string) *errors.ErrorEnvelope {
	return wrap(ctx, "INVALID_INPUT", err, message)
}

func WrapNotFound(ctx context.Context, err error, message string) *errors.ErrorEnvelope {
	return wrap(ctx, "NOT_FOUND", err, message)
}

func WrapConfigInvalid(ctx context.Context, err error, message string) *errors.ErrorEnvelope {
	return wrap(ctx, "CONFIG_INVALID", err, message)
}

func WrapDataProcessing(ctx context.Context, err error, message string) *errors.ErrorEnvelope {
	return wrap(ctx, "DATA_PROCESSING_ERROR", err, message)
}

func wrap(ctx context.Context, code string, err error, message string) *errors.ErrorEnvelope {
	correlationID := CorrelationID(ctx)
	envelope := errors.NewErrorEnvelope(code, message)
	envelope = envelope.WithCorrelationID(correlationID)
	envelope = envelope.WithTraceID(correlationID)
	return withWrappedError(envelope, err)
}

type correlationKey struct{}

// WithCorrelationID stores a correlation ID for envelopes created from ctx.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, correlationKey{}, id)
}

// LookupCorrelationID returns the ID stored in ctx, if any.
func LookupCorrelationID(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	id, ok := ctx.Value(correlationKey{}).(string)
	return id, ok && id != ""
}

// CorrelationID returns the ID stored in ctx, generating one when absent.
func CorrelationID(ctx context.Context) string {
	if id, ok := LookupCorrelationID(ctx); ok {
		return id
	}
	return uuid.New().String()
}

// EnsureEnvelope normalizes any error into a gofulmen ErrorEnvelope carrying
// the correlation ID of ctx. Envelopes anywhere in err's chain are returned as is.
func EnsureEnvelope(ctx context.Context, err error) *errors.ErrorEnvelope {
	if err == nil {
		env := wrap(ctx, "INTERNAL_ERROR", nil, "unexpected nil error")
		env, _ = env.WithSeverity(errors.SeverityCritical)
		return env
	}

	var envelope *errors.ErrorEnvelope
	if stderrors.As(err, &envelope) && envelope != nil {
		return envelope
	}

	env := wrap(ctx, "INTERNAL_ERROR", err, err.Error())
	env, _ = env.WithSeverity(errors.SeverityHigh)
	return env
}

// ExitCodeFromEnvelope resolves the process exit code for an envelope.
func ExitCodeFromEnvelope(envelope *errors.ErrorEnvelope) foundry.ExitCode {
	if envelope == nil {
		return foundry.ExitFailure
	}
	switch envelope.Code {
	case "CONFIG_INVALID":
		return foundry.ExitConfigInvalid
	case "NOT_FOUND":
		return foundry.ExitFileNotFound
	default:
		return foundry.ExitFailure
	}
}

func withWrappedError(envelope *errors.ErrorEnvelope, err error) *errors.ErrorEnvelope {
	if envelope == nil || err == nil {
		return envelope
	}

	updated, updateErr := envelope.WithContext(map[string]interface{}{
		"wrapped_error": err.Error(),
	})
	if updateErr != nil {
		return envelope
	}
	return updated
}
