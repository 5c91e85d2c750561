// Package operation holds the wrapper every service operation runs through:
// tracing, metrics, panic recovery and outcome logging, plus transaction scoping.
package operation

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/Black-And-White-Club/hackathon-judging/app/observability/metrics"
	"github.com/Black-And-White-Club/hackathon-judging/app/shared/apperr"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Telemetry is the per-service set of instruments.
type Telemetry struct {
	Service string
	Logger  *slog.Logger
	Metrics metrics.OperationMetrics
	Tracer  trace.Tracer
}

// Run executes op under a span, records metrics and logs the outcome.
// Domain failures (apperr kinds) are logged at WARN and returned unchanged;
// anything else is logged at ERROR and wrapped with the operation name.
func Run[T any](
	ctx context.Context,
	tel Telemetry,
	operationName string,
	identifier string,
	op func(ctx context.Context) (T, error),
) (result T, err error) {
	var span trace.Span
	if tel.Tracer != nil {
		ctx, span = tel.Tracer.Start(ctx, tel.Service+"."+operationName, trace.WithAttributes(
			attribute.String("operation", operationName),
			attribute.String("identifier", identifier),
		))
	} else {
		span = trace.SpanFromContext(ctx)
	}
	defer span.End()

	logger := tel.Logger
	if logger == nil {
		logger = slog.Default()
	}

	if tel.Metrics != nil {
		tel.Metrics.RecordOperationAttempt(ctx, operationName, tel.Service)
		startTime := time.Now()
		defer func() {
			tel.Metrics.RecordOperationDuration(ctx, operationName, tel.Service, time.Since(startTime))
		}()
	}

	logger.DebugContext(ctx, operationName+" triggered",
		slog.String("operation", operationName),
		slog.String("identifier", identifier),
	)

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in %s: %v", operationName, r)
			logger.ErrorContext(ctx, "Critical panic recovered",
				slog.String("operation", operationName),
				slog.String("identifier", identifier),
				slog.Any("error", err),
			)
			if tel.Metrics != nil {
				tel.Metrics.RecordOperationFailure(ctx, operationName, tel.Service)
			}
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			var zero T
			result = zero
		}
	}()

	result, err = op(ctx)

	if err != nil {
		if tel.Metrics != nil {
			tel.Metrics.RecordOperationFailure(ctx, operationName, tel.Service)
		}
		if apperr.IsDomain(err) {
			logger.WarnContext(ctx, "Operation returned failure result",
				slog.String("operation", operationName),
				slog.String("identifier", identifier),
				slog.String("reason", err.Error()),
			)
			span.SetAttributes(attribute.String("failure", err.Error()))
			return result, err
		}

		wrappedErr := fmt.Errorf("%s: %w", operationName, err)
		logger.ErrorContext(ctx, "Operation failed with error",
			slog.String("operation", operationName),
			slog.String("identifier", identifier),
			slog.Any("error", wrappedErr),
		)
		span.RecordError(wrappedErr)
		span.SetStatus(codes.Error, wrappedErr.Error())
		return result, wrappedErr
	}

	logger.InfoContext(ctx, operationName+" completed successfully",
		slog.String("operation", operationName),
		slog.String("identifier", identifier),
	)
	if tel.Metrics != nil {
		tel.Metrics.RecordOperationSuccess(ctx, operationName, tel.Service)
	}
	return result, nil
}

// RunInTx runs fn inside a transaction on db. A nil db runs fn with a nil
// handle, which repositories resolve to their default connection.
func RunInTx[T any](
	ctx context.Context,
	db *bun.DB,
	fn func(ctx context.Context, tx bun.IDB) (T, error),
) (T, error) {
	if db == nil {
		return fn(ctx, nil)
	}

	var result T
	err := db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		var txErr error
		result, txErr = fn(ctx, tx)
		return txErr
	})
	return result, err
}
