package telemetry

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/classicvalues/phased-table-translation/pkg/translate"
)

const tracerName = "phased-table-translation"

// TraceBatch returns a batch wrapper that opens a span around each
// TranslateBatch call, tagging it with a fresh run id and the input and
// output batch sizes. logger may be nil; when set, each call is also
// logged at info level with its duration.
func TraceBatch[R any](logger *slog.Logger) func(translate.BatchHandler[R]) translate.BatchHandler[R] {
	return func(next translate.BatchHandler[R]) translate.BatchHandler[R] {
		return translate.BatchHandlerFunc[R](func(ctx context.Context, elems []R) ([]R, error) {
			runID := uuid.New().String()
			start := time.Now()

			ctx, span := otel.Tracer(tracerName).Start(ctx, "TranslateBatch",
				trace.WithAttributes(
					attribute.String("translate.run_id", runID),
					attribute.Int("translate.batch.in", len(elems)),
				),
			)
			defer span.End()

			out, err := next.TranslateBatch(ctx, elems)
			if err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, err.Error())
				if logger != nil {
					logger.Error("batch translation failed",
						slog.String("run_id", runID),
						slog.String("error", err.Error()),
						slog.Duration("duration", time.Since(start)),
					)
				}
				return nil, err
			}

			span.SetAttributes(attribute.Int("translate.batch.out", len(out)))
			if logger != nil {
				logger.Info("batch translated",
					slog.String("run_id", runID),
					slog.Int("in", len(elems)),
					slog.Int("out", len(out)),
					slog.Duration("duration", time.Since(start)),
				)
			}
			return out, nil
		})
	}
}
