package commands

import (
	"context"

	"mfgorders/internal/pkg/metrics"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("mfgorders/commands")

// observe opens a span for one command execution. The returned func ends the
// span and counts the outcome; call it with the handler's named error.
func observe(ctx context.Context, command string) (context.Context, func(err error)) {
	ctx, span := tracer.Start(ctx, command)
	return ctx, func(err error) {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.SetAttributes(attribute.String("outcome", metrics.Outcome(err)))
		span.End()
		metrics.ObserveCommand(command, err)
	}
}
