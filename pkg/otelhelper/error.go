package otelhelper

import (
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// FailedStepKey names the storage step of a project operation that failed.
const FailedStepKey = "codeeasy.failed_step"

// SetError records err on a project operation span and marks it failed.
// step is the storage call that failed ("load", "save", "list" or "delete").
func SetError(span trace.Span, step string, err error) {
	span.SetAttributes(attribute.String(FailedStepKey, step))
	span.RecordError(err, trace.WithAttributes(attribute.String(FailedStepKey, step)))
	span.SetStatus(codes.Error, step+": "+err.Error())
}
