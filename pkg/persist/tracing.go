package persist

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("state-repository")

// TracingRepository wraps a Repository with one span per call.
type TracingRepository struct {
	next    Repository
	backend string
}

// NewTracingRepository creates a new repository with tracing
func NewTracingRepository(next Repository, backend string) *TracingRepository {
	return &TracingRepository{next: next, backend: backend}
}

func (r *TracingRepository) Load(ctx context.Context, namespace string, v any) (bool, error) {
	ctx, span := r.start(ctx, "repository.Load", namespace)
	defer span.End()

	found, err := r.next.Load(ctx, namespace, v)
	if err != nil {
		recordError(span, err)
		return false, err
	}
	span.SetAttributes(attribute.Bool("state.found", found))
	return found, nil
}

func (r *TracingRepository) Save(ctx context.Context, namespace string, v any) error {
	ctx, span := r.start(ctx, "repository.Save", namespace)
	defer span.End()

	if err := r.next.Save(ctx, namespace, v); err != nil {
		recordError(span, err)
		return err
	}
	return nil
}

func (r *TracingRepository) Delete(ctx context.Context, namespace string) error {
	ctx, span := r.start(ctx, "repository.Delete", namespace)
	defer span.End()

	if err := r.next.Delete(ctx, namespace); err != nil {
		recordError(span, err)
		return err
	}
	return nil
}

func (r *TracingRepository) start(ctx context.Context, name, namespace string) (context.Context, trace.Span) {
	return tracer.Start(ctx, name,
		trace.WithAttributes(
			attribute.String("state.namespace", namespace),
			attribute.String("state.backend", r.backend),
		),
	)
}

func recordError(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
