// Package storetrace records dispatcher waves and compute failures as
// OpenTelemetry spans.
package storetrace

import (
	"context"
	"errors"

	"github.com/delaneyj/storeparty/store"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const defaultTracerName = "storeparty"

const (
	WaveSpanName  = "store.wave"
	ErrorSpanName = "store.compute_error"
)

type config struct {
	tracerName string
	provider   trace.TracerProvider
	ctx        context.Context
}

type Option func(*config)

func WithTracerName(name string) Option {
	return func(c *config) {
		c.tracerName = name
	}
}

// WithTracerProvider overrides the global provider from otel.GetTracerProvider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(c *config) {
		c.provider = tp
	}
}

// WithContext sets the parent context of every recorded span.
func WithContext(ctx context.Context) Option {
	return func(c *config) {
		c.ctx = ctx
	}
}

type Tracer struct {
	tracer trace.Tracer
	ctx    context.Context
}

func New(opts ...Option) *Tracer {
	c := config{
		tracerName: defaultTracerName,
		ctx:        context.Background(),
	}
	for _, opt := range opts {
		opt(&c)
	}
	if c.provider == nil {
		c.provider = otel.GetTracerProvider()
	}
	return &Tracer{
		tracer: c.provider.Tracer(c.tracerName),
		ctx:    c.ctx,
	}
}

// Hook is installed with store.WithFlushHook. The span is created after the
// wave so its timestamps are taken from the stats.
func (t *Tracer) Hook() store.FlushHook {
	return func(stats store.WaveStats) {
		_, span := t.tracer.Start(t.ctx, WaveSpanName,
			trace.WithSpanKind(trace.SpanKindInternal),
			trace.WithTimestamp(stats.Started),
			trace.WithAttributes(
				attribute.Int("store.deliveries", stats.Deliveries),
				attribute.Int("store.stores", stats.Stores),
			),
		)
		span.End(trace.WithTimestamp(stats.Started.Add(stats.Duration)))
	}
}

// ErrorHandler records err on its own span and hands it to next. A nil next
// keeps the dispatcher's default policy of panicking.
func (t *Tracer) ErrorHandler(next store.OnErrorFunc) store.OnErrorFunc {
	return func(err error) {
		var attrs []attribute.KeyValue
		var ce *store.ComputeError
		if errors.As(err, &ce) {
			attrs = append(attrs,
				attribute.String("store.name", ce.Store),
				attribute.Int64("store.id", int64(ce.StoreID)),
			)
		}
		_, span := t.tracer.Start(t.ctx, ErrorSpanName, trace.WithAttributes(attrs...))
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		span.End()

		if next == nil {
			panic(err)
		}
		next(err)
	}
}
