package bundle

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/fyrsmithlabs/showyourwork/internal/logging"
)

// InstrumentationName identifies this package's tracer.
const InstrumentationName = "github.com/fyrsmithlabs/showyourwork/internal/bundle"

// ErrEmptyID is returned when Fetch is called with an empty identifier.
var ErrEmptyID = errors.New("empty gist id")

// Channel fetches a bundle by its normalized ID.
type Channel interface {
	// Name is a short label used in logs, spans, and metrics.
	Name() string
	Fetch(ctx context.Context, id string) (*Bundle, error)
}

// Resolver fetches bundles through a primary channel with fallback to a
// secondary one.
type Resolver struct {
	primary   Channel
	secondary Channel
	logger    *logging.Logger
	tracer    trace.Tracer
	metrics   *Metrics
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithLogger sets the resolver's logger.
func WithLogger(l *logging.Logger) Option {
	return func(r *Resolver) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithTracer overrides the tracer taken from the global provider.
func WithTracer(t trace.Tracer) Option {
	return func(r *Resolver) {
		if t != nil {
			r.tracer = t
		}
	}
}

// WithMetrics sets the collectors fetch outcomes are recorded on.
func WithMetrics(m *Metrics) Option {
	return func(r *Resolver) {
		r.metrics = m
	}
}

// NewResolver creates a resolver that tries primary, then secondary.
func NewResolver(primary, secondary Channel, opts ...Option) *Resolver {
	r := &Resolver{
		primary:   primary,
		secondary: secondary,
		logger:    logging.NewNop(),
		tracer:    otel.Tracer(InstrumentationName),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Fetch returns the bundle for id. Any primary failure triggers exactly one
// secondary attempt; if that fails too its error is returned with the
// channel's message intact.
func (r *Resolver) Fetch(ctx context.Context, id string) (*Bundle, error) {
	if id == "" {
		return nil, ErrEmptyID
	}

	ctx = logging.WithBundleID(ctx, id)
	ctx = logging.WithFetchID(ctx, uuid.NewString())

	b, err := firstOf(r.attempt(r.primary), r.attempt(r.secondary))(ctx, id)
	if err != nil {
		r.logger.Warn(ctx, "bundle fetch failed", zap.Error(err))
		return nil, fmt.Errorf("failed to load gist %s: %w", id, err)
	}
	return b, nil
}

type fetchFunc func(ctx context.Context, id string) (*Bundle, error)

// firstOf runs a, and b only when a fails.
func firstOf(a, b fetchFunc) fetchFunc {
	return func(ctx context.Context, id string) (*Bundle, error) {
		if res, err := a(ctx, id); err == nil {
			return res, nil
		}
		return b(ctx, id)
	}
}

// attempt wraps one channel call with a span, a log line, and metrics.
func (r *Resolver) attempt(ch Channel) fetchFunc {
	return func(ctx context.Context, id string) (*Bundle, error) {
		ctx, span := r.tracer.Start(ctx, "bundle.fetch."+ch.Name(),
			trace.WithAttributes(
				attribute.String("bundle.id", id),
				attribute.String("bundle.channel", ch.Name()),
			))
		defer span.End()

		start := time.Now()
		b, err := ch.Fetch(ctx, id)
		r.metrics.observe(ch.Name(), err, time.Since(start))

		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "fetch failed")
			r.logger.Debug(ctx, "bundle channel failed",
				zap.String("channel", ch.Name()),
				zap.Error(err))
			return nil, err
		}

		// Channels echo the id they were given; enforce it regardless.
		b.ID = id
		span.SetAttributes(attribute.Int("bundle.files", len(b.Files)))
		r.logger.Debug(ctx, "bundle fetched",
			zap.String("channel", ch.Name()),
			zap.Int("files", len(b.Files)))
		return b, nil
	}
}
