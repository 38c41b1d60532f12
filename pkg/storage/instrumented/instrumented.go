// Package instrumented decorates a storage.Storage so that every repository
// call records its latency and failures as OpenTelemetry metrics and runs
// inside a span.
package instrumented

import (
	"context"
	"fmt"
	"time"

	"hbnb/pkg/domain"
	"hbnb/pkg/metrics"
	"hbnb/pkg/storage"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "hbnb/pkg/storage/instrumented"

// Options configures where measurements and spans go. Nil providers fall back
// to the global OpenTelemetry ones.
type Options struct {
	MeterProvider  metric.MeterProvider
	TracerProvider trace.TracerProvider
}

type recorder struct {
	tracer   trace.Tracer
	duration metric.Float64Histogram
	errors   metric.Int64Counter
}

func (r *recorder) observe(ctx context.Context, entity, operation string, fn func(ctx context.Context) error) error {
	ctx, span := r.tracer.Start(ctx, "storage."+entity+"."+operation)
	defer span.End()

	start := time.Now()
	err := fn(ctx)

	attrs := metric.WithAttributes(
		attribute.String("entity", entity),
		attribute.String("operation", operation),
	)
	r.duration.Record(ctx, time.Since(start).Seconds(), attrs)
	if err != nil {
		r.errors.Add(ctx, 1, attrs)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}

	return err
}

// Storage is the instrumented decorator.
type Storage struct {
	AllStorage

	inner storage.Storage
}

// AllStorage exposes instrumented repositories of a storage.AllStorage.
type AllStorage struct {
	users     *repository[*domain.User]
	places    *repository[*domain.Place]
	amenities *repository[*domain.Amenity]
	reviews   *repository[*domain.Review]
	rec       *recorder
}

// Users returns the instrumented user repository.
func (a *AllStorage) Users() storage.UserRepository { return a.users }

// Places returns the instrumented place repository.
func (a *AllStorage) Places() storage.PlaceRepository { return a.places }

// Amenities returns the instrumented amenity repository.
func (a *AllStorage) Amenities() storage.AmenityRepository { return a.amenities }

// Reviews returns the instrumented review repository.
func (a *AllStorage) Reviews() storage.ReviewRepository { return a.reviews }

var (
	_ storage.Storage    = (*Storage)(nil)
	_ storage.AllStorage = (*AllStorage)(nil)
)

// New wraps s.
func New(s storage.Storage, opts Options) (*Storage, error) {
	if opts.MeterProvider == nil {
		opts.MeterProvider = otel.GetMeterProvider()
	}
	if opts.TracerProvider == nil {
		opts.TracerProvider = otel.GetTracerProvider()
	}

	meter := opts.MeterProvider.Meter(instrumentationName)
	duration, err := meter.Float64Histogram("hbnb.storage.operation.duration",
		metric.WithDescription("Duration of storage operations."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(metrics.DefaultBuckets...))
	if err != nil {
		return nil, fmt.Errorf("could not create duration histogram: %w", err)
	}
	errorsCounter, err := meter.Int64Counter("hbnb.storage.operation.errors",
		metric.WithDescription("Number of failed storage operations."))
	if err != nil {
		return nil, fmt.Errorf("could not create errors counter: %w", err)
	}

	rec := &recorder{
		tracer:   opts.TracerProvider.Tracer(instrumentationName),
		duration: duration,
		errors:   errorsCounter,
	}

	return &Storage{
		AllStorage: *wrap(s, rec),
		inner:      s,
	}, nil
}

func wrap(s storage.AllStorage, rec *recorder) *AllStorage {
	return &AllStorage{
		users:     &repository[*domain.User]{inner: s.Users(), rec: rec, entity: "user"},
		places:    &repository[*domain.Place]{inner: s.Places(), rec: rec, entity: "place"},
		amenities: &repository[*domain.Amenity]{inner: s.Amenities(), rec: rec, entity: "amenity"},
		reviews:   &repository[*domain.Review]{inner: s.Reviews(), rec: rec, entity: "review"},
		rec:       rec,
	}
}

// Close closes the wrapped storage.
func (s *Storage) Close() error {
	return s.inner.Close() //nolint: wrapcheck
}

// WithTx runs cb in a transaction of the wrapped storage, handing it
// instrumented repositories bound to that transaction.
func (s *Storage) WithTx(ctx context.Context, cb func(storage storage.AllStorage) error) error {
	return s.rec.observe(ctx, "tx", "with_tx", func(ctx context.Context) error {
		return s.inner.WithTx(ctx, func(tx storage.AllStorage) error { //nolint: wrapcheck
			return cb(wrap(tx, s.rec))
		})
	})
}

type repository[T domain.Entity] struct {
	inner  storage.Repository[T]
	rec    *recorder
	entity string
}

func (r *repository[T]) Add(ctx context.Context, entity T) error {
	return r.rec.observe(ctx, r.entity, "add", func(ctx context.Context) error {
		return r.inner.Add(ctx, entity)
	})
}

func (r *repository[T]) Get(ctx context.Context, id domain.ID) (T, error) {
	var out T
	err := r.rec.observe(ctx, r.entity, "get", func(ctx context.Context) error {
		var err error
		out, err = r.inner.Get(ctx, id)

		return err
	})

	return out, err
}

func (r *repository[T]) GetAll(ctx context.Context) ([]T, error) {
	var out []T
	err := r.rec.observe(ctx, r.entity, "get_all", func(ctx context.Context) error {
		var err error
		out, err = r.inner.GetAll(ctx)

		return err
	})

	return out, err
}

func (r *repository[T]) Update(ctx context.Context, id domain.ID, patch domain.Patch) error {
	return r.rec.observe(ctx, r.entity, "update", func(ctx context.Context) error {
		return r.inner.Update(ctx, id, patch)
	})
}

func (r *repository[T]) Delete(ctx context.Context, id domain.ID) error {
	return r.rec.observe(ctx, r.entity, "delete", func(ctx context.Context) error {
		return r.inner.Delete(ctx, id)
	})
}

func (r *repository[T]) GetByAttribute(ctx context.Context, name string, value any) (T, error) {
	var out T
	err := r.rec.observe(ctx, r.entity, "get_by_attribute", func(ctx context.Context) error {
		var err error
		out, err = r.inner.GetByAttribute(ctx, name, value)

		return err
	})

	return out, err
}
