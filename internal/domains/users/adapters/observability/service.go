package observability

import (
	"context"
	"io"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	userdomain "github.com/clearsolutions/user-api/internal/domains/users/domain"
	userports "github.com/clearsolutions/user-api/internal/domains/users/ports"
)

const tracerName = "github.com/clearsolutions/user-api/internal/domains/users/adapters/observability/service"

// Service decorates the user service with tracing, logging, and metrics.
type Service struct {
	inner   userports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) { s.tracer = tr }
}

func WithMeter(m metric.Meter) Option {
	return func(s *Service) { s.metrics = newServiceMetrics(m) }
}

// New wraps the core user service.
func New(inner userports.Service, opts ...Option) userports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		logger:  defaultLogger(),
		metrics: newServiceMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	if s.logger == nil {
		s.logger = defaultLogger()
	}
	return s
}

func (s *Service) CreateUser(ctx context.Context, user *userdomain.User) (int64, error) {
	ctx, span := s.tracer.Start(ctx, "UserService.CreateUser")
	defer span.End()
	id, err := s.inner.CreateUser(ctx, user)
	if err != nil {
		return 0, s.handleError(ctx, span, err, "failed to create user")
	}
	s.metrics.recordCreated(ctx)
	s.logInfo(ctx, "user created", slog.Int64("user.id", id))
	return id, nil
}

func (s *Service) UpdateUser(ctx context.Context, user *userdomain.User) error {
	var id int64
	if user != nil {
		id = user.ID
	}
	ctx, span := s.tracer.Start(ctx, "UserService.UpdateUser", trace.WithAttributes(attribute.Int64("user.id", id)))
	defer span.End()
	if err := s.inner.UpdateUser(ctx, user); err != nil {
		return s.handleError(ctx, span, err, "failed to update user", slog.Int64("user.id", id))
	}
	s.metrics.recordUpdated(ctx)
	return nil
}

func (s *Service) DeleteUser(ctx context.Context, idText string) error {
	ctx, span := s.tracer.Start(ctx, "UserService.DeleteUser", trace.WithAttributes(attribute.String("user.id.raw", idText)))
	defer span.End()
	if err := s.inner.DeleteUser(ctx, idText); err != nil {
		return s.handleError(ctx, span, err, "failed to delete user", slog.String("user.id.raw", idText))
	}
	s.metrics.recordDeleted(ctx)
	return nil
}

func (s *Service) SearchByBirthDateRange(ctx context.Context, from, to time.Time) ([]*userdomain.User, error) {
	ctx, span := s.tracer.Start(ctx, "UserService.SearchByBirthDateRange", trace.WithAttributes(
		attribute.String("search.from", from.Format(time.DateOnly)),
		attribute.String("search.to", to.Format(time.DateOnly)),
	))
	defer span.End()
	result, err := s.inner.SearchByBirthDateRange(ctx, from, to)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "birth date range search failed")
	}
	s.metrics.recordSearched(ctx)
	span.SetAttributes(attribute.Int("search.matches", len(result)))
	return result, nil
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	s.logError(ctx, msg, err, attrs...)
	return err
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) logError(ctx context.Context, msg string, err error, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
}

func defaultLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type serviceMetrics struct {
	usersCreated metric.Int64Counter
	usersUpdated metric.Int64Counter
	usersDeleted metric.Int64Counter
	searches     metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	created, _ := m.Int64Counter("users.service.created", metric.WithDescription("Number of users created"))
	updated, _ := m.Int64Counter("users.service.updated", metric.WithDescription("Number of users updated"))
	deleted, _ := m.Int64Counter("users.service.deleted", metric.WithDescription("Number of users deleted"))
	searches, _ := m.Int64Counter("users.service.searches", metric.WithDescription("Number of birth date range searches"))
	return serviceMetrics{usersCreated: created, usersUpdated: updated, usersDeleted: deleted, searches: searches}
}

func (m serviceMetrics) recordCreated(ctx context.Context) {
	if m.usersCreated != nil {
		m.usersCreated.Add(ctx, 1)
	}
}

func (m serviceMetrics) recordUpdated(ctx context.Context) {
	if m.usersUpdated != nil {
		m.usersUpdated.Add(ctx, 1)
	}
}

func (m serviceMetrics) recordDeleted(ctx context.Context) {
	if m.usersDeleted != nil {
		m.usersDeleted.Add(ctx, 1)
	}
}

func (m serviceMetrics) recordSearched(ctx context.Context) {
	if m.searches != nil {
		m.searches.Add(ctx, 1)
	}
}
