package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"sherialink/internal/domain"
	"sherialink/internal/intake/validation"
	"sherialink/internal/notify"
	"sherialink/internal/platform/metrics"
	"sherialink/internal/upstream"
	"sherialink/pkg/requestcontext"
)

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks

// RecordStore persists new submissions.
type RecordStore interface {
	CreateCase(ctx context.Context, in domain.NewCase) (domain.CaseReport, error)
	CreateProfile(ctx context.Context, in domain.NewProfile) (domain.ProfileRecord, error)
}

// Notifier delivers a text message to one recipient.
type Notifier interface {
	Send(ctx context.Context, to, message string) (notify.Receipt, error)
}

// PasswordHasher turns a plaintext credential into its stored form. Without
// one, registrations forward the password as typed, the same way logins do.
type PasswordHasher interface {
	Hash(password string) (string, error)
}

// CacheInvalidator drops derived views that a new case makes stale.
type CacheInvalidator interface {
	Invalidate(ctx context.Context) error
}

// Submission kinds, used as metric labels.
const (
	kindCase         = "case"
	kindRegistration = "registration"
)

// Service runs the intake pipeline: validate, persist, then notify.
// Persistence always completes before notification starts, and create calls
// are never retried.
type Service struct {
	store       RecordStore
	notifier    Notifier
	messages    *notify.MessageBuilder
	hasher      PasswordHasher
	invalidator CacheInvalidator
	logger      *slog.Logger
	metrics     *metrics.Metrics
	tracer      trace.Tracer
}

// Option configures a Service.
type Option func(*Service)

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithHasher hashes registration passwords before they reach the store.
func WithHasher(h PasswordHasher) Option {
	return func(s *Service) {
		s.hasher = h
	}
}

func WithTracer(t trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = t
	}
}

// WithCacheInvalidator is called after every stored case.
func WithCacheInvalidator(c CacheInvalidator) Option {
	return func(s *Service) {
		s.invalidator = c
	}
}

func New(store RecordStore, notifier Notifier, messages *notify.MessageBuilder, logger *slog.Logger, opts ...Option) *Service {
	s := &Service{
		store:    store,
		notifier: notifier,
		messages: messages,
		logger:   logger,
		tracer:   otel.Tracer("sherialink/intake"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SubmitCase validates, stores and confirms a case report. A failed
// confirmation never undoes an accepted case.
func (s *Service) SubmitCase(ctx context.Context, in validation.CaseReportInput) Outcome {
	ctx, span := s.tracer.Start(ctx, "intake.SubmitCase")
	defer span.End()

	outcome := s.submitCase(ctx, in)
	s.finish(ctx, span, kindCase, outcome)
	return outcome
}

func (s *Service) submitCase(ctx context.Context, in validation.CaseReportInput) Outcome {
	valid, fieldErrs := validation.ValidateCaseReport(in)
	if fieldErrs != nil {
		return Rejected(fieldErrs)
	}

	submitted := valid.NewCase(requestcontext.Now(ctx))
	stored, err := s.store.CreateCase(ctx, submitted)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to store case",
			"request_id", requestcontext.RequestID(ctx),
			"category", upstream.CategoryOf(err),
			"error", err,
		)
		return PersistenceFailed("record store could not save the case", err)
	}

	if s.invalidator != nil {
		if err := s.invalidator.Invalidate(ctx); err != nil {
			s.logger.WarnContext(ctx, "failed to invalidate dashboard cache",
				"request_id", requestcontext.RequestID(ctx),
				"error", err,
			)
		}
	}

	record := acceptedCase(stored.ID, submitted)
	sent := s.notify(ctx, record)
	return AcceptedCase(record, sent)
}

// acceptedCase echoes the submission under the store-assigned ID. The store's
// answer is not trusted for anything else: some deployments return the ID alone.
func acceptedCase(id string, in domain.NewCase) domain.CaseReport {
	return domain.CaseReport{
		ID:          id,
		Name:        in.Name,
		PhoneNumber: in.PhoneNumber,
		County:      in.County,
		CaseType:    in.CaseType,
		Description: in.Description,
		Date:        in.Date.Format(domain.DateLayout),
		Status:      in.Status,
		CreatedAt:   in.CreatedAt,
	}
}

// notify sends the confirmation and reports whether the gateway accepted it.
// Failures are logged and counted, never returned.
func (s *Service) notify(ctx context.Context, record domain.CaseReport) bool {
	_, err := s.notifier.Send(ctx, record.PhoneNumber, s.messages.CaseConfirmation(record))
	if err == nil {
		return true
	}
	reason := notificationFailureReason(err)
	s.metrics.IncrementNotificationFailed(reason)
	s.logger.WarnContext(ctx, "case confirmation not sent",
		"request_id", requestcontext.RequestID(ctx),
		"case_id", record.ID,
		"reason", reason,
		"error", err,
	)
	return false
}

// SubmitRegistration validates, optionally hashes the credential and stores a
// profile. Registrations are not confirmed by message.
func (s *Service) SubmitRegistration(ctx context.Context, in validation.RegistrationInput) Outcome {
	ctx, span := s.tracer.Start(ctx, "intake.SubmitRegistration")
	defer span.End()

	outcome := s.submitRegistration(ctx, in)
	s.finish(ctx, span, kindRegistration, outcome)
	return outcome
}

func (s *Service) submitRegistration(ctx context.Context, in validation.RegistrationInput) Outcome {
	valid, fieldErrs := validation.ValidateRegistration(in)
	if fieldErrs != nil {
		return Rejected(fieldErrs)
	}

	credential := valid.Password()
	if s.hasher != nil {
		hash, err := s.hasher.Hash(credential)
		if err != nil {
			s.logger.ErrorContext(ctx, "failed to hash password",
				"request_id", requestcontext.RequestID(ctx),
				"error", err,
			)
			return PersistenceFailed("could not prepare the registration", err)
		}
		credential = hash
	}

	profile, err := s.store.CreateProfile(ctx, valid.NewProfile(credential, requestcontext.Now(ctx)))
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to store profile",
			"request_id", requestcontext.RequestID(ctx),
			"category", upstream.CategoryOf(err),
			"error", err,
		)
		return PersistenceFailed("record store could not save the registration", err)
	}
	return AcceptedProfile(profile)
}

func (s *Service) finish(ctx context.Context, span trace.Span, kind string, outcome Outcome) {
	s.metrics.IncrementSubmission(kind, string(outcome.Kind))
	span.SetAttributes(
		attribute.String("intake.outcome", string(outcome.Kind)),
		attribute.Bool("intake.notification_sent", outcome.NotificationSent),
	)
	if outcome.Kind == OutcomePersistenceFailed {
		span.SetStatus(codes.Error, outcome.Reason)
		if outcome.Err != nil {
			span.RecordError(outcome.Err)
		}
	}
	if outcome.Kind == OutcomeAccepted {
		s.logger.InfoContext(ctx, "submission accepted",
			"request_id", requestcontext.RequestID(ctx),
			"kind", kind,
			"id", outcome.RecordID(),
			"notification_sent", outcome.NotificationSent,
			"at", requestcontext.Now(ctx).Format(time.RFC3339),
		)
	}
}

func notificationFailureReason(err error) string {
	switch {
	case errors.Is(err, notify.ErrMissingAPIKey):
		return "not_configured"
	case errors.Is(err, notify.ErrCircuitOpen):
		return "circuit_open"
	case errors.Is(err, notify.ErrRecipientRejected):
		return "recipient_rejected"
	default:
		return string(upstream.CategoryOf(err))
	}
}
