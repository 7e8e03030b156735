// Package service passes record store reads, status updates and logins
// through to the record store, translating its failures into domain errors.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"sherialink/internal/domain"
	"sherialink/internal/upstream"
	dErrors "sherialink/pkg/domain-errors"
)

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks

// RecordStore is the subset of the record store this package forwards to.
type RecordStore interface {
	UpdateCaseStatus(ctx context.Context, id string, status domain.CaseStatus) (domain.CaseReport, error)
	ListProfiles(ctx context.Context) ([]domain.ProfileRecord, error)
	ListMediations(ctx context.Context) ([]domain.MediationRecord, error)
	Login(ctx context.Context, creds domain.Credentials) (domain.Session, error)
}

// CacheInvalidator drops the dashboard snapshot after a status change.
type CacheInvalidator interface {
	Invalidate(ctx context.Context) error
}

type Service struct {
	store       RecordStore
	invalidator CacheInvalidator
	logger      *slog.Logger
}

type Option func(*Service)

func WithCacheInvalidator(c CacheInvalidator) Option {
	return func(s *Service) {
		s.invalidator = c
	}
}

func New(store RecordStore, logger *slog.Logger, opts ...Option) *Service {
	s := &Service{store: store, logger: logger}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// UpdateCaseStatus moves a case to status. The status is matched
// case-insensitively against the closed set before the record store is called.
func (s *Service) UpdateCaseStatus(ctx context.Context, id, status string) (domain.CaseReport, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return domain.CaseReport{}, dErrors.New(dErrors.CodeBadRequest, "case id is required")
	}
	target, ok := domain.ParseCaseStatus(status)
	if !ok {
		return domain.CaseReport{}, dErrors.New(dErrors.CodeValidation, fmt.Sprintf("unknown status %q", status))
	}

	record, err := s.store.UpdateCaseStatus(ctx, id, target)
	if err != nil {
		return domain.CaseReport{}, upstream.ToDomain(err)
	}

	if s.invalidator != nil {
		if err := s.invalidator.Invalidate(ctx); err != nil {
			s.logger.WarnContext(ctx, "dashboard cache invalidation failed",
				"case_id", id,
				"error", err,
			)
		}
	}

	s.logger.InfoContext(ctx, "case status updated",
		"case_id", id,
		"status", string(target),
	)
	return record, nil
}

func (s *Service) Profiles(ctx context.Context) ([]domain.ProfileRecord, error) {
	profiles, err := s.store.ListProfiles(ctx)
	if err != nil {
		return nil, upstream.ToDomain(err)
	}
	return profiles, nil
}

func (s *Service) Mediations(ctx context.Context) ([]domain.MediationRecord, error) {
	mediations, err := s.store.ListMediations(ctx)
	if err != nil {
		return nil, upstream.ToDomain(err)
	}
	return mediations, nil
}

// Login forwards credentials to the record store. Rejected credentials come
// back as CodeUnauthorized.
func (s *Service) Login(ctx context.Context, creds domain.Credentials) (domain.Session, error) {
	creds.Email = strings.TrimSpace(creds.Email)
	if creds.Email == "" || creds.Password == "" {
		return domain.Session{}, dErrors.New(dErrors.CodeBadRequest, "email and password are required")
	}

	session, err := s.store.Login(ctx, creds)
	if err != nil {
		return domain.Session{}, upstream.ToDomain(err)
	}
	return withClaims(session), nil
}
