// Package handler exposes record store passthrough routes.
package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"sherialink/internal/domain"
	"sherialink/internal/platform/middleware"
	dErrors "sherialink/pkg/domain-errors"
	"sherialink/pkg/platform/httputil"
)

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks

type Service interface {
	UpdateCaseStatus(ctx context.Context, id, status string) (domain.CaseReport, error)
	Profiles(ctx context.Context) ([]domain.ProfileRecord, error)
	Mediations(ctx context.Context) ([]domain.MediationRecord, error)
	Login(ctx context.Context, creds domain.Credentials) (domain.Session, error)
}

type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register registers the passthrough routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Patch("/cases/{id}/status", h.handleUpdateStatus)
	r.Get("/profiles", h.handleListProfiles)
	r.Get("/mediations", h.handleListMediations)
	r.Post("/auth/login", h.handleLogin)
}

type statusRequest struct {
	Status string `json:"status"`
}

type profilesResponse struct {
	Profiles []domain.ProfileRecord `json:"profiles"`
	Count    int                    `json:"count"`
}

type mediationsResponse struct {
	Mediations []domain.MediationRecord `json:"mediations"`
	Count      int                      `json:"count"`
}

func (h *Handler) handleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	var req statusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "invalid status update request",
			"request_id", requestID,
			"error", err.Error(),
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	record, err := h.service.UpdateCaseStatus(ctx, chi.URLParam(r, "id"), req.Status)
	if err != nil {
		h.writeError(ctx, w, "case status update failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, record)
}

func (h *Handler) handleListProfiles(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	profiles, err := h.service.Profiles(ctx)
	if err != nil {
		h.writeError(ctx, w, "list profiles failed", err)
		return
	}
	if profiles == nil {
		profiles = []domain.ProfileRecord{}
	}
	httputil.WriteJSON(w, http.StatusOK, profilesResponse{Profiles: profiles, Count: len(profiles)})
}

func (h *Handler) handleListMediations(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	mediations, err := h.service.Mediations(ctx)
	if err != nil {
		h.writeError(ctx, w, "list mediations failed", err)
		return
	}
	if mediations == nil {
		mediations = []domain.MediationRecord{}
	}
	httputil.WriteJSON(w, http.StatusOK, mediationsResponse{Mediations: mediations, Count: len(mediations)})
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	var creds domain.Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		h.logger.WarnContext(ctx, "invalid login request",
			"request_id", requestID,
			"error", err.Error(),
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	session, err := h.service.Login(ctx, creds)
	if err != nil {
		h.writeError(ctx, w, "login failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, session)
}

func (h *Handler) writeError(ctx context.Context, w http.ResponseWriter, msg string, err error) {
	switch dErrors.CodeOf(err) {
	case dErrors.CodeValidation, dErrors.CodeBadRequest, dErrors.CodeUnauthorized, dErrors.CodeNotFound:
		h.logger.InfoContext(ctx, msg,
			"request_id", middleware.GetRequestID(ctx),
			"code", string(dErrors.CodeOf(err)),
		)
	default:
		h.logger.ErrorContext(ctx, msg,
			"request_id", middleware.GetRequestID(ctx),
			"error", err,
		)
	}
	httputil.WriteError(w, err)
}
