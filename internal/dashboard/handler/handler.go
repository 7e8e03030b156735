// Package handler exposes dashboard views over HTTP.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"sherialink/internal/dashboard/aggregate"
	"sherialink/internal/dashboard/service"
	"sherialink/internal/domain"
	"sherialink/internal/platform/middleware"
	dErrors "sherialink/pkg/domain-errors"
	"sherialink/pkg/platform/httputil"
)

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks

// Service serves filtered views of the case snapshot.
type Service interface {
	Summary(ctx context.Context, f aggregate.FilterSpec) (aggregate.SummaryReport, error)
	Cases(ctx context.Context, f aggregate.FilterSpec) ([]domain.CaseReport, error)
	Counties(ctx context.Context) ([]string, error)
	Overview(ctx context.Context) (service.Overview, error)
}

type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register registers the dashboard routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/cases", h.handleListCases)
	r.Get("/dashboard/summary", h.handleSummary)
	r.Get("/dashboard/counties", h.handleCounties)
	r.Get("/dashboard/overview", h.handleOverview)
}

type casesResponse struct {
	Cases         []domain.CaseReport  `json:"cases"`
	Count         int                  `json:"count"`
	AppliedFilter aggregate.FilterSpec `json:"appliedFilter"`
}

type countiesResponse struct {
	Counties []string `json:"counties"`
}

func (h *Handler) handleListCases(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	f := filterFromQuery(r)

	cases, err := h.service.Cases(ctx, f)
	if err != nil {
		h.writeError(ctx, w, "list cases failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, casesResponse{
		Cases:         cases,
		Count:         len(cases),
		AppliedFilter: f.Normalize(),
	})
}

func (h *Handler) handleSummary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	report, err := h.service.Summary(ctx, filterFromQuery(r))
	if err != nil {
		h.writeError(ctx, w, "dashboard summary failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, report)
}

func (h *Handler) handleCounties(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	counties, err := h.service.Counties(ctx)
	if err != nil {
		h.writeError(ctx, w, "list counties failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, countiesResponse{Counties: counties})
}

func (h *Handler) handleOverview(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	overview, err := h.service.Overview(ctx)
	if err != nil {
		h.writeError(ctx, w, "dashboard overview failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, overview)
}

// writeError logs upstream and internal failures; client mistakes are only
// written back.
func (h *Handler) writeError(ctx context.Context, w http.ResponseWriter, msg string, err error) {
	switch dErrors.CodeOf(err) {
	case dErrors.CodeValidation, dErrors.CodeBadRequest:
	default:
		h.logger.ErrorContext(ctx, msg,
			"request_id", middleware.GetRequestID(ctx),
			"error", err,
		)
	}
	httputil.WriteError(w, err)
}

func filterFromQuery(r *http.Request) aggregate.FilterSpec {
	q := r.URL.Query()
	return aggregate.FilterSpec{
		County:    q.Get("county"),
		Status:    q.Get("status"),
		StartDate: q.Get("startDate"),
		EndDate:   q.Get("endDate"),
	}
}
