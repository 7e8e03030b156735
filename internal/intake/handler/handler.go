package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"sherialink/internal/domain"
	"sherialink/internal/intake/service"
	"sherialink/internal/intake/validation"
	"sherialink/internal/platform/middleware"
	dErrors "sherialink/pkg/domain-errors"
	"sherialink/pkg/platform/httputil"
)

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks

// Service runs submissions through the intake pipeline.
type Service interface {
	SubmitCase(ctx context.Context, in validation.CaseReportInput) service.Outcome
	SubmitRegistration(ctx context.Context, in validation.RegistrationInput) service.Outcome
}

// Handler exposes the intake pipeline over HTTP.
type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register registers the intake routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/cases", h.handleSubmitCase)
	r.Post("/registrations", h.handleSubmitRegistration)
}

type caseRequest struct {
	Name        string `json:"name"`
	PhoneNumber string `json:"phoneNumber"`
	County      string `json:"county"`
	CaseType    string `json:"caseType"`
	Description string `json:"description"`
	Date        string `json:"date"`
}

// registrationRequest accepts age as a JSON number or string; the validator
// decides whether it is a whole number in range.
type registrationRequest struct {
	Name        string          `json:"name"`
	Email       string          `json:"email"`
	PhoneNumber string          `json:"phoneNumber"`
	Age         json.RawMessage `json:"age"`
	Password    string          `json:"password"`
}

type caseAcceptedResponse struct {
	Record           domain.CaseReport `json:"record"`
	NotificationSent bool              `json:"notificationSent"`
}

type registrationAcceptedResponse struct {
	Record           domain.ProfileRecord `json:"record"`
	NotificationSent bool                 `json:"notificationSent"`
}

type rejectedResponse struct {
	Error            string                 `json:"error"`
	ErrorDescription string                 `json:"error_description"`
	FieldErrors      validation.FieldErrors `json:"fieldErrors"`
}

func (h *Handler) handleSubmitCase(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	var req caseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "invalid case report request",
			"request_id", requestID,
			"error", err.Error(),
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	outcome := h.service.SubmitCase(ctx, validation.CaseReportInput{
		Name:        req.Name,
		PhoneNumber: req.PhoneNumber,
		County:      req.County,
		CaseType:    req.CaseType,
		Description: req.Description,
		Date:        req.Date,
	})
	if outcome.Kind == service.OutcomeAccepted && outcome.Case != nil {
		httputil.WriteJSON(w, http.StatusCreated, caseAcceptedResponse{
			Record:           *outcome.Case,
			NotificationSent: outcome.NotificationSent,
		})
		return
	}
	h.writeFailure(w, outcome)
}

func (h *Handler) handleSubmitRegistration(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	var req registrationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "invalid registration request",
			"request_id", requestID,
			"error", err.Error(),
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	outcome := h.service.SubmitRegistration(ctx, validation.RegistrationInput{
		Name:        req.Name,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		Age:         ageText(req.Age),
		Password:    req.Password,
	})
	if outcome.Kind == service.OutcomeAccepted && outcome.Profile != nil {
		httputil.WriteJSON(w, http.StatusCreated, registrationAcceptedResponse{
			Record:           *outcome.Profile,
			NotificationSent: outcome.NotificationSent,
		})
		return
	}
	h.writeFailure(w, outcome)
}

func (h *Handler) writeFailure(w http.ResponseWriter, outcome service.Outcome) {
	switch outcome.Kind {
	case service.OutcomeRejected:
		httputil.WriteJSON(w, http.StatusUnprocessableEntity, rejectedResponse{
			Error:            string(dErrors.CodeValidation),
			ErrorDescription: outcome.FieldErrors.Error(),
			FieldErrors:      outcome.FieldErrors,
		})
	case service.OutcomePersistenceFailed:
		httputil.WriteError(w, dErrors.Wrap(outcome.Err, dErrors.CodeBadGateway, outcome.Reason))
	default:
		httputil.WriteError(w, dErrors.New(dErrors.CodeInternal, "unexpected submission outcome"))
	}
}

// ageText turns 30, "30" or 30.5 into the text the validator parses.
func ageText(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		if i, err := n.Int64(); err == nil {
			return strconv.FormatInt(i, 10)
		}
		return n.String()
	}
	return string(raw)
}
