// Package recordstore is the HTTP client for the remote record store that
// owns cases, profiles, mediations and logins.
package recordstore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"sherialink/internal/domain"
	"sherialink/internal/platform/config"
	"sherialink/internal/platform/metrics"
	"sherialink/internal/upstream"
	dErrors "sherialink/pkg/domain-errors"
)

const serviceName = "record-store"

// Operation names, used as metric labels and in upstream errors.
const (
	OpCreateCase       = "create_case"
	OpListCases        = "list_cases"
	OpUpdateCaseStatus = "update_case_status"
	OpCreateProfile    = "create_profile"
	OpListProfiles     = "list_profiles"
	OpListMediations   = "list_mediations"
	OpLogin            = "login"
)

// maxErrorBody bounds how much of a failed response is kept for diagnostics.
const maxErrorBody = 512

// Client talks JSON to the record store. Every call is bounded by the
// configured timeout on top of the caller's context. Create calls are never
// retried: a timed-out create may still have been stored.
type Client struct {
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
	metrics    *metrics.Metrics
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithMetrics records per-operation latency.
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// New creates a record store client.
func New(cfg config.RecordStore, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		timeout:    cfg.Timeout,
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CreateCase stores a new case and returns it with the store-assigned ID.
func (c *Client) CreateCase(ctx context.Context, in domain.NewCase) (domain.CaseReport, error) {
	var out caseDTO
	if err := c.do(ctx, OpCreateCase, http.MethodPost, "/cases", newCaseRequest(in), &out); err != nil {
		return domain.CaseReport{}, err
	}
	record := out.toDomain()
	if record.ID == "" {
		return domain.CaseReport{}, upstream.New(upstream.CategoryBadData, serviceName, OpCreateCase, "response carries no case id", nil)
	}
	return echoSubmitted(record, in), nil
}

// echoSubmitted fills whatever the store left out of its answer with the
// submitted values. Some deployments answer a create with the ID alone.
func echoSubmitted(record domain.CaseReport, in domain.NewCase) domain.CaseReport {
	if record.Name == "" {
		record.Name = in.Name
	}
	if record.PhoneNumber == "" {
		record.PhoneNumber = in.PhoneNumber
	}
	if record.County == "" {
		record.County = in.County
	}
	if record.CaseType == "" {
		record.CaseType = in.CaseType
	}
	if record.Description == "" {
		record.Description = in.Description
	}
	if record.Date == "" && !in.Date.IsZero() {
		record.Date = in.Date.Format(domain.DateLayout)
	}
	if record.Status == "" {
		record.Status = in.Status
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = in.CreatedAt
	}
	return record
}

// ListCases returns every stored case. Only a body that is not a list fails
// the call; a record that cannot be read comes back empty.
func (c *Client) ListCases(ctx context.Context) ([]domain.CaseReport, error) {
	var out []json.RawMessage
	if err := c.doList(ctx, OpListCases, "/cases", &out); err != nil {
		return nil, err
	}
	records := make([]domain.CaseReport, 0, len(out))
	for _, raw := range out {
		records = append(records, decodeCase(raw))
	}
	return records, nil
}

// UpdateCaseStatus moves a case to status. The target is checked against the
// closed status set before any request is made.
func (c *Client) UpdateCaseStatus(ctx context.Context, id string, status domain.CaseStatus) (domain.CaseReport, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return domain.CaseReport{}, dErrors.New(dErrors.CodeBadRequest, "case id is required")
	}
	canonical, ok := domain.ParseCaseStatus(string(status))
	if !ok {
		return domain.CaseReport{}, dErrors.New(dErrors.CodeValidation, fmt.Sprintf("unknown case status %q", status))
	}

	var out caseDTO
	body := statusRequest{Status: string(canonical)}
	if err := c.do(ctx, OpUpdateCaseStatus, http.MethodPatch, "/cases/"+url.PathEscape(id)+"/status", body, &out); err != nil {
		return domain.CaseReport{}, err
	}
	record := out.toDomain()
	if record.ID == "" {
		record.ID = id
	}
	if record.Status == "" {
		record.Status = canonical
	}
	return record, nil
}

// CreateProfile stores a registration. The credential is sent but never
// copied into the returned record.
func (c *Client) CreateProfile(ctx context.Context, in domain.NewProfile) (domain.ProfileRecord, error) {
	var out profileDTO
	if err := c.do(ctx, OpCreateProfile, http.MethodPost, "/profiles", newProfileRequest(in), &out); err != nil {
		return domain.ProfileRecord{}, err
	}
	record := out.toDomain()
	if record.Name == "" {
		record.Name = in.Name
		record.Email = in.Email
		record.PhoneNumber = in.PhoneNumber
		record.Age = in.Age
	}
	if record.RegistrationDate.IsZero() {
		record.RegistrationDate = in.RegistrationDate
	}
	if record.Status == "" {
		record.Status = in.Status
	}
	return record, nil
}

func (c *Client) ListProfiles(ctx context.Context) ([]domain.ProfileRecord, error) {
	var out []profileDTO
	if err := c.doList(ctx, OpListProfiles, "/profiles", &out); err != nil {
		return nil, err
	}
	records := make([]domain.ProfileRecord, 0, len(out))
	for _, dto := range out {
		records = append(records, dto.toDomain())
	}
	return records, nil
}

func (c *Client) ListMediations(ctx context.Context) ([]domain.MediationRecord, error) {
	var out []mediationDTO
	if err := c.doList(ctx, OpListMediations, "/mediations", &out); err != nil {
		return nil, err
	}
	records := make([]domain.MediationRecord, 0, len(out))
	for _, dto := range out {
		records = append(records, dto.toDomain())
	}
	return records, nil
}

// Login forwards credentials and returns the store's session payload.
func (c *Client) Login(ctx context.Context, creds domain.Credentials) (domain.Session, error) {
	var out map[string]any
	if err := c.do(ctx, OpLogin, http.MethodPost, "/auth/login", creds, &out); err != nil {
		return domain.Session{}, err
	}
	token, _ := out["token"].(string)
	if token == "" {
		token, _ = out["accessToken"].(string)
	}
	if token == "" {
		return domain.Session{}, upstream.New(upstream.CategoryBadData, serviceName, OpLogin, "response carries no token", nil)
	}
	delete(out, "token")
	delete(out, "accessToken")
	if len(out) == 0 {
		out = nil
	}
	return domain.Session{Token: token, Payload: out}, nil
}

// doList decodes either a bare JSON array or an object wrapping it in "data".
func (c *Client) doList(ctx context.Context, op, path string, out any) error {
	var raw json.RawMessage
	if err := c.do(ctx, op, http.MethodGet, path, nil, &raw); err != nil {
		return err
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) > 0 && raw[0] == '{' {
		var envelope struct {
			Data json.RawMessage `json:"data"`
		}
		if err := json.Unmarshal(raw, &envelope); err != nil || len(envelope.Data) == 0 {
			return upstream.New(upstream.CategoryBadData, serviceName, op, "expected a list", err)
		}
		raw = envelope.Data
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return upstream.New(upstream.CategoryBadData, serviceName, op, "decode list", err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, op, method, path string, body, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return upstream.New(upstream.CategoryInternal, serviceName, op, "encode request", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return upstream.New(upstream.CategoryInternal, serviceName, op, "build request", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	defer func() {
		c.metrics.ObserveRecordStoreLatency(op, time.Since(start))
	}()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return upstream.FromTransport(serviceName, op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		excerpt, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return upstream.FromStatus(serviceName, op, resp.StatusCode, strings.TrimSpace(string(excerpt)))
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return upstream.FromTransport(serviceName, op, ctxErr)
		}
		if errors.Is(err, io.EOF) {
			return upstream.New(upstream.CategoryBadData, serviceName, op, "empty response body", err)
		}
		return upstream.New(upstream.CategoryBadData, serviceName, op, "decode response", err)
	}
	return nil
}
