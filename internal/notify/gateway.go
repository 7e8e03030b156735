// Package notify sends confirmation messages through the Africa's Talking SMS
// gateway.
package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"sherialink/internal/platform/config"
	"sherialink/internal/upstream"
	"sherialink/pkg/platform/circuit"
	"sherialink/pkg/platform/sentinel"
)

const serviceName = "sms-gateway"

const opSend = "send_sms"

var (
	// ErrMissingAPIKey is returned without any network call when no API key is configured.
	ErrMissingAPIKey = fmt.Errorf("sms gateway api key: %w", sentinel.ErrNotConfigured)

	// ErrCircuitOpen is returned while the gateway has been failing repeatedly.
	ErrCircuitOpen = fmt.Errorf("sms gateway circuit open: %w", sentinel.ErrUnavailable)

	// ErrRecipientRejected means the gateway answered but did not accept the message for the recipient.
	ErrRecipientRejected = errors.New("recipient rejected")
)

// Gateway status codes that mean the message was accepted.
const (
	statusProcessed = 100
	statusSent      = 101
	statusQueued    = 102
)

// Receipt is the gateway's per-recipient answer.
type Receipt struct {
	MessageID  string `json:"messageId"`
	Number     string `json:"number"`
	Status     string `json:"status"`
	StatusCode int    `json:"statusCode"`
	Cost       string `json:"cost"`
}

type sendResponse struct {
	SMSMessageData struct {
		Message    string    `json:"Message"`
		Recipients []Receipt `json:"Recipients"`
	} `json:"SMSMessageData"`
}

// Client posts form-encoded messages to {base}/messaging.
type Client struct {
	apiKey     string
	username   string
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
	breaker    *circuit.Breaker
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithBaseURL overrides the environment-derived endpoint root.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(u, "/")
	}
}

// WithBreaker replaces the default circuit breaker.
func WithBreaker(b *circuit.Breaker) Option {
	return func(c *Client) {
		c.breaker = b
	}
}

// New creates a gateway client for the configured environment.
func New(cfg config.Gateway, opts ...Option) *Client {
	c := &Client{
		apiKey:     strings.TrimSpace(cfg.APIKey),
		username:   cfg.Username,
		baseURL:    cfg.BaseURL(),
		timeout:    cfg.Timeout,
		httpClient: &http.Client{},
		breaker:    circuit.New(serviceName, circuit.WithFailureThreshold(cfg.FailureThreshold)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Send delivers message to one recipient. A nil error means the gateway
// accepted the message; delivery to the handset is not confirmed.
func (c *Client) Send(ctx context.Context, to, message string) (Receipt, error) {
	if c.apiKey == "" {
		return Receipt{}, ErrMissingAPIKey
	}
	if !c.breaker.Allow() {
		return Receipt{}, ErrCircuitOpen
	}

	receipt, err := c.send(ctx, to, message)
	if err != nil && !errors.Is(err, ErrRecipientRejected) && !errors.Is(err, context.Canceled) {
		c.breaker.RecordFailure()
		return receipt, err
	}
	c.breaker.RecordSuccess()
	return receipt, err
}

func (c *Client) send(ctx context.Context, to, message string) (Receipt, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	form := url.Values{}
	form.Set("username", c.username)
	form.Set("to", ToInternational(to))
	form.Set("message", message)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/messaging", strings.NewReader(form.Encode()))
	if err != nil {
		return Receipt{}, upstream.New(upstream.CategoryInternal, serviceName, opSend, "build request", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("apiKey", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Receipt{}, upstream.FromTransport(serviceName, opSend, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		excerpt, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return Receipt{}, upstream.FromStatus(serviceName, opSend, resp.StatusCode, strings.TrimSpace(string(excerpt)))
	}

	var out sendResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return Receipt{}, upstream.New(upstream.CategoryBadData, serviceName, opSend, "decode response", err)
	}
	if len(out.SMSMessageData.Recipients) == 0 {
		return Receipt{}, upstream.New(upstream.CategoryRejected, serviceName, opSend,
			"no recipients accepted: "+out.SMSMessageData.Message, ErrRecipientRejected)
	}

	receipt := out.SMSMessageData.Recipients[0]
	switch receipt.StatusCode {
	case statusProcessed, statusSent, statusQueued:
		return receipt, nil
	default:
		return receipt, upstream.New(upstream.CategoryRejected, serviceName, opSend,
			fmt.Sprintf("recipient status %d %s", receipt.StatusCode, receipt.Status), ErrRecipientRejected)
	}
}

// ToInternational rewrites a local Kenyan mobile number (07.., 01..) into the
// +254 form the gateway expects. Anything else is returned trimmed.
func ToInternational(phone string) string {
	phone = strings.TrimSpace(phone)
	if len(phone) == 10 && phone[0] == '0' {
		return "+254" + phone[1:]
	}
	return phone
}
