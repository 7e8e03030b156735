// Package upstream normalizes failures of the external HTTP collaborators
// (record store, SMS gateway) into one taxonomy.
package upstream

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	dErrors "sherialink/pkg/domain-errors"
	"sherialink/pkg/platform/sentinel"
)

// Category defines the normalized failure taxonomy.
type Category string

const (
	// CategoryTimeout indicates the collaborator took too long to respond
	CategoryTimeout Category = "timeout"

	// CategoryBadData indicates the collaborator returned invalid/malformed data
	CategoryBadData Category = "bad_data"

	// CategoryAuthentication indicates credential or permission issues
	CategoryAuthentication Category = "authentication"

	// CategoryOutage indicates the collaborator is unreachable or failing
	CategoryOutage Category = "provider_outage"

	// CategoryNotFound indicates the requested record doesn't exist
	CategoryNotFound Category = "not_found"

	// CategoryRateLimited indicates too many requests
	CategoryRateLimited Category = "rate_limited"

	// CategoryRejected indicates the collaborator refused the payload
	CategoryRejected Category = "rejected"

	// CategoryCanceled indicates the caller gave up before the call finished
	CategoryCanceled Category = "canceled"

	// CategoryInternal indicates an unexpected local error
	CategoryInternal Category = "internal"
)

// Error wraps a collaborator failure with its category.
type Error struct {
	Category   Category
	Service    string
	Operation  string
	StatusCode int
	Message    string
	Underlying error
	Retryable  bool
}

func (e *Error) Error() string {
	if e.Underlying != nil {
		return fmt.Sprintf("%s %s [%s]: %s: %v", e.Service, e.Operation, e.Category, e.Message, e.Underlying)
	}
	return fmt.Sprintf("%s %s [%s]: %s", e.Service, e.Operation, e.Category, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Underlying
}

// New creates a normalized error. Timeouts, outages and rate limits are
// marked retryable; callers that create records must still not retry them.
func New(category Category, service, operation, message string, underlying error) *Error {
	retryable := category == CategoryTimeout ||
		category == CategoryOutage ||
		category == CategoryRateLimited

	return &Error{
		Category:   category,
		Service:    service,
		Operation:  operation,
		Message:    message,
		Underlying: underlying,
		Retryable:  retryable,
	}
}

// FromTransport classifies an error returned by http.Client.Do or by the
// context bounding the call.
func FromTransport(service, operation string, err error) *Error {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return New(CategoryTimeout, service, operation, "request timed out", errors.Join(sentinel.ErrTimeout, err))
	case errors.Is(err, context.Canceled):
		return New(CategoryCanceled, service, operation, "request canceled", err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return New(CategoryTimeout, service, operation, "request timed out", errors.Join(sentinel.ErrTimeout, err))
	}
	return New(CategoryOutage, service, operation, "request failed", errors.Join(sentinel.ErrUnavailable, err))
}

// FromStatus classifies a non-2xx response. body is an excerpt used only for
// diagnostics.
func FromStatus(service, operation string, status int, body string) *Error {
	var category Category
	switch {
	case status == http.StatusNotFound:
		category = CategoryNotFound
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		category = CategoryAuthentication
	case status == http.StatusTooManyRequests:
		category = CategoryRateLimited
	case status == http.StatusRequestTimeout || status == http.StatusGatewayTimeout:
		category = CategoryTimeout
	case status >= 500:
		category = CategoryOutage
	default:
		category = CategoryRejected
	}

	msg := fmt.Sprintf("unexpected status %d", status)
	if body != "" {
		msg += ": " + body
	}
	var underlying error
	if category == CategoryNotFound {
		underlying = sentinel.ErrNotFound
	}
	e := New(category, service, operation, msg, underlying)
	e.StatusCode = status
	return e
}

// IsRetryable checks if an error is worth retrying
func IsRetryable(err error) bool {
	var ue *Error
	if errors.As(err, &ue) {
		return ue.Retryable
	}
	return false
}

// CategoryOf extracts the category from an error
func CategoryOf(err error) Category {
	var ue *Error
	if errors.As(err, &ue) {
		return ue.Category
	}
	return CategoryInternal
}

// ToDomain translates a collaborator failure into a coded domain error for
// handlers. The upstream message is kept only in the wrapped cause.
func ToDomain(err error) error {
	if err == nil {
		return nil
	}
	var de *dErrors.Error
	if errors.As(err, &de) {
		return err
	}
	var ue *Error
	if !errors.As(err, &ue) {
		return dErrors.Wrap(err, dErrors.CodeInternal, "internal error")
	}
	switch ue.Category {
	case CategoryNotFound:
		return dErrors.Wrap(err, dErrors.CodeNotFound, "record not found")
	case CategoryAuthentication:
		return dErrors.Wrap(err, dErrors.CodeUnauthorized, "credentials rejected by "+ue.Service)
	case CategoryRejected:
		return dErrors.Wrap(err, dErrors.CodeBadRequest, ue.Service+" rejected the request")
	case CategoryTimeout:
		return dErrors.Wrap(err, dErrors.CodeTimeout, ue.Service+" timed out")
	case CategoryCanceled:
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "request canceled")
	default:
		return dErrors.Wrap(err, dErrors.CodeBadGateway, ue.Service+" unavailable")
	}
}
