package upstream

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	dErrors "sherialink/pkg/domain-errors"
	"sherialink/pkg/platform/sentinel"
)

type timeoutErr struct{}

func (timeoutErr) Error() string   { return "i/o timeout" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }

func TestFromTransport(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		category  Category
		retryable bool
		sentinel  error
	}{
		{"deadline", fmt.Errorf("do: %w", context.DeadlineExceeded), CategoryTimeout, true, sentinel.ErrTimeout},
		{"net timeout", timeoutErr{}, CategoryTimeout, true, sentinel.ErrTimeout},
		{"canceled", context.Canceled, CategoryCanceled, false, nil},
		{"refused", errors.New("dial tcp: connection refused"), CategoryOutage, true, sentinel.ErrUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := FromTransport("record-store", "create_case", tt.err)
			assert.Equal(t, tt.category, CategoryOf(err))
			assert.Equal(t, tt.retryable, IsRetryable(err))
			if tt.sentinel != nil {
				assert.ErrorIs(t, err, tt.sentinel)
			}
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestFromStatus(t *testing.T) {
	tests := []struct {
		status   int
		category Category
	}{
		{http.StatusNotFound, CategoryNotFound},
		{http.StatusUnauthorized, CategoryAuthentication},
		{http.StatusForbidden, CategoryAuthentication},
		{http.StatusTooManyRequests, CategoryRateLimited},
		{http.StatusGatewayTimeout, CategoryTimeout},
		{http.StatusInternalServerError, CategoryOutage},
		{http.StatusBadGateway, CategoryOutage},
		{http.StatusBadRequest, CategoryRejected},
		{http.StatusUnprocessableEntity, CategoryRejected},
	}
	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			err := FromStatus("record-store", "list_cases", tt.status, "")
			assert.Equal(t, tt.category, err.Category)
			assert.Equal(t, tt.status, err.StatusCode)
		})
	}

	t.Run("not found wraps sentinel", func(t *testing.T) {
		err := FromStatus("record-store", "update_case_status", http.StatusNotFound, `{"message":"no case"}`)
		assert.ErrorIs(t, err, sentinel.ErrNotFound)
		assert.Contains(t, err.Error(), `no case`)
	})
}

func TestCategoryOfPlainError(t *testing.T) {
	assert.Equal(t, CategoryInternal, CategoryOf(errors.New("boom")))
	assert.False(t, IsRetryable(errors.New("boom")))
}

func TestToDomain(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code dErrors.Code
	}{
		{"not found", FromStatus("record-store", "update_case_status", http.StatusNotFound, ""), dErrors.CodeNotFound},
		{"login refused", FromStatus("record-store", "login", http.StatusUnauthorized, ""), dErrors.CodeUnauthorized},
		{"rejected", FromStatus("record-store", "create_case", http.StatusBadRequest, ""), dErrors.CodeBadRequest},
		{"timeout", FromTransport("record-store", "list_cases", context.DeadlineExceeded), dErrors.CodeTimeout},
		{"outage", FromStatus("record-store", "list_cases", http.StatusServiceUnavailable, ""), dErrors.CodeBadGateway},
		{"bad data", New(CategoryBadData, "record-store", "list_cases", "decode", nil), dErrors.CodeBadGateway},
		{"plain", errors.New("boom"), dErrors.CodeInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ToDomain(tt.err)
			assert.Equal(t, tt.code, dErrors.CodeOf(err))
			assert.ErrorIs(t, err, tt.err)
		})
	}

	t.Run("domain error passes through", func(t *testing.T) {
		in := dErrors.New(dErrors.CodeValidation, "bad status")
		assert.Same(t, in, ToDomain(in))
	})
	assert.NoError(t, ToDomain(nil))
}
