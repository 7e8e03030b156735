package testutil

import (
	"net/http"
	"time"

	"sherialink/pkg/requestcontext"
)

// WithRequestID adds a request ID to the request context, as the RequestID
// middleware would.
func WithRequestID(req *http.Request, requestID string) *http.Request {
	return req.WithContext(requestcontext.WithRequestID(req.Context(), requestID))
}

// WithRequestTime pins the request-scoped clock, so handlers that stamp
// records produce predictable timestamps.
func WithRequestTime(req *http.Request, now time.Time) *http.Request {
	return req.WithContext(requestcontext.WithTime(req.Context(), now))
}

// WithRequestMetadata applies both request ID and time.
func WithRequestMetadata(req *http.Request, requestID string, now time.Time) *http.Request {
	return WithRequestTime(WithRequestID(req, requestID), now)
}
