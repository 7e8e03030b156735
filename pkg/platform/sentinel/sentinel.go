package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Upstream clients and caches return
// these (optionally wrapped) so services can translate them into domain errors.
//
// These describe the state of a collaborator, not the validity of input:
// - ErrNotFound: the record store has no such record
// - ErrUnavailable: a collaborator is down or unreachable
// - ErrTimeout: a collaborator did not answer within its budget
// - ErrNotConfigured: a collaborator cannot be called because its settings are missing
//
// Field-level validation failures are reported by the intake validator, not here.
var (
	ErrNotFound      = errors.New("not found")
	ErrUnavailable   = errors.New("unavailable")
	ErrTimeout       = errors.New("timeout")
	ErrNotConfigured = errors.New("not configured")
)
