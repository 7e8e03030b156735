package service

import (
	"sherialink/internal/domain"
	"sherialink/internal/intake/validation"
)

// OutcomeKind tells which of the three pipeline results an Outcome holds.
type OutcomeKind string

const (
	// OutcomeAccepted: the record was stored. NotificationSent says whether
	// the confirmation reached the gateway.
	OutcomeAccepted OutcomeKind = "accepted"

	// OutcomeRejected: validation failed and nothing was sent anywhere.
	OutcomeRejected OutcomeKind = "rejected"

	// OutcomePersistenceFailed: the record store did not confirm the write.
	// No notification was attempted.
	OutcomePersistenceFailed OutcomeKind = "persistence_failed"
)

// Outcome is the result of one submission. Only the fields of its Kind are set.
type Outcome struct {
	Kind OutcomeKind

	// Accepted
	Case             *domain.CaseReport
	Profile          *domain.ProfileRecord
	NotificationSent bool

	// Rejected
	FieldErrors validation.FieldErrors

	// PersistenceFailed
	Reason string
	Err    error
}

func AcceptedCase(record domain.CaseReport, notificationSent bool) Outcome {
	return Outcome{Kind: OutcomeAccepted, Case: &record, NotificationSent: notificationSent}
}

func AcceptedProfile(record domain.ProfileRecord) Outcome {
	return Outcome{Kind: OutcomeAccepted, Profile: &record}
}

func Rejected(errs validation.FieldErrors) Outcome {
	return Outcome{Kind: OutcomeRejected, FieldErrors: errs}
}

func PersistenceFailed(reason string, err error) Outcome {
	return Outcome{Kind: OutcomePersistenceFailed, Reason: reason, Err: err}
}

// RecordID is the store-assigned ID of an accepted record, or "".
func (o Outcome) RecordID() string {
	switch {
	case o.Case != nil:
		return o.Case.ID
	case o.Profile != nil:
		return o.Profile.ID
	default:
		return ""
	}
}
