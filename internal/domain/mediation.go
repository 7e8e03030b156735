package domain

// MediationRecord is the stored outcome of a dispute-resolution session.
// Read-only here.
type MediationRecord struct {
	ID          string `json:"id,omitempty"`
	County      string `json:"county"`
	Reason      string `json:"reason"`
	Date        string `json:"date"`
	PhoneNumber string `json:"phoneNumber"`
}
