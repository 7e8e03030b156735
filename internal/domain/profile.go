package domain

import "time"

// ProfileStatus is the account state of a registered user.
type ProfileStatus string

const ProfileStatusActive ProfileStatus = "Active"

// Age bounds for a registrant, inclusive.
const (
	MinProfileAge = 18
	MaxProfileAge = 120
)

// ProfileRecord is a registered user's account and demographic data.
// The credential never leaves this service in a response.
type ProfileRecord struct {
	ID               string        `json:"id,omitempty"`
	Name             string        `json:"name"`
	Email            string        `json:"email"`
	PhoneNumber      string        `json:"phoneNumber"`
	Age              int           `json:"age"`
	Password         string        `json:"-"`
	RegistrationDate time.Time     `json:"registrationDate"`
	Status           ProfileStatus `json:"status"`
}

// NewProfile is the create payload sent to the record store. Password is
// plaintext unless the deployment hashes registrations.
type NewProfile struct {
	Name             string
	Email            string
	PhoneNumber      string
	Age              int
	Password         string
	RegistrationDate time.Time
	Status           ProfileStatus
}
