package domain

import "time"

// Credentials are forwarded to the record store's login endpoint untouched.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Session is the record store's login payload. Subject and ExpiresAt are read
// from the token claims when the token is a JWT; the signature is the record
// store's concern, not ours.
type Session struct {
	Token     string         `json:"token"`
	Subject   string         `json:"subject,omitempty"`
	ExpiresAt *time.Time     `json:"expiresAt,omitempty"`
	Payload   map[string]any `json:"payload,omitempty"`
}
