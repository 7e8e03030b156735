package service

import (
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"sherialink/internal/domain"
)

// withClaims fills Subject and ExpiresAt from the session token when it is a
// JWT. The record store issued and signs the token; this service holds no key
// and only reads the registered claims for display. Opaque tokens are left
// untouched.
func withClaims(session domain.Session) domain.Session {
	if strings.Count(session.Token, ".") != 2 {
		return session
	}
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(session.Token, &claims); err != nil {
		return session
	}
	session.Subject = claims.Subject
	if claims.ExpiresAt != nil {
		exp := claims.ExpiresAt.UTC()
		session.ExpiresAt = &exp
	}
	return session
}
