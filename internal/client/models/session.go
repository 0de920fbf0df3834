package models

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Session is the caller's login state. It is passed explicitly to every
// authenticated API call.
type Session struct {
	Token     string
	UserID    string
	UserName  string
	ExpiresAt time.Time
}

// NewSession reads the expiry from the token's "exp" claim. The signature is
// not checked here; the server does that on every request.
func NewSession(token, userID, userName string) (*Session, error) {
	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}
	if claims.ExpiresAt == nil {
		return nil, fmt.Errorf("parse token: no exp claim")
	}

	return &Session{
		Token:     token,
		UserID:    userID,
		UserName:  userName,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

// Expired reports whether the session can no longer be used at now.
func (s *Session) Expired(now time.Time) bool {
	return s == nil || !now.Before(s.ExpiresAt)
}
