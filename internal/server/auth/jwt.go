// Package auth issues and verifies the stateless HS256 access tokens that
// bind a user id to an expiry.
package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/dmitrijs2005/bookmarks/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims carries the user id in the standard "sub" claim.
type Claims struct {
	jwt.RegisteredClaims
}

func GenerateToken(userID string, secretKey []byte, validityDuration time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validityDuration)),
		},
	})

	return token.SignedString(secretKey)
}

// GetUserIDFromToken verifies signature, algorithm and expiry and returns the
// subject. Expired tokens yield common.ErrTokenExpired; every other failure
// yields common.ErrInvalidToken.
func GetUserIDFromToken(tokenString string, secretKey []byte) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (interface{}, error) {
			return secretKey, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", common.ErrTokenExpired
		}
		return "", common.ErrInvalidToken
	}

	if !token.Valid || claims.Subject == "" {
		return "", common.ErrInvalidToken
	}

	return claims.Subject, nil
}

// TokenFromHeader extracts the token from an "Authorization: Bearer <token>"
// header value.
func TokenFromHeader(header string) (string, error) {
	if len(header) < len(common.BearerPrefix) ||
		!strings.EqualFold(header[:len(common.BearerPrefix)], common.BearerPrefix) {
		return "", common.ErrorUnauthorized
	}
	token := strings.TrimSpace(header[len(common.BearerPrefix):])
	if token == "" {
		return "", common.ErrorUnauthorized
	}
	return token, nil
}
