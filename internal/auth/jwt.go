// Package auth issues and verifies the signed identity assertions carried
// in the x-auth-token header.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Vamshir3156/taskify-API/internal/models"
)

// TokenValidity is the fixed lifetime of an issued token. There is no
// revocation: a token stays valid for its full window regardless of
// server-side state changes.
const TokenValidity = 24 * time.Hour

var ErrInvalidToken = errors.New("invalid token")

// Claims includes the registered claims plus the user id the token asserts.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id"`
}

// GenerateToken produces a signed HS256 token embedding userID, expiring
// after validity.
func GenerateToken(userID models.UserID, secret []byte, validity time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validity)),
		},
		UserID: string(userID),
	})

	tokenString, err := token.SignedString(secret)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// ParseToken verifies tokenString against secret and returns the asserted
// user id. It fails with ErrInvalidToken when the signature is wrong, the
// payload is malformed, or the expiry has elapsed.
func ParseToken(tokenString string, secret []byte) (models.UserID, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	})
	if err != nil {
		return "", ErrInvalidToken
	}

	if !token.Valid || claims.UserID == "" {
		return "", ErrInvalidToken
	}

	return models.UserID(claims.UserID), nil
}
