package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt"
)

// EventTokenIssuer is the issuer claim expected on event delivery tokens.
const EventTokenIssuer = "firebase-auth-events"

// GenerateEventToken signs a short-lived token authorising event delivery.
func GenerateEventToken(secret []byte, subject string, duration time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.StandardClaims{
		Issuer:    EventTokenIssuer,
		Subject:   subject,
		IssuedAt:  now.Unix(),
		ExpiresAt: now.Add(duration).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// ValidateEventToken parses an HS256 event token and returns its claims.
func ValidateEventToken(secret []byte, tokenString string) (*jwt.StandardClaims, error) {
	if len(secret) == 0 {
		return nil, errors.New("event signing secret is not configured")
	}

	claims := &jwt.StandardClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		// Ensure that the token's signing method is HMAC.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	if !claims.VerifyIssuer(EventTokenIssuer, true) {
		return nil, errors.New("token has an unexpected issuer")
	}
	return claims, nil
}
