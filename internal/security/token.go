package security

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid token")

// AuthClaims is the payload embedded in every issued token. SessionID points
// at the session ledger row written when the token was minted.
type AuthClaims struct {
	UserID    string `json:"uid"`
	SessionID string `json:"sid"`
	Admin     bool   `json:"adm"`
	jwt.RegisteredClaims
}

func GenerateToken(secret string, userID string, sessionID string, admin bool, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := AuthClaims{
		UserID:    userID,
		SessionID: sessionID,
		Admin:     admin,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			Subject:   userID,
			ID:        sessionID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("sign jwt: %w", err)
	}
	return signed, nil
}

func ParseToken(tokenStr string, secret string) (*AuthClaims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &AuthClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	if claims, ok := token.Claims.(*AuthClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, ErrInvalidToken
}

// HashToken is the digest stored in the session ledger; raw tokens are never
// persisted.
func HashToken(token string) []byte {
	sum := sha256.Sum256([]byte(token))
	return sum[:]
}
