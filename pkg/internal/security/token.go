package security

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrInvalidToken is returned when a bearer token is malformed, carries a
// bad signature, or has expired.
var ErrInvalidToken = errors.New("invalid token")

// TokenAuthority issues and verifies the signed bearer credentials used by
// the authorization guard. The subject claim carries the account ID.
type TokenAuthority struct {
	secret   []byte
	lifetime time.Duration
}

func NewTokenAuthority(secret string, lifetime time.Duration) *TokenAuthority {
	if lifetime <= 0 {
		lifetime = 24 * time.Hour
	}
	return &TokenAuthority{
		secret:   []byte(secret),
		lifetime: lifetime,
	}
}

func (v *TokenAuthority) IssueToken(accountId uint) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   strconv.Itoa(int(accountId)),
		ID:        uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(v.lifetime)),
	})

	return token.SignedString(v.secret)
}

// VerifyToken validates the signature and expiry of a bearer token and
// returns the account ID embedded in its subject claim.
func (v *TokenAuthority) VerifyToken(raw string) (uint, error) {
	token, err := jwt.Parse(raw, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil || !token.Valid {
		return 0, ErrInvalidToken
	}

	sub, err := token.Claims.GetSubject()
	if err != nil {
		return 0, ErrInvalidToken
	}

	accountId, err := strconv.ParseUint(sub, 10, 64)
	if err != nil {
		return 0, ErrInvalidToken
	}

	return uint(accountId), nil
}
