package security

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid token")

// TokenManager validates access tokens issued by the auth provider. Both sides share the
// HMAC secret.
type TokenManager struct {
	accessSecret []byte
}

func NewTokenManager(accessSecret string) *TokenManager {
	return &TokenManager{accessSecret: []byte(accessSecret)}
}

// Generate signs an access token for userID. The service never hands these out itself;
// it is used by tooling and tests.
func (m *TokenManager) Generate(userID string, ttl time.Duration) (string, error) {
	if len(m.accessSecret) == 0 {
		return "", ErrInvalidToken
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  userID,
		"exp":  time.Now().Add(ttl).Unix(),
		"type": "access",
	})
	return t.SignedString(m.accessSecret)
}

// ValidateAccessToken returns the user id carried in the token's sub claim.
func (m *TokenManager) ValidateAccessToken(tokenStr string) (string, error) {
	// an empty HMAC key would accept tokens anyone can sign
	if len(m.accessSecret) == 0 {
		return "", ErrInvalidToken
	}
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.accessSecret, nil
	})
	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", ErrInvalidToken
	}
	if typ, ok := claims["type"].(string); ok && typ != "access" {
		return "", ErrInvalidToken
	}
	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return "", ErrInvalidToken
	}
	return sub, nil
}
