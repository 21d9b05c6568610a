package security

import (
	"errors"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/golang-jwt/jwt/v5"

	"ratehub/internal/common"
)

// TokenCodec signs and verifies the session tokens carried by every request.
// The secret is injected at construction, never read from process state, so a
// test can build a codec around a fixed key.
type TokenCodec struct {
	auth *jwtauth.JWTAuth
	ttl  time.Duration
}

func NewTokenCodec(secret []byte, ttl time.Duration) *TokenCodec {
	return &TokenCodec{
		auth: jwtauth.New("HS256", secret, nil),
		ttl:  ttl,
	}
}

// JWTAuth exposes the underlying verifier for the router-wide jwtauth middleware.
func (c *TokenCodec) JWTAuth() *jwtauth.JWTAuth {
	return c.auth
}

func (c *TokenCodec) Issue(userID, role string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": userID,
		"role":    role,
		"iat":     now.Unix(),
		"exp":     now.Add(c.ttl).Unix(),
	}
	_, tokenString, err := c.auth.Encode(claims)
	return tokenString, err
}

// Verify checks signature and expiry and returns the bound user id. Any
// failure mode (absent, malformed, tampered, expired) is ErrUnauthorized;
// callers must not be able to tell a forged token from a missing one.
func (c *TokenCodec) Verify(tokenString string) (string, error) {
	if tokenString == "" {
		return "", common.ErrUnauthorized
	}
	token, err := jwtauth.VerifyToken(c.auth, tokenString)
	if err != nil || token == nil {
		return "", common.ErrUnauthorized
	}
	userID, ok := token.Get("user_id")
	if !ok {
		return "", common.ErrUnauthorized
	}
	id, ok := userID.(string)
	if !ok || id == "" {
		return "", common.ErrUnauthorized
	}
	return id, nil
}

// Helper functions to extract claims, used by the authentication middleware
func UserIDFromClaims(claims jwt.MapClaims) (string, error) {
	id, ok := claims["user_id"].(string)
	if !ok {
		return "", errors.New("user_id claim is missing or not a string")
	}
	return id, nil
}

func RoleFromClaims(claims jwt.MapClaims) (string, error) {
	role, ok := claims["role"].(string)
	if !ok {
		return "", errors.New("role claim is missing or not a string")
	}
	return role, nil
}
