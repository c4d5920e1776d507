package services

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/taskmaster/matrix/internal/domain/entities"
	"github.com/taskmaster/matrix/internal/ports"
)

// sessionClaims is the signed payload of a session token
type sessionClaims struct {
	UserID string `json:"id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// JWTCodec issues and verifies HS256 session tokens
type JWTCodec struct {
	secret []byte
	ttl    time.Duration
	issuer string
}

// NewJWTCodec creates a token codec. The secret is held as given and never logged.
func NewJWTCodec(secret []byte, ttl time.Duration, issuer string) *JWTCodec {
	return &JWTCodec{
		secret: secret,
		ttl:    ttl,
		issuer: issuer,
	}
}

// TTL returns the lifetime of issued tokens
func (c *JWTCodec) TTL() time.Duration {
	return c.ttl
}

// Issue signs a token for user valid from now until now+TTL
func (c *JWTCodec) Issue(user *entities.User, now time.Time) (string, error) {
	claims := &sessionClaims{
		UserID: user.ID.String(),
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    c.issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// Verify checks signature, algorithm and expiry against now
func (c *JWTCodec) Verify(tokenString string, now time.Time) (*ports.Claims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(func() time.Time { return now }),
	)

	claims := &sessionClaims{}
	token, err := parser.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
		return c.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, fmt.Errorf("invalid token subject: %w", err)
	}

	out := &ports.Claims{
		UserID:    userID,
		Email:     claims.Email,
		ExpiresAt: claims.ExpiresAt.Time,
	}
	if claims.IssuedAt != nil {
		out.IssuedAt = claims.IssuedAt.Time
	}
	return out, nil
}
