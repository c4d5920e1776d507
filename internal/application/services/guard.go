package services

import (
	"strings"
	"time"

	"github.com/taskmaster/matrix/internal/domain/entities"
	"github.com/taskmaster/matrix/internal/ports"
)

// SessionCookieName is the cookie carrying the session token
const SessionCookieName = "token"

// ResolveIdentity extracts the session token from a raw Cookie header and
// verifies it. It depends only on its arguments.
func ResolveIdentity(cookieHeader string, codec ports.TokenCodec, now time.Time) (*ports.Claims, error) {
	token := sessionToken(cookieHeader)
	if token == "" {
		return nil, entities.ErrUnauthorized
	}

	claims, err := codec.Verify(token, now)
	if err != nil {
		return nil, &entities.Error{Kind: entities.KindUnauthorized, Message: entities.ErrUnauthorized.Message, Err: err}
	}

	return claims, nil
}

// AuthorizeTaskAccess allows access only to the task's owner.
// Callers must have established that task exists.
func AuthorizeTaskAccess(claims *ports.Claims, task *entities.Task) error {
	if claims == nil || !task.IsOwnedBy(claims.UserID) {
		return entities.ErrForbidden
	}
	return nil
}

// sessionToken returns the value of the first cookie named exactly "token"
func sessionToken(header string) string {
	for _, part := range strings.Split(header, ";") {
		name, value, ok := strings.Cut(strings.TrimSpace(part), "=")
		if !ok || strings.TrimSpace(name) != SessionCookieName {
			continue
		}
		return strings.TrimSpace(value)
	}
	return ""
}
