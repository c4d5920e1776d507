package services

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/taskmaster/matrix/internal/domain/entities"
	"github.com/taskmaster/matrix/internal/infrastructure/logger"
	"github.com/taskmaster/matrix/internal/ports"
)

// AuthOptions tunes password hashing and the session cookie
type AuthOptions struct {
	BcryptCost   int
	CookieSecure bool
	// Now overrides the clock; nil means time.Now
	Now func() time.Time
}

// AuthService handles authentication operations
type AuthService struct {
	userRepo     ports.UserRepository
	codec        ports.TokenCodec
	bcryptCost   int
	cookieSecure bool
	now          func() time.Time
	logger       *logger.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo ports.UserRepository, codec ports.TokenCodec, opts AuthOptions, logger *logger.Logger) *AuthService {
	cost := opts.BcryptCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &AuthService{
		userRepo:     userRepo,
		codec:        codec,
		bcryptCost:   cost,
		cookieSecure: opts.CookieSecure,
		now:          now,
		logger:       logger.WithComponent("auth"),
	}
}

// Register creates a new account and opens a session for it
func (s *AuthService) Register(ctx context.Context, req ports.CredentialsRequest) (*ports.AuthResult, error) {
	if req.Email == "" || req.Password == "" {
		return nil, entities.ErrMissingCredentials
	}

	existing, err := s.userRepo.GetByEmail(ctx, req.Email)
	switch {
	case err == nil && existing != nil:
		return nil, entities.ErrEmailTaken
	case err != nil && !errors.Is(err, entities.ErrUserNotFound):
		return nil, entities.NewInternalError("Registration failed", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return nil, entities.NewInternalError("Registration failed", err)
	}

	now := s.now().UTC()
	user := &entities.User{
		ID:           uuid.New(),
		Email:        req.Email,
		PasswordHash: string(hashedPassword),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, entities.ErrEmailTaken) {
			return nil, entities.ErrEmailTaken
		}
		return nil, entities.NewInternalError("Registration failed", err)
	}

	s.logger.Infow("User registered successfully", "user_id", user.ID, "email", user.Email)

	cookie, err := s.IssueToken(user)
	if err != nil {
		return nil, err
	}

	return &ports.AuthResult{User: user, Cookie: cookie}, nil
}

// Login verifies credentials and opens a session. Unknown email and wrong
// password produce the same error.
func (s *AuthService) Login(ctx context.Context, req ports.CredentialsRequest) (*ports.AuthResult, error) {
	if req.Email == "" || req.Password == "" {
		return nil, entities.ErrMissingCredentials
	}

	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, entities.ErrUserNotFound) {
			s.logger.LogSecurityEvent("login_failed", "", "", map[string]interface{}{"email": req.Email, "reason": "unknown_email"})
			return nil, entities.ErrInvalidCredentials
		}
		return nil, entities.NewInternalError("Login failed", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		s.logger.LogSecurityEvent("login_failed", user.ID.String(), "", map[string]interface{}{"email": req.Email, "reason": "bad_password"})
		return nil, entities.ErrInvalidCredentials
	}

	s.logger.Infow("User logged in successfully", "user_id", user.ID, "email", user.Email)

	cookie, err := s.IssueToken(user)
	if err != nil {
		return nil, err
	}

	return &ports.AuthResult{User: user, Cookie: cookie}, nil
}

// Logout returns a cookie that clears the session on the client
func (s *AuthService) Logout() *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.cookieSecure,
		SameSite: http.SameSiteStrictMode,
	}
}

// IssueToken signs a session token for user and wraps it in a cookie
func (s *AuthService) IssueToken(user *entities.User) (*http.Cookie, error) {
	token, err := s.codec.Issue(user, s.now())
	if err != nil {
		return nil, entities.NewInternalError("Failed to issue session", err)
	}

	return &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(s.codec.TTL().Seconds()),
		HttpOnly: true,
		Secure:   s.cookieSecure,
		SameSite: http.SameSiteStrictMode,
	}, nil
}

// ResolveIdentity verifies the session carried by a raw Cookie header
func (s *AuthService) ResolveIdentity(cookieHeader string) (*ports.Claims, error) {
	return ResolveIdentity(cookieHeader, s.codec, s.now())
}
