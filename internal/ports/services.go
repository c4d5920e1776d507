package ports

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/taskmaster/matrix/internal/domain/entities"
)

// AuthService interface for authentication operations
type AuthService interface {
	Register(ctx context.Context, req CredentialsRequest) (*AuthResult, error)
	Login(ctx context.Context, req CredentialsRequest) (*AuthResult, error)
	Logout() *http.Cookie
	ResolveIdentity(cookieHeader string) (*Claims, error)
}

// TaskService interface for task management operations.
// Every call acts on behalf of the caller identified by claims.
type TaskService interface {
	ListTasks(ctx context.Context, claims *Claims, query TaskQuery) ([]*entities.Task, error)
	CreateTask(ctx context.Context, claims *Claims, req CreateTaskRequest) (*entities.Task, error)
	GetTask(ctx context.Context, claims *Claims, id int64) (*entities.Task, error)
	ReplaceTask(ctx context.Context, claims *Claims, id int64, req ReplaceTaskRequest) (*entities.Task, error)
	PatchTask(ctx context.Context, claims *Claims, id int64, update TaskUpdate) (*entities.Task, error)
	DeleteTask(ctx context.Context, claims *Claims, id int64) error
}

// TokenCodec signs and verifies session tokens
type TokenCodec interface {
	Issue(user *entities.User, now time.Time) (string, error)
	Verify(token string, now time.Time) (*Claims, error)
	TTL() time.Duration
}

// Claims is the verified identity carried by a session token
type Claims struct {
	UserID    uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	IssuedAt  time.Time `json:"iat"`
	ExpiresAt time.Time `json:"exp"`
}

// Auth related types
type CredentialsRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AuthResult is the outcome of a successful register or login
type AuthResult struct {
	User   *entities.User
	Cookie *http.Cookie
}

type UserResponse struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
}

type SessionResponse struct {
	User UserResponse `json:"user"`
}

// Task related types
type CreateTaskRequest struct {
	Title    string            `json:"title" validate:"required"`
	Quadrant entities.Quadrant `json:"quadrant" validate:"required,quadrant"`
	DueDate  *string           `json:"due_date" validate:"omitempty,datetime=2006-01-02"`
}

type ReplaceTaskRequest struct {
	Title     string            `json:"title" validate:"required"`
	Quadrant  entities.Quadrant `json:"quadrant" validate:"required,quadrant"`
	DueDate   *string           `json:"due_date" validate:"omitempty,datetime=2006-01-02"`
	Completed entities.Flag     `json:"completed"`
}

// Update converts a full replacement into a TaskUpdate that sets every column
func (r ReplaceTaskRequest) Update() TaskUpdate {
	return TaskUpdate{
		Title:     Some(r.Title),
		Quadrant:  Some(r.Quadrant),
		DueDate:   Some(r.DueDate),
		Completed: Some(r.Completed),
	}
}

// TaskQuery carries the optional list filters as received from the client
type TaskQuery struct {
	Quadrant  string `query:"quadrant" validate:"omitempty,quadrant"`
	Completed string `query:"completed" validate:"omitempty,oneof=true false 1 0"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
