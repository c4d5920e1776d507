package entities

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// DueDateLayout is the wire and storage format of Task.DueDate
const DueDateLayout = "2006-01-02"

// Quadrant is one of the four Eisenhower Matrix categories
type Quadrant string

const (
	QuadrantUrgentImportant       Quadrant = "urgent-important"
	QuadrantUrgentNotImportant    Quadrant = "urgent-not-important"
	QuadrantNotUrgentImportant    Quadrant = "not-urgent-important"
	QuadrantNotUrgentNotImportant Quadrant = "not-urgent-not-important"
)

// Quadrants lists every valid quadrant in display order
func Quadrants() []Quadrant {
	return []Quadrant{
		QuadrantUrgentImportant,
		QuadrantUrgentNotImportant,
		QuadrantNotUrgentImportant,
		QuadrantNotUrgentNotImportant,
	}
}

// IsValid reports whether q is one of the four known quadrants
func (q Quadrant) IsValid() bool {
	for _, known := range Quadrants() {
		if q == known {
			return true
		}
	}
	return false
}

// Flag is a boolean persisted as a 0/1 integer. It accepts either JSON
// booleans or the integers 0 and 1 and always serialises as 0 or 1.
type Flag int

const (
	FlagUnset Flag = 0
	FlagSet   Flag = 1
)

// FlagOf converts a bool into its stored form
func FlagOf(b bool) Flag {
	if b {
		return FlagSet
	}
	return FlagUnset
}

// Bool returns the flag as a bool
func (f Flag) Bool() bool {
	return f != FlagUnset
}

// UnmarshalJSON implements json.Unmarshaler. A JSON null reads as unset.
func (f *Flag) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	switch v := raw.(type) {
	case nil:
		*f = FlagUnset
	case bool:
		*f = FlagOf(v)
	case float64:
		if v != 0 && v != 1 {
			return fmt.Errorf("flag must be a boolean, 0 or 1, got %v", v)
		}
		*f = Flag(v)
	default:
		return fmt.Errorf("flag must be a boolean, 0 or 1, got %s", string(data))
	}
	return nil
}

// User represents an account that owns tasks
type User struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// Task is a single item placed in one quadrant of a user's matrix
type Task struct {
	ID        int64     `json:"id" db:"id"`
	Title     string    `json:"title" db:"title"`
	Quadrant  Quadrant  `json:"quadrant" db:"quadrant"`
	DueDate   *string   `json:"due_date" db:"due_date"`
	Completed Flag      `json:"completed" db:"completed"`
	UserID    uuid.UUID `json:"user_id" db:"user_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// IsOwnedBy reports whether the task belongs to userID
func (t *Task) IsOwnedBy(userID uuid.UUID) bool {
	return t.UserID == userID
}

// ValidDueDate reports whether s is a calendar date in DueDateLayout
func ValidDueDate(s string) bool {
	_, err := time.Parse(DueDateLayout, s)
	return err == nil
}
