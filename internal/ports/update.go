package ports

import (
	"encoding/json"

	"github.com/taskmaster/matrix/internal/domain/entities"
)

// Optional records whether a JSON field was present at all. A present null
// still counts as set; for pointer types it decodes to nil.
type Optional[T any] struct {
	Value T
	Set   bool
}

// Some returns a set Optional holding v
func Some[T any](v T) Optional[T] {
	return Optional[T]{Value: v, Set: true}
}

// UnmarshalJSON implements json.Unmarshaler
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	return json.Unmarshal(data, &o.Value)
}

// TaskUpdate is a partial task mutation. Only fields marked Set are written.
type TaskUpdate struct {
	Title     Optional[string]            `json:"title"`
	Quadrant  Optional[entities.Quadrant] `json:"quadrant"`
	DueDate   Optional[*string]           `json:"due_date"`
	Completed Optional[entities.Flag]     `json:"completed"`
}

// Assignment is one column = value pair of an UPDATE statement
type Assignment struct {
	Column string
	Value  interface{}
}

// IsEmpty reports whether no recognised field was supplied
func (u TaskUpdate) IsEmpty() bool {
	return len(u.Assignments()) == 0
}

// Assignments returns the set fields in a fixed column order
func (u TaskUpdate) Assignments() []Assignment {
	var out []Assignment
	if u.Title.Set {
		out = append(out, Assignment{Column: "title", Value: u.Title.Value})
	}
	if u.Quadrant.Set {
		out = append(out, Assignment{Column: "quadrant", Value: string(u.Quadrant.Value)})
	}
	if u.DueDate.Set {
		var due interface{}
		if u.DueDate.Value != nil {
			due = *u.DueDate.Value
		}
		out = append(out, Assignment{Column: "due_date", Value: due})
	}
	if u.Completed.Set {
		out = append(out, Assignment{Column: "completed", Value: int(u.Completed.Value)})
	}
	return out
}

// Validate checks the values of present fields
func (u TaskUpdate) Validate() error {
	if u.Title.Set && u.Title.Value == "" {
		return entities.NewValidationError("Invalid title", "title must not be empty")
	}
	if u.Quadrant.Set && !u.Quadrant.Value.IsValid() {
		return entities.NewValidationError("Invalid quadrant", "quadrant must be one of "+quadrantList())
	}
	if u.DueDate.Set && u.DueDate.Value != nil && !entities.ValidDueDate(*u.DueDate.Value) {
		return entities.NewValidationError("Invalid due_date", "due_date must use the YYYY-MM-DD format")
	}
	return nil
}

func quadrantList() string {
	var s string
	for i, q := range entities.Quadrants() {
		if i > 0 {
			s += ", "
		}
		s += string(q)
	}
	return s
}
