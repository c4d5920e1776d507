package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/taskmaster/matrix/internal/domain/entities"
)

// NewValidator returns a validator with the domain-specific tags registered
func NewValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("quadrant", func(fl validator.FieldLevel) bool {
		return entities.Quadrant(fl.Field().String()).IsValid()
	})
	return v
}

// taskValidationError maps validator failures on task payloads to the
// messages clients rely on
func taskValidationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return entities.NewValidationError("Invalid request", err.Error())
	}

	for _, fe := range verrs {
		if fe.Tag() == "required" && (fe.Field() == "Title" || fe.Field() == "Quadrant") {
			return entities.ErrMissingTaskFields
		}
	}

	details := describe(verrs)
	switch verrs[0].Field() {
	case "Quadrant":
		return entities.NewValidationError("Invalid quadrant", details)
	case "DueDate":
		return entities.NewValidationError("Invalid due_date", details)
	case "Completed":
		return entities.NewValidationError("Invalid completed filter", details)
	default:
		return entities.NewValidationError("Invalid request", details)
	}
}

func describe(verrs validator.ValidationErrors) string {
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s failed on %s", fe.Field(), fe.Tag()))
	}
	return strings.Join(msgs, "; ")
}
