package entities

import "errors"

// ErrorKind classifies domain errors; transports map each kind to a status code
type ErrorKind int

const (
	KindInternal ErrorKind = iota
	KindValidation
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindConflict
)

func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindUnauthorized:
		return "unauthorized"
	case KindForbidden:
		return "forbidden"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	default:
		return "internal"
	}
}

// Error is a classified failure with a client-safe message.
// Details is optional diagnostic text; Err is the wrapped cause and is never
// shown to clients outside debug mode.
type Error struct {
	Kind    ErrorKind
	Message string
	Details string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error with the same kind and message, so a sentinel
// still matches after a cause has been attached to a copy of it
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind && e.Message == t.Message
}

// Common errors
var (
	ErrMissingCredentials = &Error{Kind: KindValidation, Message: "Email and password are required."}
	ErrInvalidCredentials = &Error{Kind: KindUnauthorized, Message: "Invalid email or password."}
	ErrUnauthorized       = &Error{Kind: KindUnauthorized, Message: "Not authenticated"}
	ErrForbidden          = &Error{Kind: KindForbidden, Message: "Forbidden"}
	ErrTaskNotFound       = &Error{Kind: KindNotFound, Message: "Task not found"}
	ErrUserNotFound       = &Error{Kind: KindNotFound, Message: "User not found"}
	ErrEmailTaken         = &Error{Kind: KindConflict, Message: "Email already registered."}
	ErrNoFieldsToUpdate   = &Error{Kind: KindValidation, Message: "No fields to update"}
	ErrMissingTaskFields  = &Error{Kind: KindValidation, Message: "Missing required fields: title and quadrant are required."}
)

// NewValidationError builds a 400-class error with diagnostic details
func NewValidationError(message, details string) *Error {
	return &Error{Kind: KindValidation, Message: message, Details: details}
}

// NewInternalError wraps a store or infrastructure failure
func NewInternalError(message string, err error) *Error {
	return &Error{Kind: KindInternal, Message: message, Err: err}
}

// KindOf returns the kind of the first *Error in err's chain, or KindInternal
func KindOf(err error) ErrorKind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindInternal
}
