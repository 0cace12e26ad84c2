package user

import "errors"

var (
	// ErrDuplicate reports that a record with the same email already exists.
	ErrDuplicate = errors.New("user already exists")
	// ErrNotFound reports that no record matched the lookup.
	ErrNotFound = errors.New("user not found")
	// ErrInvalidCredentials is returned for both an unknown email and a
	// wrong password so the response never reveals which one failed.
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// ValidationError carries the field that failed registration validation and
// the reason. Validation happens before any store mutation.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Reason
}

func invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}
