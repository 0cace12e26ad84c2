package submission

import "errors"

var (
	// ErrUnauthenticated reports that no caller identity was available.
	// The store refuses anonymous reads and writes.
	ErrUnauthenticated = errors.New("authentication required")
	// ErrForbidden reports that the caller's role does not allow the
	// operation.
	ErrForbidden = errors.New("administrator role required")
	// ErrNotFound reports that no submission matched the id, or that the
	// caller is not allowed to know whether one did.
	ErrNotFound = errors.New("submission not found")
	// ErrInvalidStatus reports a status outside the review-state enum.
	ErrInvalidStatus = errors.New("invalid submission status")
)
